package api

import (
	"errors"
	"net/http"

	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Reserve an exclusive time slot in a building
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.reservationCommands.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Overwrite an existing reservation's slot and details
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Reservation request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	actor, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.reservationCommands.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete reservation
// @Description Remove a reservation and record the removal in the audit log
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	actor, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.reservationCommands.Delete(c.Request.Context(), id, actor); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List building reservations
// @Description Get all reservations of a building ordered by start time
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param building path string true "Building name"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/{building} [get]
func (h *ReservationHandler) ListByBuilding(c *gin.Context) {
	building := c.Param("building")
	if building == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Building is required",
		})
		return
	}

	views, err := h.reservationQueries.ListByBuilding(c.Request.Context(), building)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

func (h *ReservationHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "End time must be after start time",
		})
	case errors.Is(err, commands.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Building, owner name and requester are required",
		})
	case errors.Is(err, commands.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Time slot is already reserved",
		})
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
