package api

import (
	"net/http"

	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historyQueries queries.HistoryQueries
}

func NewHistoryHandler(historyQueries queries.HistoryQueries) *HistoryHandler {
	return &HistoryHandler{historyQueries: historyQueries}
}

// @Summary List audit entries
// @Description Get the audit trail, most recent first, optionally filtered by building
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param building query string false "Restrict to entries touching this building"
// @Success 200 {array} resdto.HistoryEntryResponse
// @Failure 401 {object} map[string]string
// @Router /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	var building *string
	if raw := c.Query("building"); raw != "" {
		building = &raw
	}

	views, err := h.historyQueries.List(c.Request.Context(), building)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHistoryEntryViews(views))
}
