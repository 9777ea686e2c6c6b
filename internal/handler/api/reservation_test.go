//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"roombook/internal/domain/user"
	"roombook/internal/handler/api"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"
	"roombook/tests/common/builder"
	"roombook/tests/common/httptest"
	"roombook/tests/common/testutil"
	commandsmock "roombook/tests/mock/commands"
	queriesmock "roombook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	// Stand-in for the auth middleware
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		identity, err := user.NewIdentity(uuid.New(), "Booking Agent")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity setup failed"})
			return
		}
		c.Set("auth_identity", identity)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations/:building", authMiddleware, s.handler.ListByBuilding)
	s.router.PUT("/reservations/:id", authMiddleware, s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", authMiddleware, s.handler.DeleteReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.Building, body.Building)
		s.Equal(returnView.OwnerName, body.OwnerName)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		missing := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing building", mutate: testutil.Field("building", nil)},
			{name: "missing start", mutate: testutil.Field("start", nil)},
			{name: "missing end", mutate: testutil.Field("end", nil)},
			{name: "missing ownerName", mutate: testutil.Field("ownerName", nil)},
			{name: "malformed start", mutate: testutil.Field("start", "not-a-time")},
		}

		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "invalid time slot", commandsError: commands.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest},
			{name: "missing field", commandsError: commands.ErrMissingField, expectedStatus: http.StatusBadRequest},
			{name: "slot taken", commandsError: commands.ErrSlotTaken, expectedStatus: http.StatusConflict},
			{name: "database failure", commandsError: commands.ErrDatabaseOperationFailed, expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	reqBody := builder.NewReservationBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns 200 OK for valid update", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not found", commandsError: commands.ErrReservationNotFound, expectedStatus: http.StatusNotFound},
			{name: "slot taken", commandsError: commands.ErrSlotTaken, expectedStatus: http.StatusConflict},
			{name: "invalid time slot", commandsError: commands.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, gomock.Any()).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown reservation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrReservationNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})
}

// ================================================================================
// TestListByBuilding
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListByBuilding() {
	url := "/reservations/north-hall"

	s.Run("success: returns the building's reservations", func() {
		views := []*queries.ReservationView{
			builder.NewReservationBuilder().WithBuilding("north-hall").BuildView(),
			builder.NewReservationBuilder().WithBuilding("north-hall").BuildView(),
		}
		s.mockQueries.EXPECT().ListByBuilding(gomock.Any(), "north-hall").
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal(views[0].ID, body[0].ID)
	})

	s.Run("success: empty building yields an empty list", func() {
		s.mockQueries.EXPECT().ListByBuilding(gomock.Any(), "north-hall").
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
