//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"roombook/internal/domain/history"
	"roombook/internal/handler/api"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/queries"
	"roombook/tests/common/builder"
	"roombook/tests/common/httptest"
	queriesmock "roombook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HistoryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockHistoryQueries
	handler     *api.HistoryHandler
}

func (s *HistoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockHistoryQueries(s.mockCtrl)
	s.handler = api.NewHistoryHandler(s.mockQueries)

	s.router.GET("/history", s.handler.ListHistory)
}

func (s *HistoryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHistoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(HistoryHandlerTestSuite))
}

func (s *HistoryHandlerTestSuite) TestListHistory() {
	s.Run("success: returns full trail without a filter", func() {
		views := []*queries.HistoryEntryView{
			builder.NewHistoryBuilder().WithAction(history.ActionDelete).BuildView(),
			builder.NewHistoryBuilder().WithAction(history.ActionCreate).BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Nil()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history", nil, "")

		var body []resdto.HistoryEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("delete", body[0].Action)
		s.Equal(views[0].Details.Building, body[0].Details.Building)
	})

	s.Run("success: passes the building filter through", func() {
		views := []*queries.HistoryEntryView{
			builder.NewHistoryBuilder().WithBuilding("east-annex").BuildView(),
		}
		building := "east-annex"
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Cond(func(b *string) bool {
			return b != nil && *b == building
		})).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history?building=east-annex", nil, "")

		var body []resdto.HistoryEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("east-annex", body[0].Details.Building)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection lost")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}
