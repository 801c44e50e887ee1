//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"parkdesk/internal/domain/user"
	"parkdesk/internal/handler/api"
	resdto "parkdesk/internal/handler/dto/response"
	"parkdesk/internal/usecase/queries"
	"parkdesk/tests/common/httptest"
	queriesmock "parkdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockMetricsQueries
	handler     *api.DashboardHandler
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockMetricsQueries(s.mockCtrl)
	s.handler = api.NewDashboardHandler(s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleAdmin)
		c.Next()
	}

	s.router.GET("/dashboard/metrics", authMiddleware, s.handler.Metrics)
	s.router.GET("/dashboard/chart", authMiddleware, s.handler.Chart)
}

func (s *DashboardHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

const periodQuery = "?from=2026-03-01T00:00:00Z&to=2026-03-08T00:00:00Z"

// ================================================================================
// TestMetrics
// ================================================================================

func (s *DashboardHandlerTestSuite) TestMetrics() {
	url := "/dashboard/metrics" + periodQuery

	expectedPeriod := queries.Period{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}

	overview := &queries.MetricsOverview{
		TotalRevenue:         decimal.NewFromInt(300000),
		RevenueGrowthPct:     50,
		ReservationCount:     30,
		ReservationGrowthPct: 50,
		ActiveReservations:   5,
		OccupiedSpots:        12,
		TotalSpots:           48,
		OccupancyPct:         25,
	}

	s.Run("success: returns 200 OK with MetricsResponse", func() {
		s.mockQueries.EXPECT().Overview(gomock.Any(), expectedPeriod).
			Return(overview, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.MetricsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(overview.TotalRevenue.Equal(response.TotalRevenue))
		s.Equal(overview.ReservationCount, response.ReservationCount)
		s.InDelta(overview.OccupancyPct, response.OccupancyPct, 0.0001)
	})

	s.Run("error: 400 Bad Request when the period is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dashboard/metrics", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid period")
	})

	s.Run("error: 400 Bad Request when the period is inverted", func() {
		invertedURL := "/dashboard/metrics?from=2026-03-08T00:00:00Z&to=2026-03-01T00:00:00Z"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, invertedURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid period")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().Overview(gomock.Any(), expectedPeriod).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestChart
// ================================================================================

func (s *DashboardHandlerTestSuite) TestChart() {
	url := "/dashboard/chart" + periodQuery

	points := []*queries.ChartPoint{
		{Day: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Revenue: decimal.NewFromInt(50000), Reservations: 4},
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Revenue: decimal.NewFromInt(70000), Reservations: 6},
	}

	s.Run("success: returns per-day points", func() {
		s.mockQueries.EXPECT().Chart(gomock.Any(), gomock.Any()).
			Return(points, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.ChartPointResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(int64(4), response[0].Reservations)
	})

	s.Run("error: 400 Bad Request when the period is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dashboard/chart", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid period")
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().Chart(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
