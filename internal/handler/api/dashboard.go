package api

import (
	"net/http"

	reqdto "parkdesk/internal/handler/dto/request"
	resdto "parkdesk/internal/handler/dto/response"
	"parkdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	metricsQueries queries.MetricsQueries
}

func NewDashboardHandler(metricsQueries queries.MetricsQueries) *DashboardHandler {
	return &DashboardHandler{metricsQueries: metricsQueries}
}

// @Summary Dashboard metrics
// @Description Revenue, occupancy and growth figures for the period
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param from query string true "Period start (RFC 3339)"
// @Param to query string true "Period end (RFC 3339)"
// @Success 200 {object} resdto.MetricsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	var req reqdto.PeriodRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid period",
		})
		return
	}

	overview, err := h.metricsQueries.Overview(c.Request.Context(), req.ToPeriod())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMetricsOverview(overview))
}

// @Summary Dashboard chart
// @Description Per-day revenue and reservation counts for the period
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param from query string true "Period start (RFC 3339)"
// @Param to query string true "Period end (RFC 3339)"
// @Success 200 {array} resdto.ChartPointResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /dashboard/chart [get]
func (h *DashboardHandler) Chart(c *gin.Context) {
	var req reqdto.PeriodRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid period",
		})
		return
	}

	points, err := h.metricsQueries.Chart(c.Request.Context(), req.ToPeriod())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromChartPoints(points))
}
