package api

import (
	"fmt"
	"net/http"
	"time"

	reqdto "parkdesk/internal/handler/dto/request"
	resdto "parkdesk/internal/handler/dto/response"
	"parkdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionQueries queries.TransactionQueries
}

func NewTransactionHandler(transactionQueries queries.TransactionQueries) *TransactionHandler {
	return &TransactionHandler{transactionQueries: transactionQueries}
}

// @Summary List transactions
// @Description Paginated payments joined with reservation, location and user
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param from query string false "Created at lower bound (RFC 3339)"
// @Param to query string false "Created at upper bound (RFC 3339)"
// @Param location_id query string false "Location filter"
// @Param status query string false "Payment status filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.TransactionListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var req reqdto.TransactionFilterRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter parameters",
		})
		return
	}

	list, err := h.transactionQueries.List(c.Request.Context(), req.ToFilter(), req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionList(list))
}

// @Summary Export transactions
// @Description Stream the filtered transactions as a CSV attachment
// @Tags transactions
// @Produce text/csv
// @Security BearerAuth
// @Param from query string false "Created at lower bound (RFC 3339)"
// @Param to query string false "Created at upper bound (RFC 3339)"
// @Param location_id query string false "Location filter"
// @Param status query string false "Payment status filter"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	var req reqdto.TransactionFilterRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter parameters",
		})
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.transactionQueries.ExportCSV(c.Request.Context(), req.ToFilter(), c.Writer); err != nil {
		// Headers may already be out; the truncated body is the best signal
		// left to the client.
		c.Status(http.StatusInternalServerError)
		return
	}
}
