package api

import (
	"errors"
	"net/http"

	"parkdesk/internal/domain/payment"
	reqdto "parkdesk/internal/handler/dto/request"
	resdto "parkdesk/internal/handler/dto/response"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands       commands.PaymentCommands
	reconciliationQueries queries.ReconciliationQueries
}

func NewPaymentHandler(
	paymentCommands commands.PaymentCommands,
	reconciliationQueries queries.ReconciliationQueries,
) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands:       paymentCommands,
		reconciliationQueries: reconciliationQueries,
	}
}

// @Summary Ensure payment
// @Description Idempotently create the pending payment for a reservation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reservationId path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{reservationId}/ensure [post]
func (h *PaymentHandler) EnsurePayment(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.paymentCommands.EnsurePayment(c.Request.Context(), reservationID); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Complete payment
// @Description Mark the reservation's payment as completed
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservationId path string true "Reservation ID"
// @Param request body reqdto.CompletePaymentRequest true "Payment method"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{reservationId}/complete [post]
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.CompletePaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	method, err := payment.NewMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment method",
		})
		return
	}

	if err := h.paymentCommands.MarkCompleted(c.Request.Context(), reservationID, method); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Orphan reservations
// @Description Completed reservations that lack a completed payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrphanReservationResponse
// @Failure 401 {object} map[string]string
// @Router /payments/orphans [get]
func (h *PaymentHandler) ListOrphans(c *gin.Context) {
	orphans, err := h.reconciliationQueries.FindOrphans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrphanReservations(orphans))
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrAmountMismatch):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Payment amount does not match reservation total",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment parameters",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
