package response

import (
	"time"

	"parkdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	PaymentID     uuid.UUID       `json:"paymentId"`
	ReservationID uuid.UUID       `json:"reservationId"`
	UserEmail     string          `json:"userEmail"`
	LocationName  string          `json:"locationName"`
	LocationCity  string          `json:"locationCity"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Method        *string         `json:"method,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type TransactionListResponse struct {
	Items []*TransactionResponse `json:"items"`
	Total int64                  `json:"total"`
}

func FromTransactionList(list *queries.TransactionList) *TransactionListResponse {
	items := make([]*TransactionResponse, len(list.Items))
	for i, row := range list.Items {
		items[i] = &TransactionResponse{
			PaymentID:     row.PaymentID,
			ReservationID: row.ReservationID,
			UserEmail:     row.UserEmail,
			LocationName:  row.LocationName,
			LocationCity:  row.LocationCity,
			Amount:        row.Amount,
			Status:        row.Status,
			Method:        row.Method,
			CreatedAt:     row.CreatedAt,
		}
	}
	return &TransactionListResponse{Items: items, Total: list.Total}
}

type OrphanReservationResponse struct {
	ReservationID uuid.UUID       `json:"reservationId"`
	UserEmail     string          `json:"userEmail"`
	LocationName  string          `json:"locationName"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	EndsAt        time.Time       `json:"endsAt"`
}

func FromOrphanReservations(orphans []*queries.OrphanReservation) []*OrphanReservationResponse {
	result := make([]*OrphanReservationResponse, len(orphans))
	for i, o := range orphans {
		result[i] = &OrphanReservationResponse{
			ReservationID: o.ReservationID,
			UserEmail:     o.UserEmail,
			LocationName:  o.LocationName,
			TotalAmount:   o.TotalAmount,
			EndsAt:        o.EndsAt,
		}
	}
	return result
}
