package request

import (
	"time"

	"parkdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionFilterRequest struct {
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	LocationID *uuid.UUID `form:"location_id"`
	Status     *string    `form:"status" binding:"omitempty,oneof=pending completed failed"`
	Limit      int32      `form:"limit"`
	Offset     int32      `form:"offset"`
}

func (r TransactionFilterRequest) ToFilter() queries.TransactionFilter {
	return queries.TransactionFilter{
		From:       r.From,
		To:         r.To,
		LocationID: r.LocationID,
		Status:     r.Status,
	}
}

type PeriodRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00" binding:"required,gtfield=From"`
}

func (r PeriodRequest) ToPeriod() queries.Period {
	return queries.Period{From: r.From, To: r.To}
}
