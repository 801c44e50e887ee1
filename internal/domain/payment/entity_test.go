//go:build unit

package payment_test

import (
	"testing"

	"parkdesk/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingPayment(t *testing.T) {
	reservationID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		p, err := payment.NewPendingPayment(reservationID, decimal.NewFromInt(20000))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, reservationID, p.ReservationID())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Nil(t, p.Method())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := payment.NewPendingPayment(reservationID, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, payment.ErrNegativeAmount)
	})
}

func TestMarkCompleted(t *testing.T) {
	t.Run("pending payment completes with method", func(t *testing.T) {
		p, err := payment.NewPendingPayment(uuid.New(), decimal.NewFromInt(20000))
		require.NoError(t, err)

		require.NoError(t, p.MarkCompleted(payment.MethodCard))
		assert.Equal(t, payment.StatusCompleted, p.Status())
		require.NotNil(t, p.Method())
		assert.Equal(t, payment.MethodCard, *p.Method())
	})

	t.Run("completing twice reports ErrAlreadyCompleted", func(t *testing.T) {
		p, err := payment.NewPendingPayment(uuid.New(), decimal.NewFromInt(20000))
		require.NoError(t, err)
		require.NoError(t, p.MarkCompleted(payment.MethodCash))

		err = p.MarkCompleted(payment.MethodCard)
		require.ErrorIs(t, err, payment.ErrAlreadyCompleted)
		assert.Equal(t, payment.MethodCash, *p.Method())
	})

	t.Run("invalid method is rejected", func(t *testing.T) {
		p, err := payment.NewPendingPayment(uuid.New(), decimal.NewFromInt(20000))
		require.NoError(t, err)

		err = p.MarkCompleted(payment.Method("crypto"))
		require.ErrorIs(t, err, payment.ErrInvalidMethod)
		assert.Equal(t, payment.StatusPending, p.Status())
	})
}

func TestMarkFailed(t *testing.T) {
	p, err := payment.NewPendingPayment(uuid.New(), decimal.NewFromInt(20000))
	require.NoError(t, err)

	require.NoError(t, p.MarkFailed())
	assert.Equal(t, payment.StatusFailed, p.Status())

	err = p.MarkFailed()
	require.ErrorIs(t, err, payment.ErrNotPending)
}

func TestMatchesAmount(t *testing.T) {
	p, err := payment.NewPendingPayment(uuid.New(), decimal.NewFromInt(20000))
	require.NoError(t, err)

	assert.True(t, p.MatchesAmount(decimal.NewFromInt(20000)))
	assert.True(t, p.MatchesAmount(decimal.NewFromFloat(20000.00)))
	assert.False(t, p.MatchesAmount(decimal.NewFromInt(25000)))
}
