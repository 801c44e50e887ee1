//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"parkdesk/internal/domain/payment"
	"parkdesk/internal/domain/user"
	"parkdesk/internal/handler/api"
	reqdto "parkdesk/internal/handler/dto/request"
	resdto "parkdesk/internal/handler/dto/response"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"
	"parkdesk/tests/common/httptest"
	"parkdesk/tests/common/testutil"
	commandsmock "parkdesk/tests/mock/commands"
	queriesmock "parkdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockReconciliationQueries
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReconciliationQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleOperator)
		c.Next()
	}

	s.router.POST("/payments/:reservationId/ensure", authMiddleware, s.handler.EnsurePayment)
	s.router.POST("/payments/:reservationId/complete", authMiddleware, s.handler.CompletePayment)
	s.router.GET("/payments/orphans", authMiddleware, s.handler.ListOrphans)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestEnsurePayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestEnsurePayment() {
	reservationID := uuid.New()
	url := "/payments/" + reservationID.String() + "/ensure"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().EnsurePayment(gomock.Any(), reservationID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/invalid-uuid/ensure", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "reservation not found",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reservation not found",
			},
			{
				name:           "amount mismatch",
				commandsError:  commands.ErrAmountMismatch,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "does not match reservation total",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().EnsurePayment(gomock.Any(), reservationID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCompletePayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCompletePayment() {
	reservationID := uuid.New()
	url := "/payments/" + reservationID.String() + "/complete"

	reqBody := reqdto.CompletePaymentRequest{Method: "card"}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().MarkCompleted(gomock.Any(), reservationID, payment.MethodCard).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for unknown method", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("method", "crypto"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request for missing method", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("method", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 Conflict on amount mismatch", func() {
		s.mockCommands.EXPECT().MarkCompleted(gomock.Any(), reservationID, payment.MethodCard).
			Return(commands.ErrAmountMismatch).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not match reservation total")
	})

	s.Run("error: 404 Not Found for missing reservation", func() {
		s.mockCommands.EXPECT().MarkCompleted(gomock.Any(), reservationID, payment.MethodCard).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestListOrphans
// ================================================================================

func (s *PaymentHandlerTestSuite) TestListOrphans() {
	url := "/payments/orphans"

	orphans := []*queries.OrphanReservation{
		{
			ReservationID: uuid.New(),
			UserEmail:     "driver@example.com",
			LocationName:  "Central Garage",
			TotalAmount:   decimal.NewFromInt(20000),
			EndsAt:        time.Now().UTC().Truncate(time.Second),
		},
	}

	s.Run("success: returns orphan reservations", func() {
		s.mockQueries.EXPECT().FindOrphans(gomock.Any()).
			Return(orphans, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.OrphanReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(orphans[0].ReservationID, response[0].ReservationID)
	})

	s.Run("success: empty list when everything reconciles", func() {
		s.mockQueries.EXPECT().FindOrphans(gomock.Any()).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().FindOrphans(gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
