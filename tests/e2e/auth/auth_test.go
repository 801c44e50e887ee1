//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"parkdesk/internal/handler/dto/request"
	"parkdesk/internal/handler/dto/response"
	"parkdesk/tests/common/authtest"
	"parkdesk/tests/common/dbtest"
	"parkdesk/tests/common/httptest"
	"parkdesk/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          dbtest.OperatorEmail,
			password:       dbtest.SeedPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nonexistent@example.com",
			password:       dbtest.SeedPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          dbtest.OperatorEmail,
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty email",
			email:          "",
			password:       dbtest.SeedPassword,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password",
			email:          dbtest.OperatorEmail,
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var login response.LoginResponse
				httptest.DecodeResponseBody(t, w.Body, &login)
				require.Equal(t, dbtest.OperatorUserID, login.UserID)
				require.Equal(t, "operator", login.Role)
				require.NotEmpty(t, login.Token)
			}
		})
	}

	s.Run("inactive user is rejected", func() {
		t := s.T()
		ctx := t.Context()

		_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = $1", dbtest.ViewerEmail)
		require.NoError(t, err)
		defer func() {
			_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = true WHERE email = $1", dbtest.ViewerEmail)
			require.NoError(t, err)
		}()

		reqBody := request.LoginRequest{Email: dbtest.ViewerEmail, Password: dbtest.SeedPassword}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the authenticated identity", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, dbtest.AdminEmail, dbtest.SeedPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me response.MeResponse
		httptest.DecodeResponseBody(t, w.Body, &me)
		require.Equal(t, dbtest.AdminUserID, me.UserID)
		require.Equal(t, "admin", me.Role)
	})

	s.Run("rejects requests without a token", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects a garbage token", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestRoleEnforcement() {
	s.Run("viewer cannot access transactions", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, dbtest.ViewerEmail, dbtest.SeedPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/transactions", nil, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("operator cannot access the dashboard", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, dbtest.OperatorEmail, dbtest.SeedPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/dashboard/metrics", nil, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("admin can access the dashboard", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, dbtest.AdminEmail, dbtest.SeedPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/dashboard/metrics?from=2026-01-01T00:00:00Z&to=2026-12-31T00:00:00Z", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}
