//go:build e2e

package authtest

import (
	"net/http"
	"testing"

	"parkdesk/internal/handler/dto/request"
	"parkdesk/internal/handler/dto/response"
	"parkdesk/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser authenticates against the real login endpoint and returns the
// issued access token.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login response.LoginResponse
	httptest.DecodeResponseBody(t, w.Body, &login)
	require.NotEmpty(t, login.Token, "login returned an empty token")

	return login.Token
}
