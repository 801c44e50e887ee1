package response

import (
	"parkdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
	Token  string    `json:"token"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID: result.UserID,
		Role:   result.Role.String(),
		Token:  result.Token,
	}
}

type MeResponse struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}
