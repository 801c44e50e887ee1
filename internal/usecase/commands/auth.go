package commands

import (
	"context"

	"parkdesk/internal/domain/user"
	"parkdesk/internal/pkg/errs"
	"parkdesk/internal/pkg/jwt"
	"parkdesk/internal/pkg/password"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID uuid.UUID
	Role   user.Role
	Token  string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, ErrInvalidCredentials
	}

	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(snap.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: snap.ID,
		Role:   role,
		Token:  token,
	}, nil
}
