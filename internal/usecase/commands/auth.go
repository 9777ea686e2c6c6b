package commands

import (
	"context"

	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/jwt"
	"roombook/internal/pkg/password"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Name        string
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
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

// Login verifies the credentials against the users table and issues the
// bearer token the reservation endpoints require. Lookup failures and bad
// passwords collapse into one error so the response does not leak which
// part was wrong.
func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	userSnap, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(userSnap.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := a.jwtService.GenerateToken(userSnap.ID, userSnap.Name)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      userSnap.ID,
		Name:        userSnap.Name,
		AccessToken: accessToken,
	}, nil
}
