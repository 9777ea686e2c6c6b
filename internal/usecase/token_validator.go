package usecase

import (
	"roombook/internal/domain/user"
	"roombook/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the Identity value object the
// core trusts. The auth middleware is its only caller.
type TokenValidator interface {
	ValidateToken(token string) (user.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (user.Identity, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return user.Identity{}, err
	}
	return user.NewIdentity(claims.UserID, claims.Name)
}
