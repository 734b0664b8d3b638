package usecase

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/domain/model"
)

type AuthUseCase struct {
	repo interfaces.Repository
}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{repo: repo}
}

// LoginResult carries the authenticated user and an opaque session token
type LoginResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login is a stub credential check: hex SHA-256 digest equality against the
// stored hash. The token is an opaque uuid, not a session protocol.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}
	if !user.IsActive {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}

	digest := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) != 1 {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}

	return &LoginResult{
		User:  user,
		Token: uuid.NewString(),
	}, nil
}
