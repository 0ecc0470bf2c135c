package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

type authUseCase struct {
	users interfaces.UserDirectory
}

// NewAuth creates the demo login use case
func NewAuth(users interfaces.UserDirectory) interfaces.AuthUseCase {
	return &authUseCase{users: users}
}

// Login returns the demo user matching the credentials, without its password
func (uc *authUseCase) Login(ctx context.Context, cred *model.Credentials) (*model.User, error) {
	if cred == nil || cred.Email == "" || cred.Password == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "email and password are required")
	}

	user, err := uc.users.FindUser(ctx, cred.Email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find user")
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(cred.Password)) != 1 {
		ctxlog.From(ctx).Info("Login rejected", "email", cred.Email)
		return nil, goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
	}

	ctxlog.From(ctx).Info("Login succeeded", "email", user.Email)
	user.Password = ""
	return user, nil
}
