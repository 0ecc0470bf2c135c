package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
)

func TestAuth_Login(t *testing.T) {
	uc := usecase.NewAuth(newFixture(t))

	tests := []struct {
		name    string
		cred    *model.Credentials
		wantErr error
	}{
		{name: "valid", cred: &model.Credentials{Email: "demo@releasegpt.dev", Password: "demo1234"}},
		{name: "email is case-insensitive", cred: &model.Credentials{Email: "Demo@ReleaseGPT.dev", Password: "demo1234"}},
		{name: "wrong password", cred: &model.Credentials{Email: "demo@releasegpt.dev", Password: "nope"}, wantErr: model.ErrUnauthorized},
		{name: "unknown user", cred: &model.Credentials{Email: "ghost@releasegpt.dev", Password: "demo1234"}, wantErr: model.ErrUnauthorized},
		{name: "empty", cred: &model.Credentials{}, wantErr: model.ErrInvalidInput},
		{name: "nil", wantErr: model.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := uc.Login(context.Background(), tt.cred)
			if tt.wantErr != nil {
				gt.True(t, errors.Is(err, tt.wantErr))
				return
			}
			gt.NoError(t, err)
			gt.Value(t, user.Name).Equal("Demo User")
			gt.Value(t, user.Password).Equal("")
		})
	}
}
