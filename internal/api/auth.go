package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// Auth is the account side of the API.
type Auth struct {
	client *Client
}

var _ service.AuthAPI = (*Auth)(nil)

// Login exchanges credentials for an access token.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (*model.Tokens, error) {
	var tokens model.Tokens
	if err := a.client.save(ctx, http.MethodPost, "/auth/login/", creds, &tokens); err != nil {
		return nil, err
	}
	if tokens.Access == "" {
		return nil, fmt.Errorf("%w: %w", common.ErrSaveFailed, errors.New("login response carried no access token"))
	}
	return &tokens, nil
}

// Register creates an account.
func (a *Auth) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	var user model.User
	if err := a.client.save(ctx, http.MethodPost, "/auth/register/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the account the current token belongs to.
func (a *Auth) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := a.client.load(ctx, "/auth/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
