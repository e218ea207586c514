// Package session holds the signed-in state of the soko client.
//
// TokenStore persists the access token in local storage and feeds it to the
// API client as an oauth2.TokenSource. Session drives the login, logout and
// restore transitions on top of it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// TokenStore keeps the current access token in memory and in local storage.
type TokenStore struct {
	store  service.Storage
	now    func() time.Time
	access string
	mu     sync.RWMutex
}

var _ oauth2.TokenSource = (*TokenStore)(nil)

// NewTokenStore creates a token store backed by store.
func NewTokenStore(store service.Storage) *TokenStore {
	return &TokenStore{store: store, now: time.Now}
}

// Load reads the stored token. It reports false when none is stored or the
// stored token has expired; an expired token is removed.
func (t *TokenStore) Load(ctx context.Context) (bool, error) {
	access, err := t.store.Get(ctx, service.KeyToken)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read token: %w", err)
	}

	if t.expired(access) {
		slog.Info("Stored session has expired")
		return false, t.Clear(ctx)
	}

	t.mu.Lock()
	t.access = access
	t.mu.Unlock()
	return true, nil
}

// Save stores the tokens from a login.
func (t *TokenStore) Save(ctx context.Context, tokens model.Tokens) error {
	if err := t.store.Set(ctx, service.KeyToken, tokens.Access); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if tokens.Refresh != "" {
		if err := t.store.Set(ctx, service.KeyRefreshToken, tokens.Refresh); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	t.mu.Lock()
	t.access = tokens.Access
	t.mu.Unlock()
	return nil
}

// Clear forgets the tokens in memory and in storage.
func (t *TokenStore) Clear(ctx context.Context) error {
	t.mu.Lock()
	t.access = ""
	t.mu.Unlock()

	for _, key := range []string{service.KeyToken, service.KeyRefreshToken} {
		if err := t.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

// Present reports whether a usable token is held.
func (t *TokenStore) Present() bool {
	t.mu.RLock()
	access := t.access
	t.mu.RUnlock()
	return access != "" && !t.expired(access)
}

// Token implements oauth2.TokenSource. While logged out it returns an empty
// token, which the API client treats as "send no Authorization header".
func (t *TokenStore) Token() (*oauth2.Token, error) {
	t.mu.RLock()
	access := t.access
	t.mu.RUnlock()

	if access == "" {
		return &oauth2.Token{}, nil
	}

	token := &oauth2.Token{AccessToken: access, TokenType: "Bearer"}
	if exp, ok := expiry(access); ok {
		token.Expiry = exp
	}
	return token, nil
}

func (t *TokenStore) expired(access string) bool {
	exp, ok := expiry(access)
	return ok && !t.now().Before(exp)
}

// expiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens have no known expiry.
func expiry(access string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
