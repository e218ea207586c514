package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// Session is the signed-in state: nobody, or one user with a token.
type Session struct {
	auth   service.AuthAPI
	tokens *TokenStore
	user   *model.User
	mu     sync.RWMutex
}

// New creates a logged-out session.
func New(auth service.AuthAPI, tokens *TokenStore) *Session {
	return &Session{auth: auth, tokens: tokens}
}

// Restore resumes a stored session. A stored token that is expired or that
// the profile endpoint rejects is removed, leaving the session logged out.
func (s *Session) Restore(ctx context.Context) error {
	ok, err := s.tokens.Load(ctx)
	if err != nil || !ok {
		return err
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		slog.Info("Stored session is no longer valid", "error", err)
		return s.tokens.Clear(ctx)
	}

	s.setUser(user)
	return nil
}

// Login authenticates and loads the profile of the new user.
func (s *Session) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.NewUserError("Username and password are required", common.ErrInvalidInput)
	}

	tokens, err := s.auth.Login(ctx, model.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, common.NewUserError("Invalid credentials", err)
	}

	if err := s.tokens.Save(ctx, *tokens); err != nil {
		return nil, err
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			slog.Warn("Failed to discard token", "error", clearErr)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s.setUser(user)
	slog.Info("Logged in", "username", user.Username)
	return user, nil
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	if strings.TrimSpace(reg.Username) == "" || reg.Password == "" {
		return nil, common.NewUserError("Username and password are required", common.ErrInvalidInput)
	}
	if reg.UserType == "" {
		reg.UserType = model.UserCustomer
	}
	return s.auth.Register(ctx, reg)
}

// Logout forgets the token and the user.
func (s *Session) Logout(ctx context.Context) error {
	s.setUser(nil)
	return s.tokens.Clear(ctx)
}

// Profile refreshes and returns the signed-in user.
func (s *Session) Profile(ctx context.Context) (*model.User, error) {
	if !s.tokens.Present() {
		return nil, common.ErrNotAuthenticated
	}
	user, err := s.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// User returns the signed-in user, nil when logged out.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LoggedIn reports whether a user is signed in.
func (s *Session) LoggedIn() bool {
	return s.User() != nil
}

func (s *Session) setUser(user *model.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
