package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		key     string
	}{
		{name: "plain key", key: "token"},
		{name: "empty", key: "", wantErr: ErrEmptyString},
		{name: "whitespace only", key: "   ", wantErr: ErrEmptyString},
		{name: "padded", key: " token", wantErr: ErrInvalidKey},
		{name: "too long", key: strings.Repeat("k", maxKeyLength+1), wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateKey() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_RejectsInvalidInput(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // nil context is the case under test
	if err := store.Set(nil, "token", "x"); !errors.Is(err, ErrNilContext) {
		t.Errorf("Set(nil ctx) error = %v, want ErrNilContext", err)
	}
	if err := store.Set(context.Background(), "", "x"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Set(empty key) error = %v, want ErrEmptyString", err)
	}
}
