// Package storage is the local storage of the soko client: a small SQLite
// key/value table holding the auth token and the last resolved location.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidKey  = errors.New("invalid storage key")
)

// maxKeyLength bounds storage keys.
const maxKeyLength = 128

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKey accepts non-empty keys without surrounding whitespace.
func validateKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if key != strings.TrimSpace(key) {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidKey, key)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, maxKeyLength)
	}
	return nil
}
