// Package secrets resolves configuration values through named references at
// request time, so rotated values are picked up without a restart.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no store holds the referenced secret
var ErrNotFound = errors.New("secret not found")

// Store looks up a secret by name. ok is false when the store has no value for it.
type Store interface {
	Lookup(ctx context.Context, name string) (value string, ok bool, err error)
}

// Ref names a secret held by a Store
type Ref string

// Resolve returns the value of r from store
func (r Ref) Resolve(ctx context.Context, store Store) (string, error) {
	if r == "" {
		return "", fmt.Errorf("error resolving secret: empty reference")
	}

	value, ok, err := store.Lookup(ctx, string(r))
	if err != nil {
		return "", fmt.Errorf("error resolving secret %s: %w", r, err)
	}
	if !ok {
		return "", fmt.Errorf("error resolving secret %s: %w", r, ErrNotFound)
	}
	return value, nil
}

// EnvStore reads secrets from environment variables
type EnvStore struct{}

func (EnvStore) Lookup(_ context.Context, name string) (string, bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// FileStore reads one secret per file under Dir, the layout used by mounted
// container secrets. Surrounding whitespace is trimmed.
type FileStore struct {
	Dir string
}

func (s FileStore) Lookup(_ context.Context, name string) (string, bool, error) {
	if s.Dir == "" || name != filepath.Base(name) {
		return "", false, nil
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading secret file: %w", err)
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Chain consults each store in order and returns the first hit
type Chain []Store

func (c Chain) Lookup(ctx context.Context, name string) (string, bool, error) {
	for _, s := range c {
		v, ok, err := s.Lookup(ctx, name)
		if err != nil {
			return "", false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return "", false, nil
}
