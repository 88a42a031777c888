// Package identity resolves caller credentials to owner IDs.
package identity

import (
	"context"
	"errors"
	"sync"
)

// ErrUnauthorized is returned for unknown or empty tokens.
var ErrUnauthorized = errors.New("geçersiz veya tanınmayan erişim belirteci")

// Verifier maps a bearer token to the owner it belongs to. The caller trusts
// any owner ID a Verifier returns.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier resolves tokens from a fixed in-memory map. It backs
// single-tenant and development deployments where tokens live in the config
// file.
type StaticVerifier struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewStaticVerifier copies the token-to-owner map.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	m := make(map[string]string, len(tokens))
	for token, owner := range tokens {
		m[token] = owner
	}
	return &StaticVerifier{tokens: m}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	v.mu.RLock()
	owner, ok := v.tokens[token]
	v.mu.RUnlock()
	if !ok {
		return "", ErrUnauthorized
	}
	return owner, nil
}

// Grant adds or replaces a token at runtime.
func (v *StaticVerifier) Grant(token, owner string) {
	v.mu.Lock()
	v.tokens[token] = owner
	v.mu.Unlock()
}

// Revoke drops a token.
func (v *StaticVerifier) Revoke(token string) {
	v.mu.Lock()
	delete(v.tokens, token)
	v.mu.Unlock()
}

// Anonymous returns every caller as the same fixed owner. Used when no auth
// tokens are configured.
type Anonymous struct{ Owner string }

func (a Anonymous) Verify(context.Context, string) (string, error) {
	if a.Owner == "" {
		return "default", nil
	}
	return a.Owner, nil
}
