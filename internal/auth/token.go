package auth

import (
	"context"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
)

// SessionReader reads the locally persisted session record. A nil
// record with a nil error means nobody is signed in.
type SessionReader interface {
	Session(ctx context.Context) (*domain.User, error)
}

// TokenProvider resolves the current bearer credential:
//  1. an active identity-provider session wins and is force-refreshed,
//  2. otherwise the persisted session record's token is used,
//  3. otherwise the empty token signals "unauthenticated".
//
// Absence of a session is never an error; only a failed provider
// refresh is.
type TokenProvider struct {
	provider IdentityProvider
	sessions SessionReader
	logger   logger.Logger
}

// NewTokenProvider wires the two credential origins together. Either
// may be nil.
func NewTokenProvider(provider IdentityProvider, sessions SessionReader, log logger.Logger) *TokenProvider {
	return &TokenProvider{provider: provider, sessions: sessions, logger: log}
}

// Token implements api.TokenSource.
func (t *TokenProvider) Token(ctx context.Context) (string, error) {
	if t.provider != nil && t.provider.Active() {
		token, err := t.provider.Token(ctx)
		if err != nil {
			return "", err
		}
		return token, nil
	}

	if t.sessions == nil {
		return "", nil
	}
	record, err := t.sessions.Session(ctx)
	if err != nil {
		// A broken store must not block public endpoints; treat it as
		// signed out and let authenticated calls fail server-side.
		if t.logger != nil {
			t.logger.Warn("failed to read persisted session", logger.Error(err))
		}
		return "", nil
	}
	if record == nil {
		return "", nil
	}
	return record.Token, nil
}
