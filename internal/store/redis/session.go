package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revisitly/revisitly/internal/domain"
)

const (
	// DefaultSessionTTL bounds how long a persisted credential can
	// outlive its last use. Logout removes it explicitly before that.
	DefaultSessionTTL = 30 * 24 * time.Hour
	// DefaultSnapshotTTL is the TTL for the dashboard list snapshot
	DefaultSnapshotTTL = 48 * time.Hour
)

// Store persists the session record and the dashboard snapshot. It is
// the gateway's equivalent of the browser's local storage.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSession stores the session record, replacing any previous one.
func (s *Store) SaveSession(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(), data, DefaultSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

// Session reads the persisted session record. A missing record is not
// an error: it returns nil, nil and means "signed out".
func (s *Store) Session(ctx context.Context) (*domain.User, error) {
	data, err := s.client.Get(ctx, SessionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session record: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &user, nil
}

// DeleteSession removes the persisted record. Deleting a record that
// is already gone succeeds.
func (s *Store) DeleteSession(ctx context.Context) error {
	if err := s.client.Del(ctx, SessionKey()).Err(); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	return nil
}
