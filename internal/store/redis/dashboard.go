package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/revisitly/revisitly/internal/domain"
)

// SaveBookmarks stores the dashboard list snapshot as a whole. The
// snapshot is replace-all by construction, matching the view's
// last-write-wins semantics.
func (s *Store) SaveBookmarks(ctx context.Context, bookmarks []*domain.Bookmark) error {
	data, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard snapshot: %w", err)
	}
	if err := s.client.Set(ctx, DashboardKey(), data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}
	return nil
}

// Bookmarks loads the last dashboard snapshot. No snapshot yields an
// empty slice.
func (s *Store) Bookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, DashboardKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*domain.Bookmark{}, nil
		}
		return nil, fmt.Errorf("failed to get dashboard snapshot: %w", err)
	}

	var bookmarks []*domain.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard snapshot: %w", err)
	}
	return bookmarks, nil
}

// DeleteBookmarks drops the snapshot (logout clears cached data too).
func (s *Store) DeleteBookmarks(ctx context.Context) error {
	if err := s.client.Del(ctx, DashboardKey()).Err(); err != nil {
		return fmt.Errorf("failed to delete dashboard snapshot: %w", err)
	}
	return nil
}
