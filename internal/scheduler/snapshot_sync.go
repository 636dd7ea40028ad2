package scheduler

import (
	"context"

	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/logger"
	redisstore "github.com/revisitly/revisitly/internal/store/redis"
)

// SnapshotSyncer seeds the dashboard view from the last persisted
// snapshot on startup, so the dashboard has data before the first
// network refresh completes.
type SnapshotSyncer struct {
	store  *redisstore.Store
	view   *dashboard.View
	logger logger.Logger
}

// NewSnapshotSyncer creates a new snapshot syncer
func NewSnapshotSyncer(
	store *redisstore.Store,
	view *dashboard.View,
	log logger.Logger,
) *SnapshotSyncer {
	return &SnapshotSyncer{
		store:  store,
		view:   view,
		logger: log,
	}
}

// Sync loads the snapshot and populates the view.
func (ss *SnapshotSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing dashboard snapshot to memory")

	bookmarks, err := ss.store.Bookmarks(ctx)
	if err != nil {
		return err
	}

	if len(bookmarks) == 0 {
		ss.logger.Info("no dashboard snapshot found")
		return nil
	}

	ss.view.ReplaceAll(bookmarks)

	ss.logger.Info("dashboard snapshot restored",
		logger.Int("count", len(bookmarks)))

	return nil
}
