package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/session"
	redisstore "github.com/revisitly/revisitly/internal/store/redis"
)

// ListRefresher keeps the dashboard view current by re-fetching the
// bookmark list on an interval and on manual trigger. Only this
// idempotent read runs on the timer; mutating operations never do.
type ListRefresher struct {
	client        *api.Client
	view          *dashboard.View
	store         *redisstore.Store
	gate          *session.Gate
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	busy          atomic.Bool
}

// NewListRefresher creates a new dashboard list refresher
func NewListRefresher(
	client *api.Client,
	view *dashboard.View,
	store *redisstore.Store,
	gate *session.Gate,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ListRefresher {
	return &ListRefresher{
		client:        client,
		view:          view,
		store:         store,
		gate:          gate,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh. The initial refresh is best
// effort: being signed out at startup is a normal state.
func (lr *ListRefresher) Start(ctx context.Context) error {
	if err := lr.Refresh(ctx); err != nil {
		lr.logger.Warn("initial dashboard refresh failed", logger.Error(err))
	}

	ticker := time.NewTicker(lr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := lr.Refresh(ctx); err != nil {
					lr.logger.Error("failed to refresh dashboard list",
						logger.Error(err))
				}
			case <-lr.manualTrigger:
				lr.logger.Info("manual dashboard refresh triggered")
				if err := lr.Refresh(ctx); err != nil {
					lr.logger.Error("failed to refresh dashboard list",
						logger.Error(err))
				}
			case <-lr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (lr *ListRefresher) Stop() {
	close(lr.stopCh)
}

// Refresh fetches the list and replaces the view wholesale. A refresh
// arriving while another is in flight is skipped, never stacked, so
// identical calls cannot overlap and the view only ever reflects the
// most recently completed response.
func (lr *ListRefresher) Refresh(ctx context.Context) error {
	if !lr.busy.CompareAndSwap(false, true) {
		lr.logger.Debug("dashboard refresh already in flight, skipping")
		return nil
	}
	defer lr.busy.Store(false)

	if lr.gate != nil && lr.gate.User() == nil {
		lr.logger.Debug("no session, skipping dashboard refresh")
		return nil
	}

	bookmarks, err := lr.client.List(ctx)
	if err != nil {
		return err
	}

	lr.view.ReplaceAll(bookmarks)
	lr.logger.Info("dashboard list refreshed",
		logger.Int("count", len(bookmarks)))

	// Update snapshot (best effort)
	if lr.store != nil {
		if err := lr.store.SaveBookmarks(ctx, bookmarks); err != nil {
			lr.logger.Warn("failed to save dashboard snapshot",
				logger.Error(err))
			// Don't fail - the in-memory view is the primary source
		}
	}

	return nil
}
