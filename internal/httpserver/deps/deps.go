package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/form"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/session"
	"github.com/revisitly/revisitly/internal/timecodec"
)

// SnapshotStore drops the persisted dashboard snapshot. Logout uses it
// so the previous account's list does not survive in Redis.
type SnapshotStore interface {
	DeleteBookmarks(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Gate           *session.Gate    // current-user view and loading phase
	Client         *api.Client      // remote bookmark service
	Controller     *form.Controller // mode-aware form controller
	View           *dashboard.View  // in-memory dashboard list
	Codec          *timecodec.Codec // wall-clock <-> absolute conversion
	RedisClient    *redis.Client    // session/snapshot persistence
	Snapshots      SnapshotStore    // dashboard snapshot teardown on logout (nil in tests without Redis)
	RefreshTrigger chan struct{}    // Channel to trigger manual dashboard refresh
	ImportTrigger  chan struct{}    // Channel to trigger manual import (nil if import disabled)
}
