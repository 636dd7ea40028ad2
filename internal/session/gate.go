package session

import (
	"context"
	"sync"

	"github.com/revisitly/revisitly/internal/auth"
	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
)

// Store persists the local session record across restarts. It is the
// long-lived-credential origin; the identity provider is the other.
type Store interface {
	Session(ctx context.Context) (*domain.User, error)
	SaveSession(ctx context.Context, user *domain.User) error
	DeleteSession(ctx context.Context) error
}

// State is the single current-user view exposed to the whole system.
// Loading is true only until the first resolution completes; after
// that it stays false for the process lifetime, even when User is nil.
type State struct {
	User    *domain.User
	Loading bool
}

// Gate reconciles the identity-provider session with the persisted
// record. Provider origin always wins. A nil user is a normal state
// (the email-link reminder flow runs without one), never an error.
type Gate struct {
	provider auth.IdentityProvider
	store    Store
	logger   logger.Logger

	mu       sync.RWMutex
	user     *domain.User
	loading  bool
	epoch    uint64
	watchers map[int]func(State)
	nextSub  int
}

// New creates a gate in the loading state.
func New(provider auth.IdentityProvider, store Store, log logger.Logger) *Gate {
	return &Gate{
		provider: provider,
		store:    store,
		logger:   log,
		loading:  true,
		watchers: make(map[int]func(State)),
	}
}

// Init performs the first auth-state resolution. It mirrors the token
// provider's precedence: live provider session, then persisted record,
// then signed out. Loading drops to false exactly once, here.
func (g *Gate) Init(ctx context.Context) {
	var user *domain.User

	if g.provider != nil && g.provider.Active() {
		identity, err := g.provider.Identity(ctx)
		if err != nil {
			g.logger.Warn("identity provider resolution failed, falling back to persisted session",
				logger.Error(err))
		} else {
			user = identity
			// Provider origin overwrites whatever record was left behind
			if g.store != nil {
				if err := g.store.SaveSession(ctx, identity); err != nil {
					g.logger.Warn("failed to persist provider session", logger.Error(err))
				}
			}
		}
	}

	if user == nil && g.store != nil {
		record, err := g.store.Session(ctx)
		if err != nil {
			g.logger.Warn("failed to read persisted session", logger.Error(err))
		} else {
			user = record
		}
	}

	g.mu.Lock()
	g.user = user
	g.loading = false
	state := g.stateLocked()
	watchers := g.watchersLocked()
	g.mu.Unlock()

	if user != nil {
		g.logger.Info("session resolved", logger.String("email", user.Email))
	} else {
		g.logger.Info("session resolved as signed out")
	}
	notify(watchers, state)
}

// State returns the current user view and loading flag.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stateLocked()
}

// User returns the current user, nil when signed out.
func (g *Gate) User() *domain.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Loading reports whether the first resolution is still in flight.
func (g *Gate) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// Epoch returns the current logout generation. Capture it before
// starting a login round-trip and hand it to Establish so a logout
// that happened in between wins over the stale completion.
func (g *Gate) Epoch() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.epoch
}

// Establish installs a signed-in user and persists the record. It is a
// no-op when a logout has occurred since epoch was read.
func (g *Gate) Establish(ctx context.Context, user *domain.User, epoch uint64) bool {
	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		g.logger.Info("discarding stale session establish after logout")
		return false
	}
	g.user = user
	state := g.stateLocked()
	watchers := g.watchersLocked()
	g.mu.Unlock()

	if g.store != nil {
		if err := g.store.SaveSession(ctx, user); err != nil {
			g.logger.Warn("failed to persist session record", logger.Error(err))
		}
		// A logout can land between the unlock above and the store
		// write. Its DeleteSession has already run, so the save just
		// put a dead record back; take it out again.
		g.mu.Lock()
		stale := epoch != g.epoch
		g.mu.Unlock()
		if stale {
			g.logger.Info("discarding session record written during logout")
			if err := g.store.DeleteSession(ctx); err != nil {
				g.logger.Warn("failed to clear persisted session", logger.Error(err))
			}
			return false
		}
	}
	notify(watchers, state)
	return true
}

// Logout tears the session down. Provider errors are swallowed: the
// user-visible goal is the signed-out state, which clearing local data
// guarantees. Loading stays false.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.epoch++
	g.user = nil
	state := g.stateLocked()
	watchers := g.watchersLocked()
	g.mu.Unlock()

	if g.provider != nil {
		if err := g.provider.SignOut(ctx); err != nil {
			g.logger.Warn("provider sign-out failed, continuing logout", logger.Error(err))
		}
	}
	if g.store != nil {
		if err := g.store.DeleteSession(ctx); err != nil {
			g.logger.Warn("failed to clear persisted session", logger.Error(err))
		}
	}

	g.logger.Info("session logged out")
	notify(watchers, state)
}

// Subscribe registers a watcher for state changes and returns its
// cancel func. The watcher is not called with the current state.
func (g *Gate) Subscribe(fn func(State)) (cancel func()) {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.watchers[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.watchers, id)
		g.mu.Unlock()
	}
}

func (g *Gate) stateLocked() State {
	return State{User: g.user, Loading: g.loading}
}

func (g *Gate) watchersLocked() []func(State) {
	fns := make([]func(State), 0, len(g.watchers))
	for _, fn := range g.watchers {
		fns = append(fns, fn)
	}
	return fns
}

func notify(watchers []func(State), state State) {
	for _, fn := range watchers {
		fn(state)
	}
}
