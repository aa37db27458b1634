// Package store is the single source of truth for application state.
// One mutex-guarded writer owns the state; subscribers receive value
// snapshots after every transition and never see interior pointers.
package store

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"blogspace-client/domain/blog"
	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/config"
	"blogspace-client/infrastructure/gateway"
	"blogspace-client/pkg/alerts"
	"blogspace-client/pkg/auth"
	"blogspace-client/pkg/retry"
)

// State is the complete application state. Loading and Error are one
// global slot shared by every action; concurrent actions overwrite each
// other's values there, the same way they always have.
type State struct {
	User            *blog.User
	IsAuthenticated bool
	Posts           []blog.Post
	Categories      []blog.Category
	FeaturedAuthors []blog.Author
	DashboardStats  blog.DashboardStats
	UserStats       blog.UserStats
	Notifications   []blog.Notification
	Loading         bool
	Error           string
}

// Listener receives a state snapshot after every transition.
type Listener func(State)

// Store owns the state and exposes every action that can change it.
type Store struct {
	gateway  *gateway.Client
	tokens   *auth.Manager
	emitter  *events.Emitter
	alerter  alerts.Alerter
	logger   *zap.Logger
	validate *validator.Validate
	retryCfg retry.Config

	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int

	unsubscribe []func()
}

// New builds the store and hydrates it from any persisted session. A
// valid token on disk yields a minimal user from its claims; a stale
// one is cleared so the next start is clean.
func New(cfg *config.Config, gw *gateway.Client, tokens *auth.Manager, emitter *events.Emitter, alerter alerts.Alerter, logger *zap.Logger) *Store {
	s := &Store{
		gateway:   gw,
		tokens:    tokens,
		emitter:   emitter,
		alerter:   alerter,
		logger:    logger,
		validate:  validator.New(),
		retryCfg:  retryConfigFrom(cfg),
		listeners: make(map[int]Listener),
	}
	s.hydrate()

	s.unsubscribe = append(s.unsubscribe,
		emitter.Subscribe(events.TokenExpired, s.onSessionLost),
		emitter.Subscribe(events.AuthError, s.onSessionLost),
	)
	return s
}

// Subscribe registers a listener and returns its unsubscribe function.
// The listener immediately receives the current state.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	fn(snapshot)
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close detaches the store from the event emitter. Actions remain
// callable; only the session-loss reactions stop.
func (s *Store) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

// hydrate restores a session from the token store.
func (s *Store) hydrate() {
	if !s.tokens.IsValidToken() {
		s.tokens.ClearTokens()
		return
	}
	identity := s.tokens.UserFromToken()
	if identity == nil {
		s.tokens.ClearTokens()
		return
	}
	role := blog.RoleFromString(identity.Role)
	s.state.User = &blog.User{
		ID:     identity.ID,
		Name:   "User",
		Email:  "",
		Role:   role,
		Avatar: placeholderAvatar("User"),
	}
	s.state.IsAuthenticated = true
	s.logger.Info("session restored from stored token",
		zap.String("userId", identity.ID),
		zap.String("role", string(role)))
}

// onSessionLost handles TokenExpired and AuthError identically: the
// session is gone, drop the user.
func (s *Store) onSessionLost(evt events.Type) {
	s.logger.Info("session lost", zap.String("event", string(evt)))
	s.mutate(func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
		st.Error = "Your session has expired. Please log in again."
	})
}

// mutate applies fn under the lock, recomputes derived state, and
// notifies every listener with a snapshot outside the lock.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.recomputeDerivedLocked()
	snapshot := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// recomputeDerivedLocked refreshes UserStats from (User, Posts),
// writing the slot back only when the derived value changed.
func (s *Store) recomputeDerivedLocked() {
	if s.state.User == nil {
		s.state.UserStats = blog.UserStats{}
		return
	}
	stats := blog.ComputeUserStats(s.state.User.ID, s.state.Posts)
	if stats != s.state.UserStats {
		s.state.UserStats = stats
	}
}

// snapshotLocked deep-copies the state so callers can never reach the
// store's interior slices or the user pointer.
func (s *Store) snapshotLocked() State {
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	out.Posts = append([]blog.Post(nil), s.state.Posts...)
	out.Categories = append([]blog.Category(nil), s.state.Categories...)
	out.FeaturedAuthors = append([]blog.Author(nil), s.state.FeaturedAuthors...)
	out.Notifications = append([]blog.Notification(nil), s.state.Notifications...)
	return out
}

// setLoading flips the shared loading flag.
func (s *Store) setLoading(loading bool) {
	s.mutate(func(st *State) {
		st.Loading = loading
		if loading {
			st.Error = ""
		}
	})
}

// fail records err in the shared error slot and drops the loading flag.
func (s *Store) fail(err error) {
	s.mutate(func(st *State) {
		st.Loading = false
		st.Error = userMessage(err)
	})
}

// retryDo wraps an operation in the store's retry policy and routes the
// terminal failure through the alert facade.
func (s *Store) retryDo(ctx context.Context, op retry.Operation) error {
	s.mu.Lock()
	cfg := s.retryCfg
	s.mu.Unlock()
	return retry.DoNotify(ctx, cfg, s.alerter, op)
}

// ApplyConfig adopts reloaded configuration at runtime. Only the retry
// policy lives here; the token manager and gateway pick their settings
// up through their own surfaces.
func (s *Store) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.retryCfg = retryConfigFrom(cfg)
	s.mu.Unlock()
}

// retryConfigFrom maps the configured retry knobs onto a policy,
// keeping defaults for anything unset.
func retryConfigFrom(cfg *config.Config) retry.Config {
	retryCfg := retry.DefaultConfig()
	if cfg == nil {
		return retryCfg
	}
	if cfg.RetryMaxAttempts > 0 {
		retryCfg.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryBaseDelay > 0 {
		retryCfg.BaseDelay = cfg.RetryBaseDelay
	}
	if cfg.RetryMaxDelay > 0 {
		retryCfg.MaxDelay = cfg.RetryMaxDelay
	}
	if cfg.RetryBackoffMultiplier > 0 {
		retryCfg.BackoffMultiplier = cfg.RetryBackoffMultiplier
	}
	return retryCfg
}
