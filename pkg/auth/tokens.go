// Package auth owns the bearer credential: persistence, expiry detection
// and silent refresh. Claims are decoded without signature verification;
// the remote API is the sole authority on token validity, and anything
// extracted here is a display hint, never an authorization decision.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/keystore"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"

	// defaultCheckInterval is how often the refresh loop wakes up.
	defaultCheckInterval = 5 * time.Minute
	// defaultRefreshWindow is the remaining lifetime under which a
	// silent refresh is attempted.
	defaultRefreshWindow = 10 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the decoded claims segment of a bearer token.
type TokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the subset of claims exposed to the rest of the client.
type Identity struct {
	ID        string
	Role      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// RefreshFunc exchanges the refresh credential for a new access token.
// The gateway supplies this; keeping it a function avoids a dependency
// cycle between the token manager and the gateway.
type RefreshFunc func(ctx context.Context) (string, error)

// Manager is the single source of truth for the bearer credential and its
// freshness. All storage and decode errors are swallowed into "no valid
// token"; no method here returns an error to report them.
type Manager struct {
	store   *keystore.Store
	emitter *events.Emitter
	logger  *zap.Logger

	checkInterval time.Duration
	refreshWindow time.Duration
	now           func() time.Time

	mu            sync.Mutex
	cancelRefresh context.CancelFunc
}

// NewManager creates a token manager over the given keystore and emitter.
func NewManager(store *keystore.Store, emitter *events.Emitter, logger *zap.Logger) *Manager {
	return &Manager{
		store:         store,
		emitter:       emitter,
		logger:        logger,
		checkInterval: defaultCheckInterval,
		refreshWindow: defaultRefreshWindow,
		now:           time.Now,
	}
}

// SetIntervals overrides how often the refresh loop wakes and how close
// to expiry a token must be before it is refreshed. Takes effect the
// next time the loop starts.
func (m *Manager) SetIntervals(checkInterval, refreshWindow time.Duration) {
	if checkInterval > 0 {
		m.checkInterval = checkInterval
	}
	if refreshWindow > 0 {
		m.refreshWindow = refreshWindow
	}
}

// Token returns the persisted access token, or "" when absent.
func (m *Manager) Token() string {
	return m.store.Get(accessTokenKey)
}

// SetToken persists the access token.
func (m *Manager) SetToken(token string) {
	m.store.Set(accessTokenKey, token)
}

// RefreshCredential returns the persisted refresh token, or "".
func (m *Manager) RefreshCredential() string {
	return m.store.Get(refreshTokenKey)
}

// SetRefreshCredential persists the refresh token.
func (m *Manager) SetRefreshCredential(token string) {
	m.store.Set(refreshTokenKey, token)
}

// ClearTokens erases both credentials and stops any running refresh loop.
func (m *Manager) ClearTokens() {
	m.store.Delete(accessTokenKey)
	m.store.Delete(refreshTokenKey)
	m.StopRefreshLoop()
}

// Claims decodes the claims segment of a token without verifying the
// signature.
func (m *Manager) Claims(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsTokenExpired reports whether the token's embedded expiry is in the
// past. Malformed tokens and tokens without an expiry claim count as
// expired (fail closed).
func (m *Manager) IsTokenExpired(token string) bool {
	claims, err := m.Claims(token)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(m.now())
}

// IsValidToken reports whether a token is stored and not expired.
func (m *Manager) IsValidToken() bool {
	token := m.Token()
	return token != "" && !m.IsTokenExpired(token)
}

// UserFromToken extracts the identity claims from the stored token, or
// nil when no unexpired token exists. Display use only.
func (m *Manager) UserFromToken() *Identity {
	token := m.Token()
	if token == "" || m.IsTokenExpired(token) {
		return nil
	}
	claims, err := m.Claims(token)
	if err != nil {
		return nil
	}
	id := &Identity{ID: claims.ID, Role: claims.Role}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id
}

// StartRefreshLoop begins the periodic silent-refresh check. At most one
// loop runs at a time; starting again replaces the previous loop. The
// loop stops when ctx is cancelled, ClearTokens runs, or StopRefreshLoop
// is called.
func (m *Manager) StartRefreshLoop(ctx context.Context, refresh RefreshFunc) {
	m.mu.Lock()
	if m.cancelRefresh != nil {
		m.cancelRefresh()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancelRefresh = cancel
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(m.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				m.refreshIfExpiring(loopCtx, refresh)
			}
		}
	}()
}

// StopRefreshLoop cancels the running refresh loop, if any.
func (m *Manager) StopRefreshLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancelRefresh != nil {
		m.cancelRefresh()
		m.cancelRefresh = nil
	}
}

// refreshIfExpiring attempts a silent refresh when the stored token's
// remaining lifetime has dropped under the refresh window. On failure the
// stale token stays in place and TokenExpired is broadcast; reacting to
// it is the subscriber's job.
func (m *Manager) refreshIfExpiring(ctx context.Context, refresh RefreshFunc) {
	token := m.Token()
	if token == "" {
		return
	}
	claims, err := m.Claims(token)
	if err != nil || claims.ExpiresAt == nil {
		return
	}

	remaining := claims.ExpiresAt.Time.Sub(m.now())
	if remaining >= m.refreshWindow {
		return
	}

	m.logger.Info("token expiring soon, attempting silent refresh",
		zap.Duration("remaining", remaining))

	newToken, err := refresh(ctx)
	if err != nil || newToken == "" {
		m.logger.Warn("silent token refresh failed", zap.Error(err))
		m.emitter.Emit(events.TokenExpired)
		return
	}
	m.SetToken(newToken)
}
