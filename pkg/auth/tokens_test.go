package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/keystore"
)

func mintToken(t *testing.T, id, role string, issued, expires time.Time) string {
	t.Helper()
	claims := TokenClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := keystore.New(t.TempDir(), zap.NewNop())
	return NewManager(store, events.NewEmitter(), zap.NewNop())
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	assert.Empty(t, m.Token())

	m.SetToken("a.b.c")
	assert.Equal(t, "a.b.c", m.Token())

	m.SetRefreshCredential("refresh-1")
	assert.Equal(t, "refresh-1", m.RefreshCredential())

	m.ClearTokens()
	assert.Empty(t, m.Token())
	assert.Empty(t, m.RefreshCredential())
}

func TestIsTokenExpired(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	valid := mintToken(t, "u1", "user", now, now.Add(time.Hour))
	expired := mintToken(t, "u1", "user", now.Add(-2*time.Hour), now.Add(-time.Hour))

	assert.False(t, m.IsTokenExpired(valid))
	assert.True(t, m.IsTokenExpired(expired))
}

func TestMalformedTokensFailClosed(t *testing.T) {
	m := newTestManager(t)

	for _, tok := range []string{"", "garbage", "a.b", "a.!!!.c", "x.y.z.w"} {
		assert.True(t, m.IsTokenExpired(tok), "token %q should read as expired", tok)
	}
}

func TestIsValidToken(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	assert.False(t, m.IsValidToken())

	m.SetToken(mintToken(t, "u1", "admin", now, now.Add(time.Hour)))
	assert.True(t, m.IsValidToken())

	m.SetToken(mintToken(t, "u1", "admin", now.Add(-2*time.Hour), now.Add(-time.Minute)))
	assert.False(t, m.IsValidToken())
}

func TestUserFromToken(t *testing.T) {
	m := newTestManager(t)
	now := time.Now().Truncate(time.Second)
	exp := now.Add(time.Hour)

	m.SetToken(mintToken(t, "user-42", "admin", now, exp))

	id := m.UserFromToken()
	require.NotNil(t, id)
	assert.Equal(t, "user-42", id.ID)
	assert.Equal(t, "admin", id.Role)
	assert.True(t, id.ExpiresAt.Equal(exp))
	assert.True(t, id.IssuedAt.Equal(now))
}

func TestUserFromExpiredTokenIsNil(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	m.SetToken(mintToken(t, "user-42", "admin", now.Add(-2*time.Hour), now.Add(-time.Hour)))
	assert.Nil(t, m.UserFromToken())
}

func TestRefreshReplacesExpiringToken(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	// Expires inside the 10 minute window.
	m.SetToken(mintToken(t, "u1", "user", now, now.Add(5*time.Minute)))
	fresh := mintToken(t, "u1", "user", now, now.Add(time.Hour))

	m.refreshIfExpiring(context.Background(), func(context.Context) (string, error) {
		return fresh, nil
	})

	assert.Equal(t, fresh, m.Token())
}

func TestRefreshFailureEmitsTokenExpired(t *testing.T) {
	store := keystore.New(t.TempDir(), zap.NewNop())
	emitter := events.NewEmitter()
	m := NewManager(store, emitter, zap.NewNop())

	fired := 0
	emitter.Subscribe(events.TokenExpired, func(events.Type) { fired++ })

	now := time.Now()
	stale := mintToken(t, "u1", "user", now, now.Add(2*time.Minute))
	m.SetToken(stale)

	m.refreshIfExpiring(context.Background(), func(context.Context) (string, error) {
		return "", fmt.Errorf("refresh endpoint down")
	})

	assert.Equal(t, 1, fired)
	// The stale token is left in place for the subscriber to react to.
	assert.Equal(t, stale, m.Token())
}

func TestRefreshSkippedWhenTokenFresh(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()
	m.SetToken(mintToken(t, "u1", "user", now, now.Add(time.Hour)))

	called := false
	m.refreshIfExpiring(context.Background(), func(context.Context) (string, error) {
		called = true
		return "", nil
	})
	assert.False(t, called)
}

func TestStartRefreshLoopReplacesPrevious(t *testing.T) {
	m := newTestManager(t)
	m.checkInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.StartRefreshLoop(ctx, func(context.Context) (string, error) { return "", nil })
	m.mu.Lock()
	first := m.cancelRefresh
	m.mu.Unlock()
	m.StartRefreshLoop(ctx, func(context.Context) (string, error) { return "", nil })

	m.mu.Lock()
	second := m.cancelRefresh
	m.mu.Unlock()
	assert.NotNil(t, second)
	// The first loop's cancel must have been invoked; calling it again is a no-op.
	first()

	m.StopRefreshLoop()
	m.mu.Lock()
	assert.Nil(t, m.cancelRefresh)
	m.mu.Unlock()
}
