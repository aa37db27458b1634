package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogspace-client/application/store"
	"blogspace-client/domain/blog"
	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/config"
	"blogspace-client/infrastructure/gateway"
	"blogspace-client/infrastructure/keystore"
	"blogspace-client/pkg/alerts"
	"blogspace-client/pkg/auth"
)

type fixture struct {
	guard  *Guard
	store  *store.Store
	tokens *auth.Manager
}

// newFixture builds a guard over a real store. preSeed, when not empty,
// is written to the keystore before the store hydrates, simulating a
// returning user with a persisted session.
func newFixture(t *testing.T, preSeed string, wait time.Duration) *fixture {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"accessToken": mintToken(t, "u1", "author", time.Hour),
				"user": map[string]interface{}{
					"id": "u1", "name": "Pat", "email": "pat@example.com", "role": "author",
				},
			})
		}
	}))
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	ks := keystore.New(t.TempDir(), logger)
	emitter := events.NewEmitter()
	tokens := auth.NewManager(ks, emitter, logger)
	if preSeed != "" {
		tokens.SetToken(preSeed)
	}

	cfg := &config.Config{BaseURL: server.URL, RequestTimeout: 5 * time.Second}
	gw := gateway.NewClient(cfg, tokens, emitter, logger)
	s := store.New(cfg, gw, tokens, emitter, &alerts.Recorder{}, logger)
	t.Cleanup(s.Close)

	return &fixture{
		guard:  New(s, tokens, wait, logger),
		store:  s,
		tokens: tokens,
	}
}

func mintToken(t *testing.T, id, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func mustRoute(t *testing.T, id string) Route {
	t.Helper()
	route, ok := RouteByID(id)
	require.True(t, ok)
	return route
}

func TestPublicRoutesAlwaysAllowed(t *testing.T) {
	f := newFixture(t, "", 10*time.Millisecond)

	for _, id := range []string{"home", "login", "categories", "authors", "about", "article"} {
		decision := f.guard.Evaluate(context.Background(), mustRoute(t, id))
		assert.True(t, decision.Allowed, "route %s should be public", id)
	}
}

func TestProtectedRouteWithoutSessionRedirectsToLogin(t *testing.T) {
	f := newFixture(t, "", 10*time.Millisecond)

	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "dashboard"))
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/login", decision.RedirectTo)
}

func TestHydratedSessionFromStoredTokenAllowed(t *testing.T) {
	token := mintToken(t, "u1", "author", time.Hour)
	f := newFixture(t, token, time.Second)

	// The store hydrates a minimal user from the stored claims during
	// construction, so the guard sees an authenticated author.
	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "write"))
	assert.True(t, decision.Allowed)
}

func TestLateHydrationResolvesToAllowWithinWindow(t *testing.T) {
	// The token lands on disk after the store was built, so the store is
	// unauthenticated while the token manager reports a valid credential.
	// The evaluation must hold until the concurrent sign-in hydrates the
	// session, then allow.
	f := newFixture(t, "", 2*time.Second)
	f.tokens.SetToken(mintToken(t, "u1", "author", time.Hour))
	require.False(t, f.store.Snapshot().IsAuthenticated)

	go func() {
		time.Sleep(50 * time.Millisecond)
		f.store.Login(context.Background(), "pat@example.com", "secret1")
	}()

	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "dashboard"))
	assert.True(t, decision.Allowed)
	assert.True(t, decision.Validated)
}

func TestLateHydrationTimeoutRedirectsToLogin(t *testing.T) {
	f := newFixture(t, "", 30*time.Millisecond)
	f.tokens.SetToken(mintToken(t, "u1", "author", time.Hour))

	// Nothing signs in; the window lapses.
	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "dashboard"))
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/login", decision.RedirectTo)
}

func TestExpiredStoredTokenRedirectsToLogin(t *testing.T) {
	token := mintToken(t, "u1", "author", -time.Hour)
	f := newFixture(t, token, 10*time.Millisecond)

	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "dashboard"))
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/login", decision.RedirectTo)
}

func TestWrongRoleRedirectsByRole(t *testing.T) {
	f := newFixture(t, "", 10*time.Millisecond)
	require.True(t, f.store.Login(context.Background(), "pat@example.com", "secret1"))

	// An author straying into the admin area lands on their dashboard.
	decision := f.guard.Evaluate(context.Background(), mustRoute(t, "admin"))
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/dashboard", decision.RedirectTo)
}

func TestRoleHomeTargets(t *testing.T) {
	assert.Equal(t, "/admin", RoleHome(blog.RoleAdmin))
	assert.Equal(t, "/dashboard", RoleHome(blog.RoleAuthor))
	assert.Equal(t, "/dashboard", RoleHome(blog.RoleReader))
	assert.Equal(t, "/", RoleHome(blog.Role("unknown")))
}

func TestEvaluatePathUnknownRedirectsHome(t *testing.T) {
	f := newFixture(t, "", 10*time.Millisecond)

	decision := f.guard.EvaluatePath(context.Background(), "/no/such/page")
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/", decision.RedirectTo)
}

func TestRouteByPathBindsParams(t *testing.T) {
	route, params, ok := RouteByPath("/article/go-generics")
	require.True(t, ok)
	assert.Equal(t, "article", route.ID)
	assert.Equal(t, "go-generics", params["slug"])

	_, _, ok = RouteByPath("/article/go-generics/extra")
	assert.False(t, ok)
}

func TestNavigationRoutesFollowRole(t *testing.T) {
	reader := ids(NavigationRoutes(blog.RoleReader))
	assert.Contains(t, reader, "dashboard")
	assert.NotContains(t, reader, "write")
	assert.NotContains(t, reader, "admin")

	admin := ids(NavigationRoutes(blog.RoleAdmin))
	assert.Contains(t, admin, "write")
	assert.Contains(t, admin, "admin")
	assert.NotContains(t, admin, "dashboard")
}

func TestBreadcrumbs(t *testing.T) {
	trail := Breadcrumbs("/article/go-generics")
	require.Len(t, trail, 2)
	assert.Equal(t, "home", trail[0].ID)
	assert.Equal(t, "article", trail[1].ID)

	assert.Len(t, Breadcrumbs("/"), 1)
	assert.Len(t, Breadcrumbs("/completely/unknown"), 1)
}

func ids(routes []Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.ID
	}
	return out
}
