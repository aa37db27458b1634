package guard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"blogspace-client/application/store"
	"blogspace-client/domain/blog"
	"blogspace-client/pkg/auth"
)

// Decision is the guard's verdict on a navigation. Exactly one of
// Allowed or RedirectTo is meaningful.
type Decision struct {
	Allowed    bool
	RedirectTo string
	// Validated is set when the decision waited for session hydration
	// before resolving.
	Validated bool
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// Guard evaluates navigations against the route table and the live
// session state.
type Guard struct {
	store  *store.Store
	tokens *auth.Manager
	logger *zap.Logger

	// validationWait bounds how long a navigation may hang while a
	// stored token is being turned into a session.
	validationWait time.Duration
}

// New builds a guard. wait bounds the hydration window; zero means one
// second.
func New(s *store.Store, tokens *auth.Manager, wait time.Duration, logger *zap.Logger) *Guard {
	if wait <= 0 {
		wait = time.Second
	}
	return &Guard{store: s, tokens: tokens, logger: logger, validationWait: wait}
}

// EvaluatePath resolves a concrete path and evaluates it. Unknown
// paths redirect home.
func (g *Guard) EvaluatePath(ctx context.Context, path string) Decision {
	route, _, ok := RouteByPath(path)
	if !ok {
		return redirect("/")
	}
	return g.Evaluate(ctx, route)
}

// Evaluate decides whether the current session may enter the route.
func (g *Guard) Evaluate(ctx context.Context, route Route) Decision {
	if route.Public() {
		return allow()
	}

	state := g.store.Snapshot()
	if !state.IsAuthenticated {
		if !g.tokens.IsValidToken() {
			return redirect("/login")
		}
		// A valid token exists but the session has not hydrated yet.
		// Wait a bounded moment for the store to catch up, then decide
		// with whatever state arrived.
		state = g.awaitHydration(ctx)
		if !state.IsAuthenticated {
			g.logger.Debug("session did not hydrate in time",
				zap.String("route", route.ID),
				zap.Duration("wait", g.validationWait))
			return redirect("/login")
		}
		d := g.decide(route, state)
		d.Validated = true
		return d
	}
	return g.decide(route, state)
}

// decide applies the role rules to an authenticated session.
func (g *Guard) decide(route Route, state store.State) Decision {
	if state.User == nil {
		return redirect("/login")
	}
	if route.Allows(state.User.Role) {
		return allow()
	}
	return redirect(RoleHome(state.User.Role))
}

// RoleHome is where a role lands when it strays somewhere it cannot
// enter.
func RoleHome(role blog.Role) string {
	switch role {
	case blog.RoleAdmin:
		return "/admin"
	case blog.RoleAuthor, blog.RoleReader:
		return "/dashboard"
	default:
		return "/"
	}
}

// awaitHydration blocks until the store reports an authenticated
// session, the wait window lapses, or ctx is done. Returns the last
// state observed.
func (g *Guard) awaitHydration(ctx context.Context) store.State {
	updates := make(chan store.State, 1)
	unsubscribe := g.store.Subscribe(func(st store.State) {
		select {
		case updates <- st:
		default:
		}
	})
	defer unsubscribe()

	timer := time.NewTimer(g.validationWait)
	defer timer.Stop()

	last := g.store.Snapshot()
	for {
		select {
		case st := <-updates:
			last = st
			if st.IsAuthenticated {
				return st
			}
		case <-timer.C:
			return g.store.Snapshot()
		case <-ctx.Done():
			return last
		}
	}
}
