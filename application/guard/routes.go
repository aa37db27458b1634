// Package guard decides whether a navigation may proceed and where to
// send the user when it may not. It only reports decisions; the host
// performs the actual navigation.
package guard

import (
	"strings"

	"blogspace-client/domain/blog"
)

// Route is one navigable destination. An empty Roles list means the
// route is public.
type Route struct {
	ID     string
	Path   string
	Title  string
	Roles  []blog.Role
	InNav  bool
	Parent string
}

// routes is the authoritative navigation table.
var routes = []Route{
	{ID: "home", Path: "/", Title: "Home", InNav: true},
	{ID: "login", Path: "/login", Title: "Log In"},
	{ID: "signup", Path: "/signup", Title: "Sign Up"},
	{ID: "categories", Path: "/categories", Title: "Categories", InNav: true},
	{ID: "authors", Path: "/authors", Title: "Authors", InNav: true},
	{ID: "about", Path: "/about", Title: "About", InNav: true},
	{ID: "article", Path: "/article/:slug", Title: "Article", Parent: "home"},
	{ID: "write", Path: "/write", Title: "Write", Roles: []blog.Role{blog.RoleAuthor, blog.RoleAdmin}, InNav: true},
	{ID: "admin", Path: "/admin", Title: "Admin", Roles: []blog.Role{blog.RoleAdmin}, InNav: true},
	{ID: "dashboard", Path: "/dashboard", Title: "Dashboard", Roles: []blog.Role{blog.RoleAuthor, blog.RoleReader}, InNav: true},
	{ID: "profile", Path: "/profile", Title: "Profile", Roles: []blog.Role{blog.RoleAdmin, blog.RoleAuthor, blog.RoleReader}},
}

// Public reports whether the route needs no session.
func (r Route) Public() bool {
	return len(r.Roles) == 0
}

// Allows reports whether the role may enter the route.
func (r Route) Allows(role blog.Role) bool {
	if r.Public() {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// RouteByID looks a route up by its identifier.
func RouteByID(id string) (Route, bool) {
	for _, r := range routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}

// RouteByPath matches a concrete path against the table, binding any
// pattern parameters. "/article/go-generics" matches "/article/:slug"
// with params {"slug": "go-generics"}.
func RouteByPath(path string) (Route, map[string]string, bool) {
	segments := splitPath(path)
	for _, r := range routes {
		params, ok := matchSegments(splitPath(r.Path), segments)
		if ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// PublicRoutes lists every route that needs no session.
func PublicRoutes() []Route {
	var out []Route
	for _, r := range routes {
		if r.Public() {
			out = append(out, r)
		}
	}
	return out
}

// AccessibleRoutes lists every route the role may enter.
func AccessibleRoutes(role blog.Role) []Route {
	var out []Route
	for _, r := range routes {
		if r.Allows(role) {
			out = append(out, r)
		}
	}
	return out
}

// NavigationRoutes lists the nav-bar entries the role should see.
func NavigationRoutes(role blog.Role) []Route {
	var out []Route
	for _, r := range routes {
		if r.InNav && r.Allows(role) {
			out = append(out, r)
		}
	}
	return out
}

// Breadcrumbs resolves a path into its trail of titled routes, root
// first. Unmatched paths yield only the root.
func Breadcrumbs(path string) []Route {
	home, _ := RouteByID("home")
	trail := []Route{home}

	route, _, ok := RouteByPath(path)
	if !ok || route.ID == "home" {
		return trail
	}
	if route.Parent != "" && route.Parent != "home" {
		if parent, found := RouteByID(route.Parent); found {
			trail = append(trail, parent)
		}
	}
	return append(trail, route)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, actual []string) (map[string]string, bool) {
	if len(pattern) != len(actual) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = actual[i]
			continue
		}
		if p != actual[i] {
			return nil, false
		}
	}
	return params, true
}
