package mux

import (
	"context"
	"errors"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store both pattern and vars.
var ctxKey = routeContextKey{}

// routeContext holds the matched route pattern and extracted variables.
type routeContext struct {
	pattern string
	vars    map[string]string
}

// Vars returns the route variables for the current request, if any.
func Vars(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// VarGet returns the value of a single route variable by name and a boolean
// indicating whether the variable exists.
func VarGet(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return "", false
}

// CurrentPattern returns the registered pattern that matched the current
// request, such as "/users/{id}", or "" outside a routed handler.
func CurrentPattern(r *http.Request) string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.pattern
	}
	return ""
}

// SetURLVars sets the URL variables for the given request, returning the
// modified request. This is intended for testing route handlers.
func SetURLVars(r *http.Request, val map[string]string) *http.Request {
	return setRouteContext(r, CurrentPattern(r), val)
}

// setRouteContext stores the matched pattern and vars in the request context.
func setRouteContext(r *http.Request, pattern string, vars map[string]string) *http.Request {
	ctx := context.WithValue(r.Context(), ctxKey, &routeContext{pattern: pattern, vars: vars})
	return r.WithContext(ctx)
}

// RouteMatch stores information about a matched route.
type RouteMatch struct {
	// Pattern is the registered pattern of the matched route.
	Pattern string

	// Path is the request path after redirect rules were applied.
	Path string

	// Handler is the middleware-wrapped handler of the matched route.
	Handler http.Handler

	// Vars contains the extracted path variables from the matched route.
	Vars map[string]string

	// MatchErr is ErrNotFound when no route matched.
	MatchErr error
}

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. It can be used to wrap handlers with additional
// behavior such as logging, request IDs, etc.
type MiddlewareFunc func(http.Handler) http.Handler

// Middleware allows MiddlewareFunc to implement the Middleware interface.
func (mw MiddlewareFunc) Middleware(handler http.Handler) http.Handler {
	return mw(handler)
}

// WalkFunc is the type of the function called for each route visited by
// Walk with the registered pattern and its handler.
type WalkFunc func(pattern string, handler http.Handler) error

// ErrNotFound is returned when no route match is found. Triggers 404 Not Found
// per RFC 7231 Section 6.5.4.
var ErrNotFound = errors.New("no matching route was found")

// SkipRoute is used as a return value from WalkFunc to stop the walk
// without reporting an error.
var SkipRoute = errors.New("skip remaining routes") //nolint:revive,staticcheck // mirrors filepath.SkipAll
