package mux

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vitalvas/kroute/routetree"
)

// Router resolves request paths against a route tree and dispatches the
// handler registered for the matched pattern.
//
// It implements the http.Handler interface, so it can be registered to serve
// requests:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/users/{id}", handler)
//	http.ListenAndServe(":8080", r)
//
// Routes, redirects, middleware and NotFoundHandler must be set before
// the first request is served. The first call to ServeHTTP freezes the
// router.
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	NotFoundHandler http.Handler

	tree        *routetree.Tree[http.Handler]
	middlewares []MiddlewareFunc
	logger      *slog.Logger

	// handlers holds the middleware-wrapped handler per terminal node.
	// It is built once when the router is frozen and only read afterwards.
	handlers   map[*routetree.Node[http.Handler]]http.Handler
	notFound   http.Handler
	freezeOnce sync.Once

	skipClean bool
}

// NewRouter returns a new router instance.
func NewRouter() *Router {
	return NewRouterWithLogger(nil)
}

// NewRouterWithLogger returns a new router that reports registrations
// and unmatched requests through logger. A nil logger discards records.
func NewRouterWithLogger(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Router{
		tree:   routetree.New[http.Handler](routetree.WithLogger(logger)),
		logger: logger,
	}
}

// ServeHTTP dispatches the handler registered for the matched route.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Freeze()

	// Normalize the request path per RFC 3986 Section 5.2.4
	// (removing dot segments) unless SkipClean is enabled.
	if !r.skipClean {
		if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
			u := *req.URL
			u.Path = cleaned
			u.RawPath = ""
			req = req.Clone(req.Context())
			req.URL = &u
		}
	}

	var match RouteMatch
	if !r.Match(req.URL.Path, &match) {
		r.logger.Debug("no route matched", slog.String("path", req.URL.Path))
		r.notFound.ServeHTTP(w, req)
		return
	}

	req = setRouteContext(req, match.Pattern, match.Vars)
	match.Handler.ServeHTTP(w, req)
}

// Match resolves path, redirect rules included, and fills match on
// success. It never modifies the router.
func (r *Router) Match(path string, match *RouteMatch) bool {
	entries := r.tree.Resolve(path)
	if entries == nil {
		match.MatchErr = ErrNotFound
		return false
	}

	terminal := entries[len(entries)-1].Node
	handler, ok := r.handlers[terminal]
	if !ok {
		handler, _ = terminal.Payload()
	}

	match.Pattern = terminal.Path()
	match.Path = routetree.MatchedPath(entries)
	match.Vars = routetree.Vars(entries)
	match.Handler = handler
	match.MatchErr = nil

	return true
}

// Freeze stops further registration and wraps every route handler, and
// the not-found handler, with the registered middleware. It is called by
// the first ServeHTTP and may be called earlier to publish the router
// explicitly.
func (r *Router) Freeze() {
	r.freezeOnce.Do(func() {
		r.tree.Freeze()

		handlers := make(map[*routetree.Node[http.Handler]]http.Handler, r.tree.Len())
		for chain := range r.tree.Nodes() {
			node := chain[len(chain)-1]
			if h, ok := node.Payload(); ok {
				handlers[node] = r.applyMiddleware(h)
			}
		}
		r.handlers = handlers

		notFound := r.NotFoundHandler
		if notFound == nil {
			notFound = defaultNotFoundHandler
		}
		r.notFound = r.applyMiddleware(notFound)

		r.logger.Info("router frozen",
			slog.Int("routes", r.tree.Len()),
			slog.Int("redirects", len(r.tree.Redirects())),
		)
	})
}

// SkipClean defines the path cleaning behavior.
// When true, the path will not be cleaned (path.Clean will not be called).
func (r *Router) SkipClean(value bool) *Router {
	r.skipClean = value
	return r
}

// Handle registers handler for the path pattern. It panics when the
// pattern is invalid or conflicts with an existing route, and returns
// false when the pattern was already registered.
func (r *Router) Handle(pattern string, handler http.Handler) bool {
	if handler == nil {
		panic(fmt.Sprintf("mux: nil handler for %q", pattern))
	}
	ok, err := r.tree.Register(pattern, handler)
	if err != nil {
		panic(fmt.Sprintf("mux: %v", err))
	}
	return ok
}

// HandleFunc registers a handler function for the path pattern.
func (r *Router) HandleFunc(pattern string, f func(http.ResponseWriter, *http.Request)) bool {
	return r.Handle(pattern, http.HandlerFunc(f))
}

// Redirect registers a rewrite rule applied to every request path before
// it is resolved. It panics when the source pattern does not compile.
func (r *Router) Redirect(source, target string) {
	if err := r.tree.RegisterRedirect(source, target); err != nil {
		panic(fmt.Sprintf("mux: %v", err))
	}
}

// Tree returns the underlying route tree.
func (r *Router) Tree() *routetree.Tree[http.Handler] {
	return r.tree
}

// Routes lists the registered routes.
func (r *Router) Routes() []routetree.Route {
	return r.tree.Routes()
}

// Walk calls walkFn for every registered route in breadth-first order.
// Returning SkipRoute from walkFn stops the walk without an error.
func (r *Router) Walk(walkFn WalkFunc) error {
	for chain := range r.tree.Nodes() {
		node := chain[len(chain)-1]
		h, ok := node.Payload()
		if !ok {
			continue
		}

		err := walkFn(node.Path(), h)
		if err == SkipRoute {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// applyMiddleware wraps the handler with all registered middleware.
func (r *Router) applyMiddleware(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i].Middleware(handler)
	}
	return handler
}

// Use appends a MiddlewareFunc to the chain. Middleware wraps every route
// handler and the not-found handler. It panics once the router is frozen.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	if r.tree.Frozen() {
		panic("mux: Use called on a frozen router")
	}
	r.middlewares = append(r.middlewares, mwf...)
}

var defaultNotFoundHandler = http.NotFoundHandler()
