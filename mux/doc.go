// Package mux serves HTTP requests from a routetree.Tree.
//
// The router resolves the request path against the registered patterns,
// stores the captured variables in the request context, and dispatches
// the handler of the matched pattern. It does not look at the request
// method: one handler serves every method of a path.
//
// # Router
//
// Create a new router and register handlers:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/articles/{category}/{id}", ArticleHandler)
//	r.HandleFunc("/docs/{...page?}", DocsHandler)
//	http.Handle("/", r)
//
// Registration panics on conflicting patterns, such as "/team/{a}" next
// to "/team/{b}", so a misconfigured route table stops the process at
// startup. Handle and HandleFunc return false when the exact pattern is
// already registered; the first handler stays in effect.
//
// # Path Variables
//
// Segments wrapped in braces are variables:
//
//	{name}        exactly one segment
//	{...name}     one or more trailing segments, joined with "/"
//	{...name?}    zero or more trailing segments
//
// Literal segments take priority over a variable at the same position,
// so "/users/settings" wins over "/users/{id}".
//
// Variables are extracted and stored in the request context, accessible
// via the Vars function:
//
//	vars := mux.Vars(r)
//	category := vars["category"]
//
// VarGet returns a single route variable by name and a boolean indicating
// whether it exists:
//
//	id, ok := mux.VarGet(r, "id")
//
// CurrentPattern returns the registered pattern that matched:
//
//	pattern := mux.CurrentPattern(r) // "/articles/{category}/{id}"
//
// # Redirects
//
// Redirect registers a rewrite rule applied to the request path before
// it is resolved. The source is a regular expression matched against the
// whole path; the target may reference capture groups:
//
//	r.Redirect(`/blog/(.*)`, "/articles/$1")
//
// Rules are applied in registration order, each to the output of the
// previous one. The rewrite is internal; no 3xx response is sent.
//
// # Middleware
//
// Use appends middleware applied to every route handler and to the
// not-found handler, where CurrentPattern returns "". Handlers are wrapped
// once, when the router is frozen by the first request or an explicit
// Freeze call; Use panics afterwards:
//
//	r.Use(muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}))
//
// # Concurrency
//
// Register everything before serving. After the router is frozen it is
// read-only and ServeHTTP may run on any number of goroutines.
//
// # Diagnostics
//
// RoutesHandler lists the registered patterns and redirect rules as JSON,
// and Walk visits every registered route:
//
//	r.Handle("/_routes", r.RoutesHandler())
package mux
