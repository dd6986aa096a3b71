// Package routetree implements a hierarchical route resolution engine.
//
// A Tree stores URL path patterns segment by segment and resolves request
// paths against them. Resolution returns the chain of matched nodes
// together with the literal text each one consumed, or nil when nothing
// matches.
//
// # Patterns
//
// Patterns start with "/" and are split on "/". Each segment is either a
// literal or a variable:
//
//	/users/settings          static segments
//	/users/{id}              {name} matches exactly one segment
//	/games/{...details}      {...name} matches one or more segments
//	/archive/{...details?}   {...name?} matches zero or more segments
//
// Rest segments capture the remaining path joined with "/" and must be the
// last segment of a pattern. Only one variable may live at a given tree
// position: registering "/team/{a}" and "/team/{b}" is an error.
//
// When both a literal and a variable could match, the literal wins:
//
//	t := routetree.New[string]()
//	t.MustRegister("/users/{id}", "profile")
//	t.MustRegister("/users/settings", "settings")
//
//	entries := t.Resolve("/users/42")
//	page, _ := routetree.Payload(entries)   // "profile"
//	vars := routetree.Vars(entries)         // {"id": "42"}
//
// A path must end exactly at a registered node; a prefix of a registered
// path does not match.
//
// # Redirects
//
// Redirect rules rewrite the request path before resolution. A rule is a
// regular expression anchored to the whole path and a replacement that may
// reference capture groups:
//
//	t.MustRegisterRedirect(`/old/(.*)`, "/new/$1")
//
// Group references follow regexp.Regexp.Expand, except that a bare number
// ends at its last digit: "/new/$1x" inserts group 1 followed by "x".
// Named groups are written ${name}.
//
// Every rule is applied in registration order to the output of the
// previous one. ResolveWithoutRedirects skips the rules.
//
// # Concurrency
//
// Register routes from a single goroutine during startup, then call Freeze
// and share the tree. Resolve performs no writes and is safe for
// concurrent use.
package routetree
