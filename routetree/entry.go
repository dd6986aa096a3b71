package routetree

import "strings"

// ResolvedEntry pairs a matched node with the literal text it consumed
// from the request path.
type ResolvedEntry[T any] struct {
	Node    *Node[T]
	Segment string
}

// Vars returns the captured value of every dynamic node in entries,
// keyed by variable name. It returns nil when nothing was captured.
func Vars[T any](entries []ResolvedEntry[T]) map[string]string {
	var vars map[string]string
	for _, e := range entries {
		if !e.Node.Kind().IsDynamic() {
			continue
		}
		if vars == nil {
			vars = make(map[string]string)
		}
		vars[e.Node.Name()] = e.Segment
	}
	return vars
}

// MatchedPath rebuilds the request path from the consumed segments.
// An optional rest node that consumed nothing is left out, so "/archive"
// matched by "/archive/{...rest?}" yields "/archive".
func MatchedPath[T any](entries []ResolvedEntry[T]) string {
	if len(entries) == 0 {
		return ""
	}

	if last := entries[len(entries)-1]; len(entries) > 1 &&
		last.Node.Kind() == KindRestOptional && last.Segment == "" {
		entries = entries[:len(entries)-1]
	}
	if len(entries) == 1 {
		return "/"
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Segment
	}
	return strings.Join(parts, "/")
}

// RoutePattern returns the registered pattern of the terminal node,
// such as "/users/{id}".
func RoutePattern[T any](entries []ResolvedEntry[T]) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Node.Path()
}

// Payload returns the payload of the terminal node.
func Payload[T any](entries []ResolvedEntry[T]) (T, bool) {
	if len(entries) == 0 {
		var zero T
		return zero, false
	}
	return entries[len(entries)-1].Node.Payload()
}
