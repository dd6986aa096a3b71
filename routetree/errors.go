package routetree

import "errors"

var (
	// ErrPathNotRooted is returned when a registered path does not start with "/".
	ErrPathNotRooted = errors.New("path must start with '/'")

	// ErrInvalidSegment is returned when a path segment cannot be parsed,
	// for example because of unbalanced braces or an empty variable name.
	ErrInvalidSegment = errors.New("invalid path segment")

	// ErrDynamicConflict is returned when two dynamic segments with a
	// different name or kind are registered at the same tree position.
	ErrDynamicConflict = errors.New("conflicting dynamic segments")

	// ErrRestNotTerminal is returned when a path continues past a rest segment.
	ErrRestNotTerminal = errors.New("rest segment must terminate the route")

	// ErrEmptyTree is the panic value of IsRegistered when no route was
	// ever registered.
	ErrEmptyTree = errors.New("no routes registered")

	// ErrFrozen is returned when registering into a tree after Freeze.
	ErrFrozen = errors.New("route tree is frozen")

	// ErrInvalidRedirect is returned when a redirect source pattern does not compile.
	ErrInvalidRedirect = errors.New("invalid redirect pattern")
)
