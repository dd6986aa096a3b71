package routetree

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Tree registers path patterns and resolves request paths against them.
//
// Registration is not safe for concurrent use and is expected to happen
// once during startup. Resolution never mutates the tree, so after
// registration has finished (see Freeze) any number of goroutines may
// resolve paths concurrently without locking.
type Tree[T any] struct {
	root      *Node[T]
	redirects []*PatternMapper
	routes    int
	frozen    bool
	logger    *slog.Logger
}

// Option configures a Tree.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report registrations and duplicate
// routes. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an empty route tree.
func New[T any](opts ...Option) *Tree[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &Tree[T]{
		root:   newRootNode[T](),
		logger: o.logger,
	}
}

// Register adds path with the given payload.
//
// It returns false without an error when path was already registered; the
// first payload stays in effect. An error is returned for a path that does
// not start with "/", an unparsable segment, a dynamic segment that
// conflicts with a sibling, or a segment following a rest segment.
func (t *Tree[T]) Register(path string, payload T) (bool, error) {
	if t.frozen {
		return false, fmt.Errorf("routetree: %w: register %q", ErrFrozen, path)
	}
	if !strings.HasPrefix(path, "/") {
		return false, fmt.Errorf("routetree: %w: %q", ErrPathNotRooted, path)
	}

	node := t.root
	for _, token := range strings.Split(path, "/")[1:] {
		child, err := node.child(token)
		if err != nil {
			return false, err
		}
		node = child
	}

	if node.hasPayload {
		t.logger.Warn("duplicate route ignored", slog.String("path", path))
		return false, nil
	}

	node.payload = payload
	node.hasPayload = true
	t.routes++

	t.logger.Debug("route registered", slog.String("path", path))

	return true, nil
}

// MustRegister is like Register but panics on a registration error.
// Duplicates are still reported through the return value.
func (t *Tree[T]) MustRegister(path string, payload T) bool {
	ok, err := t.Register(path, payload)
	if err != nil {
		panic(err)
	}
	return ok
}

// RegisterRedirect appends a redirect rule. Rules are applied in
// registration order before resolution. The target is not checked
// against the registered routes.
func (t *Tree[T]) RegisterRedirect(source, target string) error {
	if t.frozen {
		return fmt.Errorf("routetree: %w: redirect %q", ErrFrozen, source)
	}

	m, err := NewPatternMapper(source, target)
	if err != nil {
		return err
	}
	t.redirects = append(t.redirects, m)

	t.logger.Debug("redirect registered",
		slog.String("from", source),
		slog.String("to", target),
	)

	return nil
}

// MustRegisterRedirect is like RegisterRedirect but panics on error.
func (t *Tree[T]) MustRegisterRedirect(source, target string) {
	if err := t.RegisterRedirect(source, target); err != nil {
		panic(err)
	}
}

// Redirects returns the registered redirect rules in order.
func (t *Tree[T]) Redirects() []*PatternMapper {
	return append([]*PatternMapper(nil), t.redirects...)
}

// Freeze stops further registration. A frozen tree can be handed to
// request-serving goroutines.
func (t *Tree[T]) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze was called.
func (t *Tree[T]) Frozen() bool {
	return t.frozen
}

// Len returns the number of registered routes.
func (t *Tree[T]) Len() int {
	return t.routes
}

// Redirect folds every redirect rule over path in registration order.
// Each rule sees the output of the previous one; a rule that does not
// match leaves the path unchanged.
func (t *Tree[T]) Redirect(path string) string {
	for _, m := range t.redirects {
		if out, ok := m.Map(path); ok {
			path = out
		}
	}
	return path
}

// Resolve applies the redirect rules to path and resolves the result.
// It returns nil when no route matches.
func (t *Tree[T]) Resolve(path string) []ResolvedEntry[T] {
	return t.ResolveOptions(path, true)
}

// ResolveWithoutRedirects resolves path as is.
func (t *Tree[T]) ResolveWithoutRedirects(path string) []ResolvedEntry[T] {
	return t.ResolveOptions(path, false)
}

// ResolveOptions resolves path, applying the redirect rules first when
// allowRedirects is set. It returns nil when no route matches.
func (t *Tree[T]) ResolveOptions(path string, allowRedirects bool) []ResolvedEntry[T] {
	if allowRedirects {
		path = t.Redirect(path)
	}

	segments := strings.Split(path, "/")
	return t.root.resolve(segments, make([]ResolvedEntry[T], 0, len(segments)))
}

// IsRegistered reports whether path resolves, redirects included.
// It panics with ErrEmptyTree when no route was ever registered.
func (t *Tree[T]) IsRegistered(path string) bool {
	if t.routes == 0 {
		panic(fmt.Errorf("routetree: %w: IsRegistered(%q)", ErrEmptyTree, path))
	}
	return t.Resolve(path) != nil
}

// Nodes returns a breadth-first sequence over every node of the tree.
// Each element is the chain of nodes from the root to the visited node.
// The sequence can be iterated any number of times; each yielded slice
// is owned by the caller.
func (t *Tree[T]) Nodes() iter.Seq[[]*Node[T]] {
	return func(yield func([]*Node[T]) bool) {
		queue := [][]*Node[T]{{t.root}}
		for len(queue) > 0 {
			chain := queue[0]
			queue = queue[1:]

			if !yield(chain) {
				return
			}

			for _, c := range chain[len(chain)-1].Children() {
				next := make([]*Node[T], len(chain)+1)
				copy(next, chain)
				next[len(chain)] = c
				queue = append(queue, next)
			}
		}
	}
}

// Route describes a registered route.
type Route struct {
	// Pattern is the registration pattern, such as "/users/{id}".
	Pattern string `json:"pattern"`
	// Vars lists the dynamic variable names in path order.
	Vars []string `json:"vars,omitempty"`
}

// Routes lists every registered route in breadth-first order.
func (t *Tree[T]) Routes() []Route {
	routes := make([]Route, 0, t.routes)
	for chain := range t.Nodes() {
		last := chain[len(chain)-1]
		if !last.hasPayload {
			continue
		}

		var vars []string
		for _, n := range chain {
			if n.Kind().IsDynamic() {
				vars = append(vars, n.Name())
			}
		}

		routes = append(routes, Route{Pattern: last.Path(), Vars: vars})
	}
	return routes
}
