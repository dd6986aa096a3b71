package routetree

import (
	"fmt"
	"strings"
)

// acceptance describes how much of the remaining path a node consumes.
type acceptance int

const (
	acceptNone acceptance = iota
	acceptSingle
	acceptAll
)

// Node is one segment of the route tree.
//
// A node owns its children. It keeps any number of static children in
// insertion order and at most one dynamic child.
type Node[T any] struct {
	parent  *Node[T]
	segment Segment

	payload    T
	hasPayload bool

	static      []*Node[T]
	staticIndex map[string]*Node[T]
	dynamic     *Node[T]
}

func newRootNode[T any]() *Node[T] {
	return &Node[T]{segment: Segment{Kind: KindRoot}}
}

// SourceSegment returns the token the node was registered with.
func (n *Node[T]) SourceSegment() string {
	return n.segment.Source
}

// Name returns the variable name for dynamic nodes, or the literal
// segment for static ones.
func (n *Node[T]) Name() string {
	return n.segment.Name
}

// Kind returns the node kind.
func (n *Node[T]) Kind() Kind {
	return n.segment.Kind
}

// Parent returns the parent node, or nil for the root.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

// Payload returns the payload attached to the node and whether one is set.
func (n *Node[T]) Payload() (T, bool) {
	return n.payload, n.hasPayload
}

// HasPayload reports whether a route terminates at this node.
func (n *Node[T]) HasPayload() bool {
	return n.hasPayload
}

// Children returns the static children in insertion order followed by the
// dynamic child, if any. The returned slice is a copy.
func (n *Node[T]) Children() []*Node[T] {
	children := make([]*Node[T], 0, len(n.static)+1)
	children = append(children, n.static...)
	if n.dynamic != nil {
		children = append(children, n.dynamic)
	}
	return children
}

// Path returns the registration pattern leading to this node, such as
// "/users/{id}".
func (n *Node[T]) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.segment.Source)
	}
	if len(parts) == 1 {
		return "/"
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		if i > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// accepts reports whether and how much of segments the node would consume.
// segments is never empty.
func (n *Node[T]) accepts(segments []string) acceptance {
	first := segments[0]

	switch n.segment.Kind {
	case KindRoot:
		if first == "" {
			return acceptSingle
		}
	case KindStatic:
		if first == n.segment.Name {
			return acceptSingle
		}
	case KindSingle:
		return acceptSingle
	case KindRest:
		if first != "" {
			return acceptAll
		}
	case KindRestOptional:
		return acceptAll
	}

	return acceptNone
}

// conflict reports an error when the dynamic segment seg cannot share
// this dynamic node, because its name or kind differs.
func (n *Node[T]) conflict(seg Segment) error {
	if seg.Kind == n.segment.Kind && seg.Name == n.segment.Name {
		return nil
	}
	return fmt.Errorf("routetree: %w: %q and %q under %q",
		ErrDynamicConflict, n.segment.Source, seg.Source, n.parent.Path())
}

// child returns the child addressed by token, creating it if needed.
func (n *Node[T]) child(token string) (*Node[T], error) {
	seg, err := ParseSegment(token)
	if err != nil {
		return nil, err
	}

	if seg.Kind.IsDynamic() {
		if n.dynamic != nil {
			if err := n.dynamic.conflict(seg); err != nil {
				return nil, err
			}
			return n.dynamic, nil
		}
	} else if c, ok := n.staticIndex[seg.Name]; ok {
		return c, nil
	}

	if n.segment.Kind.IsRest() {
		return nil, fmt.Errorf("routetree: %w: cannot add %q after %q",
			ErrRestNotTerminal, token, n.Path())
	}

	c := &Node[T]{parent: n, segment: seg}
	if seg.Kind.IsDynamic() {
		n.dynamic = c
		return c, nil
	}

	if n.staticIndex == nil {
		n.staticIndex = make(map[string]*Node[T])
	}
	n.staticIndex[seg.Name] = c
	n.static = append(n.static, c)

	return c, nil
}

// resolve matches segments against the subtree rooted at n and appends
// the consumed entries to acc. It returns nil when nothing matches.
func (n *Node[T]) resolve(segments []string, acc []ResolvedEntry[T]) []ResolvedEntry[T] {
	var (
		consumed  string
		remaining []string
	)

	switch n.accepts(segments) {
	case acceptNone:
		return nil
	case acceptSingle:
		consumed, remaining = segments[0], segments[1:]
	case acceptAll:
		consumed = strings.Join(segments, "/")
	}

	acc = append(acc, ResolvedEntry[T]{Node: n, Segment: consumed})

	if len(remaining) == 0 {
		if n.hasPayload {
			return acc
		}
		// {...name?} also matches when nothing is left for it to consume.
		if d := n.dynamic; d != nil && d.segment.Kind == KindRestOptional && d.hasPayload {
			return append(acc, ResolvedEntry[T]{Node: d})
		}
		return nil
	}

	// Static children win over the dynamic child. At most one static
	// child can accept a given literal, so the index lookup is equivalent
	// to scanning them in insertion order.
	if c, ok := n.staticIndex[remaining[0]]; ok {
		if res := c.resolve(remaining, acc); res != nil {
			return res
		}
	}

	if n.dynamic != nil {
		return n.dynamic.resolve(remaining, acc)
	}

	return nil
}
