package routetree

import (
	"fmt"
	"strings"
)

// Kind identifies how a node matches request path segments.
type Kind int

const (
	// KindRoot is the kind of the tree root, which consumes the empty
	// segment in front of the leading slash.
	KindRoot Kind = iota
	// KindStatic matches one literal segment.
	KindStatic
	// KindSingle matches exactly one segment of any value: {name}.
	KindSingle
	// KindRest matches one or more remaining segments: {...name}.
	KindRest
	// KindRestOptional matches zero or more remaining segments: {...name?}.
	KindRestOptional
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindStatic:
		return "static"
	case KindSingle:
		return "single"
	case KindRest:
		return "rest"
	case KindRestOptional:
		return "rest-optional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsDynamic reports whether the kind captures a variable.
func (k Kind) IsDynamic() bool {
	return k == KindSingle || k == KindRest || k == KindRestOptional
}

// IsRest reports whether the kind consumes the remainder of the path.
func (k Kind) IsRest() bool {
	return k == KindRest || k == KindRestOptional
}

const restPrefix = "..."

// Segment is one parsed registration token.
type Segment struct {
	// Source is the token as written at registration time.
	Source string
	// Name is the variable name for dynamic segments, or Source for
	// static ones.
	Name string
	// Kind is the matching behavior.
	Kind Kind
}

// String returns the registration token.
func (s Segment) String() string {
	return s.Source
}

// ParseSegment parses a single registration token. Tokens without braces
// are static. A dynamic token must be wrapped in braces as a whole:
// {name}, {...name} or {...name?}.
func ParseSegment(token string) (Segment, error) {
	idxs, err := braceIndices(token)
	if err != nil {
		return Segment{}, err
	}

	if len(idxs) == 0 {
		return Segment{Source: token, Name: token, Kind: KindStatic}, nil
	}

	if len(idxs) != 2 || idxs[0] != 0 || idxs[1] != len(token) {
		return Segment{}, fmt.Errorf("routetree: %w: %q mixes literal text and a variable", ErrInvalidSegment, token)
	}

	inner := token[1 : len(token)-1]
	kind := KindSingle

	if rest, ok := strings.CutPrefix(inner, restPrefix); ok {
		kind = KindRest
		inner = rest
		if name, ok := strings.CutSuffix(inner, "?"); ok {
			kind = KindRestOptional
			inner = name
		}
	}

	if inner == "" {
		return Segment{}, fmt.Errorf("routetree: %w: missing name in %q", ErrInvalidSegment, token)
	}
	if strings.ContainsAny(inner, "{}?") {
		return Segment{}, fmt.Errorf("routetree: %w: bad name %q in %q", ErrInvalidSegment, inner, token)
	}

	return Segment{Source: token, Name: inner, Kind: kind}, nil
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("routetree: %w: unbalanced braces in %q", ErrInvalidSegment, s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("routetree: %w: unbalanced braces in %q", ErrInvalidSegment, s)
	}
	return idxs, nil
}
