package routetree

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// PatternMapper rewrites a path that fully matches a regular expression
// into a replacement template.
//
// The template may reference capture groups as $1 or ${name}, following
// regexp.Regexp.Expand, with one difference: a bare number always ends
// at the last digit, so "$1x" is group 1 followed by "x". Named groups
// must be braced when followed by a letter or digit. "$$" is a literal
// dollar sign. A PatternMapper is immutable and safe for concurrent use.
type PatternMapper struct {
	source   string
	target   string
	template string
	re       *regexp.Regexp
}

// NewPatternMapper compiles source, anchored to the whole input, and
// pairs it with the target template.
func NewPatternMapper(source, target string) (*PatternMapper, error) {
	re, err := compileRegexp("^(?:" + source + ")$")
	if err != nil {
		return nil, fmt.Errorf("routetree: %w %q: %w", ErrInvalidRedirect, source, err)
	}

	return &PatternMapper{
		source:   source,
		target:   target,
		template: braceGroupNumbers(target),
		re:       re,
	}, nil
}

// braceGroupNumbers rewrites every bare $N in target to ${N}.
func braceGroupNumbers(target string) string {
	if !strings.Contains(target, "$") {
		return target
	}

	var b strings.Builder
	for i := 0; i < len(target); i++ {
		c := target[i]
		if c != '$' || i+1 == len(target) {
			b.WriteByte(c)
			continue
		}

		next := target[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(target) && target[j] >= '0' && target[j] <= '9' {
				j++
			}
			b.WriteString("${" + target[i+1:j] + "}")
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Source returns the pattern the mapper was created with.
func (m *PatternMapper) Source() string {
	return m.source
}

// Target returns the replacement template.
func (m *PatternMapper) Target() string {
	return m.target
}

// Map returns the rewritten input and true, or "" and false when the
// pattern does not match the whole input.
func (m *PatternMapper) Map(input string) (string, bool) {
	idx := m.re.FindStringSubmatchIndex(input)
	if idx == nil {
		return "", false
	}
	return string(m.re.ExpandString(nil, m.template, input, idx)), true
}

// regexpCache caches compiled redirect patterns by pattern string.
// It is only written while rules are registered.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given pattern,
// compiling and caching it on first use.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}
