package routetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryHelpersEmpty(t *testing.T) {
	assert.Nil(t, Vars[string](nil))
	assert.Equal(t, "", MatchedPath[string](nil))
	assert.Equal(t, "", RoutePattern[string](nil))

	page, ok := Payload[string](nil)
	assert.False(t, ok)
	assert.Equal(t, "", page)
}

func TestEntryHelpers(t *testing.T) {
	tree := New[int]()
	tree.MustRegister("/shop/{category}/items/{...item}", 7)

	entries := tree.Resolve("/shop/books/items/go/2nd-edition")
	require.NotNil(t, entries)

	assert.Equal(t, map[string]string{"category": "books", "item": "go/2nd-edition"}, Vars(entries))
	assert.Equal(t, "/shop/books/items/go/2nd-edition", MatchedPath(entries))
	assert.Equal(t, "/shop/{category}/items/{...item}", RoutePattern(entries))

	payload, ok := Payload(entries)
	assert.True(t, ok)
	assert.Equal(t, 7, payload)

	segments := make([]string, 0, len(entries))
	for _, e := range entries {
		segments = append(segments, e.Segment)
	}
	assert.Equal(t, []string{"", "shop", "books", "items", "go/2nd-edition"}, segments)
}
