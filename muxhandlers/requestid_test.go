package muxhandlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/kroute/mux"
)

var uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// seenID is the ID observed by a routed handler.
type seenID struct {
	header string
	ctx    string
}

func requestIDRouter(cfg RequestIDConfig, seen *seenID) *mux.Router {
	header := cfg.HeaderName
	if header == "" {
		header = defaultRequestIDHeader
	}

	r := mux.NewRouter()
	r.HandleFunc("/pages/{slug}", func(_ http.ResponseWriter, req *http.Request) {
		seen.header = req.Header.Get(header)
		seen.ctx = RequestIDFromContext(req.Context())
	})
	r.Use(RequestIDMiddleware(cfg))
	return r
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("routed request", func(t *testing.T) {
		var seen seenID
		r := requestIDRouter(RequestIDConfig{}, &seen)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/home", nil))

		id := w.Header().Get("X-Request-ID")
		assert.Regexp(t, uuidV7Regex, id)
		assert.Equal(t, id, seen.header)
		assert.Equal(t, id, seen.ctx)
	})

	t.Run("unrouted request", func(t *testing.T) {
		var seen seenID
		r := requestIDRouter(RequestIDConfig{}, &seen)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing/page", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Regexp(t, uuidV7Regex, w.Header().Get("X-Request-ID"))
		assert.Empty(t, seen.ctx)
	})

	t.Run("fresh id per request", func(t *testing.T) {
		var seen seenID
		r := requestIDRouter(RequestIDConfig{}, &seen)

		ids := make(map[string]struct{})
		for range 50 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/home", nil))
			ids[w.Header().Get("X-Request-ID")] = struct{}{}
		}
		assert.Len(t, ids, 50)
	})
}

func TestRequestIDMiddlewareIncoming(t *testing.T) {
	generate := func() string { return "generated" }

	tests := []struct {
		name     string
		trust    bool
		path     string
		incoming string
		expected string
	}{
		{name: "ignored by default", path: "/pages/home", incoming: "client-1", expected: "generated"},
		{name: "reused on routed request", trust: true, path: "/pages/home", incoming: "client-1", expected: "client-1"},
		{name: "reused on unrouted request", trust: true, path: "/nowhere", incoming: "client-1", expected: "client-1"},
		{name: "missing", trust: true, path: "/pages/home", expected: "generated"},
		{name: "contains space", trust: true, path: "/pages/home", incoming: "a b", expected: "generated"},
		{name: "too long", trust: true, path: "/pages/home", incoming: strings.Repeat("x", maxRequestIDLength+1), expected: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen seenID
			r := requestIDRouter(RequestIDConfig{TrustIncoming: tt.trust, Generate: generate}, &seen)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRequestIDMiddlewareHeaderName(t *testing.T) {
	var seen seenID
	r := requestIDRouter(RequestIDConfig{
		HeaderName:    "X-Trace-ID",
		TrustIncoming: true,
	}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/pages/about", nil)
	req.Header.Set("X-Trace-ID", "trace-7")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-7", w.Header().Get("X-Trace-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "trace-7", seen.header)
	assert.Equal(t, "trace-7", seen.ctx)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), requestIDKey{}, "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))

	attr, ok := requestIDAttr(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	_, ok = requestIDAttr(context.Background())
	assert.False(t, ok)
}

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{id: "", valid: false},
		{id: "abc-123", valid: true},
		{id: "0195f0b4-7c1e-7b3a-9d2e-4f5a6b7c8d9e", valid: true},
		{id: strings.Repeat("a", maxRequestIDLength), valid: true},
		{id: strings.Repeat("a", maxRequestIDLength+1), valid: false},
		{id: "tab\tinside", valid: false},
		{id: "line\nbreak", valid: false},
		{id: "naïve", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.valid, validRequestID(tt.id))
		})
	}
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Regexp(t, uuidV7Regex, a)
	assert.NotEqual(t, a, b)
}

func BenchmarkRequestIDMiddleware(b *testing.B) {
	r := mux.NewRouter()
	r.HandleFunc("/pages/{slug}", func(_ http.ResponseWriter, _ *http.Request) {})
	r.Use(RequestIDMiddleware(RequestIDConfig{}))

	req := httptest.NewRequest(http.MethodGet, "/pages/home", nil)

	for b.Loop() {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}
