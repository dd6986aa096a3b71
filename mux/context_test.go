package mux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	t.Run("returns nil for request without vars", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Nil(t, Vars(r))
	})

	t.Run("returns vars from request context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		vars := map[string]string{"id": "42", "name": "test"}
		r = setRouteContext(r, "/users/{id}/{name}", vars)
		result := Vars(r)
		require.NotNil(t, result)
		assert.Equal(t, "42", result["id"])
		assert.Equal(t, "test", result["name"])
	})
}

func TestVarGet(t *testing.T) {
	t.Run("existing var", func(t *testing.T) {
		r := setRouteContext(httptest.NewRequest(http.MethodGet, "/", nil), "", map[string]string{"id": "7"})
		v, ok := VarGet(r, "id")
		assert.True(t, ok)
		assert.Equal(t, "7", v)
	})

	t.Run("missing var", func(t *testing.T) {
		r := setRouteContext(httptest.NewRequest(http.MethodGet, "/", nil), "", map[string]string{"id": "7"})
		_, ok := VarGet(r, "name")
		assert.False(t, ok)
	})

	t.Run("no route context", func(t *testing.T) {
		_, ok := VarGet(httptest.NewRequest(http.MethodGet, "/", nil), "id")
		assert.False(t, ok)
	})
}

func TestCurrentPattern(t *testing.T) {
	t.Run("empty without route", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, CurrentPattern(r))
	})

	t.Run("returns pattern from request context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = setRouteContext(r, "/users/{id}", nil)
		assert.Equal(t, "/users/{id}", CurrentPattern(r))
	})
}

func TestSetURLVars(t *testing.T) {
	t.Run("sets vars on request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = SetURLVars(r, map[string]string{"key": "value"})
		result := Vars(r)
		require.NotNil(t, result)
		assert.Equal(t, "value", result["key"])
	})

	t.Run("overwrites existing vars", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = SetURLVars(r, map[string]string{"a": "1"})
		r = SetURLVars(r, map[string]string{"b": "2"})
		result := Vars(r)
		require.NotNil(t, result)
		assert.Empty(t, result["a"])
		assert.Equal(t, "2", result["b"])
	})

	t.Run("preserves existing pattern", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = setRouteContext(r, "/a/{b}", map[string]string{"b": "1"})
		r = SetURLVars(r, map[string]string{"b": "2"})
		assert.Equal(t, "/a/{b}", CurrentPattern(r))
		assert.Equal(t, "2", Vars(r)["b"])
	})
}

func TestMiddlewareFunc(t *testing.T) {
	t.Run("wraps handler", func(t *testing.T) {
		called := false
		mw := MiddlewareFunc(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				next.ServeHTTP(w, r)
			})
		})
		inner := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
		handler := mw.Middleware(inner)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(w, r)
		assert.True(t, called)
	})
}

func TestErrors(t *testing.T) {
	t.Run("ErrNotFound has correct message", func(t *testing.T) {
		assert.Equal(t, "no matching route was found", ErrNotFound.Error())
	})

	t.Run("SkipRoute has correct message", func(t *testing.T) {
		assert.Equal(t, "skip remaining routes", SkipRoute.Error())
	})
}

// --- Benchmarks ---

func BenchmarkVars(b *testing.B) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	vars := map[string]string{"id": "42", "name": "test", "action": "view"}
	r = setRouteContext(r, "/{action}/{id}/{name}", vars)
	b.ResetTimer()
	for b.Loop() {
		Vars(r)
	}
}

func BenchmarkSetURLVars(b *testing.B) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	vars := map[string]string{"id": "42", "name": "test"}
	b.ResetTimer()
	for b.Loop() {
		SetURLVars(r, vars)
	}
}
