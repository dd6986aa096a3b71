package muxhandlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/vitalvas/kroute/mux"
)

const (
	defaultRequestIDHeader = "X-Request-ID"
	maxRequestIDLength     = 128
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by
// RequestIDMiddleware, or "" when there is none.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDAttr returns the request_id log attribute for ctx.
func requestIDAttr(ctx context.Context) (slog.Attr, bool) {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName is the header carrying the ID in both directions.
	// Defaults to "X-Request-ID".
	HeaderName string

	// TrustIncoming reuses a client supplied ID when it is at most 128
	// visible ASCII characters. Anything else is replaced.
	TrustIncoming bool

	// Generate returns a fresh ID. Defaults to NewRequestID.
	Generate func() string
}

// NewRequestID returns a time-ordered UUID v7, so IDs sort with the
// access log. It falls back to a random UUID v4.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// validRequestID reports whether a client supplied ID is safe to echo
// into headers and log records.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// RequestIDMiddleware returns a middleware that tags each request with an
// ID. The router runs middleware for unmatched paths as well, so 404
// responses carry an ID too. The ID is written to the response header,
// the request header seen by the handler and the request context.
func RequestIDMiddleware(cfg RequestIDConfig) mux.MiddlewareFunc {
	header := cfg.HeaderName
	if header == "" {
		header = defaultRequestIDHeader
	}

	generate := cfg.Generate
	if generate == nil {
		generate = NewRequestID
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if !cfg.TrustIncoming || !validRequestID(id) {
				id = generate()
			}

			r.Header.Set(header, id)
			w.Header().Set(header, id)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}
