package muxhandlers

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vitalvas/kroute/mux"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives an error record with the route pattern, request ID
	// and stack trace when a handler panics. When nil, nothing is logged.
	Logger *slog.Logger

	// LogFunc is an optional callback invoked with the request and the
	// recovered value, after Logger.
	LogFunc func(r *http.Request, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// routed handlers and answers 500 Internal Server Error.
func RecoveryMiddleware(cfg RecoveryConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}

				if cfg.Logger != nil {
					attrs := []slog.Attr{
						slog.Any("panic", err),
						slog.String("route", mux.CurrentPattern(r)),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					}
					if attr, ok := requestIDAttr(r.Context()); ok {
						attrs = append(attrs, attr)
					}
					cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "handler panic", attrs...)
				}
				if cfg.LogFunc != nil {
					cfg.LogFunc(r, err)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
