package muxhandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/kroute/mux"
)

// AccessLogConfig configures the AccessLog middleware behaviour.
type AccessLogConfig struct {
	// Logger receives one record per request. Required.
	Logger *slog.Logger

	// Level is the level of the access records. Defaults to slog.LevelInfo.
	Level slog.Level
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// AccessLogMiddleware returns a middleware that writes a structured record
// for every request, including the matched route pattern. Unmatched
// requests are logged with an empty route.
func AccessLogMiddleware(cfg AccessLogConfig) mux.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", mux.CurrentPattern(r)),
				slog.Int("status", status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			}
			if attr, ok := requestIDAttr(r.Context()); ok {
				attrs = append(attrs, attr)
			}

			logger.LogAttrs(r.Context(), cfg.Level, "request", attrs...)
		})
	}
}
