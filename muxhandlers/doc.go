// Package muxhandlers provides HTTP middleware for the mux router.
//
// # Request ID Middleware
//
// RequestIDMiddleware tags every request with a UUID v7, including
// requests that matched no route. The ID is set on the request header, the
// response header and the request context. A client supplied ID is reused
// only with TrustIncoming and only when it is short visible ASCII:
//
//	r.Use(muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}))
//
//	id := muxhandlers.RequestIDFromContext(req.Context())
//
// # Access Log Middleware
//
// AccessLogMiddleware writes one slog record per request with the method,
// path, matched route pattern, status, size and duration. Register it
// after RequestIDMiddleware so the record carries the request ID:
//
//	r.Use(
//	    muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}),
//	    muxhandlers.AccessLogMiddleware(muxhandlers.AccessLogConfig{Logger: logger}),
//	)
//
// # Recovery Middleware
//
// RecoveryMiddleware turns a handler panic into 500 Internal Server Error
// and logs it with the stack trace:
//
//	r.Use(muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{Logger: logger}))
package muxhandlers
