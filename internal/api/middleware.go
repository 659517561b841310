package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/leadforge-labs/leadforge/internal/auth"
)

// RequireCredential decodes the carried credential, refreshes it when it is
// expired or about to expire, and attaches the fresh credential to the
// request context. Refreshed tokens are echoed back in response headers so
// the caller can carry them on its next request; the server keeps nothing.
//
// A request missing any of the three credential parts is rejected before any
// upstream call is attempted.
func RequireCredential(mgr *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, err := auth.FromHeader(r.Header)
			if err != nil {
				writeError(w, r, err)
				return
			}

			fresh, refreshed, err := mgr.EnsureFresh(r.Context(), cred)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if refreshed {
				auth.SetHeader(w.Header(), fresh)
				tokenRefreshes.Inc()
			}

			next.ServeHTTP(w, r.WithContext(withCredential(r.Context(), fresh)))
		})
	}
}

// RequestLogger logs method, path, status and duration for every request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
