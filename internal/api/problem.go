package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Problem is an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusUnauthorized: {
		typeURI: "https://leadforge.dev/errors/unauthorized",
		title:   "Unauthorized",
	},
	http.StatusBadRequest: {
		typeURI: "https://leadforge.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusNotFound: {
		typeURI: "https://leadforge.dev/errors/not-found",
		title:   "Not Found",
	},
	http.StatusConflict: {
		typeURI: "https://leadforge.dev/errors/conflict",
		title:   "Conflict",
	},
	http.StatusBadGateway: {
		typeURI: "https://leadforge.dev/errors/upstream-malformed",
		title:   "Upstream Data Malformed",
	},
	http.StatusServiceUnavailable: {
		typeURI: "https://leadforge.dev/errors/upstream-unavailable",
		title:   "Upstream Unavailable",
	},
	http.StatusInternalServerError: {
		typeURI: "https://leadforge.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
}

// WriteProblem writes an RFC 7807 response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt = struct {
			typeURI string
			title   string
		}{
			typeURI: "https://leadforge.dev/errors/unknown",
			title:   http.StatusText(status),
		}
	}

	p := Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// writeError maps a service error kind onto an HTTP status and writes the
// problem document. Auth errors tell the caller to re-run the consent flow;
// upstream errors tell it to retry later.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsAuthError(err):
		WriteProblem(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteProblem(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		WriteProblem(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrMalformed):
		WriteProblem(w, r, http.StatusBadGateway, err.Error())
	case domain.IsRetryable(err):
		WriteProblem(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "internal error")
	}
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
