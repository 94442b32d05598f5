package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

// RecoverJSON turns a panic into a 500. Requests under /api/ get the JSON
// error body their clients expect, everything else a plain text error.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"error", rec,
				"path", r.URL.Path,
				"method", r.Method,
				"stack", string(debug.Stack()),
			)

			if !strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "Internal server error",
			})
		}()

		next.ServeHTTP(w, r)
	})
}
