package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeaders sets the CSP and the usual hardening headers. Inline
// <style> and <script> blocks must carry the request nonce.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := GetNonce(r.Context())

		csp := "default-src 'self'; img-src 'self' https://avatars.githubusercontent.com data:; " +
			"frame-ancestors 'none'; base-uri 'self'; form-action 'self'"
		if nonce != "" {
			csp += fmt.Sprintf("; script-src 'self' 'nonce-%s'; style-src 'self' 'nonce-%s'", nonce, nonce)
		}

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
