package middleware

import "net/http"

// Chain applies middleware in the order provided: the first one sees the
// request first.
//
// Example:
//
//	handler := Chain(mux,
//	    RequestLogging, // Executes first
//	    NonceMiddleware,
//	    SecurityHeaders,
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
