package routes

import (
	"net/http"

	"github.com/templui/devlens/internal/app"
	"github.com/templui/devlens/internal/handler"
	"github.com/templui/devlens/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	github := handler.NewGitHubHandler(app.GitHubService)
	lead := handler.NewLeadHandler(app.LeadService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PAGES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /healthz", health.Health)

	// GitHub lookups. Registered for every method: anything but POST redirects home.
	fetchLimiter := middleware.RateLimit(middleware.NewRateLimiter(app.Cfg.FetchRateLimit, app.Cfg.FetchRateWindow))
	mux.HandleFunc("/fetch-user/{$}", fetchLimiter(github.FetchUser))
	mux.HandleFunc("/fetch-from-db/{$}", github.FetchFromDB)

	// ============================================================================
	// API (JSON, CSRF exempt)
	// ============================================================================

	mux.HandleFunc("POST /api/school-demo", lead.SchoolDemo)
	mux.HandleFunc("POST /api/book-demo", lead.BookDemo)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		// Before anything reads the client IP
		middleware.RealIP(app.Cfg.TrustProxy),
		middleware.RequestLogging,  // Before RecoverJSON so recovered panics are logged with their 500
		middleware.RecoverJSON,
		middleware.Config(app.Cfg), // Before CSRFProtection, which reads APP_ENV for the cookie
		middleware.NonceMiddleware, // Before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)

	return handler
}
