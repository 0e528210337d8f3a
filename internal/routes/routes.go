package routes

import (
	"net/http"

	"github.com/templui/goalflow/internal/app"
	"github.com/templui/goalflow/internal/handler"
	"github.com/templui/goalflow/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService, app.ExportService)
	report := handler.NewReportHandler(app.ReportService, app.EmailService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimit(app.AuthLimiter)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", auth.Me)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("POST /api/goals/export", middleware.RequireAuth(goal.Archive))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("POST /api/goals/{id}/move", middleware.RequireAuth(goal.Move))

	// Reports
	mux.HandleFunc("GET /api/reports/summary", middleware.RequireAuth(report.Summary))
	mux.HandleFunc("POST /api/reports/summary/email", middleware.RequireAuth(report.EmailSummary))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Not found"}`))
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(app.AuthService),
	)
}
