package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/auth"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/lumiforge/tierhub-backend/internal/rbac"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/swaggo/swag"

	_ "github.com/lumiforge/tierhub-backend/docs"
)

// SetupRouter creates and configures HTTP router
func SetupRouter(server *Server, authService *auth.Service, rbacManager *rbac.RBAC, cfg *config.Config, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	base := []func(http.Handler) http.Handler{RequestIDMiddleware, LoggingMiddleware(log)}
	authMW := AuthMiddleware(authService)

	public := func(pattern string, h http.HandlerFunc, extra ...func(http.Handler) http.Handler) {
		mw := append([]func(http.Handler) http.Handler{MetricsMiddleware(pattern)}, base...)
		mw = append(mw, ContentTypeMiddleware)
		mux.Handle(pattern, chainMiddleware(h, append(mw, extra...)...))
	}
	protected := func(pattern string, h http.HandlerFunc, extra ...func(http.Handler) http.Handler) {
		public(pattern, h, append([]func(http.Handler) http.Handler{authMW}, extra...)...)
	}
	admin := func(pattern string, h http.HandlerFunc, permission rbac.Permission) {
		protected(pattern, h, RequirePermission(rbacManager, permission))
	}

	// System endpoints (no auth required)
	mux.Handle("GET /health", chainMiddleware(server.Health, MetricsMiddleware("GET /health")))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, "OpenAPI documentation not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(doc))
	})

	// Auth routes
	public("POST /api/v1/auth/register", server.Register)
	public("POST /api/v1/auth/login", server.Login)
	public("POST /api/v1/auth/refresh", server.RefreshToken)
	public("POST /api/v1/auth/verify-email", server.VerifyEmail)
	protected("POST /api/v1/auth/logout", server.Logout)
	protected("GET /api/v1/auth/profile", server.GetProfile)
	protected("PUT /api/v1/auth/profile", server.UpdateProfile, RequirePermission(rbacManager, rbac.PermissionProfileEdit))

	// Pricing routes
	public("GET /api/v1/plans", server.ListPlans)
	public("GET /api/v1/plans/{id}", server.GetPlan)
	protected("POST /api/v1/checkout/cart", server.BuildCart)

	// Subscription routes
	protected("GET /api/v1/subscription", server.GetSubscription)
	protected("POST /api/v1/subscription", server.ActivateSubscription)

	// Content routes
	protected("GET /api/v1/content", server.ListContent, RequirePermission(rbacManager, rbac.PermissionContentView))
	protected("GET /api/v1/content/{id}", server.GetContent, RequirePermission(rbacManager, rbac.PermissionContentView))
	public("GET /api/v1/legal", server.ListLegal)
	public("GET /api/v1/legal/{slug}", server.GetLegal)

	// Document routes
	protected("POST /api/v1/documents/upload", server.InitiateDocumentUpload, RequirePermission(rbacManager, rbac.PermissionDocumentUpload))
	protected("POST /api/v1/documents/complete", server.CompleteDocumentUpload, RequirePermission(rbacManager, rbac.PermissionDocumentUpload))
	protected("GET /api/v1/documents", server.ListDocuments)
	protected("GET /api/v1/documents/download", server.DownloadDocument)

	// Admin routes
	admin("PUT /api/v1/admin/plans", server.UpsertPlan, rbac.PermissionPlanManage)
	admin("POST /api/v1/admin/subscriptions", server.AdminActivateSubscription, rbac.PermissionSubscriptionManage)
	admin("GET /api/v1/admin/audit-logs", server.GetAuditLogs, rbac.PermissionAuditView)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           int((24 * time.Hour).Seconds()),
	})

	return c.Handler(mux)
}

// chainMiddleware applies multiple middleware to a handler function
func chainMiddleware(handler http.HandlerFunc, middleware ...func(http.Handler) http.Handler) http.Handler {
	h := http.Handler(handler)
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
