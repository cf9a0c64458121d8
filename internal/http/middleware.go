package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumiforge/tierhub-backend/internal/auth"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/jwt"
	"github.com/lumiforge/tierhub-backend/internal/logger"
	"github.com/lumiforge/tierhub-backend/internal/metrics"
	"github.com/lumiforge/tierhub-backend/internal/rbac"
)

// Context keys for storing values in request context
type contextKey string

const (
	UserClaimsKey contextKey = "user_claims"
	RequestIDKey  contextKey = "request_id"
)

// SessionCookieName is the cookie carrying the access token for browser clients.
const SessionCookieName = "token"

// AuthMiddleware authenticates the request with a Bearer header or the session cookie
func AuthMiddleware(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := tokenFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, app_errors.UserMessage(http.StatusUnauthorized, err))
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				logger.FromContext(r.Context()).Info("token rejected", "error", err)
				writeError(w, http.StatusUnauthorized, app_errors.UserMessage(http.StatusUnauthorized, err))
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			ctx = rbac.WithRole(ctx, rbac.ParseRole(claims.Role))
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest prefers the Authorization header over the cookie
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return jwt.ExtractTokenFromHeader(header)
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", app_errors.ErrAuthHeaderEmpty
}

// RequirePermission rejects requests whose role lacks the permission. Must run after AuthMiddleware.
func RequirePermission(rbacManager *rbac.RBAC, permission rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := rbacManager.CheckPermission(r.Context(), permission)
			if err != nil {
				writeError(w, http.StatusUnauthorized, app_errors.UserMessage(http.StatusUnauthorized, err))
				return
			}
			if !ok {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs requests and responses with structured logging
func LoggingMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			requestID, _ := r.Context().Value(RequestIDKey).(string)
			l := base.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)
			ctx := logger.WithContext(r.Context(), l)

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			l.Info("Request completed",
				"status_code", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size_bytes", wrapped.size,
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// MetricsMiddleware records request counts and latency labelled by route pattern
func MetricsMiddleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// ContentTypeMiddleware ensures JSON content type for API endpoints
func ContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// запрос без тела (например, logout) проверять нечего
		if (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) && r.ContentLength != 0 {
			if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
				writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter is a wrapper around http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// GetUserClaims extracts user claims from request context
func GetUserClaims(r *http.Request) (*jwt.Claims, bool) {
	claims, ok := r.Context().Value(UserClaimsKey).(*jwt.Claims)
	return claims, ok
}

// GetRequestID extracts request ID from request context
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDKey).(string)
	return requestID, ok
}
