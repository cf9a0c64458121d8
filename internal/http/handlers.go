package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/auth"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/lumiforge/tierhub-backend/internal/content"
	"github.com/lumiforge/tierhub-backend/internal/document"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/logger"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/rbac"
	"github.com/lumiforge/tierhub-backend/internal/subscription"
)

// Version is reported by the health endpoint
var Version = "dev"

// Server represents HTTP server
type Server struct {
	authService         *auth.Service
	planService         *plan.Service
	subscriptionService *subscription.Service
	contentService      *content.Service
	documentService     *document.Service
	auditService        *audit.Service
	rbac                *rbac.RBAC
	config              *config.Config
}

// Services groups the dependencies of the HTTP server
type Services struct {
	Auth         *auth.Service
	Plans        *plan.Service
	Subscription *subscription.Service
	Content      *content.Service
	Documents    *document.Service
	Audit        *audit.Service
	RBAC         *rbac.RBAC
}

// NewServer creates a new HTTP server
func NewServer(services Services, cfg *config.Config) *Server {
	return &Server{
		authService:         services.Auth,
		planService:         services.Plans,
		subscriptionService: services.Subscription,
		contentService:      services.Content,
		documentService:     services.Documents,
		auditService:        services.Audit,
		rbac:                services.RBAC,
		config:              cfg,
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// writeServiceError maps a service error onto a status and a user-facing message
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := app_errors.StatusCode(err)
	l := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "error", err)
	} else {
		l.Info("request rejected", "status", status, "error", err)
	}
	writeError(w, status, app_errors.UserMessage(status, err))
}

// decodeJSON decodes a request body, rejecting unknown fields
func decodeJSON(r *http.Request, req interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(req)
}

// clientInfo reads the caller's address. X-Forwarded-For is honoured only when
// the service runs behind its own proxy; the proxy appends the real peer last.
func (s *Server) clientInfo(r *http.Request) auth.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	if s.config.TrustProxyHeaders {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(hops[len(hops)-1])
		}
	}
	return auth.ClientInfo{IPAddress: ip, UserAgent: r.UserAgent()}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt int64) {
	expires := time.Unix(expiresAt, 0)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   s.config.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Health handles health check
// @Summary		Health check
// @Tags		system
// @Produce	json
// @Success	200	{object}	models.HealthResponse
// @Router		/health [get]
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}

// Auth Handlers

// Register handles user registration
// @Summary		Register a new user
// @Description	Register with email, password, first and last name. The account starts on the None tier.
// @Tags		auth
// @Accept		json
// @Produce	json
// @Param		request	body		models.RegisterRequest	true	"Registration request"
// @Success	201	{object}	models.RegisterResponse
// @Failure	400	{object}	models.ErrorResponse
// @Failure	409	{object}	models.ErrorResponse
// @Failure	500	{object}	models.ErrorResponse
// @Router		/auth/register [post]
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Register(r.Context(), &req, s.clientInfo(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// VerifyEmail handles email verification
// @Summary		Verify user email
// @Tags		auth
// @Accept		json
// @Produce	json
// @Param		request	body		models.VerifyEmailRequest	true	"Email verification request"
// @Success	200		{object}	models.VerifyEmailResponse
// @Failure	400		{object}	models.ErrorResponse
// @Failure	429		{object}	models.ErrorResponse
// @Router		/auth/verify-email [post]
func (s *Server) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.VerifyEmail(r.Context(), &req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login handles user login
// @Summary		User login
// @Description	Authenticate with email and password. Sets the session cookie whose lifetime follows the subscription.
// @Tags		auth
// @Accept		json
// @Produce	json
// @Param		request	body		models.LoginRequest	true	"Login request"
// @Success	200		{object}	models.LoginResponse
// @Failure	400		{object}	models.ErrorResponse
// @Failure	401		{object}	models.ErrorResponse
// @Failure	429		{object}	models.ErrorResponse
// @Router		/auth/login [post]
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Login(r.Context(), &req, s.clientInfo(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.setSessionCookie(w, resp.AccessToken, resp.SessionExpiresAt)
	writeJSON(w, http.StatusOK, resp)
}

// RefreshToken handles token refresh
// @Summary		Refresh access token
// @Tags		auth
// @Accept		json
// @Produce	json
// @Param		request	body		models.RefreshTokenRequest	true	"Refresh token request"
// @Success	200		{object}	models.RefreshTokenResponse
// @Failure	401		{object}	models.ErrorResponse
// @Router		/auth/refresh [post]
func (s *Server) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), &req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.setSessionCookie(w, resp.AccessToken, resp.ExpiresAt)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles user logout
// @Summary		User logout
// @Description	Revokes the given refresh token, or all sessions when none is given, and clears the session cookie
// @Tags		auth
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.LogoutRequest	false	"Logout request"
// @Success	200		{object}	models.SuccessResponse
// @Failure	401		{object}	models.ErrorResponse
// @Router		/auth/logout [post]
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	// тело необязательно: без refresh_token завершаются все сессии
	var req models.LogoutRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Logout(r.Context(), claims.UserID, &req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, resp)
}

// GetProfile handles getting user profile
// @Summary		Get user profile
// @Tags		auth
// @Produce	json
// @Security	BearerAuth
// @Success	200	{object}	models.UserProfile
// @Failure	401	{object}	models.ErrorResponse
// @Router		/auth/profile [get]
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	profile, err := s.authService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles updating user profile
// @Summary		Update user profile
// @Tags		auth
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.UpdateProfileRequest	true	"Profile update"
// @Success	200		{object}	models.UserProfile
// @Failure	400		{object}	models.ErrorResponse
// @Router		/auth/profile [put]
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	profile, err := s.authService.UpdateProfile(r.Context(), claims.UserID, &req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Plan Handlers

func billingFromQuery(r *http.Request) (string, bool, error) {
	switch billing := r.URL.Query().Get("billing"); billing {
	case "", plan.BillingMonthly:
		return plan.BillingMonthly, false, nil
	case plan.BillingAnnual:
		return plan.BillingAnnual, true, nil
	default:
		return "", false, app_errors.ErrValidation
	}
}

// ListPlans handles the pricing page listing
// @Summary		List plans
// @Description	Active plans shaped for the pricing page
// @Tags		plans
// @Produce	json
// @Param		billing		query		string	false	"Billing toggle"	Enums(monthly, annual)
// @Param		category	query		string	false	"Plan category"
// @Param		plan_type	query		string	false	"Plan type"
// @Success	200	{object}	models.ListPlansResponse
// @Failure	400	{object}	models.ErrorResponse
// @Router		/plans [get]
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	billing, annual, err := billingFromQuery(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	plans, err := s.planService.ListPlans(r.Context(), plan.Filter{
		Category: r.URL.Query().Get("category"),
		PlanType: r.URL.Query().Get("plan_type"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views := make([]*models.PlanView, 0, len(plans))
	for _, p := range plans {
		view := plan.ToView(*p, annual)
		views = append(views, &view)
	}
	writeJSON(w, http.StatusOK, models.ListPlansResponse{Billing: billing, Plans: views})
}

// GetPlan handles plan details
// @Summary		Get plan
// @Tags		plans
// @Produce	json
// @Param		id		path		string	true	"Plan ID"
// @Param		billing	query		string	false	"Billing toggle"	Enums(monthly, annual)
// @Success	200	{object}	models.PlanDetailsResponse
// @Failure	404	{object}	models.ErrorResponse
// @Router		/plans/{id} [get]
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	_, annual, err := billingFromQuery(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	p, err := s.planService.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	view := plan.ToView(*p, annual)
	writeJSON(w, http.StatusOK, models.PlanDetailsResponse{Plan: p, View: &view})
}

// BuildCart handles the checkout handoff
// @Summary		Build checkout cart
// @Tags		plans
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.CartRequest	true	"Cart request"
// @Success	200		{object}	models.Cart
// @Failure	400		{object}	models.ErrorResponse
// @Failure	404		{object}	models.ErrorResponse
// @Router		/checkout/cart [post]
func (s *Server) BuildCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	cart, err := s.planService.BuildCart(r.Context(), req.PlanID, req.BillingCycle)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpsertPlan handles admin plan changes
// @Summary		Create or replace plan
// @Tags		admin
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.UpsertPlanRequest	true	"Plan"
// @Success	200		{object}	models.Plan
// @Failure	400		{object}	models.ErrorResponse
// @Failure	403		{object}	models.ErrorResponse
// @Router		/admin/plans [put]
func (s *Server) UpsertPlan(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.UpsertPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	p, err := s.planService.UpsertPlan(r.Context(), &req.Plan)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	info := s.clientInfo(r)
	s.auditService.Log(r.Context(), audit.Record{
		UserID:     claims.UserID,
		ActionType: models.AuditPlanUpsert,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		Details:    map[string]any{"plan_id": p.ID},
	})
	writeJSON(w, http.StatusOK, p)
}

// Subscription Handlers

// GetSubscription handles the account subscription view
// @Summary		Get subscription
// @Tags		subscription
// @Produce	json
// @Security	BearerAuth
// @Success	200	{object}	models.GetSubscriptionResponse
// @Router		/subscription [get]
func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	resp, err := s.subscriptionService.GetSubscription(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ActivateSubscription handles self-service activation of free plans
// @Summary		Activate plan
// @Description	Free plans only; paid plans return 402 and are activated after payment by an admin
// @Tags		subscription
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.ActivateSubscriptionRequest	true	"Activation"
// @Success	201		{object}	models.ActivateSubscriptionResponse
// @Failure	400		{object}	models.ErrorResponse
// @Failure	402		{object}	models.ErrorResponse
// @Failure	404		{object}	models.ErrorResponse
// @Failure	409		{object}	models.ErrorResponse
// @Router		/subscription [post]
func (s *Server) ActivateSubscription(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.ActivateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	info := s.clientInfo(r)
	resp, err := s.subscriptionService.Activate(r.Context(), claims.UserID, req.PlanID, req.BillingCycle, subscription.ActivateOptions{
		ActorID:   claims.UserID,
		IPAddress: info.IPAddress,
		UserAgent: info.UserAgent,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// AdminActivateSubscription handles activation after external payment
// @Summary		Activate plan for a user
// @Tags		admin
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.AdminActivateSubscriptionRequest	true	"Activation"
// @Success	201		{object}	models.ActivateSubscriptionResponse
// @Failure	403		{object}	models.ErrorResponse
// @Router		/admin/subscriptions [post]
func (s *Server) AdminActivateSubscription(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.AdminActivateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	info := s.clientInfo(r)
	resp, err := s.subscriptionService.Activate(r.Context(), req.UserID, req.PlanID, req.BillingCycle, subscription.ActivateOptions{
		PaymentConfirmed: true,
		ActorID:          claims.UserID,
		IPAddress:        info.IPAddress,
		UserAgent:        info.UserAgent,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Content Handlers

// ListContent handles the content hub listing
// @Summary		List content
// @Description	All items with a locked flag for the viewer's tier
// @Tags		content
// @Produce	json
// @Security	BearerAuth
// @Param		category	query		string	false	"Category"
// @Success	200	{object}	models.ListContentResponse
// @Router		/content [get]
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	viewer, err := s.contentService.ViewerTier(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ListContentResponse{
		Items: s.contentService.List(viewer, r.URL.Query().Get("category")),
	})
}

// GetContent handles a single content item
// @Summary		Get content item
// @Description	Locked items return 200 with an upsell and no body
// @Tags		content
// @Produce	json
// @Security	BearerAuth
// @Param		id	path		string	true	"Content ID"
// @Success	200	{object}	models.ContentDetails
// @Failure	404	{object}	models.ErrorResponse
// @Router		/content/{id} [get]
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	viewer, err := s.contentService.ViewerTier(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	details, err := s.contentService.Get(r.PathValue("id"), viewer)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// ListLegal handles the legal pages index
// @Summary		List legal pages
// @Tags		legal
// @Produce	json
// @Success	200	{object}	models.ListLegalResponse
// @Router		/legal [get]
func (s *Server) ListLegal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ListLegalResponse{Pages: s.contentService.ListLegal()})
}

// GetLegal handles a legal page
// @Summary		Get legal page
// @Tags		legal
// @Produce	json
// @Param		slug	path		string	true	"Page slug"
// @Success	200	{object}	models.LegalPage
// @Failure	404	{object}	models.ErrorResponse
// @Router		/legal/{slug} [get]
func (s *Server) GetLegal(w http.ResponseWriter, r *http.Request) {
	page, err := s.contentService.GetLegal(r.PathValue("slug"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Document Handlers

// InitiateDocumentUpload handles a presigned upload request
// @Summary		Start document upload
// @Tags		documents
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.InitiateDocumentUploadRequest	true	"Upload request"
// @Success	201		{object}	models.InitiateDocumentUploadResponse
// @Failure	400		{object}	models.ErrorResponse
// @Router		/documents/upload [post]
func (s *Server) InitiateDocumentUpload(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.InitiateDocumentUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.documentService.InitiateUpload(r.Context(), claims.UserID, &req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// CompleteDocumentUpload handles upload completion
// @Summary		Complete document upload
// @Tags		documents
// @Accept		json
// @Produce	json
// @Security	BearerAuth
// @Param		request	body		models.CompleteDocumentUploadRequest	true	"Completion"
// @Success	200		{object}	models.DocumentInfo
// @Failure	400		{object}	models.ErrorResponse
// @Failure	404		{object}	models.ErrorResponse
// @Router		/documents/complete [post]
func (s *Server) CompleteDocumentUpload(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	var req models.CompleteDocumentUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	info, err := s.documentService.CompleteUpload(r.Context(), claims.UserID, req.DocumentID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ListDocuments handles the document list
// @Summary		List documents
// @Tags		documents
// @Produce	json
// @Security	BearerAuth
// @Success	200	{object}	models.ListDocumentsResponse
// @Router		/documents [get]
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	resp, err := s.documentService.ListDocuments(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DownloadDocument handles a presigned download request
// @Summary		Document download URL
// @Tags		documents
// @Produce	json
// @Security	BearerAuth
// @Param		document_id	query		string	true	"Document ID"
// @Success	200	{object}	models.DocumentDownloadResponse
// @Failure	404	{object}	models.ErrorResponse
// @Router		/documents/download [get]
func (s *Server) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetUserClaims(r)

	resp, err := s.documentService.DownloadURL(r.Context(), claims.UserID, r.URL.Query().Get("document_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Admin Handlers

// GetAuditLogs handles audit log listing
// @Summary		List audit logs
// @Tags		admin
// @Produce	json
// @Security	BearerAuth
// @Param		user_id		query		string	false	"User ID"
// @Param		action_type	query		string	false	"Action type"
// @Param		result		query		string	false	"Action result"	Enums(success, failure)
// @Param		from		query		string	false	"RFC3339 lower bound"
// @Param		to			query		string	false	"RFC3339 upper bound"
// @Param		limit		query		int		false	"Page size"
// @Param		offset		query		int		false	"Offset"
// @Success	200	{object}	models.GetAuditLogsResponse
// @Failure	400	{object}	models.ErrorResponse
// @Failure	403	{object}	models.ErrorResponse
// @Router		/admin/audit-logs [get]
func (s *Server) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.Filter{
		UserID:     q.Get("user_id"),
		ActionType: q.Get("action_type"),
		Result:     q.Get("result"),
	}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if v := q.Get(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
				return
			}
			*dst = &t
		}
	}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
				return
			}
			*dst = n
		}
	}

	resp, err := s.auditService.ListAuditLogs(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
