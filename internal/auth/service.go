package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/cache"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/lumiforge/tierhub-backend/internal/email"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	jwtmanager "github.com/lumiforge/tierhub-backend/internal/jwt"
	"github.com/lumiforge/tierhub-backend/internal/metrics"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/rbac"
	"github.com/lumiforge/tierhub-backend/internal/tier"
	"github.com/lumiforge/tierhub-backend/internal/validation"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

const verificationCodeTTL = 24 * time.Hour

// SessionPolicy определяет срок жизни сессии пользователя по его подписке
type SessionPolicy interface {
	SessionTTLFor(ctx context.Context, userID string, def, max time.Duration) time.Duration
}

// ClientInfo данные клиента для аудита
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// Service реализует бизнес-логику аутентификации
type Service struct {
	db         ydb.Database
	jwtManager jwtmanager.TokenManager
	rbac       *rbac.RBAC
	email      email.Mailer
	sessions   SessionPolicy
	limiter    *cache.RateLimiter
	verify     *cache.RateLimiter
	audit      *audit.Service
	config     *config.Config
	log        *slog.Logger
}

// NewService создает новый auth сервис
func NewService(
	db ydb.Database,
	jwtManager jwtmanager.TokenManager,
	rbacManager *rbac.RBAC,
	emailClient email.Mailer,
	sessions SessionPolicy,
	limiter *cache.RateLimiter,
	verifyLimiter *cache.RateLimiter,
	auditSvc *audit.Service,
	cfg *config.Config,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		db:         db,
		jwtManager: jwtManager,
		rbac:       rbacManager,
		email:      emailClient,
		sessions:   sessions,
		limiter:    limiter,
		verify:     verifyLimiter,
		audit:      auditSvc,
		config:     cfg,
		log:        log,
	}
}

// Register регистрирует нового пользователя с уровнем None
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest, client ClientInfo) (*models.RegisterResponse, error) {
	emailAddr, err := validation.ValidateEmail(req.Email, "email")
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	firstName, err := validation.SanitizePersonName(req.FirstName, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, err := validation.SanitizePersonName(req.LastName, "last_name")
	if err != nil {
		return nil, err
	}

	// Проверка, что email не занят
	existing, err := s.db.GetUserByEmail(ctx, emailAddr)
	switch {
	case err == nil && existing != nil:
		return nil, app_errors.ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, app_errors.ErrNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	expires := time.Now().Add(verificationCodeTTL)

	now := time.Now()
	user := &ydb.User{
		UserID:                uuid.New().String(),
		Email:                 emailAddr,
		PasswordHash:          string(passwordHash),
		FirstName:             firstName,
		LastName:              lastName,
		Subscription:          tier.None.String(),
		Role:                  string(rbac.RoleMember),
		EmailVerified:         false,
		VerificationCode:      &code,
		VerificationExpiresAt: &expires,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerificationEmail(ctx, user, code)

	s.audit.Log(ctx, audit.Record{
		UserID:     user.UserID,
		ActionType: models.AuditRegisterSuccess,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
	})

	return &models.RegisterResponse{
		UserID:  user.UserID,
		Message: "Registration successful. Please check your email for verification.",
	}, nil
}

// Отправка письма не прерывает регистрацию
func (s *Service) sendVerificationEmail(ctx context.Context, user *ydb.User, code string) {
	if s.email == nil || !s.email.IsConfigured() {
		return
	}
	msg, err := s.email.SendVerificationEmail(ctx, user.Email, user.FirstName, code)
	if err != nil {
		s.log.Error("failed to send verification email", "error", err, "user_id", user.UserID)
	}
	if msg == nil {
		return
	}

	entry := &ydb.EmailLog{
		EmailID:   uuid.New().String(),
		UserID:    user.UserID,
		EmailType: string(msg.Type),
		Recipient: msg.Recipient,
		Status:    string(msg.Status),
		MessageID: msg.MessageID,
		SentAt:    msg.SentAt,
	}
	if msg.Error != "" {
		entry.ErrorMessage = &msg.Error
	}
	if err := s.db.CreateEmailLog(ctx, entry); err != nil {
		s.log.Warn("failed to write email log", "error", err)
	}
}

// VerifyEmail подтверждает email пользователя
func (s *Service) VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) (*models.VerifyEmailResponse, error) {
	emailAddr := validation.NormalizeEmail(req.Email)
	if emailAddr == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: email and code are required", app_errors.ErrValidation)
	}

	// шестизначный код перебирается за 10^6 попыток, поэтому попытки ограничены
	allowed, err := s.verify.Allow(ctx, emailAddr)
	if err != nil {
		s.log.Warn("verify limiter unavailable", "error", err)
	}
	if !allowed {
		return nil, app_errors.ErrTooManyRequests
	}

	user, err := s.db.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotFound) {
			return nil, app_errors.ErrInvalidVerification
		}
		return nil, err
	}

	if user.EmailVerified {
		return &models.VerifyEmailResponse{Message: "Email already verified", Success: true}, nil
	}
	if user.VerificationCode == nil || subtle.ConstantTimeCompare([]byte(*user.VerificationCode), []byte(req.Code)) != 1 {
		return nil, app_errors.ErrInvalidVerification
	}
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, app_errors.ErrInvalidVerification
	}

	user.EmailVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil
	user.UpdatedAt = time.Now()
	if err := s.db.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.verify.Reset(ctx, emailAddr); err != nil {
		s.log.Warn("failed to reset verify limiter", "error", err)
	}

	s.audit.Log(ctx, audit.Record{UserID: user.UserID, ActionType: models.AuditEmailVerified})

	return &models.VerifyEmailResponse{Message: "Email verified successfully", Success: true}, nil
}

// Login выполняет вход пользователя. Срок сессии следует за подпиской.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, client ClientInfo) (*models.LoginResponse, error) {
	emailAddr := validation.NormalizeEmail(req.Email)
	if emailAddr == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}

	allowed, err := s.limiter.Allow(ctx, emailAddr)
	if err != nil {
		s.log.Warn("login limiter unavailable", "error", err)
	}
	if !allowed {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		return nil, app_errors.ErrTooManyRequests
	}

	user, err := s.db.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, app_errors.ErrNotFound) {
			return nil, err
		}
		s.loginFailed(ctx, "", client, "unknown_email")
		return nil, app_errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.loginFailed(ctx, user.UserID, client, "bad_password")
		return nil, app_errors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.loginFailed(ctx, user.UserID, client, "deactivated")
		return nil, app_errors.ErrAccountDeactivated
	}

	sessionTTL := s.sessionTTL(ctx, user.UserID)
	accessToken, refreshToken, err := s.issueTokens(ctx, user, sessionTTL)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, emailAddr); err != nil {
		s.log.Warn("failed to reset login limiter", "error", err)
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.audit.Log(ctx, audit.Record{
		UserID:     user.UserID,
		ActionType: models.AuditLoginSuccess,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
	})

	expiresAt := time.Now().Add(sessionTTL).Unix()
	return &models.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        expiresAt,
		SessionExpiresAt: expiresAt,
		User:             toProfile(user),
	}, nil
}

func (s *Service) loginFailed(ctx context.Context, userID string, client ClientInfo, reason string) {
	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	s.audit.Log(ctx, audit.Record{
		UserID:       userID,
		ActionType:   models.AuditLoginFailure,
		ActionResult: models.AuditResultFailure,
		IPAddress:    client.IPAddress,
		UserAgent:    client.UserAgent,
		Details:      map[string]any{"reason": reason},
	})
}

func (s *Service) sessionTTL(ctx context.Context, userID string) time.Duration {
	if s.sessions == nil {
		return s.config.AccessTokenTTL
	}
	return s.sessions.SessionTTLFor(ctx, userID, s.config.AccessTokenTTL, s.config.SessionMaxTTL)
}

// issueTokens выпускает пару токенов и сохраняет хеш refresh токена
func (s *Service) issueTokens(ctx context.Context, user *ydb.User, accessTTL time.Duration) (string, string, error) {
	accessToken, refreshToken, err := s.jwtManager.GenerateTokenPair(user.UserID, user.Email, user.Role, accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := time.Now()
	record := &ydb.RefreshToken{
		TokenID:   uuid.New().String(),
		UserID:    user.UserID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.jwtManager.GetTokenExpiry(jwtmanager.TokenTypeRefresh)),
		CreatedAt: now,
	}
	if err := s.db.CreateRefreshToken(ctx, record); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// RefreshToken меняет refresh токен на новую пару (ротация)
func (s *Service) RefreshToken(ctx context.Context, req *models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, fmt.Errorf("%w: refresh_token is required", app_errors.ErrValidation)
	}

	claims, err := s.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidRefreshToken, err)
	}
	if claims.TokenType != jwtmanager.TokenTypeRefresh {
		return nil, app_errors.ErrInvalidRefreshToken
	}

	tokenHash := hashToken(req.RefreshToken)
	record, err := s.db.GetRefreshToken(ctx, tokenHash)
	if err != nil || record == nil || record.IsRevoked || time.Now().After(record.ExpiresAt) {
		return nil, app_errors.ErrRefreshTokenRevoked
	}

	// Роль и статус берём из БД, а не из старого токена
	user, err := s.db.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, app_errors.ErrAccountDeactivated
	}

	if err := s.db.RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	sessionTTL := s.sessionTTL(ctx, user.UserID)
	accessToken, refreshToken, err := s.issueTokens(ctx, user, sessionTTL)
	if err != nil {
		return nil, err
	}

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(sessionTTL).Unix(),
	}, nil
}

// Logout отзывает refresh токен; без токена отзываются все сессии пользователя
func (s *Service) Logout(ctx context.Context, userID string, req *models.LogoutRequest) (*models.SuccessResponse, error) {
	if req == nil || req.RefreshToken == "" {
		if err := s.db.RevokeAllUserRefreshTokens(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
		return &models.SuccessResponse{Message: "Logout successful"}, nil
	}

	tokenHash := hashToken(req.RefreshToken)
	record, err := s.db.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotFound) {
			return &models.SuccessResponse{Message: "Logout successful"}, nil
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, app_errors.ErrForbidden
	}
	if err := s.db.RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return &models.SuccessResponse{Message: "Logout successful"}, nil
}

// GetProfile получает профиль пользователя
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// UpdateProfile меняет имя и фамилию. Уровень подписки здесь не меняется.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	firstName, err := validation.SanitizePersonName(req.FirstName, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, err := validation.SanitizePersonName(req.LastName, "last_name")
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.UpdatedAt = time.Now()
	if err := s.db.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return toProfile(user), nil
}

// ValidateToken валидирует access токен и возвращает claims
func (s *Service) ValidateToken(tokenString string) (*jwtmanager.Claims, error) {
	claims, err := s.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwtmanager.TokenTypeAccess {
		return nil, app_errors.ErrInvalidToken
	}
	return claims, nil
}

// CheckPermission проверяет разрешение роли
func (s *Service) CheckPermission(role string, permission rbac.Permission) bool {
	return s.rbac.CheckPermissionWithRole(rbac.ParseRole(role), permission)
}

// GenerateVerificationCode возвращает шестизначный код подтверждения
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// hashToken хеширует токен для хранения в базе
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}

func toProfile(user *ydb.User) *models.UserProfile {
	return &models.UserProfile{
		UserID:        user.UserID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Subscription:  tier.Parse(user.Subscription).String(),
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt.Unix(),
		UpdatedAt:     user.UpdatedAt.Unix(),
	}
}
