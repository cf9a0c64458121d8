package jwt

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lumiforge/tierhub-backend/internal/config"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims представляет структуру claims в JWT токене
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager управляет JWT токенами
type JWTManager struct {
	secretKey     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager создает новый JWT менеджер
func NewJWTManager(cfg *config.Config) *JWTManager {
	if cfg.JWTSecretKey == "" {
		return nil
	}
	access := cfg.AccessTokenTTL
	if access <= 0 {
		access = 24 * time.Hour
	}
	refresh := cfg.RefreshTokenTTL
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return &JWTManager{
		secretKey:     cfg.JWTSecretKey,
		accessExpiry:  access,
		refreshExpiry: refresh,
	}
}

// GenerateTokenPair генерирует пару access и refresh токенов.
// accessTTL <= 0 означает срок по умолчанию.
func (j *JWTManager) GenerateTokenPair(userID, email, role string, accessTTL time.Duration) (string, string, error) {
	if accessTTL <= 0 {
		accessTTL = j.accessExpiry
	}

	accessToken, err := j.generateToken(userID, email, role, TokenTypeAccess, accessTTL)
	if err != nil {
		return "", "", app_errors.ErrFailedToGenerateAccessToken
	}

	refreshToken, err := j.generateToken(userID, email, role, TokenTypeRefresh, j.refreshExpiry)
	if err != nil {
		return "", "", app_errors.ErrFailedToGenerateRefreshToken
	}

	return accessToken, refreshToken, nil
}

// generateToken генерирует JWT токен с указанным сроком действия
func (j *JWTManager) generateToken(userID, email, role, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ValidateToken валидирует JWT токен и возвращает claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, app_errors.ErrUnexpectedSigningMethod
		}
		return []byte(j.secretKey), nil
	})

	if err != nil {
		return nil, app_errors.ErrFailedToParseToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, app_errors.ErrInvalidToken
	}

	return claims, nil
}

// GetTokenExpiry возвращает время истечения токена
func (j *JWTManager) GetTokenExpiry(tokenType string) time.Duration {
	switch tokenType {
	case TokenTypeRefresh:
		return j.refreshExpiry
	default:
		return j.accessExpiry
	}
}

// ExtractTokenFromHeader извлекает токен из Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", app_errors.ErrAuthHeaderEmpty
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
		return "", app_errors.ErrAuthHeaderWrongFormat
	}

	return authHeader[len(bearerPrefix):], nil
}
