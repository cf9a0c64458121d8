// Package errors holds the application's sentinel errors and their HTTP mapping.
package errors

import (
	"errors"
	"net/http"
)

// Ошибки валидации и доступа
var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access denied")
	ErrUnauthenticated     = errors.New("user not authenticated")
	ErrAccountDeactivated  = errors.New("user account is deactivated")
	ErrInvalidVerification = errors.New("invalid or expired verification code")
)

// Ошибки токенов
var (
	ErrFailedToGenerateAccessToken  = errors.New("failed to generate access token")
	ErrFailedToGenerateRefreshToken = errors.New("failed to generate refresh token")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrFailedToParseToken           = errors.New("failed to parse token")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidRefreshToken          = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked          = errors.New("refresh token not found or revoked")
	ErrAuthHeaderEmpty              = errors.New("authorization header is empty")
	ErrAuthHeaderWrongFormat        = errors.New("authorization header format must be Bearer {token}")
)

// Ошибки подписок и планов
var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrPlanInactive          = errors.New("plan is not active")
	ErrBillingCycleNotPriced = errors.New("plan has no price for the requested billing cycle")
	ErrPaymentRequired       = errors.New("paid plans are activated after payment")
	ErrHigherTierActive      = errors.New("a higher tier subscription is still active")
)

// Ошибки инициализации
var (
	ErrFailedToConnectYDB        = errors.New("failed to connect to YDB")
	ErrJWTSecretKeyNotConfigured = errors.New("JWT secret key is not configured")
	ErrFailedToInitStorageClient = errors.New("failed to initialize storage client")
	ErrFailedToLoadContent       = errors.New("failed to load content catalog")
	ErrUserRoleNotFoundInContext = errors.New("user role not found in context")
)

// StatusCode maps a service error onto an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrBillingCycleNotPriced),
		errors.Is(err, ErrInvalidVerification):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrFailedToParseToken),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrRefreshTokenRevoked),
		errors.Is(err, ErrAuthHeaderEmpty),
		errors.Is(err, ErrAuthHeaderWrongFormat):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrAccountDeactivated):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPlanNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrHigherTierActive):
		return http.StatusConflict
	case errors.Is(err, ErrPlanInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text shown to the end user for a status.
func UserMessage(status int, err error) string {
	switch {
	case status == http.StatusBadRequest:
		return "Please check the information you entered"
	case status == http.StatusUnauthorized && errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case status == http.StatusUnauthorized:
		return "Authentication required"
	case status == http.StatusConflict && errors.Is(err, ErrEmailAlreadyExists):
		return "An account with this email already exists"
	case status == http.StatusTooManyRequests:
		return "Too many attempts. Please try again later."
	case status >= http.StatusInternalServerError:
		return "Something went wrong. Please try again later."
	case err != nil:
		return err.Error()
	default:
		return http.StatusText(status)
	}
}
