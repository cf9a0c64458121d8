package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: email is required", ErrValidation), http.StatusBadRequest},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"duplicate account", fmt.Errorf("register: %w", ErrEmailAlreadyExists), http.StatusConflict},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests},
		{"plan missing", ErrPlanNotFound, http.StatusNotFound},
		{"paid plan", ErrPaymentRequired, http.StatusPaymentRequired},
		{"higher tier active", ErrHigherTierActive, http.StatusConflict},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unknown", errors.New("ydb: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Please check the information you entered", UserMessage(http.StatusBadRequest, ErrValidation))
	assert.Equal(t, "Invalid email or password", UserMessage(http.StatusUnauthorized, ErrInvalidCredentials))
	assert.Equal(t, "Authentication required", UserMessage(http.StatusUnauthorized, ErrInvalidToken))
	assert.Equal(t, "An account with this email already exists", UserMessage(http.StatusConflict, ErrEmailAlreadyExists))
	assert.Equal(t, "Too many attempts. Please try again later.", UserMessage(http.StatusTooManyRequests, ErrTooManyRequests))
	assert.Equal(t, "Something went wrong. Please try again later.", UserMessage(http.StatusBadGateway, errors.New("upstream")))
	assert.Equal(t, "plan not found", UserMessage(http.StatusNotFound, ErrPlanNotFound))
	assert.Equal(t, "a higher tier subscription is still active", UserMessage(http.StatusConflict, ErrHigherTierActive))
}
