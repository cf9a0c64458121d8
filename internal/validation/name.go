package validation

import (
	"fmt"
	"strings"
)

const (
	maxPersonNameLength = 100
	minPasswordLength   = 8
	// bcrypt игнорирует байты после 72-го
	maxPasswordBytes = 72
)

func sanitizeText(value, field string, required bool, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			return "", ValidationError{Field: field, Message: "is required"}
		}
		return "", nil
	}

	sanitized := SanitizeUnicode(trimmed)
	if maxLen > 0 && len([]rune(sanitized)) > maxLen {
		return "", ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	if err := ValidateInputWithError(sanitized, field, TextOptions()); err != nil {
		return "", err
	}
	return sanitized, nil
}

// SanitizePersonName нормализует имя или фамилию (обязательное поле, до 100 символов).
func SanitizePersonName(value, field string) (string, error) {
	return sanitizeText(value, field, true, maxPersonNameLength)
}

// SanitizeOptionalText нормализует необязательный свободный текст.
func SanitizeOptionalText(value, field string, maxLen int) (string, error) {
	return sanitizeText(value, field, false, maxLen)
}

// ValidatePassword проверяет длину пароля.
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	if len(password) > maxPasswordBytes {
		return ValidationError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)}
	}
	return nil
}
