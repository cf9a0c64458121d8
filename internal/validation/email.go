package validation

import (
	"regexp"
	"strings"
)

// EmailRegex содержит регулярное выражение для валидации email
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail проверяет валидность email адреса
func IsValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	if !EmailRegex.MatchString(email) {
		return false
	}

	local, domain, _ := strings.Cut(email, "@")
	if len(local) > 64 || len(domain) > 253 {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasPrefix(domain, "-") || strings.Contains(domain, "..") {
		return false
	}
	return true
}

// NormalizeEmail приводит email к каноническому виду для хранения и поиска
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail нормализует email и проверяет его формат
func ValidateEmail(email, fieldName string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", ValidationError{Field: fieldName, Message: "is required"}
	}
	if !IsValidEmail(normalized) || ContainsUnicodeAttack(normalized) {
		return "", ValidationError{Field: fieldName, Message: "is not a valid email address"}
	}
	return normalized, nil
}
