// Package validation проверяет и нормализует пользовательский ввод.
package validation

import (
	"fmt"
	"strings"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
)

// ValidationError представляет ошибку валидации поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error реализует интерфейс error
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

// Unwrap позволяет сравнивать ошибку с app_errors.ErrValidation
func (e ValidationError) Unwrap() error {
	return app_errors.ErrValidation
}

// ValidationOptions набор проверок безопасности для строки
type ValidationOptions struct {
	CheckXSS             bool
	CheckUnicodeSecurity bool
	CheckFilename        bool
}

// TextOptions проверки для свободного текста (имена, описания)
func TextOptions() ValidationOptions {
	return ValidationOptions{CheckXSS: true, CheckUnicodeSecurity: true}
}

// ValidateInput возвращает список нарушений; пустой список означает валидный ввод
func ValidateInput(input string, options ValidationOptions) []string {
	var problems []string
	if options.CheckXSS && ContainsXSS(input) {
		problems = append(problems, "contains potentially dangerous content")
	}
	if options.CheckUnicodeSecurity && ContainsUnicodeAttack(input) {
		problems = append(problems, "contains potentially dangerous Unicode characters")
	}
	if options.CheckFilename && !IsValidFilename(input) {
		problems = append(problems, "is not a valid file name")
	}
	return problems
}

// ValidateInputWithError выполняет валидацию и возвращает ValidationError
func ValidateInputWithError(input, fieldName string, options ValidationOptions) error {
	if problems := ValidateInput(input, options); len(problems) > 0 {
		return ValidationError{Field: fieldName, Message: strings.Join(problems, "; ")}
	}
	return nil
}
