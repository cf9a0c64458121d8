package validation

import (
	"regexp"
)

// XSSRegexPatterns содержит регулярные выражения для обнаружения XSS-атак
var XSSRegexPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)expression\s*\(`),
	regexp.MustCompile(`(?i)<\s*(iframe|object|embed|link|meta|style|form|svg|img)\b`),
	regexp.MustCompile(`(?i)document\.(cookie|write)`),
	regexp.MustCompile(`(?i)window\.(location|open)`),
}

// ContainsXSS проверяет наличие XSS-атак в строке
func ContainsXSS(input string) bool {
	if input == "" {
		return false
	}
	for _, re := range XSSRegexPatterns {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

// ValidateXSS выполняет валидацию XSS и возвращает ошибку
func ValidateXSS(input, fieldName string) error {
	if ContainsXSS(input) {
		return ValidationError{Field: fieldName, Message: "contains potentially dangerous content (XSS)"}
	}
	return nil
}
