package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// UnicodeAttackPatterns содержит паттерны для обнаружения Unicode-атак
var UnicodeAttackPatterns = []*regexp.Regexp{
	// RTL override
	regexp.MustCompile(`[\x{202A}-\x{202E}]`),
	regexp.MustCompile(`[\x{2066}-\x{2069}]`),
	// Нулевой ширины
	regexp.MustCompile(`[\x{200B}-\x{200F}]`),
	// Селекторы вариантов
	regexp.MustCompile(`[\x{FE00}-\x{FE0F}]`),
	regexp.MustCompile(`[\x{FFF9}-\x{FFFB}]`),
	// Полноширинные символы
	regexp.MustCompile(`[\x{FF00}-\x{FFEF}]`),
}

// ContainsUnicodeAttack проверяет наличие Unicode-атак в строке
func ContainsUnicodeAttack(input string) bool {
	if input == "" {
		return false
	}
	for _, pattern := range UnicodeAttackPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return hasInvisibleCharacters(input) || hasMixedScriptWord(input)
}

// ValidateUnicodeSecurity выполняет валидацию Unicode-атак и возвращает ошибку
func ValidateUnicodeSecurity(input, fieldName string) error {
	if ContainsUnicodeAttack(input) {
		return ValidationError{Field: fieldName, Message: "contains potentially dangerous Unicode characters"}
	}
	return nil
}

// hasMixedScriptWord ловит гомографы вида "pаypal" с кириллической "а"
func hasMixedScriptWord(input string) bool {
	for _, word := range strings.FieldsFunc(input, func(r rune) bool { return !unicode.IsLetter(r) }) {
		var latin, cyrillic bool
		for _, r := range word {
			switch {
			case unicode.Is(unicode.Latin, r):
				latin = true
			case unicode.Is(unicode.Cyrillic, r):
				cyrillic = true
			}
		}
		if latin && cyrillic {
			return true
		}
	}
	return false
}

func hasInvisibleCharacters(input string) bool {
	for _, r := range input {
		if isDangerousUnicode(r) {
			return true
		}
	}
	return false
}

// SanitizeUnicode очищает строку от опасных Unicode-символов
func SanitizeUnicode(input string) string {
	var result strings.Builder
	for _, r := range input {
		if !isDangerousUnicode(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func isDangerousUnicode(r rune) bool {
	switch {
	case unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t':
		return true
	case r >= 0x202A && r <= 0x202E, r >= 0x2066 && r <= 0x2069:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xFFF9 && r <= 0xFFFB:
		return true
	case r == 0xFEFF:
		return true
	}
	return false
}
