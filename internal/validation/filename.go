package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FilenameRegex запрещает символы, недопустимые в именах файлов
var FilenameRegex = regexp.MustCompile(`^[^<>:"/|?*\\]+$`)

var reservedFilenames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "lpt1": true, "lpt2": true, "lpt3": true,
}

// IsValidFilename проверяет имя файла без пути
func IsValidFilename(filename string) bool {
	if filename == "" || len(filename) > 255 {
		return false
	}
	if !FilenameRegex.MatchString(filename) {
		return false
	}
	if strings.Contains(filename, "..") || strings.HasPrefix(filename, ".") {
		return false
	}
	if hasInvisibleCharacters(filename) {
		return false
	}
	base := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))
	return !reservedFilenames[base]
}

// ValidateFilename проверяет имя файла и возвращает ValidationError
func ValidateFilename(filename, fieldName string) error {
	if strings.TrimSpace(filename) == "" {
		return ValidationError{Field: fieldName, Message: "is required"}
	}
	return ValidateInputWithError(filename, fieldName, ValidationOptions{CheckFilename: true, CheckUnicodeSecurity: true})
}

// ValidateFileSize проверяет размер файла в байтах
func ValidateFileSize(size, maxSize int64, fieldName string) error {
	if size <= 0 {
		return ValidationError{Field: fieldName, Message: "must be greater than zero"}
	}
	if size > maxSize {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("must not exceed %d bytes", maxSize)}
	}
	return nil
}
