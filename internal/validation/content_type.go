package validation

import (
	"path/filepath"
	"strings"
)

// DocumentContentTypes типы файлов, которые пользователь может загрузить в профиль
var DocumentContentTypes = map[string][]string{
	"application/pdf": {".pdf"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
}

// NormalizeContentType убирает параметры и приводит к нижнему регистру
func NormalizeContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

// IsDocumentContentType проверяет, разрешён ли тип для документов
func IsDocumentContentType(contentType string) bool {
	_, ok := DocumentContentTypes[NormalizeContentType(contentType)]
	return ok
}

// ValidateDocumentContentType проверяет тип и его соответствие расширению файла
func ValidateDocumentContentType(fileName, contentType, fieldName string) (string, error) {
	ct := NormalizeContentType(contentType)
	exts, ok := DocumentContentTypes[ct]
	if !ok {
		return "", ValidationError{Field: fieldName, Message: "must be one of application/pdf, image/jpeg, image/png"}
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range exts {
		if ext == allowed {
			return ct, nil
		}
	}
	return "", ValidationError{Field: fieldName, Message: "does not match file extension"}
}
