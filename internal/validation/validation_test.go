package validation

import (
	"errors"
	"strings"
	"testing"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsXSS(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Safe input", "hello world", false},
		{"Apostrophe", "O'Brien", false},
		{"Script tag", "<script>alert('xss')</script>", true},
		{"JavaScript protocol", "javascript:alert('xss')", true},
		{"Event handler", "onload='alert(1)'", true},
		{"Eval function", "eval('x')", true},
		{"Iframe", "<iframe src=\"x\"></iframe>", true},
		{"Image", "<img src=x>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsXSS(tt.input))
		})
	}
}

func TestContainsUnicodeAttack(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Latin", "Alice", false},
		{"Cyrillic", "Анна", false},
		{"Latin and Cyrillic words", "Anna Анна", false},
		{"Homograph", "p\u0430ypal", true},
		{"RTL override", "file\u202etxt.exe", true},
		{"Zero width", "ad\u200bmin", true},
		{"Fullwidth", "\uff41dmin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsUnicodeAttack(tt.input))
		})
	}
}

func TestSanitizeUnicode(t *testing.T) {
	assert.Equal(t, "admin", SanitizeUnicode("ad\u200bmin\ufeff"))
	assert.Equal(t, "line\nbreak", SanitizeUnicode("line\nbreak"))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"  User@Example.COM ", "user@example.com", false},
		{"first.last+tag@sub.example.org", "first.last+tag@sub.example.org", false},
		{"", "", true},
		{"no-at-sign", "", true},
		{".lead@example.com", "", true},
		{"double..dot@example.com", "", true},
		{"user@-example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateEmail(tt.input, "email")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, app_errors.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)))
}

func TestSanitizePersonName(t *testing.T) {
	got, err := SanitizePersonName("  Jane\u200b ", "first_name")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got)

	_, err = SanitizePersonName("   ", "first_name")
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "first_name", vErr.Field)

	_, err = SanitizePersonName("<script>x</script>", "last_name")
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	_, err = SanitizePersonName(strings.Repeat("a", 101), "last_name")
	assert.Error(t, err)
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Plain", "passport.pdf", false},
		{"Spaces", "my scan 01.png", false},
		{"Empty", "", true},
		{"Traversal", "../etc/passwd", true},
		{"Slash", "dir/file.pdf", true},
		{"Hidden", ".env", true},
		{"Reserved", "CON.pdf", true},
		{"Control char", "bad\x00.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input, "file_name")
			assert.Equal(t, tt.wantErr, err != nil, "err=%v", err)
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	assert.NoError(t, ValidateFileSize(1024, 2048, "size_bytes"))
	assert.Error(t, ValidateFileSize(0, 2048, "size_bytes"))
	assert.Error(t, ValidateFileSize(4096, 2048, "size_bytes"))
}

func TestValidateDocumentContentType(t *testing.T) {
	ct, err := ValidateDocumentContentType("scan.JPG", "Image/JPEG; charset=binary", "content_type")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	_, err = ValidateDocumentContentType("scan.png", "application/pdf", "content_type")
	assert.Error(t, err)

	_, err = ValidateDocumentContentType("movie.mp4", "video/mp4", "content_type")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}
