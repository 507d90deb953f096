package infrastructure

import (
	"mime"
	"strings"

	"github.com/DRSN-tech/price-compare/pkg/e"
)

// GetExtensionFromMIME возвращает расширение файла графика по MIME-типу.
// Поддерживает svg и png. Возвращает ошибку e.ErrUnsupportedMediaType для остальных типов.
func GetExtensionFromMIME(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "bin", e.ErrUnsupportedMediaType
	}

	switch strings.ToLower(mediaType) {
	case "image/svg+xml":
		return "svg", nil
	case "image/png":
		return "png", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

// SanitizeKeyPart оставляет в части ключа объекта только безопасные символы.
func SanitizeKeyPart(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}

	if sb.Len() == 0 {
		return "unknown"
	}

	return sb.String()
}
