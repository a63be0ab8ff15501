package catalog

import (
	"strings"
)

// MediaURL resolves stored file references against a media base. Absolute
// references pass through; empty ones stay empty.
type MediaURL struct {
	base string
}

func NewMediaURL(base string) MediaURL {
	trimmed := strings.TrimSpace(base)
	if trimmed != "" && !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	return MediaURL{base: trimmed}
}

func (m MediaURL) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}
	return m.base + strings.TrimPrefix(ref, "/")
}

// nullable renders an empty URL as JSON null.
func nullable(url string) any {
	if url == "" {
		return nil
	}
	return url
}
