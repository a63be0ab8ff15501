package translation

import (
	"context"

	"lingye.co/catalog/internal/language"
)

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1, "en" for catalog content
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}

// UnsupportedTargets lists the active target languages the provider does
// not advertise.
func UnsupportedTargets(p Provider) []string {
	if p == nil {
		return language.Targets()
	}
	supported := make(map[string]struct{})
	for _, code := range p.SupportedLanguages() {
		supported[language.Base(code)] = struct{}{}
	}
	var missing []string
	for _, target := range language.Targets() {
		if _, ok := supported[target]; !ok {
			missing = append(missing, target)
		}
	}
	return missing
}
