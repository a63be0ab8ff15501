package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/language"
)

// ErrProvider marks a failed provider call. Callers receive the original text
// alongside it and decide whether to persist.
var ErrProvider = errors.New("translation provider failed")

// Result is the outcome of one text translation.
type Result struct {
	Text string
	// Translated is true when Text came back from the provider.
	Translated bool
	Provider   string
	LatencyMs  int64
	Err        error
}

// Failed reports whether the provider was called and did not succeed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// DetectFunc returns the ISO 639-1 code a text is written in, "" if unsure.
type DetectFunc func(text string) string

// Translator converts one string with the configured provider. It never
// caches and never retries.
type Translator struct {
	provider Provider
	detect   DetectFunc
	logger   zerolog.Logger
}

type TranslatorOption func(*Translator)

// WithDetector skips provider calls for text already written in the target
// language.
func WithDetector(detect DetectFunc) TranslatorOption {
	return func(t *Translator) {
		t.detect = detect
	}
}

func NewTranslator(provider Provider, logger zerolog.Logger, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider: provider,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate converts text into targetLang. An empty sourceLang means the
// catalog source language. Provider failures return the original text with
// an error wrapping ErrProvider.
func (t *Translator) Translate(ctx context.Context, text, targetLang, sourceLang string) Result {
	return t.TranslatePaced(ctx, text, targetLang, sourceLang, nil)
}

// TranslatePaced is Translate with a hook that runs right before the
// provider is called. Text answered locally never reaches the hook. A hook
// error is returned in Result.Err without calling the provider.
func (t *Translator) TranslatePaced(ctx context.Context, text, targetLang, sourceLang string, beforeCall func() error) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}
	source := language.Base(sourceLang)
	if source == "" {
		source = language.Source
	}
	target := language.Base(targetLang)
	if target == "" || target == source {
		return Result{Text: text}
	}
	if t.detect != nil {
		if detected := t.detect(text); detected != "" && detected == target {
			return Result{Text: text}
		}
	}
	if t.provider == nil {
		return Result{Text: text, Err: fmt.Errorf("%w: no provider configured", ErrProvider)}
	}
	if beforeCall != nil {
		if err := beforeCall(); err != nil {
			return Result{Text: text, Err: err}
		}
	}

	resp, err := t.provider.Translate(ctx, TranslateRequest{
		Text:       text,
		SourceLang: source,
		TargetLang: target,
	})
	if err != nil {
		t.logger.Warn().
			Err(err).
			Str("provider", t.provider.Name()).
			Str("target_lang", target).
			Int("text_len", len(text)).
			Msg("translation failed")
		return Result{Text: text, Provider: t.provider.Name(), Err: fmt.Errorf("%w: %s: %v", ErrProvider, t.provider.Name(), err)}
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return Result{Text: text, Provider: t.provider.Name(), Err: fmt.Errorf("%w: %s returned empty text", ErrProvider, t.provider.Name())}
	}

	return Result{
		Text:       strings.TrimSpace(resp.Text),
		Translated: true,
		Provider:   resp.ProviderName,
		LatencyMs:  resp.LatencyMs,
	}
}
