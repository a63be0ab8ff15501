package translation

import (
	"context"
	"sort"
	"strings"

	"lingye.co/catalog/internal/language"
)

// FrontendContent returns a copy of the English UI dictionary.
func FrontendContent() map[string]string {
	out := make(map[string]string, len(frontendStrings))
	for key, value := range frontendStrings {
		out[key] = value
	}
	return out
}

// GetFrontendContent returns the English UI string for key, or key itself
// when the dictionary has no such entry.
func GetFrontendContent(key string) string {
	if value, ok := frontendStrings[key]; ok {
		return value
	}
	return key
}

// FrontendKeys lists dictionary keys in sorted order.
func FrontendKeys() []string {
	keys := make([]string, 0, len(frontendStrings))
	for key := range frontendStrings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isUntranslatedFrontendKey(key string) bool {
	return strings.HasPrefix(key, "lang_")
}

// TranslateFrontendContent translates one UI string through the ephemeral
// tier. Unknown keys come back as the key.
func (o *Orchestrator) TranslateFrontendContent(ctx context.Context, key, targetLang string) string {
	original, ok := frontendStrings[key]
	if !ok {
		return key
	}
	if language.IsSource(targetLang) || isUntranslatedFrontendKey(key) {
		return original
	}
	return o.translateCached(ctx, original, language.Base(targetLang), language.Source, nil).Text
}

// GetAllFrontendContent returns the UI dictionary for a language. A stored
// frontend file wins; missing keys in it show English. Only when no file
// exists is every string translated live and the successes persisted.
func (o *Orchestrator) GetAllFrontendContent(ctx context.Context, targetLang string) map[string]string {
	if language.IsSource(targetLang) {
		return FrontendContent()
	}
	lang := language.Base(targetLang)

	if stored := o.store.Load(KindFrontend, lang); len(stored) > 0 {
		return overlayFrontend(stored)
	}

	content, _ := o.PretranslateFrontend(ctx, lang, false)
	return content
}

// FrontendStats counts one frontend pre-translation pass.
type FrontendStats struct {
	Stats
	// Existing is true when a stored file was present and left untouched.
	Existing bool
}

// PretranslateFrontend translates the whole dictionary for one language
// and writes the successful entries. Without force an existing non-empty
// file is returned as is.
func (o *Orchestrator) PretranslateFrontend(ctx context.Context, targetLang string, force bool) (map[string]string, FrontendStats) {
	if language.IsSource(targetLang) {
		return FrontendContent(), FrontendStats{}
	}
	lang := language.Base(targetLang)

	unlock := o.store.Lock(KindFrontend, lang)
	defer unlock()

	if !force {
		// Re-check under the lock; a concurrent request may have filled it.
		if stored := o.store.Load(KindFrontend, lang); len(stored) > 0 {
			return overlayFrontend(stored), FrontendStats{Existing: true}
		}
	}

	var (
		stats   FrontendStats
		aborted bool
	)
	content := FrontendContent()
	persisted := make(map[string]string, len(content))
	pace := o.pacer(ctx, o.opts.FrontendDelay)
	for _, key := range FrontendKeys() {
		original := content[key]
		stats.Total++
		if isUntranslatedFrontendKey(key) {
			persisted[key] = original
			stats.Skipped++
			continue
		}

		var outcome cachedResult
		if force {
			outcome = o.translateFresh(ctx, original, lang, language.Source, pace)
		} else {
			outcome = o.translateCached(ctx, original, lang, language.Source, pace)
		}
		switch {
		case outcome.aborted:
			stats.Total--
		case outcome.Failed():
			stats.Failed++
		case outcome.hit:
			stats.Cached++
		case outcome.Translated:
			stats.Translated++
		default:
			stats.Skipped++
		}
		if outcome.aborted {
			aborted = true
			break
		}
		if outcome.Failed() {
			continue
		}
		content[key] = outcome.Text
		persisted[key] = outcome.Text
	}

	// A completed pass is always written, even with no successes, so the
	// live fallback runs once per language. Failed keys stay out of the file
	// and show English until a forced pass fills them.
	if stats.Translated+stats.Cached > 0 || (!aborted && len(persisted) > 0) {
		if err := o.store.Save(KindFrontend, lang, persisted); err != nil {
			o.logger.Error().Err(err).Str("lang", lang).Msg("save frontend translations")
		}
	}
	if stats.Failed > 0 {
		o.logger.Warn().
			Str("lang", lang).
			Int("failed", stats.Failed).
			Msg("frontend strings left in English; rerun translate-frontend --force")
	}
	return content, stats
}

func overlayFrontend(stored map[string]string) map[string]string {
	content := FrontendContent()
	for key, value := range stored {
		if value != "" {
			content[key] = value
		}
	}
	return content
}
