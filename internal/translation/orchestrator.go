package translation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/language"
)

// TextTranslator is the single-string translation seam the orchestrator
// depends on. *Translator implements it.
type TextTranslator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) Result
}

// pacedTranslator runs a hook only when a provider call is about to happen.
// Translators without it are paced before every call.
type pacedTranslator interface {
	TranslatePaced(ctx context.Context, text, targetLang, sourceLang string, beforeCall func() error) Result
}

// Options tunes provider pacing. Delays apply between provider calls only,
// never between cache hits.
type Options struct {
	BatchDelay    time.Duration
	FrontendDelay time.Duration
}

// Orchestrator decides, per (kind, record, field, language), whether a stored
// translation exists and otherwise calls the translator and records the
// result.
type Orchestrator struct {
	translator TextTranslator
	cache      EphemeralCache
	store      *FileStore
	logger     zerolog.Logger
	opts       Options
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewOrchestrator(translator TextTranslator, cache EphemeralCache, store *FileStore, logger zerolog.Logger, opts Options) *Orchestrator {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Orchestrator{
		translator: translator,
		cache:      cache,
		store:      store,
		logger:     logger,
		opts:       opts,
		sleep:      sleepContext,
	}
}

func (o *Orchestrator) Store() *FileStore {
	return o.store
}

// Stats counts what one batch or single-object pass did.
type Stats struct {
	Total      int `json:"total"`
	Translated int `json:"translated"`
	Cached     int `json:"cached"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

func (s *Stats) add(other Stats) {
	s.Total += other.Total
	s.Translated += other.Translated
	s.Cached += other.Cached
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Written is the number of entries inserted or overwritten.
func (s Stats) Written() int {
	return s.Translated + s.Cached + s.Skipped
}

// BatchResult is the durable mapping after a pass plus its counters.
// SaveErr is set when the final write failed; the mapping still holds the
// in-memory progress.
type BatchResult struct {
	Kind     Kind
	Language string
	Entries  map[FieldKey]string
	Stats    Stats
	SaveErr  error

	// unparsed carries durable keys that are not "{field}_{id}" shaped so a
	// rewrite does not drop them.
	unparsed map[string]string
}

// Mapping renders the entries in durable-file form.
func (r BatchResult) Mapping() map[string]string {
	out := make(map[string]string, len(r.Entries)+len(r.unparsed))
	for key, value := range r.unparsed {
		out[key] = value
	}
	for key, value := range r.Entries {
		out[key.String()] = value
	}
	return out
}

func splitMapping(mapping map[string]string) (map[FieldKey]string, map[string]string) {
	entries := make(map[FieldKey]string, len(mapping))
	var unparsed map[string]string
	for raw, value := range mapping {
		key, ok := ParseFieldKey(raw)
		if !ok {
			if unparsed == nil {
				unparsed = make(map[string]string)
			}
			unparsed[raw] = value
			continue
		}
		entries[key] = value
	}
	return entries, unparsed
}

// TranslateText returns text in targetLang. Source-language requests return
// text unchanged without touching any cache. Failures return text.
func (o *Orchestrator) TranslateText(ctx context.Context, text, targetLang, sourceLang string) string {
	return o.translateCached(ctx, text, targetLang, sourceLang, nil).Text
}

// translateCached runs ephemeral lookup, then the translator, then
// write-through. pace runs only right before a provider call.
func (o *Orchestrator) translateCached(ctx context.Context, text, targetLang, sourceLang string, pace func() error) cachedResult {
	if text == "" || isSourceTarget(targetLang, sourceLang) {
		return cachedResult{Result: Result{Text: text}}
	}
	if cached, ok := o.cache.Get(text, targetLang); ok && cached != "" {
		return cachedResult{Result: Result{Text: cached}, hit: true}
	}
	return o.translateFresh(ctx, text, targetLang, sourceLang, pace)
}

// translateFresh skips the ephemeral read but still writes through.
func (o *Orchestrator) translateFresh(ctx context.Context, text, targetLang, sourceLang string, pace func() error) cachedResult {
	if text == "" || isSourceTarget(targetLang, sourceLang) {
		return cachedResult{Result: Result{Text: text}}
	}
	result, aborted := o.callTranslator(ctx, text, targetLang, sourceLang, pace)
	if aborted {
		return cachedResult{Result: result, aborted: true}
	}
	if result.Translated {
		o.cache.Put(text, targetLang, result.Text)
	}
	return cachedResult{Result: result}
}

// callTranslator reports aborted when pace failed, in which case the
// provider was not called.
func (o *Orchestrator) callTranslator(ctx context.Context, text, targetLang, sourceLang string, pace func() error) (Result, bool) {
	if pace == nil {
		return o.translator.Translate(ctx, text, targetLang, sourceLang), false
	}
	if paced, ok := o.translator.(pacedTranslator); ok {
		var paceErr error
		result := paced.TranslatePaced(ctx, text, targetLang, sourceLang, func() error {
			paceErr = pace()
			return paceErr
		})
		return result, paceErr != nil
	}
	if err := pace(); err != nil {
		return Result{Text: text, Err: err}, true
	}
	return o.translator.Translate(ctx, text, targetLang, sourceLang), false
}

type cachedResult struct {
	Result
	hit     bool
	aborted bool
}

func isSourceTarget(targetLang, sourceLang string) bool {
	source := language.Base(sourceLang)
	if source == "" {
		source = language.Source
	}
	return language.Base(targetLang) == source
}

// TranslateModelBatch fills every missing field of every record for one
// kind and language, or every field when force is set. The durable file is
// rewritten once at the end when anything new was produced. The returned
// error is non-nil only for an invalid kind or a cancelled context.
func (o *Orchestrator) TranslateModelBatch(ctx context.Context, kind Kind, records []Record, targetLang string, force bool) (BatchResult, error) {
	if !kind.IsRecordKind() {
		return BatchResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	lang := language.Base(targetLang)
	result := BatchResult{Kind: kind, Language: lang, Entries: map[FieldKey]string{}}
	if language.IsSource(lang) {
		return result, nil
	}

	unlock := o.store.Lock(kind, lang)
	defer unlock()

	result.Entries, result.unparsed = splitMapping(o.store.Load(kind, lang))
	pace := o.pacer(ctx, o.opts.BatchDelay)

	var runErr error
loop:
	for _, record := range records {
		for _, field := range kind.Fields() {
			key := FieldKey{Field: field, ObjectID: record.ID}
			if _, exists := result.Entries[key]; exists && !force {
				continue
			}
			result.Stats.Total++

			text := record.Value(field)
			var outcome cachedResult
			if force {
				outcome = o.translateFresh(ctx, text, lang, language.Source, pace)
			} else {
				outcome = o.translateCached(ctx, text, lang, language.Source, pace)
			}
			if outcome.aborted {
				result.Stats.Total--
				runErr = outcome.Err
				break loop
			}
			if !o.recordOutcome(&result, key, outcome) {
				o.logger.Warn().
					Err(outcome.Err).
					Str("kind", kind.String()).
					Str("lang", lang).
					Str("key", key.String()).
					Msg("field translation failed")
			}
		}
	}

	if result.Stats.Written() > 0 {
		result.SaveErr = o.save(kind, lang, result)
	}
	return result, runErr
}

// recordOutcome stores a successful outcome and updates counters. Failed
// provider calls are not written so the next batch retries them.
func (o *Orchestrator) recordOutcome(result *BatchResult, key FieldKey, outcome cachedResult) bool {
	switch {
	case outcome.Failed():
		result.Stats.Failed++
		return false
	case outcome.hit:
		result.Stats.Cached++
	case outcome.Translated:
		result.Stats.Translated++
	default:
		result.Stats.Skipped++
	}
	result.Entries[key] = outcome.Text
	return true
}

// TranslateSingleObject re-translates every field of one record, ignoring
// stored entries and the ephemeral tier, and persists immediately.
func (o *Orchestrator) TranslateSingleObject(ctx context.Context, kind Kind, record Record, targetLang string) (BatchResult, error) {
	if !kind.IsRecordKind() {
		return BatchResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	lang := language.Base(targetLang)
	result := BatchResult{Kind: kind, Language: lang, Entries: map[FieldKey]string{}}
	if language.IsSource(lang) {
		return result, nil
	}

	unlock := o.store.Lock(kind, lang)
	defer unlock()

	result.Entries, result.unparsed = splitMapping(o.store.Load(kind, lang))
	pace := o.pacer(ctx, o.opts.BatchDelay)

	var runErr error
	for _, field := range kind.Fields() {
		key := FieldKey{Field: field, ObjectID: record.ID}
		result.Stats.Total++
		outcome := o.translateFresh(ctx, record.Value(field), lang, language.Source, pace)
		if outcome.aborted {
			result.Stats.Total--
			runErr = outcome.Err
			break
		}
		if !o.recordOutcome(&result, key, outcome) {
			o.logger.Warn().
				Err(outcome.Err).
				Str("kind", kind.String()).
				Str("lang", lang).
				Int64("object_id", record.ID).
				Str("field", field).
				Msg("field translation failed")
		}
	}

	if result.Stats.Written() > 0 {
		result.SaveErr = o.save(kind, lang, result)
	}
	return result, runErr
}

// AutoTranslateOutcome is the per-language result of AutoTranslate.
type AutoTranslateOutcome struct {
	Language string `json:"language"`
	Stats    Stats  `json:"stats"`
	Error    string `json:"error,omitempty"`
}

// AutoTranslate runs TranslateSingleObject for every active target
// language. A failing language does not stop the others.
func (o *Orchestrator) AutoTranslate(ctx context.Context, kind Kind, record Record) []AutoTranslateOutcome {
	targets := language.Targets()
	outcomes := make([]AutoTranslateOutcome, 0, len(targets))
	for _, lang := range targets {
		result, err := o.TranslateSingleObject(ctx, kind, record, lang)
		outcome := AutoTranslateOutcome{Language: lang, Stats: result.Stats}
		switch {
		case err != nil:
			outcome.Error = err.Error()
		case result.SaveErr != nil:
			outcome.Error = result.SaveErr.Error()
		case result.Stats.Failed > 0:
			outcome.Error = fmt.Sprintf("%d field(s) failed to translate", result.Stats.Failed)
		}
		if outcome.Error != "" {
			o.logger.Warn().
				Str("kind", kind.String()).
				Int64("object_id", record.ID).
				Str("lang", lang).
				Str("error", outcome.Error).
				Msg("auto-translate incomplete")
		} else {
			o.logger.Info().
				Str("kind", kind.String()).
				Int64("object_id", record.ID).
				Str("lang", lang).
				Msg("auto-translate completed")
		}
		outcomes = append(outcomes, outcome)
		if ctx.Err() != nil {
			break
		}
	}
	return outcomes
}

// GetTranslatedText is a read-only durable lookup. It reports false for the
// source language and for missing entries; callers fall back to the
// original value.
func (o *Orchestrator) GetTranslatedText(kind Kind, objectID int64, field, targetLang string) (string, bool) {
	return o.store.GetField(kind, objectID, field, targetLang)
}

// Localize returns the stored translation of a field or original.
func (o *Orchestrator) Localize(kind Kind, objectID int64, field, targetLang, original string) string {
	if value, ok := o.GetTranslatedText(kind, objectID, field, targetLang); ok && value != "" {
		return value
	}
	return original
}

// Localizer answers field lookups for one kind and language from a single
// load of the durable file. Serializers use it to avoid re-reading the file
// for every field of a list response.
type Localizer struct {
	entries map[string]string
}

func (o *Orchestrator) Localizer(kind Kind, targetLang string) Localizer {
	if language.IsSource(targetLang) {
		return Localizer{}
	}
	return Localizer{entries: o.store.Load(kind, targetLang)}
}

func (l Localizer) Text(objectID int64, field, original string) string {
	if value, ok := l.entries[FieldKey{Field: field, ObjectID: objectID}.String()]; ok && value != "" {
		return value
	}
	return original
}

type StatusCode string

const (
	StatusNotNeeded  StatusCode = "not_needed"
	StatusCompleted  StatusCode = "completed"
	StatusNotStarted StatusCode = "not_started"
	StatusPartial    StatusCode = "partial"
)

// Status describes how much of one record is translated for a language.
type Status struct {
	Status           StatusCode `json:"status"`
	Message          string     `json:"message"`
	TranslatedFields []string   `json:"translated_fields,omitempty"`
	MissingFields    []string   `json:"missing_fields,omitempty"`
}

// GetTranslationStatus inspects the durable entries of one record.
func (o *Orchestrator) GetTranslationStatus(kind Kind, objectID int64, targetLang string) (Status, error) {
	if !kind.IsRecordKind() {
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if language.IsSource(targetLang) {
		return Status{Status: StatusNotNeeded, Message: "source language does not need translation"}, nil
	}

	mapping := o.store.Load(kind, targetLang)
	var translated, missing []string
	for _, field := range kind.Fields() {
		if _, ok := mapping[FieldKey{Field: field, ObjectID: objectID}.String()]; ok {
			translated = append(translated, field)
		} else {
			missing = append(missing, field)
		}
	}

	switch {
	case len(missing) == 0:
		return Status{Status: StatusCompleted, Message: "translation completed", TranslatedFields: translated}, nil
	case len(translated) == 0:
		return Status{Status: StatusNotStarted, Message: "translation not started", MissingFields: missing}, nil
	default:
		return Status{Status: StatusPartial, Message: "translation partially completed", TranslatedFields: translated, MissingFields: missing}, nil
	}
}

func (o *Orchestrator) save(kind Kind, lang string, result BatchResult) error {
	if err := o.store.Save(kind, lang, result.Mapping()); err != nil {
		o.logger.Error().
			Err(err).
			Str("kind", kind.String()).
			Str("lang", lang).
			Msg("save translation file")
		return err
	}
	o.logger.Debug().
		Str("kind", kind.String()).
		Str("lang", lang).
		Int("entries", len(result.Entries)).
		Msg("saved translation file")
	return nil
}

// pacer returns a hook that waits delay before every provider call except
// the first one of a pass.
func (o *Orchestrator) pacer(ctx context.Context, delay time.Duration) func() error {
	called := false
	return func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if called && delay > 0 {
			if err := o.sleep(ctx, delay); err != nil {
				return err
			}
		}
		called = true
		return nil
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
