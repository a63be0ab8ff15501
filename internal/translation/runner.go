package translation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/globaltime"
	"lingye.co/catalog/internal/language"
)

// AllTargets selects every kind or every active language in RunOptions.
const AllTargets = "all"

type LogStatus string

const (
	LogStatusSuccess LogStatus = "success"
	LogStatusPartial LogStatus = "partial"
	LogStatusFailed  LogStatus = "failed"
)

// LogEntry is the audit record of one batch run.
type LogEntry struct {
	RunUUID         string
	TranslationType string
	TargetLanguage  string
	Status          LogStatus
	Message         string
	Logs            string
	ItemsProcessed  int
	ItemsSuccess    int
	ItemsFailed     int
	Duration        time.Duration
	CreatedAt       time.Time
}

// SuccessRate is items_success/items_processed as a percentage rounded to
// two decimals, 0 when nothing was processed.
func (e LogEntry) SuccessRate() float64 {
	return SuccessRate(e.ItemsSuccess, e.ItemsProcessed)
}

func SuccessRate(success, processed int) float64 {
	if processed <= 0 {
		return 0
	}
	return math.Round(float64(success)/float64(processed)*10000) / 100
}

// RecordSource lists the records a batch run translates.
type RecordSource interface {
	ListTranslationRecords(ctx context.Context, kind Kind) ([]Record, error)
}

// LogSink stores batch run audit entries.
type LogSink interface {
	CreateTranslationLog(ctx context.Context, entry LogEntry) error
}

// RunOptions selects what one batch run covers. Kind and Language accept
// AllTargets.
type RunOptions struct {
	Kind     string
	Language string
	Force    bool
	Progress func(RunProgress)
}

// RunProgress reports one finished (kind, language) pass.
type RunProgress struct {
	Kind     Kind
	Language string
	Stats    Stats
}

// BatchRunner drives orchestrator batches across kinds and languages and
// writes one audit entry per run.
type BatchRunner struct {
	orchestrator *Orchestrator
	records      RecordSource
	logs         LogSink
	logger       zerolog.Logger
}

func NewBatchRunner(orchestrator *Orchestrator, records RecordSource, logs LogSink, logger zerolog.Logger) *BatchRunner {
	return &BatchRunner{
		orchestrator: orchestrator,
		records:      records,
		logs:         logs,
		logger:       logger,
	}
}

// ResolveRunTargets expands "all" and validates explicit values.
func ResolveRunTargets(rawKind, rawLang string) ([]Kind, []string, error) {
	var kinds []Kind
	switch strings.ToLower(strings.TrimSpace(rawKind)) {
	case "", AllTargets:
		kinds = RecordKinds()
	default:
		kind, err := ParseKind(rawKind)
		if err != nil {
			return nil, nil, err
		}
		kinds = []Kind{kind}
	}

	var langs []string
	switch strings.ToLower(strings.TrimSpace(rawLang)) {
	case "", AllTargets:
		langs = language.Targets()
	default:
		lang := language.Base(rawLang)
		if !language.IsTarget(lang) {
			return nil, nil, fmt.Errorf("unsupported target language %q (supported: %s)", rawLang, strings.Join(language.Targets(), ", "))
		}
		langs = []string{lang}
	}
	return kinds, langs, nil
}

// Run executes one batch run. The audit entry is written whether the run
// succeeds or not; the returned error covers hard failures only.
func (r *BatchRunner) Run(ctx context.Context, opts RunOptions) (LogEntry, error) {
	started := globaltime.Now()
	entry := LogEntry{
		RunUUID:         uuid.NewString(),
		TranslationType: normalizedTarget(opts.Kind),
		TargetLanguage:  normalizedTarget(opts.Language),
	}

	kinds, langs, err := ResolveRunTargets(opts.Kind, opts.Language)
	if err != nil {
		return entry, err
	}

	var (
		total    Stats
		lines    []string
		runErr   error
		problems int
	)

run:
	for _, lang := range langs {
		for _, kind := range kinds {
			stats, passErr := r.runPass(ctx, kind, lang, opts.Force)
			total.add(stats)
			line := fmt.Sprintf("%s/%s: total=%d translated=%d cached=%d skipped=%d failed=%d",
				kind, lang, stats.Total, stats.Translated, stats.Cached, stats.Skipped, stats.Failed)
			if passErr != nil {
				line += " error=" + passErr.Error()
				problems++
			}
			lines = append(lines, line)
			if opts.Progress != nil {
				opts.Progress(RunProgress{Kind: kind, Language: lang, Stats: stats})
			}
			if passErr != nil && isHardFailure(passErr) {
				runErr = passErr
				break run
			}
		}
	}

	entry.ItemsProcessed = total.Total
	entry.ItemsFailed = total.Failed
	entry.ItemsSuccess = total.Total - total.Failed
	entry.Logs = strings.Join(lines, "\n")
	entry.Status, entry.Message = summarize(total, problems, runErr)
	entry.CreatedAt = globaltime.UTC()
	entry.Duration = globaltime.Now().Sub(started)

	logEvent := r.logger.Info()
	if entry.Status != LogStatusSuccess {
		logEvent = r.logger.Warn()
	}
	logEvent.
		Str("run_uuid", entry.RunUUID).
		Str("kind", entry.TranslationType).
		Str("lang", entry.TargetLanguage).
		Str("status", string(entry.Status)).
		Int("processed", entry.ItemsProcessed).
		Int("failed", entry.ItemsFailed).
		Dur("duration", entry.Duration).
		Msg("translation run finished")

	if r.logs != nil {
		if err := r.logs.CreateTranslationLog(ctx, entry); err != nil {
			r.logger.Error().Err(err).Str("run_uuid", entry.RunUUID).Msg("write translation log")
			return entry, errors.Join(runErr, fmt.Errorf("write translation log: %w", err))
		}
	}
	return entry, runErr
}

// errSave marks a pass whose durable write failed. Later passes still run.
var errSave = errors.New("save translation file")

func (r *BatchRunner) runPass(ctx context.Context, kind Kind, lang string, force bool) (Stats, error) {
	if kind == KindFrontend {
		_, stats := r.orchestrator.PretranslateFrontend(ctx, lang, force)
		if err := ctx.Err(); err != nil {
			return stats.Stats, err
		}
		return stats.Stats, nil
	}

	records, err := r.records.ListTranslationRecords(ctx, kind)
	if err != nil {
		return Stats{}, fmt.Errorf("list %s records: %w", kind, err)
	}
	result, err := r.orchestrator.TranslateModelBatch(ctx, kind, records, lang, force)
	if err != nil {
		return result.Stats, err
	}
	if result.SaveErr != nil {
		return result.Stats, fmt.Errorf("%w: %v", errSave, result.SaveErr)
	}
	return result.Stats, nil
}

func isHardFailure(err error) bool {
	return !errors.Is(err, errSave)
}

// summarize maps counters to an audit status: failed when the run aborted
// or nothing succeeded, partial when some items or files failed.
func summarize(total Stats, problems int, runErr error) (LogStatus, string) {
	switch {
	case runErr != nil:
		return LogStatusFailed, "translation run failed: " + runErr.Error()
	case total.Total > 0 && total.Failed == total.Total:
		return LogStatusFailed, fmt.Sprintf("all %d item(s) failed to translate", total.Total)
	case total.Failed > 0 || problems > 0:
		return LogStatusPartial, fmt.Sprintf("translated %d of %d item(s), %d failed", total.Total-total.Failed, total.Total, total.Failed)
	case total.Total == 0:
		return LogStatusSuccess, "nothing to translate"
	default:
		return LogStatusSuccess, fmt.Sprintf("translated %d item(s)", total.Total)
	}
}

func normalizedTarget(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return AllTargets
	}
	return trimmed
}
