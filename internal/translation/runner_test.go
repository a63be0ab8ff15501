package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/globaltime"
)

type stubRecordSource struct {
	records map[Kind][]Record
	err     error
}

func (s *stubRecordSource) ListTranslationRecords(_ context.Context, kind Kind) ([]Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[kind], nil
}

type stubLogSink struct {
	entries []LogEntry
	err     error
}

func (s *stubLogSink) CreateTranslationLog(_ context.Context, entry LogEntry) error {
	s.entries = append(s.entries, entry)
	return s.err
}

func TestSuccessRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		success, processed int
		want               float64
	}{
		{0, 0, 0},
		{3, 3, 100},
		{2, 3, 66.67},
		{1, 8, 12.5},
	}
	for _, tc := range cases {
		if got := SuccessRate(tc.success, tc.processed); got != tc.want {
			t.Fatalf("SuccessRate(%d, %d) = %v, want %v", tc.success, tc.processed, got, tc.want)
		}
	}
}

func TestResolveRunTargets(t *testing.T) {
	t.Parallel()

	kinds, langs, err := ResolveRunTargets("all", "all")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(kinds) != len(RecordKinds()) || len(langs) != 3 {
		t.Fatalf("unexpected targets %v %v", kinds, langs)
	}

	kinds, langs, err = ResolveRunTargets("product", "zh-CN")
	if err != nil || len(kinds) != 1 || kinds[0] != KindProduct || langs[0] != "zh" {
		t.Fatalf("unexpected explicit targets %v %v %v", kinds, langs, err)
	}

	if _, _, err := ResolveRunTargets("product", "fr"); err == nil {
		t.Fatalf("deprecated languages must be rejected")
	}
	if _, _, err := ResolveRunTargets("inquiry", "zh"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestBatchRunnerWritesSuccessLog(t *testing.T) {
	globaltime.SetMockTime(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	defer globaltime.ResetTime()

	f := newFixture(t)
	source := &stubRecordSource{records: map[Kind][]Record{KindCategory: categoryRecords()}}
	sink := &stubLogSink{}
	runner := NewBatchRunner(f.orchestrator, source, sink, zerolog.Nop())

	var progress []RunProgress
	entry, err := runner.Run(context.Background(), RunOptions{
		Kind:     "category",
		Language: "zh",
		Progress: func(p RunProgress) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(sink.entries))
	}
	if entry.Status != LogStatusSuccess || entry.ItemsProcessed != 4 || entry.ItemsSuccess != 4 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.TranslationType != "category" || entry.TargetLanguage != "zh" || entry.RunUUID == "" {
		t.Fatalf("unexpected entry identity %+v", entry)
	}
	if !entry.CreatedAt.Equal(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", entry.CreatedAt)
	}
	if len(progress) != 1 || progress[0].Stats.Translated != 4 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestBatchRunnerReportsPartialFailures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.provider.fail["Door Profiles"] = true
	source := &stubRecordSource{records: map[Kind][]Record{KindCategory: categoryRecords()}}
	sink := &stubLogSink{}
	runner := NewBatchRunner(f.orchestrator, source, sink, zerolog.Nop())

	entry, err := runner.Run(context.Background(), RunOptions{Kind: "category", Language: "es"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if entry.Status != LogStatusPartial || entry.ItemsFailed != 1 || entry.ItemsSuccess != 3 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.SuccessRate() != 75 {
		t.Fatalf("success rate = %v", entry.SuccessRate())
	}
}

func TestBatchRunnerRecordsHardFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	source := &stubRecordSource{err: errors.New("connection refused")}
	sink := &stubLogSink{}
	runner := NewBatchRunner(f.orchestrator, source, sink, zerolog.Nop())

	entry, err := runner.Run(context.Background(), RunOptions{Kind: "all", Language: "all"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if entry.Status != LogStatusFailed || entry.TranslationType != "all" || entry.TargetLanguage != "all" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(sink.entries) != 1 || sink.entries[0].Message == "" {
		t.Fatalf("failed runs must still be logged: %+v", sink.entries)
	}
}
