package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"lingye.co/catalog/internal/translation"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	if code := Run([]string{"frobnicate"}); code != 2 {
		t.Fatalf("unexpected exit code: %d", code)
	}
	if code := Run(nil); code != 2 {
		t.Fatalf("unexpected exit code without args: %d", code)
	}
	if code := Run([]string{"help"}); code != 0 {
		t.Fatalf("unexpected exit code for help: %d", code)
	}
}

func TestCommandsValidateFlagsBeforeConnecting(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		{"translate", "--model", "widget"},
		{"translate", "--lang", "de"},
		{"translate-object", "--model", "product"},
		{"translate-object", "--model", "frontend", "--id", "1"},
		{"translate-frontend", "--lang", "klingon"},
		{"translation-status", "--model", "product", "--id", "1", "--format", "xml"},
		{"translation-logs", "--limit", "0"},
		{"translation-logs", "--format", "csv"},
	}
	for _, args := range cases {
		if code := Run(args); code != 2 {
			t.Fatalf("%v: unexpected exit code %d", args, code)
		}
	}
}

func TestRetiredFilesKeepsDeprecatedLanguagesOnly(t *testing.T) {
	t.Parallel()

	files := []translation.StoredFile{
		{Name: "product_de.json", Kind: translation.KindProduct, Language: "de"},
		{Name: "product_es.json", Kind: translation.KindProduct, Language: "es"},
		{Name: "frontend_ru.json", Kind: translation.KindFrontend, Language: "ru"},
		{Name: "category_zh.json", Kind: translation.KindCategory, Language: "zh"},
	}
	got := retiredFiles(files)
	if len(got) != 2 || got[0].Name != "product_de.json" || got[1].Name != "frontend_ru.json" {
		t.Fatalf("unexpected retired files: %#v", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	if got, err := parseOutputFormat(" JSON ", outputFormatTable); err != nil || got != outputFormatJSON {
		t.Fatalf("unexpected format: %q %v", got, err)
	}
	if got, err := parseOutputFormat("", outputFormatTable); err != nil || got != outputFormatTable {
		t.Fatalf("unexpected default format: %q %v", got, err)
	}
	if _, err := parseOutputFormat("yaml", outputFormatTable); err == nil {
		t.Fatalf("expected error for yaml")
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeTable(&buf, []string{"LANG", "STATUS"}, [][]string{{"es", "completed"}, {"zh", "partial"}})
	if err != nil {
		t.Fatalf("write table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "es    completed") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
}

func TestToLogRowsFormatsTimestampsAndRates(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CST", 8*3600))
	rows := toLogRows([]translation.LogEntry{{
		RunUUID:         "run-1",
		TranslationType: "product",
		TargetLanguage:  "es",
		Status:          translation.LogStatusPartial,
		ItemsProcessed:  3,
		ItemsSuccess:    2,
		ItemsFailed:     1,
		Duration:        1500 * time.Millisecond,
		CreatedAt:       created,
	}, {RunUUID: "run-2"}})

	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if rows[0].CreatedAt != "2026-03-01T01:30:00Z" {
		t.Fatalf("unexpected created_at: %q", rows[0].CreatedAt)
	}
	if rows[0].SuccessRate != 66.67 || rows[0].DurationSeconds != 1.5 {
		t.Fatalf("unexpected rate or duration: %#v", rows[0])
	}
	if rows[1].CreatedAt != "" || rows[1].SuccessRate != 0 {
		t.Fatalf("unexpected zero row: %#v", rows[1])
	}
}
