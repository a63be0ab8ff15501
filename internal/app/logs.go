package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/translation"
)

type logRow struct {
	RunUUID         string  `json:"run_uuid"`
	TranslationType string  `json:"translation_type"`
	TargetLanguage  string  `json:"target_language"`
	Status          string  `json:"status"`
	ItemsProcessed  int     `json:"items_processed"`
	ItemsSuccess    int     `json:"items_success"`
	ItemsFailed     int     `json:"items_failed"`
	SuccessRate     float64 `json:"success_rate"`
	DurationSeconds float64 `json:"duration_seconds"`
	Message         string  `json:"message"`
	CreatedAt       string  `json:"created_at"`
}

func toLogRows(entries []translation.LogEntry) []logRow {
	rows := make([]logRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, logRow{
			RunUUID:         e.RunUUID,
			TranslationType: e.TranslationType,
			TargetLanguage:  e.TargetLanguage,
			Status:          string(e.Status),
			ItemsProcessed:  e.ItemsProcessed,
			ItemsSuccess:    e.ItemsSuccess,
			ItemsFailed:     e.ItemsFailed,
			SuccessRate:     e.SuccessRate(),
			DurationSeconds: e.Duration.Seconds(),
			Message:         e.Message,
			CreatedAt:       formatUTCTimestamp(e.CreatedAt),
		})
	}
	return rows
}

func runTranslationLogs(args []string) int {
	fs := flag.NewFlagSet("translation-logs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kind := fs.String("type", "", "Filter by translation type (model kind or all)")
	lang := fs.String("lang", "", "Filter by target language")
	status := fs.String("status", "", "Filter by status: success, partial or failed")
	limit := fs.Int("limit", 20, "Maximum entries to show (1-200)")
	formatRaw := fs.String("format", outputFormatTable, "Output format: table or json")
	timeout := fs.Duration("timeout", 30*time.Second, "Query timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *limit <= 0 || *limit > 200 {
		fmt.Fprintln(os.Stderr, "--limit must be between 1 and 200")
		return 2
	}
	format, err := parseOutputFormat(*formatRaw, outputFormatTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rt, err := loadRuntime(envLoader, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := rt.connect(*timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	entries, err := rt.pool.ListTranslationLogs(ctx, db.TranslationLogFilter{
		TranslationType: *kind,
		TargetLanguage:  *lang,
		Status:          *status,
		Limit:           *limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "List translation logs failed: %v\n", err)
		return 1
	}
	rows := toLogRows(entries)

	if format == outputFormatJSON {
		if err := printJSON(rows); err != nil {
			fmt.Fprintf(os.Stderr, "Write output failed: %v\n", err)
			return 1
		}
		return 0
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.CreatedAt,
			r.TranslationType,
			r.TargetLanguage,
			r.Status,
			fmt.Sprintf("%d/%d", r.ItemsSuccess, r.ItemsProcessed),
			strconv.FormatFloat(r.SuccessRate, 'f', 2, 64),
			strconv.FormatFloat(r.DurationSeconds, 'f', 1, 64),
		})
	}
	if err := writeTable(os.Stdout, []string{"CREATED", "TYPE", "LANG", "STATUS", "OK", "RATE", "SECONDS"}, table); err != nil {
		fmt.Fprintf(os.Stderr, "Write output failed: %v\n", err)
		return 1
	}
	return 0
}
