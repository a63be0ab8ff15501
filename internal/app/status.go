package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/translation"
)

func runTranslationStatus(args []string) int {
	fs := flag.NewFlagSet("translation-status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kindFlag := fs.String("model", "", "Model kind of the record")
	id := fs.Int64("id", 0, "Record id")
	lang := fs.String("lang", translation.AllTargets, "Language to inspect, or all")
	formatRaw := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	kind, err := translation.ParseKind(*kindFlag)
	if err != nil || !kind.IsRecordKind() {
		fmt.Fprintf(os.Stderr, "--model must be one of: %s\n", joinKinds(translation.RecordKinds()))
		return 2
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "--id must be a positive integer")
		return 2
	}
	format, err := parseOutputFormat(*formatRaw, outputFormatTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	_, langs, err := translation.ResolveRunTargets(kind.String(), *lang)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rt, err := loadRuntime(envLoader, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	type row struct {
		Language string             `json:"language"`
		Status   translation.Status `json:"status"`
	}
	rows := make([]row, 0, len(langs))
	for _, target := range langs {
		status, err := rt.orchestrator.GetTranslationStatus(kind, *id, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status for %s failed: %v\n", target, err)
			return 1
		}
		rows = append(rows, row{Language: target, Status: status})
	}

	if format == outputFormatJSON {
		if err := printJSON(map[string]any{"model": kind, "id": *id, "languages": rows}); err != nil {
			fmt.Fprintf(os.Stderr, "Write output failed: %v\n", err)
			return 1
		}
		return 0
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Language,
			language.EnglishName(r.Language),
			string(r.Status.Status),
			strings.Join(r.Status.TranslatedFields, ","),
			strings.Join(r.Status.MissingFields, ","),
		})
	}
	if err := writeTable(os.Stdout, []string{"LANG", "NAME", "STATUS", "TRANSLATED", "MISSING"}, table); err != nil {
		fmt.Fprintf(os.Stderr, "Write output failed: %v\n", err)
		return 1
	}
	return 0
}
