package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/logging"
	"lingye.co/catalog/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kind := fs.String("model", translation.AllTargets, "Model kind to translate (product, category, subcategory, article, contact_info, company_info, advantage, certificate, or all)")
	lang := fs.String("lang", translation.AllTargets, "Target language ("+strings.Join(language.Targets(), ", ")+", or all)")
	provider := fs.String("provider", "", "Translation provider name (google or local)")
	force := fs.Bool("force", false, "Retranslate fields that already have a stored translation")
	timeout := fs.Duration("timeout", 2*time.Hour, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if _, _, err := translation.ResolveRunTargets(*kind, *lang); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rt, err := loadRuntime(envLoader, strings.TrimSpace(*provider))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := rt.connect(30 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.close()

	ctx, cancel := signalContext(context.Background())
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	runner := translation.NewBatchRunner(rt.orchestrator, rt.pool, rt.pool, logging.Component(rt.logger, "translation_runner"))
	entry, runErr := runner.Run(ctx, translation.RunOptions{
		Kind:     *kind,
		Language: *lang,
		Force:    *force,
		Progress: func(p translation.RunProgress) {
			fmt.Printf("%s -> %s: total=%d translated=%d cached=%d skipped=%d failed=%d\n",
				p.Kind, p.Language, p.Stats.Total, p.Stats.Translated, p.Stats.Cached, p.Stats.Skipped, p.Stats.Failed)
		},
	})

	fmt.Printf(
		"translate run=%s model=%s lang=%s provider=%s status=%s processed=%d success=%d failed=%d success_rate=%s duration=%s force=%t\n",
		entry.RunUUID,
		entry.TranslationType,
		entry.TargetLanguage,
		rt.provider,
		entry.Status,
		entry.ItemsProcessed,
		entry.ItemsSuccess,
		entry.ItemsFailed,
		strconv.FormatFloat(entry.SuccessRate(), 'f', 2, 64)+"%",
		entry.Duration.Round(time.Millisecond),
		*force,
	)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", runErr)
		return 1
	}
	if entry.Status == translation.LogStatusFailed {
		return 1
	}
	return 0
}

func runTranslateObject(args []string) int {
	fs := flag.NewFlagSet("translate-object", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kindFlag := fs.String("model", "", "Model kind of the record")
	id := fs.Int64("id", 0, "Record id")
	provider := fs.String("provider", "", "Translation provider name (google or local)")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")

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

	rt, err := loadRuntime(envLoader, strings.TrimSpace(*provider))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := rt.connect(30 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.close()

	ctx, cancel := signalContext(context.Background())
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	record, err := rt.pool.GetTranslationRecord(ctx, kind, *id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load %s %d failed: %v\n", kind, *id, err)
		return 1
	}

	exitCode := 0
	for _, outcome := range rt.orchestrator.AutoTranslate(ctx, kind, record) {
		status := "ok"
		if outcome.Error != "" {
			status = "error: " + outcome.Error
			exitCode = 1
		}
		fmt.Printf("%s %d -> %s: translated=%d cached=%d skipped=%d failed=%d %s\n",
			kind, *id, outcome.Language, outcome.Stats.Translated, outcome.Stats.Cached, outcome.Stats.Skipped, outcome.Stats.Failed, status)
	}
	return exitCode
}

func joinKinds(kinds []translation.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return strings.Join(names, ", ")
}
