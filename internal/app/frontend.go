package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/translation"
)

func runTranslateFrontend(args []string) int {
	fs := flag.NewFlagSet("translate-frontend", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	lang := fs.String("lang", translation.AllTargets, "Target language ("+strings.Join(language.Targets(), ", ")+", or all)")
	provider := fs.String("provider", "", "Translation provider name (google or local)")
	force := fs.Bool("force", false, "Retranslate even when a frontend file already exists")
	timeout := fs.Duration("timeout", 30*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	_, langs, err := translation.ResolveRunTargets(translation.KindFrontend.String(), *lang)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rt, err := loadRuntime(envLoader, strings.TrimSpace(*provider))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := signalContext(context.Background())
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	exitCode := 0
	for _, target := range langs {
		_, stats := rt.orchestrator.PretranslateFrontend(ctx, target, *force)
		switch {
		case stats.Existing:
			fmt.Printf("frontend %s: already translated, use --force to redo\n", target)
		default:
			fmt.Printf("frontend %s: total=%d translated=%d cached=%d skipped=%d failed=%d provider=%s\n",
				target, stats.Total, stats.Translated, stats.Cached, stats.Skipped, stats.Failed, rt.provider)
			if stats.Failed > 0 {
				exitCode = 1
			}
		}
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "Stopped: %v\n", ctx.Err())
			return 1
		}
	}
	return exitCode
}
