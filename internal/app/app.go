package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "serve":
		return runServe(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "translate-object":
		return runTranslateObject(args[1:])
	case "translate-frontend":
		return runTranslateFrontend(args[1:])
	case "translation-status":
		return runTranslationStatus(args[1:])
	case "translation-logs":
		return runTranslationLogs(args[1:])
	case "cleanup-translations":
		return runCleanupTranslations(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "catalog CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  catalog <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health                Verify database connectivity and the translations directory")
	fmt.Fprintln(os.Stderr, "  serve                 Start the catalog API server")
	fmt.Fprintln(os.Stderr, "  translate             Batch-translate catalog records and record a translation log")
	fmt.Fprintln(os.Stderr, "  translate-object      Re-translate one record into every active language")
	fmt.Fprintln(os.Stderr, "  translate-frontend    Pre-translate the website UI strings")
	fmt.Fprintln(os.Stderr, "  translation-status    Show which fields of one record are translated")
	fmt.Fprintln(os.Stderr, "  translation-logs      List recent translation runs")
	fmt.Fprintln(os.Stderr, "  cleanup-translations  Delete translation files of retired languages")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"catalog <command> -h\" for command-specific flags.")
}
