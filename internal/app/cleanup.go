package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/translation"
)

// retiredFiles lists stored files whose language is no longer served.
func retiredFiles(files []translation.StoredFile) []translation.StoredFile {
	deprecated := make(map[string]struct{}, len(language.Deprecated()))
	for _, code := range language.Deprecated() {
		deprecated[code] = struct{}{}
	}

	out := make([]translation.StoredFile, 0, len(files))
	for _, file := range files {
		if _, ok := deprecated[file.Language]; ok {
			out = append(out, file)
		}
	}
	return out
}

func runCleanupTranslations(args []string) int {
	fs := flag.NewFlagSet("cleanup-translations", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dryRun := fs.Bool("dry-run", false, "List the files that would be deleted")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rt, err := loadRuntime(envLoader, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	store := rt.orchestrator.Store()
	files, err := store.Files()
	if err != nil {
		fmt.Fprintf(os.Stderr, "List translation files failed: %v\n", err)
		return 1
	}

	retired := retiredFiles(files)
	if len(retired) == 0 {
		fmt.Println("no translation files for retired languages")
		return 0
	}

	rows := make([][]string, 0, len(retired))
	exitCode := 0
	for _, file := range retired {
		action := "would delete"
		if !*dryRun {
			action = "deleted"
			if err := store.Remove(file.Kind, file.Language); err != nil {
				rt.logger.Error().Err(err).Str("file", file.Name).Msg("remove translation file failed")
				action = "error: " + err.Error()
				exitCode = 1
			} else {
				rt.logger.Info().Str("file", file.Name).Msg("removed retired translation file")
			}
		}
		rows = append(rows, []string{file.Name, file.Kind.String(), file.Language, strconv.FormatInt(file.Size, 10), action})
	}
	if err := writeTable(os.Stdout, []string{"FILE", "MODEL", "LANG", "BYTES", "ACTION"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Write output failed: %v\n", err)
		return 1
	}
	return exitCode
}
