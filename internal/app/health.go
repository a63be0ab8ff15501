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
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Database connect timeout")

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
	if err := rt.connect(*timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := rt.pool.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Database ping failed: %v\n", err)
		return 1
	}

	files, err := rt.orchestrator.Store().Files()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translations directory unreadable: %v\n", err)
		return 1
	}

	if len(rt.unsupported) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: provider %s does not support: %s\n", rt.provider, strings.Join(rt.unsupported, ", "))
	}
	fmt.Printf("ok database=up provider=%s translations_dir=%s translation_files=%d\n",
		rt.provider, rt.orchestrator.Store().Dir(), len(files))
	return 0
}
