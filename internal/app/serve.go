package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"lingye.co/catalog/internal/auth"
	"lingye.co/catalog/internal/catalog"
	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/httpapi"
	"lingye.co/catalog/internal/logging"
	"lingye.co/catalog/internal/templates"
	"lingye.co/catalog/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8090, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	rt, err := loadRuntime(envLoader, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := rt.connect(10 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.close()

	verifier := auth.NewVerifier(rt.cfg.AdminTokenHash)
	if !verifier.Enabled() {
		rt.logger.Warn().Msg("ADMIN_TOKEN_HASH is empty; admin translation endpoints will reject every request")
	}

	serializer := catalog.NewSerializer(rt.orchestrator, templates.NewResolver(rt.pool), catalog.Options{
		MediaBaseURL: rt.cfg.MediaBaseURL,
		SiteURL:      rt.cfg.SiteURL,
		ExcerptRunes: rt.cfg.ArticleExcerptRunes,
	})
	runner := translation.NewBatchRunner(rt.orchestrator, rt.pool, rt.pool, logging.Component(rt.logger, "translation_runner"))

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	srv := httpapi.NewServer(httpapi.Deps{
		Store:        rt.pool,
		Serializer:   serializer,
		Translations: rt.orchestrator,
		Runner:       runner,
		Verifier:     verifier,
		Logger:       logging.Component(rt.logger, "http"),
	}, httpapi.Options{
		Host:            *host,
		Port:            *port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
		AllowedOrigins:  rt.cfg.CORSAllowedOriginsList(),
	})

	if err := srv.Start(ctx); err != nil {
		rt.logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}
