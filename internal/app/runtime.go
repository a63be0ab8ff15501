package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/cli"
	"lingye.co/catalog/internal/config"
	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/langdetect"
	"lingye.co/catalog/internal/logging"
	"lingye.co/catalog/internal/translation"
)

// runtime bundles what the commands share: configuration, the logger and
// the translation stack. pool is nil for commands that never touch the
// database.
type runtime struct {
	cfg          *config.Config
	logger       zerolog.Logger
	pool         *db.Pool
	orchestrator *translation.Orchestrator
	provider     string
	// unsupported lists active targets the provider does not advertise.
	unsupported  []string
}

func loadRuntime(envLoader *cli.EnvLoader, provider string) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	orchestrator, selected, err := buildOrchestrator(cfg, logger, provider)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orchestrator,
		provider:     selected.Name(),
		unsupported:  translation.UnsupportedTargets(selected),
	}, nil
}

// connect opens the database pool. The context only bounds the connect and
// migrate step.
func (r *runtime) connect(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, r.cfg)
	if err != nil {
		r.logger.Error().Err(err).Msg("database connection failed")
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	r.pool = pool
	return nil
}

func (r *runtime) close() {
	if r != nil && r.pool != nil {
		_ = r.pool.Close()
	}
}

func buildOrchestrator(cfg *config.Config, logger zerolog.Logger, providerOverride string) (*translation.Orchestrator, translation.Provider, error) {
	registry := translation.NewRegistryFromConfig(translation.ProviderConfig{
		Default:        cfg.TranslationProvider,
		LocalEndpoint:  cfg.TranslationEndpoint,
		LocalModel:     cfg.TranslationModel,
		GoogleAPIKey:   cfg.GoogleTranslateAPIKey,
		GoogleEndpoint: cfg.GoogleTranslateEndpoint,
	})

	name := providerOverride
	if name == "" {
		name = registry.DefaultProvider()
	}
	provider, err := registry.Provider(name)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve translation provider: %w", err)
	}
	if missing := translation.UnsupportedTargets(provider); len(missing) > 0 {
		logger.Warn().
			Str("provider", provider.Name()).
			Strs("languages", missing).
			Msg("translation provider does not support every active language")
	}

	var opts []translation.TranslatorOption
	if cfg.DetectSourceLanguage {
		opts = append(opts, translation.WithDetector(langdetect.DetectISO6391))
	}
	translator := translation.NewTranslator(provider, logging.Component(logger, "translator"), opts...)

	orchestrator := translation.NewOrchestrator(
		translator,
		translation.NewMemoryCache(cfg.TranslationCacheCapacity, cfg.TranslationCacheTTL),
		translation.NewFileStore(cfg.TranslationsDir, logging.Component(logger, "translation_store")),
		logging.Component(logger, "translation"),
		translation.Options{
			BatchDelay:    cfg.TranslationBatchDelay,
			FrontendDelay: cfg.TranslationFrontendDelay,
		},
	)
	return orchestrator, provider, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
