package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"8"`

	TranslationsDir          string        `envconfig:"TRANSLATIONS_DIR" default:"translations"`
	TranslationCacheTTL      time.Duration `envconfig:"TRANSLATION_CACHE_TTL" default:"1h"`
	TranslationCacheCapacity int           `envconfig:"TRANSLATION_CACHE_CAPACITY" default:"10000"`
	TranslationBatchDelay    time.Duration `envconfig:"TRANSLATION_BATCH_DELAY" default:"200ms"`
	TranslationFrontendDelay time.Duration `envconfig:"TRANSLATION_FRONTEND_DELAY" default:"100ms"`

	TranslationProvider     string `envconfig:"TRANSLATION_PROVIDER" default:"google"`
	TranslationEndpoint     string `envconfig:"TRANSLATION_ENDPOINT" default:""`
	TranslationModel        string `envconfig:"TRANSLATION_MODEL" default:""`
	GoogleTranslateAPIKey   string `envconfig:"GOOGLE_TRANSLATE_API_KEY" default:""`
	GoogleTranslateEndpoint string `envconfig:"GOOGLE_TRANSLATE_ENDPOINT" default:""`
	DetectSourceLanguage    bool   `envconfig:"TRANSLATION_DETECT_LANGUAGE" default:"true"`

	MediaBaseURL        string `envconfig:"MEDIA_BASE_URL" default:"/media/"`
	SiteURL             string `envconfig:"SITE_URL" default:"http://localhost:8090"`
	AdminTokenHash      string `envconfig:"ADMIN_TOKEN_HASH" default:""`
	CORSAllowedOrigins  string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
	ArticleExcerptRunes int    `envconfig:"ARTICLE_EXCERPT_RUNES" default:"200"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if strings.TrimSpace(c.TranslationsDir) == "" {
		return fmt.Errorf("TRANSLATIONS_DIR is required")
	}
	if c.TranslationCacheTTL <= 0 {
		return fmt.Errorf("TRANSLATION_CACHE_TTL must be > 0")
	}
	if c.TranslationCacheCapacity < 1 {
		return fmt.Errorf("TRANSLATION_CACHE_CAPACITY must be >= 1")
	}
	if c.TranslationBatchDelay < 0 {
		return fmt.Errorf("TRANSLATION_BATCH_DELAY must be >= 0")
	}
	if c.TranslationFrontendDelay < 0 {
		return fmt.Errorf("TRANSLATION_FRONTEND_DELAY must be >= 0")
	}
	if c.ArticleExcerptRunes < 1 {
		return fmt.Errorf("ARTICLE_EXCERPT_RUNES must be >= 1")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
