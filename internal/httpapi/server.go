package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/auth"
	"lingye.co/catalog/internal/catalog"
	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/globaltime"
	"lingye.co/catalog/internal/templates"
	"lingye.co/catalog/internal/translation"
)

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// catalogStore is the part of the entity store the handlers need: catalog
// reads plus inquiry intake.
type catalogStore interface {
	Ping(ctx context.Context) error
	ListCategories(ctx context.Context) ([]db.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (db.Category, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]db.SubCategory, error)
	ListProducts(ctx context.Context, filter db.ProductFilter) ([]db.Product, error)
	GetProduct(ctx context.Context, id int64) (db.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (db.Product, error)
	ListArticles(ctx context.Context, featuredOnly bool, limit int) ([]db.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (db.Article, error)
	ListContactInfo(ctx context.Context) ([]db.ContactInfo, error)
	ListCompanyInfo(ctx context.Context) ([]db.CompanyInfo, error)
	ListAdvantages(ctx context.Context) ([]db.Advantage, error)
	ListCertificates(ctx context.Context) ([]db.Certificate, error)
	GetTemplate(ctx context.Context, id int64) (*templates.Template, error)
	GetTranslationRecord(ctx context.Context, kind translation.Kind, id int64) (translation.Record, error)
	ListTranslationLogs(ctx context.Context, filter db.TranslationLogFilter) ([]translation.LogEntry, error)
	CreateInquiry(ctx context.Context, inquiry *db.Inquiry) error
}

type translationService interface {
	GetTranslationStatus(kind translation.Kind, objectID int64, targetLang string) (translation.Status, error)
	GetAllFrontendContent(ctx context.Context, targetLang string) map[string]string
	AutoTranslate(ctx context.Context, kind translation.Kind, record translation.Record) []translation.AutoTranslateOutcome
}

type batchRunner interface {
	Run(ctx context.Context, opts translation.RunOptions) (translation.LogEntry, error)
}

// Deps wires the server to the rest of the service.
type Deps struct {
	Store        catalogStore
	Serializer   *catalog.Serializer
	Translations translationService
	Runner       batchRunner
	Verifier     *auth.Verifier
	Logger       zerolog.Logger
}

type Server struct {
	store        catalogStore
	serializer   *catalog.Serializer
	translations translationService
	runner       batchRunner
	verifier     *auth.Verifier
	logger       zerolog.Logger
	opts         Options

	// runs holds the lifetime context queued batch runs inherit.
	runsMu     sync.Mutex
	runsCtx    context.Context
	runActive  bool
	runsWaiter sync.WaitGroup
}

func NewServer(deps Deps, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8090
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		store:        deps.Store,
		serializer:   deps.Serializer,
		translations: deps.Translations,
		runner:       deps.Runner,
		verifier:     deps.Verifier,
		logger:       deps.Logger,
		runsCtx:      context.Background(),
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  opts.AllowedOrigins,
		},
	}
}

// Handler builds the echo instance with middleware and routes.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Accept-Language", echo.HeaderAuthorization},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.GET("/languages", s.handleLanguages)

	api.GET("/categories", s.handleCategories)
	api.GET("/categories/:slug", s.handleCategoryDetail)
	api.GET("/subcategories", s.handleSubcategories)
	api.GET("/subcategories/:id/products", s.handleSubcategoryProducts)
	api.GET("/products", s.handleProducts)
	api.GET("/products/:ref", s.handleProductDetail)
	api.GET("/product-templates/:id", s.handleTemplateDetail)
	api.GET("/articles", s.handleArticles)
	api.GET("/articles/:slug", s.handleArticleDetail)
	api.GET("/company-info", s.handleCompanyInfo)
	api.GET("/advantages", s.handleAdvantages)
	api.GET("/certificates", s.handleCertificates)
	api.GET("/contact-info", s.handleContactInfo)
	api.POST("/inquiries", s.handleCreateInquiry)

	api.GET("/translations/status", s.handleTranslationStatus)
	api.GET("/translations/frontend-content", s.handleFrontendContent)

	admin := api.Group("/translations", s.requireAdmin())
	admin.GET("/logs", s.handleTranslationLogs)
	admin.POST("/runs", s.handleStartRun)
	admin.POST("/objects/:kind/:id", s.handleTranslateObject)

	return e
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.store == nil || s.serializer == nil {
		return fmt.Errorf("server is not initialized")
	}

	s.runsMu.Lock()
	s.runsCtx = ctx
	s.runsMu.Unlock()

	e := s.Handler()
	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("catalog api server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.runsWaiter.Wait()
	s.logger.Info().Msg("catalog api server stopped")
	return nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check ping failed")
		return internalError(c, "Database unavailable")
	}
	return success(c, map[string]any{
		"service": "catalog",
		"time":    globaltime.UTC(),
	})
}
