package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/translate-mock/internal/config"
	"github.com/janhq/translate-mock/internal/domain"
	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/document"
	"github.com/janhq/translate-mock/internal/domain/glossary"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/domain/stylerule"
	"github.com/janhq/translate-mock/internal/infrastructure"
	"github.com/janhq/translate-mock/internal/infrastructure/dispatcher"
	"github.com/janhq/translate-mock/internal/infrastructure/logger"
	"github.com/janhq/translate-mock/internal/infrastructure/observability"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/routes"
)

// sweeper is an expiring resource collection.
type sweeper interface {
	Start(ctx context.Context)
	Stop()
}

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	pool       *dispatcher.Pool
	sweepers   []sweeper
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(
	httpServer *httpserver.HTTPServer,
	pool *dispatcher.Pool,
	accounts *account.Registry,
	sessions *session.Registry,
	documents *document.Service,
	glossaries *glossary.Service,
	styleRules *stylerule.Service,
	log zerolog.Logger,
) *Application {
	return &Application{
		httpServer: httpServer,
		pool:       pool,
		sweepers:   []sweeper{accounts, sessions, documents, glossaries, styleRules},
		log:        log,
	}
}

// Start runs the application until ctx is cancelled. Expiry sweeps and the
// job pool stop after the HTTP server has drained.
func (a *Application) Start(ctx context.Context) error {
	a.pool.Start(ctx)
	for _, s := range a.sweepers {
		s.Start(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(gctx)
	})
	err := g.Wait()

	a.pool.Stop()
	for _, s := range a.sweepers {
		s.Stop()
	}
	a.log.Info().Msg("background workers stopped")
	return err
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := ProvideObservability(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	app, err := buildApplication(cfg, telemetry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// buildApplication wires the application by hand in the order CreateApplication
// describes for wire.
func buildApplication(cfg *config.Config, telemetry *observability.Provider, log zerolog.Logger) (*Application, error) {
	opts := infrastructure.ProvideStoreOptions(cfg)
	sanitizer := infrastructure.ProvideSanitizer(cfg)
	artifacts, err := infrastructure.ProvideLocalStorage(cfg, log)
	if err != nil {
		return nil, err
	}
	instrumenter, err := infrastructure.ProvideWorkerInstrumenter(telemetry, cfg)
	if err != nil {
		return nil, err
	}
	pool := infrastructure.ProvideDispatcher(cfg, instrumenter, log)

	catalog := domain.ProvideCatalog()
	accounts := domain.ProvideAccountRegistry(cfg, opts, sanitizer, log)
	sessions := domain.ProvideSessionRegistry(opts, log)
	glossaries := domain.ProvideGlossaryService(catalog, opts, log)
	styleRules := domain.ProvideStyleRuleService(catalog, opts, log)
	documents := domain.ProvideDocumentService(catalog, artifacts, glossaries, pool, sanitizer, opts, log)
	translations := domain.ProvideTranslationService(catalog, glossaries, styleRules, sanitizer, log)

	handlerProvider := handlers.NewProvider(
		handlers.NewTranslationHandler(translations, catalog),
		handlers.NewDocumentHandler(documents),
		handlers.NewGlossaryHandler(glossaries),
		handlers.NewStyleRuleHandler(styleRules),
	)
	routeProvider := routes.NewProvider(handlerProvider, accounts)
	httpServer := httpserver.New(cfg, log, sessions, artifacts, routeProvider)

	return NewApplication(httpServer, pool, accounts, sessions, documents, glossaries, styleRules, log), nil
}

// ProvideObservability initializes OpenTelemetry from config.
func ProvideObservability(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*observability.Provider, error) {
	return observability.Setup(ctx, cfg, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
