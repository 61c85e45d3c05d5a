package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/config"
	"github.com/janhq/translate-mock/internal/infrastructure/dispatcher"
	"github.com/janhq/translate-mock/internal/infrastructure/observability"
	"github.com/janhq/translate-mock/internal/infrastructure/storage"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
	"github.com/janhq/translate-mock/pkg/observability/worker"
	"github.com/janhq/translate-mock/pkg/telemetry"
)

// ProvideStoreOptions provides the lifetime settings shared by every store.
func ProvideStoreOptions(cfg *config.Config) store.Options {
	return store.Options{
		Lifetime:      cfg.ResourceLifetime,
		SweepInterval: cfg.SweepInterval,
	}
}

// ProvideSanitizer provides the log sanitizer for credentials and text.
func ProvideSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	return telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.PIILevel), cfg.ServiceName)
}

// ProvideLocalStorage provides the document artifact storage.
func ProvideLocalStorage(cfg *config.Config, log zerolog.Logger) (*storage.LocalStorage, error) {
	return storage.NewLocalStorage(cfg, log)
}

// ProvideWorkerInstrumenter provides job instrumentation on the telemetry provider.
func ProvideWorkerInstrumenter(provider *observability.Provider, cfg *config.Config) (*worker.WorkerInstrumenter, error) {
	return worker.NewWorkerInstrumenter(provider.Tracer, provider.Meter, cfg.ServiceName)
}

// ProvideDispatcher provides the document translation job pool.
func ProvideDispatcher(cfg *config.Config, instrumenter *worker.WorkerInstrumenter, log zerolog.Logger) *dispatcher.Pool {
	return dispatcher.NewPool(dispatcher.Config{
		WorkerCount:     cfg.TranslationWorkers,
		QueueSize:       cfg.TranslationQueueSize,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, instrumenter, log)
}

// InfrastructureProvider provides all infrastructure dependencies.
var InfrastructureProvider = wire.NewSet(
	ProvideStoreOptions,
	ProvideSanitizer,
	ProvideLocalStorage,
	ProvideWorkerInstrumenter,
	ProvideDispatcher,
)
