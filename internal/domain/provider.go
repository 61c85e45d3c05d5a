package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/config"
	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/document"
	"github.com/janhq/translate-mock/internal/domain/glossary"
	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/domain/stylerule"
	"github.com/janhq/translate-mock/internal/domain/translation"
	"github.com/janhq/translate-mock/internal/infrastructure/dispatcher"
	"github.com/janhq/translate-mock/internal/infrastructure/storage"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
	"github.com/janhq/translate-mock/pkg/telemetry"
)

// ProvideCatalog provides the embedded language catalog.
func ProvideCatalog() *language.Catalog {
	return language.Default()
}

// ProvideAccountRegistry provides the credential registry.
func ProvideAccountRegistry(cfg *config.Config, opts store.Options, sanitizer *telemetry.Sanitizer, log zerolog.Logger) *account.Registry {
	return account.NewRegistry(account.Defaults{
		CharacterLimit:      cfg.DefaultCharacterLimit,
		DocumentLimit:       cfg.DefaultDocumentLimit,
		BillingPeriodOffset: cfg.BillingPeriodOffset,
	}, opts, sanitizer, log)
}

// ProvideSessionRegistry provides the session registry.
func ProvideSessionRegistry(opts store.Options, log zerolog.Logger) *session.Registry {
	return session.NewRegistry(opts, log)
}

// ProvideGlossaryService provides the glossary store.
func ProvideGlossaryService(catalog *language.Catalog, opts store.Options, log zerolog.Logger) *glossary.Service {
	return glossary.NewService(catalog, opts, log)
}

// ProvideStyleRuleService provides the style rule store.
func ProvideStyleRuleService(catalog *language.Catalog, opts store.Options, log zerolog.Logger) *stylerule.Service {
	return stylerule.NewService(catalog, opts, log)
}

// ProvideDocumentService provides the document lifecycle service.
func ProvideDocumentService(
	catalog *language.Catalog,
	artifacts *storage.LocalStorage,
	glossaries *glossary.Service,
	pool *dispatcher.Pool,
	sanitizer *telemetry.Sanitizer,
	opts store.Options,
	log zerolog.Logger,
) *document.Service {
	return document.NewService(catalog, artifacts, glossaries, pool, sanitizer, opts, log)
}

// ProvideTranslationService provides text translation and rephrasing.
func ProvideTranslationService(
	catalog *language.Catalog,
	glossaries *glossary.Service,
	styleRules *stylerule.Service,
	sanitizer *telemetry.Sanitizer,
	log zerolog.Logger,
) *translation.Service {
	return translation.NewService(catalog, glossaries, styleRules, sanitizer, log)
}

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	ProvideCatalog,
	ProvideAccountRegistry,
	ProvideSessionRegistry,
	ProvideGlossaryService,
	ProvideStyleRuleService,
	ProvideDocumentService,
	ProvideTranslationService,
)
