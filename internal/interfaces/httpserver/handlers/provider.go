package handlers

import (
	"github.com/google/wire"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Translation *TranslationHandler
	Document    *DocumentHandler
	Glossary    *GlossaryHandler
	StyleRule   *StyleRuleHandler
}

// NewProvider creates a new handler provider.
func NewProvider(translation *TranslationHandler, document *DocumentHandler, glossary *GlossaryHandler, styleRule *StyleRuleHandler) *Provider {
	return &Provider{
		Translation: translation,
		Document:    document,
		Glossary:    glossary,
		StyleRule:   styleRule,
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewTranslationHandler,
	NewDocumentHandler,
	NewGlossaryHandler,
	NewStyleRuleHandler,
	NewProvider,
)
