package handlers

import (
	"context"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/domain/translation"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// ErrLanguageType rejects a languages listing of unknown type.
var ErrLanguageType = platformerrors.Sentinel(platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
	"Parameter 'type' is invalid. 'source' and 'target' are valid values.")

// TranslationHandler serves text translation, language listings and usage.
type TranslationHandler struct {
	service *translation.Service
	catalog *language.Catalog
}

// NewTranslationHandler creates a translation handler.
func NewTranslationHandler(service *translation.Service, catalog *language.Catalog) *TranslationHandler {
	return &TranslationHandler{service: service, catalog: catalog}
}

// Translate translates the texts named by values for acct.
func (h *TranslationHandler) Translate(ctx context.Context, acct *account.Account, sess *session.Session, values requests.Values) (responses.TranslateResponse, error) {
	results, err := h.service.Translate(ctx, translation.Request{
		Texts:            values.List("text"),
		TargetLang:       values.Get("target_lang"),
		SourceLang:       values.Get("source_lang"),
		GlossaryID:       values.Get("glossary_id"),
		StyleID:          values.Get("style_id"),
		Formality:        values.Get("formality"),
		TagHandling:      values.Get("tag_handling"),
		OutlineDetection: values.Get("outline_detection"),
		Owner:            acct.Credential,
		Usage:            acct.Usage,
	}, sess)
	if err != nil {
		return responses.TranslateResponse{}, err
	}
	return responses.TranslateResponse{Translations: results}, nil
}

// Rephrase improves the texts named by values for acct.
func (h *TranslationHandler) Rephrase(ctx context.Context, acct *account.Account, sess *session.Session, values requests.Values) (responses.RephraseResponse, error) {
	improvements, err := h.service.Rephrase(ctx, translation.RephraseRequest{
		Texts:        values.List("text"),
		TargetLang:   values.Get("target_lang"),
		WritingStyle: values.Get("writing_style"),
		Tone:         values.Get("tone"),
		Usage:        acct.Usage,
	}, sess)
	if err != nil {
		return responses.RephraseResponse{}, err
	}
	return responses.NewRephraseResponse(improvements), nil
}

// Languages lists source languages, or target languages when kind is "target".
func (h *TranslationHandler) Languages(kind string) (any, error) {
	switch kind {
	case "", "source":
		return h.catalog.SourceLanguages(), nil
	case "target":
		return h.catalog.TargetLanguages(), nil
	default:
		return nil, ErrLanguageType
	}
}

// Usage reports the quota state of acct.
func (h *TranslationHandler) Usage(acct *account.Account) responses.UsageResponse {
	return responses.NewUsageResponse(acct.Usage.Snapshot(), acct.Billing)
}

// GlossaryLanguagePairs lists the language pairs glossaries support.
func (h *TranslationHandler) GlossaryLanguagePairs() responses.LanguagePairsResponse {
	return responses.LanguagePairsResponse{SupportedLanguages: h.catalog.GlossaryPairs()}
}
