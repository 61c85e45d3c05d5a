package handlers

import (
	"context"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/glossary"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
)

// GlossaryHandler serves the single-pair and multilingual glossary APIs.
type GlossaryHandler struct {
	service *glossary.Service
}

// NewGlossaryHandler creates a glossary handler.
func NewGlossaryHandler(service *glossary.Service) *GlossaryHandler {
	return &GlossaryHandler{service: service}
}

// CreateSingle creates a glossary holding one dictionary from flat parameters.
func (h *GlossaryHandler) CreateSingle(ctx context.Context, acct *account.Account, values requests.Values) (glossary.Info, error) {
	d := requests.BindDictionaryValues(values)
	return h.service.Create(ctx, values.Get("name"), acct.Credential, []glossary.DictionaryInput{d.Input()})
}

// Create creates a multilingual glossary.
func (h *GlossaryHandler) Create(ctx context.Context, acct *account.Account, req requests.GlossaryRequest) (glossary.Info, error) {
	return h.service.Create(ctx, req.Name, acct.Credential, req.Inputs())
}

// Info returns an owned glossary.
func (h *GlossaryHandler) Info(ctx context.Context, acct *account.Account, id string) (glossary.Info, error) {
	return h.service.Info(ctx, id, acct.Credential)
}

// List returns the glossaries of acct.
func (h *GlossaryHandler) List(ctx context.Context, acct *account.Account) []glossary.Info {
	return h.service.List(ctx, acct.Credential)
}

// Patch renames a glossary and replaces at most one dictionary.
func (h *GlossaryHandler) Patch(ctx context.Context, acct *account.Account, id string, req requests.GlossaryRequest) (glossary.Info, error) {
	return h.service.Patch(ctx, id, acct.Credential, req.Name, req.Inputs())
}

// Delete removes an owned glossary.
func (h *GlossaryHandler) Delete(ctx context.Context, acct *account.Account, id string) error {
	return h.service.Delete(ctx, id, acct.Credential)
}

// Entries returns the dictionary of a glossary for one pair. Single-pair
// glossaries resolve their only dictionary when no pair is given.
func (h *GlossaryHandler) Entries(ctx context.Context, acct *account.Account, id, sourceLang, targetLang string) (*glossary.Dictionary, error) {
	if sourceLang == "" && targetLang == "" {
		info, err := h.service.Info(ctx, id, acct.Credential)
		if err != nil {
			return nil, err
		}
		if len(info.Dictionaries) == 0 {
			return nil, glossary.ErrDictionaryNotFound
		}
		sourceLang, targetLang = info.Dictionaries[0].SourceLang, info.Dictionaries[0].TargetLang
	}
	return h.service.Entries(ctx, id, acct.Credential, sourceLang, targetLang)
}

// PutDictionary replaces or adds one dictionary.
func (h *GlossaryHandler) PutDictionary(ctx context.Context, acct *account.Account, id string, d requests.DictionaryRequest) (glossary.DictionaryInfo, error) {
	return h.service.PutDictionary(ctx, id, acct.Credential, d.Input())
}

// RemoveDictionary deletes the dictionary for one pair.
func (h *GlossaryHandler) RemoveDictionary(ctx context.Context, acct *account.Account, id, sourceLang, targetLang string) error {
	return h.service.RemoveDictionary(ctx, id, acct.Credential, sourceLang, targetLang)
}
