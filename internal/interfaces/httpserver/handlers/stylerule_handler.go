package handlers

import (
	"context"
	"strconv"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/stylerule"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
)

const defaultStyleRulePageSize = 10

// StyleRuleHandler serves the style rule API.
type StyleRuleHandler struct {
	service *stylerule.Service
}

// NewStyleRuleHandler creates a style rule handler.
func NewStyleRuleHandler(service *stylerule.Service) *StyleRuleHandler {
	return &StyleRuleHandler{service: service}
}

// Create registers a rule owned by acct.
func (h *StyleRuleHandler) Create(ctx context.Context, acct *account.Account, req requests.StyleRuleRequest) (stylerule.Info, error) {
	return h.service.Create(ctx, acct.Credential, req.Input())
}

// Info returns a rule visible to acct.
func (h *StyleRuleHandler) Info(ctx context.Context, acct *account.Account, id string) (stylerule.Info, error) {
	r, err := h.service.Get(ctx, id, acct.Credential)
	if err != nil {
		return stylerule.Info{}, err
	}
	return r.Info(true), nil
}

// List returns one page of the rules visible to acct. page and page_size
// default to 0 and 10; detailed adds rules and instructions.
func (h *StyleRuleHandler) List(ctx context.Context, acct *account.Account, values requests.Values) ([]stylerule.Info, error) {
	page, err := intValue(values, "page", 0)
	if err != nil {
		return nil, stylerule.ErrPagination
	}
	pageSize, err := intValue(values, "page_size", defaultStyleRulePageSize)
	if err != nil {
		return nil, stylerule.ErrPagination
	}
	detailed, _ := strconv.ParseBool(values.Get("detailed"))
	return h.service.List(ctx, acct.Credential, page, pageSize, detailed)
}

// Delete removes a rule owned by acct.
func (h *StyleRuleHandler) Delete(ctx context.Context, acct *account.Account, id string) error {
	return h.service.Delete(ctx, id, acct.Credential)
}

func intValue(values requests.Values, name string, fallback int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
