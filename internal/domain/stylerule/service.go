package stylerule

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
)

// CreateInput is a rule as submitted by a client.
type CreateInput struct {
	Name               string
	Language           string
	ConfiguredRules    ConfiguredRules
	CustomInstructions []CustomInstruction
}

// Service manages style rules. The default rule never expires.
type Service struct {
	rules    *store.ExpiringStore[string, *StyleRule]
	fallback *StyleRule
	catalog  *language.Catalog
	clock    func() time.Time
	log      zerolog.Logger
}

// NewService creates a style rule service backed by an expiring store.
func NewService(catalog *language.Catalog, opts store.Options, log zerolog.Logger) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := log.With().Str("component", "style-rule-service").Logger()
	return &Service{
		rules: store.NewExpiringStore[string, *StyleRule]("style_rules", opts, func(id string, r *StyleRule) {
			logger.Info().Str("style_id", id).Str("name", r.Name).Msg("style rule expired")
		}, log),
		fallback: defaultRule(),
		catalog:  catalog,
		clock:    clock,
		log:      logger,
	}
}

// Create registers a rule owned by owner.
func (s *Service) Create(ctx context.Context, owner string, in CreateInput) (Info, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Info{}, ErrMissingName
	}
	lang := language.BaseCode(in.Language)
	if lang == "" || !s.catalog.IsSourceLanguage(lang) {
		return Info{}, ErrLanguage
	}
	for _, ci := range in.CustomInstructions {
		if strings.TrimSpace(ci.Label) == "" || strings.TrimSpace(ci.Prompt) == "" {
			return Info{}, ErrInstruction
		}
	}

	now := s.clock().UTC()
	r := &StyleRule{
		ID:                 uuid.NewString(),
		Owner:              owner,
		Name:               in.Name,
		Language:           strings.ToLower(lang),
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
		ConfiguredRules:    in.ConfiguredRules,
		CustomInstructions: in.CustomInstructions,
	}
	s.rules.Put(r.ID, r)
	s.log.Info().Str("style_id", r.ID).Str("name", r.Name).Str("language", r.Language).Msg("style rule created")
	return r.Info(true), nil
}

// Get returns the rule when it is the default or belongs to owner,
// refreshing the idle timer of owned rules.
func (s *Service) Get(ctx context.Context, id, owner string) (*StyleRule, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidStyleID
	}
	if id == DefaultID {
		return s.fallback, nil
	}
	r, ok := s.rules.Get(id)
	if !ok || !r.visibleTo(owner) {
		return nil, ErrStyleRuleNotFound
	}
	s.rules.Touch(id)
	return r, nil
}

// List returns one page of the owner's rules ordered by creation time,
// followed by the default rule.
func (s *Service) List(ctx context.Context, owner string, page, pageSize int, detailed bool) ([]Info, error) {
	if page < 0 || pageSize < 1 || pageSize > maxPageSize {
		return nil, ErrPagination
	}

	var owned []*StyleRule
	for _, r := range s.rules.Values() {
		if r.Owner == owner {
			owned = append(owned, r)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	owned = append(owned, s.fallback)

	out := []Info{}
	start := page * pageSize
	if start >= len(owned) {
		return out, nil
	}
	end := start + pageSize
	if end > len(owned) {
		end = len(owned)
	}
	for _, r := range owned[start:end] {
		out = append(out, r.Info(detailed))
	}
	return out, nil
}

// Delete removes an owned rule. Deleting the default rule succeeds
// without effect.
func (s *Service) Delete(ctx context.Context, id, owner string) error {
	r, err := s.Get(ctx, id, owner)
	if err != nil {
		return err
	}
	if r == s.fallback {
		return nil
	}
	if _, ok := s.rules.Delete(id); !ok {
		return ErrStyleRuleNotFound
	}
	s.log.Info().Str("style_id", id).Str("name", r.Name).Msg("style rule deleted")
	return nil
}

// CheckTarget verifies that the rule is usable by owner for targetLang.
func (s *Service) CheckTarget(ctx context.Context, id, owner, targetLang string) error {
	r, err := s.Get(ctx, id, owner)
	if err != nil {
		return err
	}
	if !language.SameLanguage(r.Language, targetLang) {
		return ErrLanguageMismatch.WithDetail(r.Language + "->" + strings.ToLower(targetLang))
	}
	return nil
}

// Len returns the number of live rules, excluding the default.
func (s *Service) Len() int {
	return s.rules.Len()
}

// Sweep evicts rules idle past their lifetime as of now.
func (s *Service) Sweep(now time.Time) int {
	return s.rules.Sweep(now)
}

// Start begins expiring idle rules.
func (s *Service) Start(ctx context.Context) {
	s.rules.Start(ctx)
}

// Stop halts expiry.
func (s *Service) Stop() {
	s.rules.Stop()
}
