package glossary

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

// Service manages glossaries.
type Service struct {
	glossaries *store.ExpiringStore[string, *Glossary]
	catalog    *language.Catalog
	clock      func() time.Time
	log        zerolog.Logger
}

// NewService creates a glossary service backed by an expiring store.
func NewService(catalog *language.Catalog, opts store.Options, log zerolog.Logger) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := log.With().Str("component", "glossary-service").Logger()
	return &Service{
		glossaries: store.NewExpiringStore[string, *Glossary]("glossaries", opts, func(id string, g *Glossary) {
			logger.Info().Str("glossary_id", id).Str("name", g.Info().Name).Msg("glossary expired")
		}, log),
		catalog: catalog,
		clock:   clock,
		log:     logger,
	}
}

func (s *Service) buildDictionary(in DictionaryInput) (*Dictionary, error) {
	if in.SourceLang == "" || in.TargetLang == "" {
		return nil, ErrMissingLanguage
	}
	if !s.catalog.IsGlossaryPairSupported(in.SourceLang, in.TargetLang) {
		return nil, ErrUnsupportedPair.WithDetail(strings.ToLower(in.SourceLang) + "->" + strings.ToLower(in.TargetLang))
	}
	format := in.Format
	if format == "" {
		format = FormatTSV
	}
	entries, err := ParseEntries(format, in.Entries, in.SourceLang, in.TargetLang)
	if err != nil {
		return nil, err
	}
	return newDictionary(in.SourceLang, in.TargetLang, entries), nil
}

// Create validates every dictionary and registers a new glossary for owner.
func (s *Service) Create(ctx context.Context, name, owner string, inputs []DictionaryInput) (Info, error) {
	if strings.TrimSpace(name) == "" {
		return Info{}, ErrMissingName
	}
	if len(inputs) == 0 {
		return Info{}, ErrMissingDictionaries
	}

	g := &Glossary{
		ID:        uuid.NewString(),
		Owner:     owner,
		CreatedAt: s.clock().UTC(),
		name:      name,
	}
	for _, in := range inputs {
		d, err := s.buildDictionary(in)
		if err != nil {
			return Info{}, err
		}
		g.putDictionary(d)
	}

	s.glossaries.Put(g.ID, g)
	s.log.Info().Str("glossary_id", g.ID).Str("name", name).Int("dictionaries", len(g.dictionaries)).Msg("glossary created")
	return g.Info(), nil
}

// Get returns the glossary if it exists and belongs to owner, refreshing
// its idle timer. Glossaries of other owners are reported as not found.
func (s *Service) Get(ctx context.Context, id, owner string) (*Glossary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidGlossaryID
	}
	g, ok := s.glossaries.Get(id)
	if !ok || g.Owner != owner {
		return nil, ErrGlossaryNotFound
	}
	s.glossaries.Touch(id)
	return g, nil
}

// Info returns a snapshot of an owned glossary.
func (s *Service) Info(ctx context.Context, id, owner string) (Info, error) {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return Info{}, err
	}
	return g.Info(), nil
}

// List returns the owner's glossaries ordered by creation time.
func (s *Service) List(ctx context.Context, owner string) []Info {
	var out []Info
	for _, g := range s.glossaries.Values() {
		if g.Owner == owner {
			out = append(out, g.Info())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Patch renames the glossary when name is non-empty and replaces at most
// one dictionary.
func (s *Service) Patch(ctx context.Context, id, owner, name string, inputs []DictionaryInput) (Info, error) {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return Info{}, err
	}
	if len(inputs) > 1 {
		return Info{}, ErrTooManyDictionaries
	}

	var d *Dictionary
	if len(inputs) == 1 {
		if inputs[0].Format == "" {
			return Info{}, ErrEntriesFormat
		}
		if d, err = s.buildDictionary(inputs[0]); err != nil {
			return Info{}, err
		}
	}

	if name != "" {
		g.rename(name)
	}
	if d != nil {
		g.putDictionary(d)
	}
	return g.Info(), nil
}

// Delete removes an owned glossary.
func (s *Service) Delete(ctx context.Context, id, owner string) error {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return err
	}
	if _, ok := s.glossaries.Delete(id); !ok {
		return ErrGlossaryNotFound
	}
	s.log.Info().Str("glossary_id", id).Str("name", g.Info().Name).Msg("glossary deleted")
	return nil
}

// Entries returns the dictionary for the pair.
func (s *Service) Entries(ctx context.Context, id, owner, sourceLang, targetLang string) (*Dictionary, error) {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if !s.catalog.IsGlossaryPairSupported(sourceLang, targetLang) {
		return nil, ErrUnsupportedPair
	}
	d, ok := g.Dictionary(sourceLang, targetLang)
	if !ok {
		return nil, ErrDictionaryNotFound
	}
	return d, nil
}

// PutDictionary replaces or adds exactly the dictionary for the input pair.
func (s *Service) PutDictionary(ctx context.Context, id, owner string, in DictionaryInput) (DictionaryInfo, error) {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return DictionaryInfo{}, err
	}
	d, err := s.buildDictionary(in)
	if err != nil {
		return DictionaryInfo{}, err
	}
	g.putDictionary(d)
	return DictionaryInfo{
		SourceLang: strings.ToLower(d.SourceLang),
		TargetLang: strings.ToLower(d.TargetLang),
		EntryCount: len(d.Entries),
	}, nil
}

// RemoveDictionary deletes the dictionary for the pair.
func (s *Service) RemoveDictionary(ctx context.Context, id, owner, sourceLang, targetLang string) error {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return err
	}
	if !s.catalog.IsGlossaryPairSupported(sourceLang, targetLang) {
		return ErrUnsupportedPair
	}
	if !g.removeDictionary(sourceLang, targetLang) {
		return ErrDictionaryNotFound
	}
	return nil
}

// Lookup resolves an owned glossary to a line lookup for the pair. The
// glossary must contain a dictionary for it.
func (s *Service) Lookup(ctx context.Context, id, owner, sourceLang, targetLang string) (language.Lookup, error) {
	g, err := s.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	d, ok := g.Dictionary(sourceLang, targetLang)
	if !ok {
		return nil, ErrDictionaryNotFound
	}
	return d.Translate, nil
}

// Len returns the number of live glossaries.
func (s *Service) Len() int {
	return s.glossaries.Len()
}

// Sweep evicts glossaries idle past their lifetime as of now.
func (s *Service) Sweep(now time.Time) int {
	return s.glossaries.Sweep(now)
}

// Start begins expiring idle glossaries.
func (s *Service) Start(ctx context.Context) {
	s.glossaries.Start(ctx)
}

// Stop halts expiry.
func (s *Service) Stop() {
	s.glossaries.Stop()
}
