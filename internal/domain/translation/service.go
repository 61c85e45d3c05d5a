package translation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/domain/quota"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/infrastructure/metrics"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
	"github.com/janhq/translate-mock/pkg/telemetry"
)

func sentinel(t platformerrors.ErrorType, message string) *platformerrors.PlatformError {
	return platformerrors.Sentinel(platformerrors.LayerDomain, t, message)
}

var (
	ErrMissingText       = sentinel(platformerrors.ErrorTypeValidation, "Parameter 'text' not specified")
	ErrMissingTarget     = sentinel(platformerrors.ErrorTypeValidation, "Parameter 'target_lang' not specified")
	ErrTargetLang        = sentinel(platformerrors.ErrorTypeValidation, "Value for 'target_lang' not supported.")
	ErrSourceLang        = sentinel(platformerrors.ErrorTypeValidation, "Value for 'source_lang' not supported.")
	ErrFormality         = sentinel(platformerrors.ErrorTypeValidation, "Value for 'formality' not supported.")
	ErrFormalityTarget   = sentinel(platformerrors.ErrorTypeValidation, "'formality' is not supported for given 'target_lang'.")
	ErrTagHandling       = sentinel(platformerrors.ErrorTypeValidation, "Value for 'tag_handling' not supported.")
	ErrOutlineDetection  = sentinel(platformerrors.ErrorTypeValidation, "Value for 'outline_detection' not supported.")
	ErrGlossaryNeedsLang = sentinel(platformerrors.ErrorTypeValidation, "Use of a glossary requires the source_lang parameter to be specified")
	ErrRateLimited       = sentinel(platformerrors.ErrorTypeRateLimited, "Too many requests")
	ErrQuotaExceeded     = sentinel(platformerrors.ErrorTypeQuotaExceeded, "Quota for this billing period has been exceeded.")
)

// GlossaryResolver resolves an owned glossary to a line lookup for a pair.
type GlossaryResolver interface {
	Lookup(ctx context.Context, id, owner, sourceLang, targetLang string) (language.Lookup, error)
}

// StyleRuleChecker verifies that a style rule applies to a target language.
type StyleRuleChecker interface {
	CheckTarget(ctx context.Context, id, owner, targetLang string) error
}

// Request is a text translation request. Optional values are empty when absent.
type Request struct {
	Texts            []string
	TargetLang       string
	SourceLang       string
	GlossaryID       string
	StyleID          string
	Formality        string
	TagHandling      string
	OutlineDetection string
	Owner            string
	Usage            *quota.Ledger
}

// Service translates texts into placeholder output.
type Service struct {
	catalog    *language.Catalog
	glossaries GlossaryResolver
	styleRules StyleRuleChecker
	sanitizer  *telemetry.Sanitizer
	log        zerolog.Logger
}

// NewService creates a translation service.
func NewService(catalog *language.Catalog, glossaries GlossaryResolver, styleRules StyleRuleChecker, sanitizer *telemetry.Sanitizer, log zerolog.Logger) *Service {
	return &Service{
		catalog:    catalog,
		glossaries: glossaries,
		styleRules: styleRules,
		sanitizer:  sanitizer,
		log:        log.With().Str("component", "translation-service").Logger(),
	}
}

func oneOf(value string, allowed ...string) bool {
	if value == "" {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Translate validates req, applies forced rate limiting and the character
// quota of the account, then translates every text.
func (s *Service) Translate(ctx context.Context, req Request, sess *session.Session) ([]language.Result, error) {
	target := strings.ToUpper(req.TargetLang)
	source := strings.ToUpper(req.SourceLang)

	switch {
	case target == "":
		return nil, ErrMissingTarget
	case !s.catalog.IsTargetLanguage(target):
		return nil, ErrTargetLang
	case !s.catalog.IsSourceLanguage(source):
		return nil, ErrSourceLang
	case len(req.Texts) == 0:
		return nil, ErrMissingText
	}

	// Accepted but without effect on placeholder output.
	if !oneOf(req.Formality, "less", "more", "default", "prefer_less", "prefer_more") {
		return nil, ErrFormality
	}
	// The prefer_ variants fall back silently on targets without formality.
	if (req.Formality == "less" || req.Formality == "more") && !s.catalog.SupportsFormality(target) {
		return nil, ErrFormalityTarget
	}
	if !oneOf(req.TagHandling, "xml", "html") {
		return nil, ErrTagHandling
	}
	if !oneOf(req.OutlineDetection, "0") {
		return nil, ErrOutlineDetection
	}

	var lookup language.Lookup
	if req.GlossaryID != "" {
		if source == "" {
			return nil, ErrGlossaryNeedsLang
		}
		var err error
		if lookup, err = s.glossaries.Lookup(ctx, req.GlossaryID, req.Owner, source, target); err != nil {
			return nil, err
		}
	}
	if req.StyleID != "" {
		// Style rules only gate the request; output stays placeholder text.
		if err := s.styleRules.CheckTarget(ctx, req.StyleID, req.Owner, target); err != nil {
			return nil, err
		}
	}

	total, err := s.charge(req.Texts, req.Usage, sess)
	if err != nil {
		return nil, err
	}

	results := make([]language.Result, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = s.catalog.Translate(text, target, source, lookup)
	}
	metrics.RecordCharactersTranslated(total)

	s.log.Debug().
		Int("texts", len(req.Texts)).
		Int("characters", total).
		Str("target_lang", target).
		Str("preview", s.sanitizer.SanitizeText(req.Texts[0])).
		Msg("texts translated")
	return results, nil
}

// charge applies forced rate limiting and bills the character count of texts.
func (s *Service) charge(texts []string, usage *quota.Ledger, sess *session.Session) (int, error) {
	if sess != nil && sess.ConsumeRateLimit() {
		metrics.RecordForcedFault("rate_limit")
		return 0, ErrRateLimited
	}

	total := 0
	for _, text := range texts {
		total += utf8.RuneCountInString(text)
	}
	if usage != nil && !usage.TryConsume(quota.ClassCharacter, int64(total)) {
		metrics.RecordQuotaRejection(string(quota.ClassCharacter))
		return 0, ErrQuotaExceeded
	}
	return total, nil
}
