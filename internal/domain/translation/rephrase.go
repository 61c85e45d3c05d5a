package translation

import (
	"context"
	"strings"

	"github.com/janhq/translate-mock/internal/domain/quota"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/infrastructure/metrics"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

var (
	ErrWritingStyle  = sentinel(platformerrors.ErrorTypeValidation, "Value for 'writing_style' not supported.")
	ErrTone          = sentinel(platformerrors.ErrorTypeValidation, "Value for 'tone' not supported.")
	ErrStyleWithTone = sentinel(platformerrors.ErrorTypeValidation, "Only one of 'writing_style' and 'tone' may be specified.")
)

// WritingStyles lists the accepted writing_style values.
var WritingStyles = []string{
	"academic", "business", "casual", "simple", "default",
	"prefer_academic", "prefer_business", "prefer_casual", "prefer_simple", "prefer_default",
}

// Tones lists the accepted tone values.
var Tones = []string{
	"confident", "default", "diplomatic", "enthusiastic", "friendly",
	"prefer_confident", "prefer_default", "prefer_diplomatic", "prefer_enthusiastic", "prefer_friendly",
}

// RephraseRequest is a text improvement request. TargetLang is optional.
type RephraseRequest struct {
	Texts        []string
	TargetLang   string
	WritingStyle string
	Tone         string
	Usage        *quota.Ledger
}

// Improvement is one rephrased text.
type Improvement struct {
	Text                   string
	DetectedSourceLanguage string
	TargetLanguage         string
}

// Rephrase validates req and returns one improvement per text. Texts are
// returned unchanged unless a target language asks for a translation.
func (s *Service) Rephrase(ctx context.Context, req RephraseRequest, sess *session.Session) ([]Improvement, error) {
	target := strings.ToUpper(req.TargetLang)

	switch {
	case len(req.Texts) == 0:
		return nil, ErrMissingText
	case target != "" && !s.catalog.IsTargetLanguage(target):
		return nil, ErrTargetLang
	case !oneOf(req.WritingStyle, WritingStyles...):
		return nil, ErrWritingStyle
	case !oneOf(req.Tone, Tones...):
		return nil, ErrTone
	case req.WritingStyle != "" && req.Tone != "":
		return nil, ErrStyleWithTone
	}

	total, err := s.charge(req.Texts, req.Usage, sess)
	if err != nil {
		return nil, err
	}

	out := make([]Improvement, len(req.Texts))
	for i, text := range req.Texts {
		detected := s.catalog.Detect(text)
		imp := Improvement{Text: text, DetectedSourceLanguage: detected, TargetLanguage: detected}
		if target != "" {
			imp.TargetLanguage = target
			imp.Text = s.catalog.Translate(text, target, "", nil).Text
		}
		out[i] = imp
	}
	metrics.RecordCharactersTranslated(total)

	s.log.Debug().
		Int("texts", len(req.Texts)).
		Int("characters", total).
		Str("writing_style", req.WritingStyle).
		Str("tone", req.Tone).
		Str("preview", s.sanitizer.SanitizeText(req.Texts[0])).
		Msg("texts rephrased")
	return out, nil
}
