// Package responses contains HTTP response DTOs of the translation API.
package responses

import (
	"strings"
	"time"

	"github.com/janhq/translate-mock/internal/domain/document"
	"github.com/janhq/translate-mock/internal/domain/glossary"
	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/domain/quota"
	"github.com/janhq/translate-mock/internal/domain/stylerule"
	"github.com/janhq/translate-mock/internal/domain/translation"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// TranslateResponse is the body of a text translation.
type TranslateResponse struct {
	Translations []language.Result `json:"translations"`
}

// UsageResponse reports the enabled quota classes of an account. Absent
// fields denote disabled classes.
type UsageResponse struct {
	CharacterCount    *int64     `json:"character_count,omitempty"`
	CharacterLimit    *int64     `json:"character_limit,omitempty"`
	DocumentCount     *int64     `json:"document_count,omitempty"`
	DocumentLimit     *int64     `json:"document_limit,omitempty"`
	TeamDocumentCount *int64     `json:"team_document_count,omitempty"`
	TeamDocumentLimit *int64     `json:"team_document_limit,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
}

// NewUsageResponse renders a ledger snapshot and optional billing window.
// Classes without a ceiling report their count only.
func NewUsageResponse(meters []quota.Meter, billing *quota.Period) UsageResponse {
	var resp UsageResponse
	for _, m := range meters {
		count := m.Count
		var limit *int64
		if !m.Unlimited {
			l := m.Limit
			limit = &l
		}
		switch m.Class {
		case quota.ClassCharacter:
			resp.CharacterCount, resp.CharacterLimit = &count, limit
		case quota.ClassDocument:
			resp.DocumentCount, resp.DocumentLimit = &count, limit
		case quota.ClassTeamDocument:
			resp.TeamDocumentCount, resp.TeamDocumentLimit = &count, limit
		}
	}
	if billing != nil {
		start, end := billing.Start, billing.End
		resp.StartTime, resp.EndTime = &start, &end
	}
	return resp
}

// DocumentHandleResponse identifies an uploaded document.
type DocumentHandleResponse struct {
	DocumentID  string `json:"document_id"`
	DocumentKey string `json:"document_key"`
}

// DocumentStatusResponse is the status of a document. seconds_remaining is
// present while translating and when done; billed_characters only when done.
type DocumentStatusResponse struct {
	DocumentID       string `json:"document_id"`
	Status           string `json:"status"`
	SecondsRemaining *int   `json:"seconds_remaining,omitempty"`
	BilledCharacters *int64 `json:"billed_characters,omitempty"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

// NewDocumentStatusResponse renders a document snapshot.
func NewDocumentStatusResponse(s document.Snapshot) DocumentStatusResponse {
	resp := DocumentStatusResponse{DocumentID: s.ID, Status: string(s.Status)}
	switch s.Status {
	case document.StatusTranslating:
		remaining := s.SecondsRemaining
		resp.SecondsRemaining = &remaining
	case document.StatusDone:
		remaining, billed := s.SecondsRemaining, s.BilledCharacters
		resp.SecondsRemaining, resp.BilledCharacters = &remaining, &billed
	case document.StatusError:
		resp.ErrorMessage = s.ErrorMessage
	}
	return resp
}

// LanguagePairsResponse lists the supported glossary language pairs.
type LanguagePairsResponse struct {
	SupportedLanguages []language.Pair `json:"supported_languages"`
}

// GlossaryV2Response describes a single-dictionary glossary.
type GlossaryV2Response struct {
	GlossaryID   string `json:"glossary_id"`
	Name         string `json:"name"`
	Ready        bool   `json:"ready"`
	SourceLang   string `json:"source_lang"`
	TargetLang   string `json:"target_lang"`
	CreationTime string `json:"creation_time"`
	EntryCount   int    `json:"entry_count"`
}

// NewGlossaryV2Response renders the first dictionary of a glossary in the
// single-pair shape.
func NewGlossaryV2Response(info glossary.Info) GlossaryV2Response {
	resp := GlossaryV2Response{
		GlossaryID:   info.ID,
		Name:         info.Name,
		Ready:        true,
		CreationTime: formatTime(info.CreatedAt),
	}
	if len(info.Dictionaries) > 0 {
		d := info.Dictionaries[0]
		resp.SourceLang, resp.TargetLang, resp.EntryCount = d.SourceLang, d.TargetLang, d.EntryCount
	}
	return resp
}

// GlossaryV2ListResponse lists single-dictionary glossaries.
type GlossaryV2ListResponse struct {
	Glossaries []GlossaryV2Response `json:"glossaries"`
}

// DictionaryResponse summarizes a dictionary.
type DictionaryResponse struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	EntryCount int    `json:"entry_count"`
}

// NewDictionaryResponse renders a dictionary summary.
func NewDictionaryResponse(d glossary.DictionaryInfo) DictionaryResponse {
	return DictionaryResponse{SourceLang: d.SourceLang, TargetLang: d.TargetLang, EntryCount: d.EntryCount}
}

// GlossaryResponse describes a multilingual glossary.
type GlossaryResponse struct {
	GlossaryID   string               `json:"glossary_id"`
	Name         string               `json:"name"`
	Dictionaries []DictionaryResponse `json:"dictionaries"`
	CreationTime string               `json:"creation_time"`
}

// NewGlossaryResponse renders a glossary snapshot.
func NewGlossaryResponse(info glossary.Info) GlossaryResponse {
	dicts := make([]DictionaryResponse, 0, len(info.Dictionaries))
	for _, d := range info.Dictionaries {
		dicts = append(dicts, NewDictionaryResponse(d))
	}
	return GlossaryResponse{
		GlossaryID:   info.ID,
		Name:         info.Name,
		Dictionaries: dicts,
		CreationTime: formatTime(info.CreatedAt),
	}
}

// GlossaryListResponse lists multilingual glossaries.
type GlossaryListResponse struct {
	Glossaries []GlossaryResponse `json:"glossaries"`
}

// DictionaryEntriesResponse carries the entries of one dictionary.
type DictionaryEntriesResponse struct {
	SourceLang    string `json:"source_lang"`
	TargetLang    string `json:"target_lang"`
	EntriesFormat string `json:"entries_format"`
	Entries       string `json:"entries"`
}

// GlossaryEntriesResponse wraps the dictionaries of an entries lookup.
type GlossaryEntriesResponse struct {
	Dictionaries []DictionaryEntriesResponse `json:"dictionaries"`
}

// NewGlossaryEntriesResponse renders a dictionary's entries as TSV, echoing
// the requested language codes.
func NewGlossaryEntriesResponse(sourceLang, targetLang string, d *glossary.Dictionary) GlossaryEntriesResponse {
	return GlossaryEntriesResponse{Dictionaries: []DictionaryEntriesResponse{{
		SourceLang:    sourceLang,
		TargetLang:    targetLang,
		EntriesFormat: string(glossary.FormatTSV),
		Entries:       glossary.EncodeTSV(d.Entries),
	}}}
}

// StyleRuleResponse describes a style rule. Rules and instructions are
// present only in detailed listings.
type StyleRuleResponse struct {
	StyleID            string                         `json:"style_id"`
	Name               string                         `json:"name"`
	Language           string                         `json:"language"`
	CreationTime       string                         `json:"creation_time"`
	UpdatedTime        string                         `json:"updated_time"`
	Version            int                            `json:"version"`
	ConfiguredRules    stylerule.ConfiguredRules      `json:"configured_rules,omitempty"`
	CustomInstructions *[]stylerule.CustomInstruction `json:"custom_instructions,omitempty"`
}

// NewStyleRuleResponse renders a style rule snapshot.
func NewStyleRuleResponse(info stylerule.Info) StyleRuleResponse {
	resp := StyleRuleResponse{
		StyleID:      info.ID,
		Name:         info.Name,
		Language:     info.Language,
		CreationTime: formatTime(info.CreatedAt),
		UpdatedTime:  formatTime(info.UpdatedAt),
		Version:      info.Version,
	}
	if info.Detailed {
		resp.ConfiguredRules = info.ConfiguredRules
		instructions := info.CustomInstructions
		resp.CustomInstructions = &instructions
	}
	return resp
}

// StyleRuleListResponse lists style rules.
type StyleRuleListResponse struct {
	StyleRules []StyleRuleResponse `json:"style_rules"`
}

// ImprovementResponse is one rephrased text.
type ImprovementResponse struct {
	Text                   string `json:"text"`
	DetectedSourceLanguage string `json:"detected_source_language"`
	TargetLanguage         string `json:"target_language"`
}

// RephraseResponse is the body of a rephrase request.
type RephraseResponse struct {
	Improvements []ImprovementResponse `json:"improvements"`
}

// NewRephraseResponse renders rephrased texts with lowercase language codes.
func NewRephraseResponse(improvements []translation.Improvement) RephraseResponse {
	resp := RephraseResponse{Improvements: make([]ImprovementResponse, 0, len(improvements))}
	for _, imp := range improvements {
		resp.Improvements = append(resp.Improvements, ImprovementResponse{
			Text:                   imp.Text,
			DetectedSourceLanguage: strings.ToLower(imp.DetectedSourceLanguage),
			TargetLanguage:         strings.ToLower(imp.TargetLanguage),
		})
	}
	return resp
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
