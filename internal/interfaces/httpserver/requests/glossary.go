package requests

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/domain/glossary"
)

const jsonBodyKey = "request_json_body"

// DictionaryRequest is one dictionary of a v3 glossary body.
type DictionaryRequest struct {
	SourceLang    string `json:"source_lang"`
	TargetLang    string `json:"target_lang"`
	Entries       string `json:"entries"`
	EntriesFormat string `json:"entries_format"`
}

// Input converts the request to its domain form.
func (r DictionaryRequest) Input() glossary.DictionaryInput {
	return glossary.DictionaryInput{
		SourceLang: r.SourceLang,
		TargetLang: r.TargetLang,
		Entries:    r.Entries,
		Format:     glossary.EntriesFormat(r.EntriesFormat),
	}
}

// GlossaryRequest is the body of v3 glossary create and patch.
type GlossaryRequest struct {
	Name         string              `json:"name"`
	Dictionaries []DictionaryRequest `json:"dictionaries"`
}

// Inputs converts every dictionary to its domain form.
func (r GlossaryRequest) Inputs() []glossary.DictionaryInput {
	out := make([]glossary.DictionaryInput, 0, len(r.Dictionaries))
	for _, d := range r.Dictionaries {
		out = append(out, d.Input())
	}
	return out
}

// BindGlossary reads a v3 glossary body. JSON bodies are decoded directly;
// form bodies may carry a single dictionary as flat fields.
func BindGlossary(c *gin.Context) (GlossaryRequest, error) {
	values, err := Parse(c)
	if err != nil {
		return GlossaryRequest{}, err
	}

	var req GlossaryRequest
	if raw, ok := c.Get(jsonBodyKey); ok {
		body := raw.(map[string]json.RawMessage)
		if name, ok := body["name"]; ok {
			if err := json.Unmarshal(name, &req.Name); err != nil {
				return req, fmt.Errorf("decode name: %w", err)
			}
		}
		if dicts, ok := body["dictionaries"]; ok {
			if err := json.Unmarshal(dicts, &req.Dictionaries); err != nil {
				return req, fmt.Errorf("decode dictionaries: %w", err)
			}
		}
		return req, nil
	}

	req.Name = values.Get("name")
	if values.Has("entries") {
		req.Dictionaries = []DictionaryRequest{BindDictionaryValues(values)}
	}
	return req, nil
}

// BindDictionary reads a single dictionary from JSON or form parameters.
func BindDictionary(c *gin.Context) (DictionaryRequest, error) {
	values, err := Parse(c)
	if err != nil {
		return DictionaryRequest{}, err
	}
	return BindDictionaryValues(values), nil
}

// BindDictionaryValues reads a single dictionary from flat parameters.
func BindDictionaryValues(values Values) DictionaryRequest {
	return DictionaryRequest{
		SourceLang:    values.Get("source_lang"),
		TargetLang:    values.Get("target_lang"),
		Entries:       values.Get("entries"),
		EntriesFormat: values.Get("entries_format"),
	}
}
