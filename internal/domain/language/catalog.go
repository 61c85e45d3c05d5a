package language

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var catalogYAML []byte

// Direction is how a language may be used.
type Direction string

const (
	DirectionSource Direction = "source"
	DirectionTarget Direction = "target"
	DirectionBoth   Direction = "both"
)

// Language is one catalog entry.
type Language struct {
	Code       string    `yaml:"code"`
	Name       string    `yaml:"name"`
	SourceName string    `yaml:"source_name"`
	TargetName string    `yaml:"target_name"`
	Type       Direction `yaml:"type"`
	Formality  bool      `yaml:"formality"`
	Text       string    `yaml:"text"`
}

func (l Language) isSource() bool { return l.Type == DirectionSource || l.Type == DirectionBoth }
func (l Language) isTarget() bool { return l.Type == DirectionTarget || l.Type == DirectionBoth }

// SourceInfo describes a source language for listing.
type SourceInfo struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// TargetInfo describes a target language for listing.
type TargetInfo struct {
	Language          string `json:"language"`
	Name              string `json:"name"`
	SupportsFormality bool   `json:"supports_formality"`
}

// Pair is an ordered language pair.
type Pair struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Catalog is the immutable set of supported languages.
type Catalog struct {
	languages []Language
	byCode    map[string]Language
	glossary  []string
	glossSet  map[string]struct{}
}

type catalogFile struct {
	GlossaryLanguages []string   `yaml:"glossary_languages"`
	Languages         []Language `yaml:"languages"`
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse language catalog: %w", err)
	}
	c := &Catalog{
		byCode:   make(map[string]Language, len(f.Languages)),
		glossSet: make(map[string]struct{}, len(f.GlossaryLanguages)),
	}
	for _, l := range f.Languages {
		l.Code = strings.ToUpper(l.Code)
		if l.Code == "" || l.Text == "" {
			return nil, fmt.Errorf("language catalog entry %q is incomplete", l.Code)
		}
		if _, dup := c.byCode[l.Code]; dup {
			return nil, fmt.Errorf("language %s listed twice", l.Code)
		}
		c.languages = append(c.languages, l)
		c.byCode[l.Code] = l
	}
	for _, code := range f.GlossaryLanguages {
		code = strings.ToUpper(code)
		c.glossary = append(c.glossary, code)
		c.glossSet[code] = struct{}{}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup returns the language for code, case-insensitively.
func (c *Catalog) Lookup(code string) (Language, bool) {
	l, ok := c.byCode[strings.ToUpper(code)]
	return l, ok
}

// IsSourceLanguage reports whether code may be used as a source. The empty
// code requests auto-detection and is accepted.
func (c *Catalog) IsSourceLanguage(code string) bool {
	if code == "" {
		return true
	}
	l, ok := c.Lookup(code)
	return ok && l.isSource()
}

// IsTargetLanguage reports whether code may be used as a target.
func (c *Catalog) IsTargetLanguage(code string) bool {
	l, ok := c.Lookup(code)
	return ok && l.isTarget()
}

// SupportsFormality reports whether code accepts a formality setting.
func (c *Catalog) SupportsFormality(code string) bool {
	l, ok := c.Lookup(code)
	return ok && l.Formality
}

// SourceLanguages lists source languages in catalog order.
func (c *Catalog) SourceLanguages() []SourceInfo {
	out := make([]SourceInfo, 0, len(c.languages))
	for _, l := range c.languages {
		if !l.isSource() {
			continue
		}
		name := l.Name
		if l.SourceName != "" {
			name = l.SourceName
		}
		out = append(out, SourceInfo{Language: l.Code, Name: name})
	}
	return out
}

// TargetLanguages lists target languages in catalog order.
func (c *Catalog) TargetLanguages() []TargetInfo {
	out := make([]TargetInfo, 0, len(c.languages))
	for _, l := range c.languages {
		if !l.isTarget() {
			continue
		}
		name := l.Name
		if l.TargetName != "" {
			name = l.TargetName
		}
		out = append(out, TargetInfo{Language: l.Code, Name: name, SupportsFormality: l.Formality})
	}
	return out
}

// BaseCode strips the regional variant: "EN-US" becomes "EN".
func BaseCode(code string) string {
	code = strings.ToUpper(code)
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}

// SameLanguage compares two codes by base language.
func SameLanguage(a, b string) bool {
	return BaseCode(a) == BaseCode(b)
}

// IsGlossaryLanguage reports whether glossaries support code.
func (c *Catalog) IsGlossaryLanguage(code string) bool {
	_, ok := c.glossSet[BaseCode(code)]
	return ok
}

// IsGlossaryPairSupported reports whether a glossary dictionary may map
// source to target.
func (c *Catalog) IsGlossaryPairSupported(source, target string) bool {
	return c.IsGlossaryLanguage(source) && c.IsGlossaryLanguage(target) && !SameLanguage(source, target)
}

// GlossaryPairs lists every supported glossary pair in lower case.
func (c *Catalog) GlossaryPairs() []Pair {
	out := make([]Pair, 0, len(c.glossary)*(len(c.glossary)-1))
	for _, src := range c.glossary {
		for _, tgt := range c.glossary {
			if src == tgt {
				continue
			}
			out = append(out, Pair{SourceLang: strings.ToLower(src), TargetLang: strings.ToLower(tgt)})
		}
	}
	return out
}
