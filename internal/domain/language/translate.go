package language

import "strings"

// Lookup resolves a whole line through a glossary.
type Lookup func(phrase string) (string, bool)

// Result is the outcome of translating one text.
type Result struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

// Detect returns the first language whose placeholder text prefixes input,
// or EN.
func (c *Catalog) Detect(input string) string {
	for _, l := range c.languages {
		if strings.HasPrefix(input, l.Text) {
			return l.Code
		}
	}
	return "EN"
}

// TranslateLine maps a single line: empty stays empty, a glossary hit wins,
// anything else becomes the target's placeholder text.
func (c *Catalog) TranslateLine(line, target string, lookup Lookup) string {
	if line == "" {
		return ""
	}
	if lookup != nil {
		if out, ok := lookup(line); ok {
			return out
		}
	}
	l, ok := c.Lookup(target)
	if !ok {
		return line
	}
	return l.Text
}

// Translate translates input line by line. Without a source language and
// without a glossary the source is detected.
func (c *Catalog) Translate(input, target, source string, lookup Lookup) Result {
	detected := strings.ToUpper(source)
	if detected == "" && lookup == nil {
		detected = c.Detect(input)
	}

	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = c.TranslateLine(line, target, lookup)
	}
	return Result{DetectedSourceLanguage: detected, Text: strings.Join(lines, "\n")}
}
