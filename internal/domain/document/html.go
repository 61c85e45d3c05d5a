package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/janhq/translate-mock/internal/domain/language"
)

// translateText translates a plain-text document.
func translateText(c *language.Catalog, input []byte, target, source string, lookup language.Lookup) ([]byte, string) {
	res := c.Translate(string(input), target, source, lookup)
	return []byte(res.Text), res.DetectedSourceLanguage
}

// translateHTML replaces every visible text node and keeps markup, script
// and style content untouched. Surrounding whitespace of a text node is kept.
func translateHTML(c *language.Catalog, input []byte, target, source string, lookup language.Lookup) ([]byte, string, error) {
	var out bytes.Buffer
	z := html.NewTokenizer(bytes.NewReader(input))
	detected := ""
	rawDepth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, "", fmt.Errorf("parse html: %w", z.Err())
		}
		raw := append([]byte(nil), z.Raw()...)

		switch tt {
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				if tt == html.StartTagToken {
					rawDepth++
				} else if rawDepth > 0 {
					rawDepth--
				}
			}
			out.Write(raw)
		case html.TextToken:
			if rawDepth > 0 {
				out.Write(raw)
				continue
			}
			text := string(z.Text())
			core := strings.TrimSpace(text)
			if core == "" {
				out.Write(raw)
				continue
			}
			lead := text[:strings.Index(text, core)]
			trail := text[len(lead)+len(core):]
			res := c.Translate(core, target, source, lookup)
			if detected == "" {
				detected = res.DetectedSourceLanguage
			}
			out.WriteString(html.EscapeString(lead))
			out.WriteString(html.EscapeString(res.Text))
			out.WriteString(html.EscapeString(trail))
		default:
			out.Write(raw)
		}
	}

	if detected == "" {
		detected = c.Translate("", target, source, lookup).DetectedSourceLanguage
	}
	return out.Bytes(), detected, nil
}
