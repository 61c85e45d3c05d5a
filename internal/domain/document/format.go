package document

import (
	"path/filepath"
	"strings"
)

// Family groups file extensions that share a translation strategy.
type Family string

const (
	FamilyText  Family = "text"
	FamilyHTML  Family = "html"
	FamilyOther Family = "other"
)

// Format is a recognized document file type.
type Format struct {
	Extension   string
	Family      Family
	ContentType string
	Implemented bool
}

var formats = map[string]Format{
	".txt":   {Extension: ".txt", Family: FamilyText, ContentType: "text/plain; charset=utf-8", Implemented: true},
	".htm":   {Extension: ".htm", Family: FamilyHTML, ContentType: "text/html; charset=utf-8", Implemented: true},
	".html":  {Extension: ".html", Family: FamilyHTML, ContentType: "text/html; charset=utf-8", Implemented: true},
	".docx":  {Extension: ".docx", Family: FamilyOther, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".pptx":  {Extension: ".pptx", Family: FamilyOther, ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	".xlsx":  {Extension: ".xlsx", Family: FamilyOther, ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".pdf":   {Extension: ".pdf", Family: FamilyOther, ContentType: "application/pdf"},
	".xlf":   {Extension: ".xlf", Family: FamilyOther, ContentType: "application/xliff+xml"},
	".xliff": {Extension: ".xliff", Family: FamilyOther, ContentType: "application/xliff+xml"},
	".srt":   {Extension: ".srt", Family: FamilyOther, ContentType: "application/x-subrip"},
}

// FormatForFilename returns the format matching the file extension.
func FormatForFilename(name string) (Format, bool) {
	f, ok := formats[strings.ToLower(filepath.Ext(name))]
	return f, ok
}

// FormatForOutput returns the format named by an output_format value such
// as "html" or ".txt".
func FormatForOutput(value string) (Format, bool) {
	ext := strings.ToLower(strings.TrimSpace(value))
	if ext == "" {
		return Format{}, false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, ok := formats[ext]
	return f, ok
}

// outputFilename replaces the extension of name with that of out.
func outputFilename(name string, out Format) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + out.Extension
}
