package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// PIILevel defines how much client data reaches logs and traces
type PIILevel string

const (
	// PIILevelNone redacts all client content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces identifiers with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel maps a config value to a level, defaulting to hashed.
func ParsePIILevel(s string) PIILevel {
	switch PIILevel(s) {
	case PIILevelNone, PIILevelFull:
		return PIILevel(s)
	default:
		return PIILevelHashed
	}
}

const maxTextPreview = 64

// Sanitizer scrubs credentials and submitted text before they are logged
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern *regexp.Regexp
	ipv4Pattern  *regexp.Regexp
}

// NewSanitizer creates a sanitizer. salt keeps hashes stable per deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:        level,
		salt:         salt,
		emailPattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		ipv4Pattern:  regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	if s == nil {
		return PIILevelHashed
	}
	return s.level
}

// SanitizeCredential renders an authentication key for logs
func (s *Sanitizer) SanitizeCredential(credential string) string {
	if credential == "" {
		return ""
	}

	switch s.Level() {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return credential
	default:
		return "key:" + s.hash(credential)
	}
}

// SanitizeText renders submitted text for logs. Hashed mode masks emails and
// addresses and truncates long input.
func (s *Sanitizer) SanitizeText(input string) string {
	switch s.Level() {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return truncate(s.hashPII(input), maxTextPreview)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := s.emailPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	return s.ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})
}

// hash creates a SHA-256 hash with the salt, shortened to 8 hex chars
func (s *Sanitizer) hash(data string) string {
	salt := ""
	if s != nil {
		salt = s.salt
	}
	h := sha256.Sum256([]byte(data + salt))
	return hex.EncodeToString(h[:])[:8]
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
