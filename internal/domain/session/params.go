package session

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenHeader carries the correlation token that groups requests into a session.
const TokenHeader = "mock-server-session"

// Control headers read when a session is first seen.
const (
	HeaderNoResponseCount       = "mock-server-session-no-response-count"
	HeaderRateLimitCount        = "mock-server-session-429-count"
	HeaderDocFailure            = "mock-server-session-doc-failure"
	HeaderInitCharacterLimit    = "mock-server-session-init-character-limit"
	HeaderInitDocumentLimit     = "mock-server-session-init-document-limit"
	HeaderInitTeamDocumentLimit = "mock-server-session-init-team-document-limit"
	HeaderDocQueueTime          = "mock-server-session-doc-queue-time"
	HeaderDocTranslateTime      = "mock-server-session-doc-translate-time"
	HeaderExpectProxy           = "mock-server-session-expect-proxy"
	HeaderAllowReconnections    = "mock-server-session-allow-reconnections"
)

// Header is the read side of a request header collection. http.Header satisfies it.
type Header interface {
	Get(key string) string
}

// Params are the fault-injection and provisioning parameters of a session.
// They are fixed when the session is created.
type Params struct {
	NoResponseCount int
	RateLimitCount  int
	DocFailureCount int

	InitCharacterLimit    *int64
	InitDocumentLimit     *int64
	InitTeamDocumentLimit *int64

	DocQueueTime     time.Duration
	DocTranslateTime time.Duration

	ExpectProxy        bool
	AllowReconnections bool
}

// ParseParams reads the control headers. Numeric values are truncated toward
// zero; negative or non-numeric values are logged and ignored.
func ParseParams(h Header, log zerolog.Logger) Params {
	p := Params{AllowReconnections: true}
	if h == nil {
		return p
	}

	read := func(name string) (int64, bool) {
		raw := strings.TrimSpace(h.Get(name))
		if raw == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			log.Warn().Str("header", name).Str("value", raw).Msg("ignoring invalid session parameter")
			return 0, false
		}
		return int64(v), true
	}

	if v, ok := read(HeaderNoResponseCount); ok {
		p.NoResponseCount = int(v)
	}
	if v, ok := read(HeaderRateLimitCount); ok {
		p.RateLimitCount = int(v)
	}
	if v, ok := read(HeaderDocFailure); ok {
		p.DocFailureCount = int(v)
	}
	if v, ok := read(HeaderInitCharacterLimit); ok {
		p.InitCharacterLimit = &v
	}
	if v, ok := read(HeaderInitDocumentLimit); ok {
		p.InitDocumentLimit = &v
	}
	if v, ok := read(HeaderInitTeamDocumentLimit); ok {
		p.InitTeamDocumentLimit = &v
	}
	if v, ok := read(HeaderDocQueueTime); ok {
		p.DocQueueTime = time.Duration(v) * time.Millisecond
	}
	if v, ok := read(HeaderDocTranslateTime); ok {
		p.DocTranslateTime = time.Duration(v) * time.Millisecond
	}
	if v, ok := read(HeaderExpectProxy); ok {
		p.ExpectProxy = v != 0
	}
	if v, ok := read(HeaderAllowReconnections); ok {
		p.AllowReconnections = v != 0
	}
	return p
}
