package session

import (
	"context"
	"sync"
	"time"

	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

var (
	ErrProxyExpected       = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Session expects requests through a proxy")
	ErrReconnectDisallowed = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Session does not allow reconnections")
)

// Session groups requests sharing a correlation token.
type Session struct {
	Token     string
	Params    Params
	CreatedAt time.Time

	mu                  sync.Mutex
	noResponseRemaining int
	rateLimitRemaining  int
	docFailureRemaining int
	endpoints           map[string]struct{}
}

func newSession(token string, params Params, now time.Time) *Session {
	return &Session{
		Token:               token,
		Params:              params,
		CreatedAt:           now,
		noResponseRemaining: params.NoResponseCount,
		rateLimitRemaining:  params.RateLimitCount,
		docFailureRemaining: params.DocFailureCount,
		endpoints:           make(map[string]struct{}),
	}
}

// Anonymous returns a parameterless session that is not registered anywhere.
func Anonymous() *Session {
	return newSession("", Params{AllowReconnections: true}, time.Now())
}

// Anonymous reports whether the session has no correlation token.
func (s *Session) Anonymous() bool {
	return s.Token == ""
}

func consume(counter *int) bool {
	if *counter <= 0 {
		return false
	}
	*counter--
	return true
}

// ConsumeNoResponse reports whether the current request must go unanswered.
func (s *Session) ConsumeNoResponse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return consume(&s.noResponseRemaining)
}

// ConsumeRateLimit reports whether the current request must be throttled.
func (s *Session) ConsumeRateLimit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return consume(&s.rateLimitRemaining)
}

// ConsumeDocFailure reports whether the current document translation must fail.
func (s *Session) ConsumeDocFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return consume(&s.docFailureRemaining)
}

// QueueDelay is how long a document stays queued.
func (s *Session) QueueDelay() time.Duration {
	return s.Params.DocQueueTime
}

// TranslateDelay is how long a document stays translating after the queue delay.
func (s *Session) TranslateDelay() time.Duration {
	return s.Params.DocTranslateTime
}

// CheckTransport validates the connection properties of a request against
// the session's expectations and records endpoint as seen.
func (s *Session) CheckTransport(ctx context.Context, endpoint string, viaProxy bool) error {
	if s.Params.ExpectProxy && !viaProxy {
		return ErrProxyExpected
	}
	if endpoint == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.endpoints[endpoint]; seen {
		return nil
	}
	if !s.Params.AllowReconnections && len(s.endpoints) > 0 {
		return ErrReconnectDisallowed.WithDetail("endpoint " + endpoint)
	}
	s.endpoints[endpoint] = struct{}{}
	return nil
}
