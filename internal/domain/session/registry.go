package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/infrastructure/store"
)

// Registry keeps sessions by correlation token.
type Registry struct {
	sessions *store.ExpiringStore[string, *Session]
	clock    func() time.Time
	log      zerolog.Logger
}

// NewRegistry creates a session registry backed by an expiring store.
func NewRegistry(opts store.Options, log zerolog.Logger) *Registry {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		sessions: store.NewExpiringStore[string, *Session]("sessions", opts, nil, log),
		clock:    clock,
		log:      log.With().Str("component", "session-registry").Logger(),
	}
}

// Resolve returns the session for token, creating it from the control
// headers on first sight. An empty token yields an unregistered session.
func (r *Registry) Resolve(ctx context.Context, token string, headers Header) *Session {
	if token == "" {
		return Anonymous()
	}

	sess, created := r.sessions.Acquire(token, func() *Session {
		return newSession(token, ParseParams(headers, r.log), r.clock())
	})
	if created {
		r.log.Info().
			Str("session", token).
			Int("no_response_count", sess.Params.NoResponseCount).
			Int("rate_limit_count", sess.Params.RateLimitCount).
			Int("doc_failure_count", sess.Params.DocFailureCount).
			Dur("doc_queue_time", sess.Params.DocQueueTime).
			Dur("doc_translate_time", sess.Params.DocTranslateTime).
			Bool("expect_proxy", sess.Params.ExpectProxy).
			Bool("allow_reconnections", sess.Params.AllowReconnections).
			Msg("session created")
	}
	return sess
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Start begins expiring idle sessions.
func (r *Registry) Start(ctx context.Context) {
	r.sessions.Start(ctx)
}

// Stop halts expiry.
func (r *Registry) Stop() {
	r.sessions.Stop()
}

// Sweep evicts sessions idle past their lifetime as of now.
func (r *Registry) Sweep(now time.Time) int {
	return r.sessions.Sweep(now)
}
