package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/infrastructure/metrics"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

// SessionKey is the gin context key of the resolved session.
const SessionKey = "mock_session"

const sessionTokenHeader = session.TokenHeader

// Session resolves the request's session, applies forced no-response cycles
// and validates the transport against the session's expectations.
func Session(registry *session.Registry, noResponseTimeout time.Duration, log zerolog.Logger) gin.HandlerFunc {
	logger := log.With().Str("component", "session-middleware").Logger()

	return func(c *gin.Context) {
		sess := registry.Resolve(c.Request.Context(), c.GetHeader(sessionTokenHeader), c.Request.Header)
		c.Set(SessionKey, sess)

		if sess.ConsumeNoResponse() {
			metrics.RecordForcedFault("no_response")
			logger.Info().Str("session", sess.Token).Str("path", c.Request.URL.Path).Msg("withholding response as requested by session")
			withholdResponse(c, noResponseTimeout, logger)
			return
		}

		if err := sess.CheckTransport(c.Request.Context(), c.Request.RemoteAddr, viaProxy(c.Request)); err != nil {
			responses.HandleError(c, err, "transport check failed")
			return
		}

		c.Next()
	}
}

// GetSession returns the session resolved for the request, or an anonymous one.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.Anonymous()
}

// viaProxy reports whether the request passed through a proxy hop.
func viaProxy(r *http.Request) bool {
	return r.Header.Get("X-Forwarded-For") != "" || r.Header.Get("Forwarded") != "" || r.Header.Get("Via") != ""
}

// withholdResponse holds the request until the client leaves or timeout
// passes, then drops the connection without writing a response.
func withholdResponse(c *gin.Context, timeout time.Duration, log zerolog.Logger) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c.Request.Context().Done():
	case <-timer.C:
	}

	conn, err := hijack(c.Writer)
	if err != nil {
		log.Debug().Err(err).Msg("cannot drop connection, aborting with gateway timeout")
		c.AbortWithStatus(http.StatusGatewayTimeout)
		return
	}
	_ = conn.Close()
	c.Abort()
}

// hijack takes over the connection. Writers that cannot be hijacked, such
// as test recorders, report an error.
func hijack(w gin.ResponseWriter) (conn net.Conn, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hijack not supported: %v", r)
		}
	}()
	conn, _, err = w.Hijack()
	return conn, err
}
