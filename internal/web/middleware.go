package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/iamJABASTIN/attendance-tracker/internal/auth"
)

// requestLogger emits one structured line per request, skipping the probe
// endpoints.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// sessionFromCookie resolves the session cookie, if any. Handlers decide
// what an absent session means; there is no ambient auth middleware.
func (s *Server) sessionFromCookie(c *gin.Context) (auth.Session, error) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		return auth.Session{}, auth.ErrInvalidSession
	}
	return s.auth.Authenticate(c.Request.Context(), token)
}

// requirePage redirects unauthenticated page requests to the login form.
func (s *Server) requirePage(c *gin.Context) (auth.Session, bool) {
	sess, err := s.sessionFromCookie(c)
	if err != nil {
		s.setFlash(c, flashDanger, "Please log in first.")
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return auth.Session{}, false
	}
	return sess, true
}

// requireJSON rejects unauthenticated fragment/JSON requests with 401.
func (s *Server) requireJSON(c *gin.Context) (auth.Session, bool) {
	sess, err := s.sessionFromCookie(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return auth.Session{}, false
	}
	return sess, true
}
