package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/pkg/response"
)

// Context keys set by middleware.
const (
	ctxRequestID = "request_id"
	ctxAdmin     = "admin"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestID tags every request with a ULID unless the client already sent an id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = ulid.Make().String()
		}
		c.Set(ctxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one line per request; 5xx logs at error and 4xx at warn.
func accessLog(logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("component", "access").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", c.GetString(ctxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// recovery turns a panic into a logged 500 rendered like any other error.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		h.log.Error().
			Str("request_id", c.GetString(ctxRequestID)).
			Interface("panic", rec).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		h.fail(c, errPanic)
	})
}

// secureHeaders applies the browser hardening headers. HSTS and the HTTPS
// redirect are only enabled when the application itself terminates TLS.
func secureHeaders(ssl, dev bool) gin.HandlerFunc {
	cfg := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      dev,
	}
	if ssl {
		cfg.SSLRedirect = true
		cfg.STSSeconds = 31536000
		cfg.STSIncludeSubdomains = true
	}
	return secure.New(cfg)
}

// identify marks the request as admin when it carries a valid session cookie.
// An invalid or expired cookie is cleared.
func (h *Handler) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.authCfg.CookieName)
		if err != nil || token == "" {
			c.Set(ctxAdmin, false)
			c.Next()
			return
		}
		if err := h.auth.Verify(token); err != nil {
			h.clearSession(c)
			c.Set(ctxAdmin, false)
			c.Next()
			return
		}
		c.Set(ctxAdmin, true)
		c.Next()
	}
}

// requireAdmin stops anonymous requests: HTML routes are redirected to the
// login page, API routes get a JSON 401.
func requireAdmin(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin(c) {
			c.Next()
			return
		}
		if api {
			response.Unauthorized(c)
			return
		}
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
	}
}

func isAdmin(c *gin.Context) bool {
	return c.GetBool(ctxAdmin)
}
