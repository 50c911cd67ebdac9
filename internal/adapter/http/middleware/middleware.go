package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"token-earn-bot/pkg/apperror"
	"token-earn-bot/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminAuth creates a middleware that checks a static bearer token on
// operator routes. An empty configured token disables the routes
// entirely rather than leaving them open.
func AdminAuth(token string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("admin auth rejected")
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestLogger creates a middleware that tags each request with an id
// and logs it on completion. Response envelopes pick the id up from the
// context.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.New().String()
		c.Set("request_id", reqID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits request body size.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
