package middleware

import (
	"strings"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	loggerSkipPathsPrefix = []string{
		"GET /api/health",
		"HEAD /api/health",
		"GET /metrics",
		"GET /favicon.ico",
	}
)

const requestIDHeader = "X-Request-ID"

type ZerologMiddleware struct{}

func NewZerologMiddleware() *ZerologMiddleware {
	return &ZerologMiddleware{}
}

func (m *ZerologMiddleware) Init() error {
	return nil
}

func (m *ZerologMiddleware) logPath(path string) bool {
	for _, prefix := range loggerSkipPathsPrefix {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

func (m *ZerologMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tStart := time.Now()

		requestID := c.GetHeader(requestIDHeader)

		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)

		c.Next()

		code := c.Writer.Status()
		address := c.Request.RemoteAddr
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		latency := time.Since(tStart).String()

		var evt *zerolog.Event

		// logPath checks if the path should be logged normally or with debug
		if m.logPath(method + " " + path) {
			if code >= 400 {
				evt = tlog.HTTP.Warn()
			} else {
				evt = tlog.HTTP.Info()
			}
		} else {
			evt = tlog.HTTP.Debug()
		}

		evt.Str("method", method).
			Str("path", path).
			Str("address", address).
			Str("clientIp", clientIP).
			Str("requestId", requestID).
			Int("status", code).
			Str("latency", latency).
			Msg("Request")
	}
}
