package routes

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"trade_portal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var errPayloadTooLarge = pkg.NewDomainErrorSimple("PAYLOAD_TOO_LARGE", "Request body exceeds size limit", http.StatusRequestEntityTooLarge)

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

func recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// maxBodyBytes rejects bodies over maxBytes with 413. Content-Length is
// checked first; chunked bodies are read through http.MaxBytesReader.
func maxBodyBytes(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(errPayloadTooLarge.HTTPStatus, errPayloadTooLarge.ToHTTPError())
			return
		}
		buf, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
		if err != nil {
			c.AbortWithStatusJSON(errPayloadTooLarge.HTTPStatus, errPayloadTooLarge.ToHTTPError())
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(buf))
		c.Next()
	}
}
