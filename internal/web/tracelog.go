package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

func StartRequest(c *gin.Context) {
	c.Set("requestStartTime", CurrentTimeFunc())
}

// TraceLog writes one line per request after every other handler finished.
// Server errors are logged at error level.
func TraceLog(c *gin.Context) {
	c.Next()

	logger := c.MustGet("logger").(*zerolog.Logger)
	startTime := c.MustGet("requestStartTime").(time.Time)

	event := logger.Info()
	if c.Writer.Status() >= 500 {
		event = logger.Error()
	}

	event.
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Int("code", c.Writer.Status()).
		Int("size", c.Writer.Size()).
		Float64("duration", CurrentTimeFunc().Sub(startTime).Seconds()).
		Msg("")
}
