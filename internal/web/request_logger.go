package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const CorrelationIdHeader = "x-correlation-id"

// CorrelationId reuses the caller's correlation id or creates one, and echoes
// it back so the funnel pages can quote it in support requests.
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(CorrelationIdHeader)
	if correlationId == "" {
		correlationId = uuid.New().String()
	}

	c.Set("correlationId", correlationId)
	c.Header(CorrelationIdHeader, correlationId)
}

func RegisterLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.
			With().
			Str("correlationId", c.MustGet("correlationId").(string)).
			Logger()

		c.Set("logger", &requestLogger)
	}
}
