package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TapLogger(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := c.MustGet("logger").(*zerolog.Logger)

		requestLogger := logger.
			With().
			Str("operation", operation).
			Str("operationId", uuid.New().String()).
			Logger()

		c.Set("logger", &requestLogger)
	}
}
