package responding

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HandleError writes the JSON error body, logs it on the request logger and
// aborts the chain.
func HandleError(ctx *gin.Context, status int, message string, err error) {
	body := ErrorBody{Message: message}
	if err != nil {
		body.Details = err.Error()
	}

	if value, ok := ctx.Get("logger"); ok {
		if logger, ok := value.(*zerolog.Logger); ok {
			event := logger.Warn()
			if status >= 500 {
				event = logger.Error()
			}
			event.
				Err(err).
				Int("code", status).
				Msg(message)
		}
	}

	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}
