package requesting

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"bitbucket.org/crgw/rental-hub/internal/schema"
)

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

type upstreamMessage struct {
	Message string `json:"message"`
}

// RequestErrors classifies the outcome of a single upstream attempt. On a
// non-2xx status the body is consumed to extract the upstream message.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.UpstreamResponseError) {
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, schema.NewTimeoutError(err.Error())
		}

		return nil, schema.NewConnectionError(err.Error())
	}

	if !isValidResponse(response.StatusCode) {
		defer response.Body.Close()

		message := http.StatusText(response.StatusCode)
		body, _ := io.ReadAll(io.LimitReader(response.Body, 64*1024))

		var parsed upstreamMessage
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			message = parsed.Message
		}

		return nil, schema.NewUpstreamError(response.StatusCode, message)
	}

	return response, nil
}
