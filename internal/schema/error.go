package schema

import "fmt"

type UpstreamErrorCode string

const (
	TimeoutError    UpstreamErrorCode = "TIMEOUT_ERROR"
	ConnectionError UpstreamErrorCode = "CONNECTION_ERROR"
	UpstreamError   UpstreamErrorCode = "UPSTREAM_ERROR"
	DecodingError   UpstreamErrorCode = "DECODING_ERROR"
)

// UpstreamResponseError describes a failed call to the catalog service.
type UpstreamResponseError struct {
	Code       UpstreamErrorCode `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode,omitempty"`
}

func (e *UpstreamResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewUpstreamError(statusCode int, msg string) *UpstreamResponseError {
	return &UpstreamResponseError{
		Code:       UpstreamError,
		Message:    msg,
		StatusCode: statusCode,
	}
}

func NewTimeoutError(msg string) *UpstreamResponseError {
	return &UpstreamResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) *UpstreamResponseError {
	return &UpstreamResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewDecodingError(msg string) *UpstreamResponseError {
	return &UpstreamResponseError{
		Code:    DecodingError,
		Message: msg,
	}
}
