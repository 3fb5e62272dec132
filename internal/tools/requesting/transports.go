package requesting

import (
	"net/http"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/schema"
	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	return transport.RoundTrip(req)
}

type LoggingTransportMiddleware struct {
	Transport   http.RoundTripper
	log         *zerolog.Logger
	destination string
}

func NewLoggingTransportMiddleware(log *zerolog.Logger, destination string) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:         log,
			Transport:   rt,
			destination: destination,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("destination", t.destination).
		Str("method", req.Method).
		Str("url", req.URL.String())

	if requestType, ok := req.Context().Value(schema.RequestingTypeKey).(schema.CatalogRequestName); ok {
		message.Str("requestType", string(requestType))
	}

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error()).Int("code", 0)
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

// HeaderTransportMiddleware sets fixed headers on every outgoing request.
type HeaderTransportMiddleware struct {
	Transport http.RoundTripper
	headers   map[string]string
}

func NewHeaderTransportMiddleware(headers map[string]string) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &HeaderTransportMiddleware{
			Transport: rt,
			headers:   headers,
		}
	}
}

func (t *HeaderTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, value := range t.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	return t.Transport.RoundTrip(req)
}
