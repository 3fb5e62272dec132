package requesting

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestErrors(t *testing.T) {
	t.Run("should pass through successful responses", func(t *testing.T) {
		response := &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader("{}"))}

		rs, err := RequestErrors(response, nil)
		assert.Nil(t, err)
		assert.Same(t, response, rs)
	})

	t.Run("should extract upstream message", func(t *testing.T) {
		response := &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"message":"car not available"}`)),
		}

		rs, err := RequestErrors(response, nil)
		assert.Nil(t, rs)
		require.NotNil(t, err)
		assert.Equal(t, schema.UpstreamError, err.Code)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.Equal(t, "car not available", err.Message)
	})

	t.Run("should fall back to status text", func(t *testing.T) {
		response := &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("<html>")),
		}

		_, err := RequestErrors(response, nil)
		require.NotNil(t, err)
		assert.Equal(t, "Bad Gateway", err.Message)
	})

	t.Run("should classify connection errors", func(t *testing.T) {
		_, err := RequestErrors(nil, assert.AnError)
		require.NotNil(t, err)
		assert.Equal(t, schema.ConnectionError, err.Code)
	})
}

func TestInterceptorTransport(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rental-hub", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusTeapot)
	}))
	defer testServer.Close()

	client := &http.Client{
		Transport: &InterceptorTransport{
			Middlewares: []TransportMiddleware{
				NewLoggingTransportMiddleware(&log, "catalog"),
				NewHeaderTransportMiddleware(map[string]string{"User-Agent": "rental-hub"}),
			},
		},
	}

	ctx := context.WithValue(context.Background(), schema.RequestingTypeKey, schema.ListVehicles)
	request, _ := http.NewRequestWithContext(ctx, http.MethodGet, testServer.URL+"/cars", http.NoBody)
	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, http.StatusTeapot, response.StatusCode)
	assert.Contains(t, out.String(), `"label":"outgoing-request"`)
	assert.Contains(t, out.String(), `"requestType":"list-vehicles"`)
	assert.Contains(t, out.String(), `"code":418`)
}

func TestRequestErrorsTimeout(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	client := &http.Client{Timeout: time.Millisecond}
	_, err := RequestErrors(client.Get(testServer.URL))

	require.NotNil(t, err)
	assert.Equal(t, schema.TimeoutError, err.Code)
}
