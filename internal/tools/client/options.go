package client

import (
	"errors"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

var ErrMissingBaseURL = errors.New("missing base url")

type OptionFunc func(o *Options)

type Options struct {
	// Name of the caller service, sent as User-Agent and used for logging
	name string

	// BaseURL - full URL to the service including protocol and path prefix
	baseURL string

	// Timeout - if not set, then default timeout is used
	timeout time.Duration
}

func WithName(name string) OptionFunc {
	return func(o *Options) {
		o.name = name
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func NewOptions(optionFuncs ...OptionFunc) (*Options, error) {
	options := &Options{
		name: "rental-hub",
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	if strings.TrimSpace(options.baseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	return options, nil
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL() string {
	return strings.TrimRight(o.baseURL, "/")
}

func (o *Options) Timeout() time.Duration {
	if o.timeout > 0 {
		return o.timeout
	}
	return DefaultTimeout
}
