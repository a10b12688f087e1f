package analytics

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/analytics/transport"
)

// HTTPDoer is an interface for HTTP operations (for testing).
type HTTPDoer = transport.HTTPDoer

// Option configures the Client.
type Option func(*clientOptions) error

type clientOptions struct {
	httpClient HTTPDoer
	logger     *logrus.Logger
	store      Store
	retry      RetryConfig
	onError    func(msgs []Message, err error)
	app        AppInfo
	now        func() time.Time
}

func newDefaultOptions() *clientOptions {
	return &clientOptions{
		retry: defaultRetryConfig(),
		app:   AppInfo{Name: "sprig-sample", Version: Version},
		now:   time.Now,
	}
}

// WithHTTPClient sets a custom HTTP client.
// Default: http.Client with a 10 second timeout
func WithHTTPClient(client HTTPDoer) Option {
	return func(o *clientOptions) error {
		if client == nil {
			return errors.New("HTTP client cannot be nil")
		}
		o.httpClient = client
		return nil
	}
}

// WithLogger sets the logger whose output the client writes to. The client
// filters at the configured log level.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *clientOptions) error {
		o.logger = logger
		return nil
	}
}

// WithStore sets where the identity is persisted.
// Default: in-memory
func WithStore(store Store) Option {
	return func(o *clientOptions) error {
		if store == nil {
			return errors.New("store cannot be nil")
		}
		o.store = store
		return nil
	}
}

// WithRetry configures batch redelivery.
func WithRetry(config RetryConfig) Option {
	return func(o *clientOptions) error {
		if config.MaxAttempts < 0 {
			return errors.New("max attempts cannot be negative")
		}
		o.retry = config
		return nil
	}
}

// WithoutRetry disables redelivery.
func WithoutRetry() Option {
	return func(o *clientOptions) error {
		o.retry = RetryConfig{MaxAttempts: 1}
		return nil
	}
}

// WithOnError registers a callback for batches that could not be delivered.
func WithOnError(fn func(msgs []Message, err error)) Option {
	return func(o *clientOptions) error {
		o.onError = fn
		return nil
	}
}

// WithAppInfo sets the application reported in message context.
func WithAppInfo(name, version string) Option {
	return func(o *clientOptions) error {
		if name == "" {
			return errors.New("app name cannot be empty")
		}
		o.app = AppInfo{Name: name, Version: version}
		return nil
	}
}

func defaultHTTPClient(timeout time.Duration) HTTPDoer {
	return &http.Client{Timeout: timeout}
}
