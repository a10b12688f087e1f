// Package sprig forwards analytics identify and track calls to a Sprig
// surveys backend as a device-mode integration.
package sprig

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/analytics"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
)

const (
	// Key is the destination name the factory serves.
	Key = "Sprig"

	configEnvironmentID = "environmentId"
	configSurveys       = "surveys"
)

var (
	// ErrInvalidConfig is returned when the destination has no config.
	ErrInvalidConfig = errors.New("invalid configuration, aborting Sprig initialization")

	// ErrInvalidEnvironmentID is returned when environmentId is missing or empty.
	ErrInvalidEnvironmentID = errors.New("invalid api key, aborting Sprig initialization")
)

var validate = validator.New()

// destinationConfig is the part of the destination config Sprig reads.
type destinationConfig struct {
	EnvironmentID string `validate:"required"`
	Campaigns     map[string]string
}

// SurveysFunc builds the surveys backend for a configured environment.
type SurveysFunc func(environmentID, anonymousID string, campaigns map[string]string) Surveys

// Factory creates Sprig integrations and tracks the screen surveys are
// presented on.
type Factory struct {
	logger     *logrus.Logger
	newSurveys SurveysFunc

	mu     sync.RWMutex
	screen Presenter
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithSurveys replaces the in-memory backend.
func WithSurveys(fn SurveysFunc) FactoryOption {
	return func(f *Factory) {
		f.newSurveys = fn
	}
}

// NewFactory returns a factory logging to logger.
func NewFactory(logger *logrus.Logger, opts ...FactoryOption) *Factory {
	f := &Factory{
		logger: logger,
		newSurveys: func(environmentID, anonymousID string, campaigns map[string]string) Surveys {
			return NewMemorySurveys(environmentID, anonymousID, campaigns)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Key implements analytics.Factory.
func (f *Factory) Key() string {
	return Key
}

// Create implements analytics.Factory.
func (f *Factory) Create(config map[string]interface{}, client *analytics.Client, cfg analytics.Config) (analytics.Integration, error) {
	logger := logging.Derive(f.logger, cfg.LogLevel)

	dc, err := parseConfig(config)
	if err != nil {
		logging.Error(logger, "SprigIntegrationFactory: %v", err)
		return nil, apperrors.NewIntegrationError("creating Sprig integration", err)
	}

	var anonymousID string
	if client != nil {
		anonymousID = client.AnonymousID()
	}

	logging.Debug(logger, "SprigIntegrationFactory: configuring environment %s", dc.EnvironmentID)
	return &Integration{
		factory: f,
		surveys: f.newSurveys(dc.EnvironmentID, anonymousID, dc.Campaigns),
		logger:  logger,
	}, nil
}

// SetCurrentScreen makes p the screen surveys are presented on.
func (f *Factory) SetCurrentScreen(p Presenter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = p
}

// ClearCurrentScreen forgets p, unless another screen has replaced it since.
func (f *Factory) ClearCurrentScreen(p Presenter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.screen == p {
		f.screen = nil
	}
}

// CurrentScreen returns the registered screen, or nil.
func (f *Factory) CurrentScreen() Presenter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.screen
}

func parseConfig(config map[string]interface{}) (destinationConfig, error) {
	if config == nil {
		return destinationConfig{}, ErrInvalidConfig
	}

	var dc destinationConfig
	dc.EnvironmentID, _ = config[configEnvironmentID].(string)
	if err := validate.Struct(dc); err != nil {
		return destinationConfig{}, ErrInvalidEnvironmentID
	}

	if raw, ok := config[configSurveys].(map[string]interface{}); ok {
		dc.Campaigns = make(map[string]string, len(raw))
		for event, q := range raw {
			if question, ok := q.(string); ok {
				dc.Campaigns[event] = question
			}
		}
	}
	return dc, nil
}
