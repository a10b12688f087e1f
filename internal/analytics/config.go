package analytics

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
)

// validate is shared by every Build call.
var validate = validator.New()

// Config is the immutable client configuration produced by ConfigBuilder.
type Config struct {
	DataPlaneURL    string        `validate:"required,url,startswith=http"`
	ControlPlaneURL string        `validate:"required,url,startswith=http"`
	LogLevel        logging.Level `validate:"gte=0,lte=5"`

	// Factories create the device-mode integrations enabled for the source.
	Factories []Factory

	TrackLifecycleEvents bool
	RecordScreenViews    bool

	// SleepCount is the number of seconds between periodic flushes.
	SleepCount int `validate:"gte=1"`

	// FlushQueueSize is the number of queued messages that triggers a flush.
	FlushQueueSize int `validate:"gte=1,lte=100"`

	// DestinationConfig overrides the control-plane config per destination,
	// keyed by factory key.
	DestinationConfig map[string]map[string]interface{}
}

// ConfigBuilder assembles a Config through chainable setters.
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder returns a builder seeded with the defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{
		DataPlaneURL:         constants.DefaultDataPlaneURL,
		ControlPlaneURL:      constants.DefaultControlPlaneURL,
		LogLevel:             logging.LevelNone,
		TrackLifecycleEvents: true,
		RecordScreenViews:    false,
		SleepCount:           constants.DefaultSleepCount,
		FlushQueueSize:       constants.DefaultFlushQueueSize,
	}}
}

func (b *ConfigBuilder) WithDataPlaneURL(url string) *ConfigBuilder {
	b.cfg.DataPlaneURL = strings.TrimSuffix(strings.TrimSpace(url), "/")
	return b
}

func (b *ConfigBuilder) WithControlPlaneURL(url string) *ConfigBuilder {
	b.cfg.ControlPlaneURL = strings.TrimSuffix(strings.TrimSpace(url), "/")
	return b
}

func (b *ConfigBuilder) WithLogLevel(level logging.Level) *ConfigBuilder {
	b.cfg.LogLevel = level
	return b
}

// WithFactory registers a device-mode integration factory. Registering the
// same key twice keeps the latest factory.
func (b *ConfigBuilder) WithFactory(factory Factory) *ConfigBuilder {
	for i, f := range b.cfg.Factories {
		if f.Key() == factory.Key() {
			b.cfg.Factories[i] = factory
			return b
		}
	}
	b.cfg.Factories = append(b.cfg.Factories, factory)
	return b
}

func (b *ConfigBuilder) WithTrackLifecycleEvents(enabled bool) *ConfigBuilder {
	b.cfg.TrackLifecycleEvents = enabled
	return b
}

func (b *ConfigBuilder) WithRecordScreenViews(enabled bool) *ConfigBuilder {
	b.cfg.RecordScreenViews = enabled
	return b
}

func (b *ConfigBuilder) WithSleepCount(seconds int) *ConfigBuilder {
	b.cfg.SleepCount = seconds
	return b
}

func (b *ConfigBuilder) WithFlushQueueSize(size int) *ConfigBuilder {
	b.cfg.FlushQueueSize = size
	return b
}

// WithDestinationConfig sets the config handed to the factory with the given
// key, replacing whatever the control plane returns for it.
func (b *ConfigBuilder) WithDestinationConfig(key string, config map[string]interface{}) *ConfigBuilder {
	if b.cfg.DestinationConfig == nil {
		b.cfg.DestinationConfig = make(map[string]map[string]interface{})
	}
	b.cfg.DestinationConfig[key] = config
	return b
}

// Build validates the accumulated settings and returns the Config.
func (b *ConfigBuilder) Build() (Config, error) {
	if err := validate.Struct(b.cfg); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return Config{}, apperrors.NewConfigError(
			fmt.Sprintf("invalid analytics config (%s)", strings.Join(fields, ", ")), err).
			WithContext("fields", fields)
	}

	cfg := b.cfg
	cfg.Factories = append([]Factory(nil), b.cfg.Factories...)
	if b.cfg.DestinationConfig != nil {
		cfg.DestinationConfig = make(map[string]map[string]interface{}, len(b.cfg.DestinationConfig))
		for k, v := range b.cfg.DestinationConfig {
			cfg.DestinationConfig[k] = v
		}
	}
	return cfg, nil
}

// factory returns the registered factory for key, if any.
func (c Config) factory(key string) Factory {
	for _, f := range c.Factories {
		if f.Key() == key {
			return f
		}
	}
	return nil
}
