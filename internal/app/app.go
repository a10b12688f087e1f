package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/config"
	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/integrations/sprig"
	"github.com/katyella/sprig-sample/internal/logging"
)

// SleepCount is the flush interval of the sample, in seconds.
const SleepCount = 3

// Options holds runtime wiring for building the app.
type Options struct {
	WriteKey        string
	DataPlaneURL    string // empty keeps the config file or default value
	ControlPlaneURL string // optional
	ConfigPath      string // optional; empty means <Home>/config.yaml
	Home            string // state directory, e.g. $HOME/.sprig-sample
	Version         string

	Logger     *logrus.Logger     // optional; defaults to a discarding logger
	HTTPClient analytics.HTTPDoer // optional
}

// App bundles what the screen and main need for the process lifetime.
type App struct {
	Config analytics.Config
	Client *analytics.Client
	Sprig  *sprig.Factory
	Logger *logrus.Logger
}

// DefaultHome returns $HOME/.sprig-sample.
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.NewConfigError("locating home directory", err)
	}
	return filepath.Join(home, constants.AppConfigDir), nil
}

// BuildConfig assembles the client configuration. The sample values come
// first, the config file may override them, and explicit build-time values
// from opts win over both.
func BuildConfig(opts Options, factory analytics.Factory, file *config.File) (analytics.Config, error) {
	b := analytics.NewConfigBuilder().
		WithLogLevel(logging.LevelVerbose).
		WithFactory(factory).
		WithTrackLifecycleEvents(false).
		WithRecordScreenViews(false).
		WithSleepCount(SleepCount)

	file.Apply(b)

	if opts.DataPlaneURL != "" {
		b.WithDataPlaneURL(opts.DataPlaneURL)
	}
	if opts.ControlPlaneURL != "" {
		b.WithControlPlaneURL(opts.ControlPlaneURL)
	}
	return b.Build()
}

// New builds the configuration and the analytics client.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	home := opts.Home
	if home == "" {
		var err error
		if home, err = DefaultHome(); err != nil {
			return nil, err
		}
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(home, constants.ConfigFileName)
	}
	file, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	factory := sprig.NewFactory(logger)
	cfg, err := BuildConfig(opts, factory, file)
	if err != nil {
		return nil, err
	}

	clientOpts := []analytics.Option{
		analytics.WithLogger(logger),
		analytics.WithStore(analytics.NewFileStore(filepath.Join(home, constants.IdentityFileName))),
		analytics.WithAppInfo(constants.AppTitle, opts.Version),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, analytics.WithHTTPClient(opts.HTTPClient))
	}

	client, err := analytics.New(opts.WriteKey, cfg, clientOpts...)
	if err != nil {
		return nil, err
	}

	logging.Info(logger, "analytics client ready for %s, integrations %v", cfg.DataPlaneURL, client.Integrations())
	return &App{
		Config: cfg,
		Client: client,
		Sprig:  factory,
		Logger: logger,
	}, nil
}

// Close delivers pending events and stops the client.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := a.Client.Flush(ctx); err != nil {
		logging.Warn(a.Logger, "flushing analytics on exit: %v", err)
	}
	return a.Client.Close()
}
