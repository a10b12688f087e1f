// Package config reads the optional YAML file that overrides the sample's
// built-in analytics settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
)

// File is the on-disk shape of config.yaml. Unset fields leave the built-in
// values alone.
type File struct {
	DataPlaneURL    string                            `yaml:"data_plane_url"`
	ControlPlaneURL string                            `yaml:"control_plane_url"`
	LogLevel        *logging.Level                    `yaml:"log_level"`
	SleepCount      *int                              `yaml:"sleep_count"`
	FlushQueueSize  *int                              `yaml:"flush_queue_size"`
	Destinations    map[string]map[string]interface{} `yaml:"destinations"`
}

// DefaultPath returns ~/.sprig-sample/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.NewConfigError("locating home directory", err)
	}
	return filepath.Join(home, constants.AppConfigDir, constants.ConfigFileName), nil
}

// LoadFile reads path. A missing file yields an empty File.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, apperrors.NewConfigError("reading config file", err).WithContext("path", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("parsing %s", path), err).WithContext("path", path)
	}
	return &f, nil
}

// Apply copies every set field onto b.
func (f *File) Apply(b *analytics.ConfigBuilder) *analytics.ConfigBuilder {
	if f == nil {
		return b
	}
	if f.DataPlaneURL != "" {
		b.WithDataPlaneURL(f.DataPlaneURL)
	}
	if f.ControlPlaneURL != "" {
		b.WithControlPlaneURL(f.ControlPlaneURL)
	}
	if f.LogLevel != nil {
		b.WithLogLevel(*f.LogLevel)
	}
	if f.SleepCount != nil {
		b.WithSleepCount(*f.SleepCount)
	}
	if f.FlushQueueSize != nil {
		b.WithFlushQueueSize(*f.FlushQueueSize)
	}
	for key, dc := range f.Destinations {
		b.WithDestinationConfig(key, dc)
	}
	return b
}
