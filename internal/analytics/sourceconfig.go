package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/katyella/sprig-sample/internal/analytics/transport"
	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
)

// SourceConfig is the control-plane description of the write key's source.
type SourceConfig struct {
	Source Source `json:"source"`
}

type Source struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	WriteKey     string        `json:"writeKey"`
	Enabled      bool          `json:"enabled"`
	Destinations []Destination `json:"destinations"`
}

type Destination struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Enabled               bool                   `json:"enabled"`
	Config                map[string]interface{} `json:"config"`
	DestinationDefinition DestinationDefinition  `json:"destinationDefinition"`
}

type DestinationDefinition struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// destination returns the enabled destination served by the factory key.
func (sc *SourceConfig) destination(key string) (Destination, bool) {
	if sc == nil {
		return Destination{}, false
	}
	for _, d := range sc.Source.Destinations {
		if d.Enabled && strings.EqualFold(d.DestinationDefinition.DisplayName, key) {
			return d, true
		}
	}
	return Destination{}, false
}

// fetchSourceConfig downloads the source config, retrying transient failures.
func (c *Client) fetchSourceConfig(ctx context.Context) (*SourceConfig, error) {
	var sc *SourceConfig
	err := c.retryer.do(ctx, func() error {
		resp, err := c.transport.Do(ctx, transport.Request{
			Method:  http.MethodGet,
			BaseURL: c.config.ControlPlaneURL,
			Path:    constants.SourceConfigPath,
			Query:   url.Values{"p": {"go"}, "v": {Version}},
		})
		if err != nil {
			return &NetworkError{Op: "sourceConfig", Err: err}
		}
		if resp.StatusCode >= 400 {
			return &APIError{
				HTTPStatus: resp.StatusCode,
				Message:    strings.TrimSpace(string(resp.Body)),
				Endpoint:   constants.SourceConfigPath,
			}
		}

		var parsed SourceConfig
		if err := json.Unmarshal(resp.Body, &parsed); err != nil {
			return fmt.Errorf("failed to parse source config: %w", err)
		}
		sc = &parsed
		return nil
	})
	if err != nil {
		return nil, apperrors.NewNetworkError("fetching source config", err).
			WithContext("url", c.config.ControlPlaneURL)
	}
	return sc, nil
}

// destinationConfigs resolves the config for every registered factory: a
// local override wins, otherwise the enabled control-plane destination.
func (c *Client) destinationConfigs(sc *SourceConfig) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{})
	for _, f := range c.config.Factories {
		key := f.Key()
		if override, ok := c.config.DestinationConfig[key]; ok {
			out[key] = override
			continue
		}
		if d, ok := sc.destination(key); ok {
			out[key] = d.Config
		}
	}
	return out
}
