package sprig

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/constants"
	"github.com/katyella/sprig-sample/internal/logging"
)

// Integration forwards messages to a Surveys backend.
type Integration struct {
	factory *Factory
	surveys Surveys
	logger  *logrus.Logger
}

// Surveys returns the backend the integration forwards to.
func (i *Integration) Surveys() Surveys {
	return i.surveys
}

// Dump implements analytics.Integration.
func (i *Integration) Dump(msg analytics.Message) {
	if i.surveys == nil {
		logging.Warn(i.logger, "SprigIntegrationFactory: Sprig is not initialized")
		return
	}

	switch msg.Type {
	case analytics.TypeTrack:
		i.track(msg)
	case analytics.TypeIdentify:
		i.identify(msg)
	default:
		logging.Warn(i.logger, "SprigIntegrationFactory: MessageType is not valid")
	}
}

// Reset implements analytics.Integration.
func (i *Integration) Reset() {
	if i.surveys != nil {
		i.surveys.Logout()
	}
}

func (i *Integration) track(msg analytics.Message) {
	if msg.Event == "" {
		return
	}

	payload := EventPayload{Event: msg.Event, Properties: msg.Properties}

	var screen Presenter
	if i.factory != nil {
		screen = i.factory.CurrentScreen()
	}
	if screen == nil {
		i.surveys.Track(payload)
		return
	}
	i.surveys.TrackAndPresent(payload, screen)
}

func (i *Integration) identify(msg analytics.Message) {
	if msg.UserID != "" {
		i.surveys.SetUserIdentifier(msg.UserID)
	}

	traits := msg.Traits()
	if email, ok := traits.Email(); ok {
		i.surveys.SetEmailAddress(email)
	}

	keys := make([]string, 0, len(traits))
	for k := range traits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == analytics.TraitEmail {
			continue
		}
		if len(key) >= constants.MaxAttributeNameLength || strings.HasPrefix(key, constants.ReservedAttributePrefix) {
			logging.Warn(i.logger, "%s is not a valid property name. Property names must be less than %d characters and cannot start with a '%s'. Ignoring property.",
				key, constants.MaxAttributeNameLength, constants.ReservedAttributePrefix)
			continue
		}

		switch v := traits[key].(type) {
		case string:
			i.surveys.SetVisitorAttribute(key, v)
		case bool:
			i.surveys.SetBoolVisitorAttribute(key, v)
		default:
			n, ok := toInt(v)
			if !ok {
				logging.Warn(i.logger, "%v is not a valid property value. Only String, Bool, Double and Int are accepted as valid attributes. Ignoring property.", v)
				continue
			}
			i.surveys.SetIntVisitorAttribute(key, n)
		}
	}
}

// toInt truncates any numeric value to an int.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return truncate(float64(n)), true
	case float64:
		return truncate(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return truncate(f), true
		}
	}
	return 0, false
}

func truncate(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Trunc(f))
}
