package analytics

import (
	"runtime"
	"time"
)

// MessageType identifies the kind of call that produced a message.
type MessageType string

const (
	TypeIdentify MessageType = "identify"
	TypeTrack    MessageType = "track"
	TypeScreen   MessageType = "screen"
)

// Trait keys with special meaning.
const (
	TraitEmail       = "email"
	TraitAnonymousID = "anonymousId"
	TraitUserID      = "userId"
)

// Traits describe a user. Email is a distinguished key.
type Traits map[string]interface{}

// NewTraits returns an empty trait set.
func NewTraits() Traits {
	return make(Traits)
}

// PutEmail sets the email trait.
func (t Traits) PutEmail(email string) Traits {
	t[TraitEmail] = email
	return t
}

// Put sets an arbitrary trait.
func (t Traits) Put(key string, value interface{}) Traits {
	t[key] = value
	return t
}

// Email returns the email trait, if it is a string.
func (t Traits) Email() (string, bool) {
	email, ok := t[TraitEmail].(string)
	return email, ok
}

func (t Traits) clone() Traits {
	if t == nil {
		return nil
	}
	out := make(Traits, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Properties describe a tracked event.
type Properties map[string]interface{}

// NewProperties returns an empty property set.
func NewProperties() Properties {
	return make(Properties)
}

// PutValue sets a property.
func (p Properties) PutValue(key string, value interface{}) Properties {
	p[key] = value
	return p
}

// mergeProperties copies every set into a fresh map, later sets winning.
func mergeProperties(sets ...Properties) Properties {
	var out Properties
	for _, set := range sets {
		for k, v := range set {
			if out == nil {
				out = make(Properties)
			}
			out[k] = v
		}
	}
	return out
}

// Options adjust a single call.
type Options struct {
	// Integrations enables or disables device-mode integrations by key for
	// this message. The key "All" sets the default; unlisted keys follow it.
	Integrations map[string]bool
}

// integrationEnabled reports whether the integration with key should see a
// message sent with these options.
func (o *Options) integrationEnabled(key string) bool {
	if o == nil || len(o.Integrations) == 0 {
		return true
	}
	if enabled, ok := o.Integrations[key]; ok {
		return enabled
	}
	if all, ok := o.Integrations["All"]; ok {
		return all
	}
	return true
}

// Message is a single call as delivered to the data plane.
type Message struct {
	MessageID         string          `json:"messageId"`
	Type              MessageType     `json:"type"`
	Channel           string          `json:"channel"`
	AnonymousID       string          `json:"anonymousId"`
	UserID            string          `json:"userId,omitempty"`
	Event             string          `json:"event,omitempty"`
	Properties        Properties      `json:"properties,omitempty"`
	Integrations      map[string]bool `json:"integrations,omitempty"`
	Context           MessageContext  `json:"context"`
	OriginalTimestamp time.Time       `json:"originalTimestamp"`
	SentAt            *time.Time      `json:"sentAt,omitempty"`

	options *Options
}

// Traits returns the user traits carried in the message context.
func (m Message) Traits() Traits {
	return m.Context.Traits
}

// MessageContext is the context block attached to every message.
type MessageContext struct {
	App     AppInfo     `json:"app"`
	Library LibraryInfo `json:"library"`
	OS      OSInfo      `json:"os"`
	Traits  Traits      `json:"traits,omitempty"`
}

type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type LibraryInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type OSInfo struct {
	Name string `json:"name"`
	Arch string `json:"arch"`
}

func newOSInfo() OSInfo {
	return OSInfo{Name: runtime.GOOS, Arch: runtime.GOARCH}
}
