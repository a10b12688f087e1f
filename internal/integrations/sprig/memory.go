package sprig

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultQuestion is asked after any tracked event when no campaigns are
// configured.
const DefaultQuestion = "How was your experience with %s?"

// Visitor is the state the backend holds about the current visitor.
type Visitor struct {
	AnonymousID string
	UserID      string
	Email       string
	Attributes  map[string]interface{}
	Events      []string
}

// MemorySurveys keeps visitor state in memory and presents a survey card for
// tracked events that match a campaign.
type MemorySurveys struct {
	environmentID string
	// campaigns maps an event name to its question. Empty means every event
	// gets DefaultQuestion.
	campaigns map[string]string

	mu      sync.Mutex
	visitor Visitor
}

// NewMemorySurveys returns a backend for environmentID. anonymousID seeds the
// visitor until SetUserIdentifier is called.
func NewMemorySurveys(environmentID, anonymousID string, campaigns map[string]string) *MemorySurveys {
	c := make(map[string]string, len(campaigns))
	for k, v := range campaigns {
		c[k] = v
	}
	return &MemorySurveys{
		environmentID: environmentID,
		campaigns:     c,
		visitor:       Visitor{AnonymousID: anonymousID, Attributes: map[string]interface{}{}},
	}
}

// EnvironmentID returns the environment the backend was configured for.
func (m *MemorySurveys) EnvironmentID() string {
	return m.environmentID
}

// Visitor returns a copy of the current visitor state.
func (m *MemorySurveys) Visitor() Visitor {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.visitor
	v.Attributes = make(map[string]interface{}, len(m.visitor.Attributes))
	for k, val := range m.visitor.Attributes {
		v.Attributes[k] = val
	}
	v.Events = append([]string(nil), m.visitor.Events...)
	return v
}

func (m *MemorySurveys) SetUserIdentifier(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visitor.UserID = userID
}

func (m *MemorySurveys) SetEmailAddress(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visitor.Email = email
}

func (m *MemorySurveys) SetVisitorAttribute(key, value string) {
	m.setAttribute(key, value)
}

func (m *MemorySurveys) SetIntVisitorAttribute(key string, value int) {
	m.setAttribute(key, value)
}

func (m *MemorySurveys) SetBoolVisitorAttribute(key string, value bool) {
	m.setAttribute(key, value)
}

func (m *MemorySurveys) setAttribute(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visitor.Attributes[key] = value
}

func (m *MemorySurveys) Track(payload EventPayload) {
	m.record(payload)
}

func (m *MemorySurveys) TrackAndPresent(payload EventPayload, p Presenter) {
	survey, ok := m.record(payload)
	if ok && p != nil {
		p.PresentSurvey(survey)
	}
}

// record stores the event and returns the survey it triggers, if any.
func (m *MemorySurveys) record(payload EventPayload) (Survey, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.visitor.Events = append(m.visitor.Events, payload.Event)

	question := fmt.Sprintf(DefaultQuestion, payload.Event)
	if len(m.campaigns) > 0 {
		q, ok := m.campaigns[payload.Event]
		if !ok {
			return Survey{}, false
		}
		question = q
	}
	return Survey{ID: uuid.NewString(), Event: payload.Event, Question: question}, true
}

// Logout forgets the identified visitor. A fresh anonymous visitor takes
// its place.
func (m *MemorySurveys) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visitor = Visitor{AnonymousID: uuid.NewString(), Attributes: map[string]interface{}{}}
}
