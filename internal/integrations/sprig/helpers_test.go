package sprig

import (
	"fmt"
	"sync"
)

// recordingSurveys records every call as a readable string.
type recordingSurveys struct {
	mu        sync.Mutex
	calls     []string
	presented []Presenter
}

func (r *recordingSurveys) record(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingSurveys) SetUserIdentifier(userID string) { r.record("user %s", userID) }
func (r *recordingSurveys) SetEmailAddress(email string) { r.record("email %s", email) }
func (r *recordingSurveys) SetVisitorAttribute(key, value string) {
	r.record("string %s=%s", key, value)
}
func (r *recordingSurveys) SetIntVisitorAttribute(key string, value int) {
	r.record("int %s=%d", key, value)
}
func (r *recordingSurveys) SetBoolVisitorAttribute(key string, value bool) {
	r.record("bool %s=%t", key, value)
}
func (r *recordingSurveys) Track(payload EventPayload) {
	r.record("track %s %v", payload.Event, payload.Properties)
}
func (r *recordingSurveys) TrackAndPresent(payload EventPayload, p Presenter) {
	r.record("present %s %v", payload.Event, payload.Properties)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presented = append(r.presented, p)
}
func (r *recordingSurveys) Logout() { r.record("logout") }

func (r *recordingSurveys) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type screen struct {
	name    string
	mu      sync.Mutex
	surveys []Survey
}

func (s *screen) PresentSurvey(survey Survey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys = append(s.surveys, survey)
}

func (s *screen) shown() []Survey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Survey(nil), s.surveys...)
}
