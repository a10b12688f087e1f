package sprig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySurveys_VisitorState(t *testing.T) {
	m := NewMemorySurveys("env", "anon-1", nil)

	m.SetUserIdentifier("test_user_id")
	m.SetEmailAddress("test@gmail.com")
	m.SetVisitorAttribute("v2", "2")
	m.SetIntVisitorAttribute("v1", 1)
	m.SetBoolVisitorAttribute("beta", true)
	m.Track(EventPayload{Event: "test_event"})

	v := m.Visitor()
	assert.Equal(t, "anon-1", v.AnonymousID)
	assert.Equal(t, "test_user_id", v.UserID)
	assert.Equal(t, "test@gmail.com", v.Email)
	assert.Equal(t, map[string]interface{}{"v2": "2", "v1": 1, "beta": true}, v.Attributes)
	assert.Equal(t, []string{"test_event"}, v.Events)

	v.Attributes["v3"] = "x"
	assert.NotContains(t, m.Visitor().Attributes, "v3")
}

func TestMemorySurveys_PresentsDefaultQuestion(t *testing.T) {
	m := NewMemorySurveys("env", "anon", nil)
	s := &screen{}

	m.Track(EventPayload{Event: "quiet"})
	m.TrackAndPresent(EventPayload{Event: "test_event"}, s)

	shown := s.shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "test_event", shown[0].Event)
	assert.Equal(t, "How was your experience with test_event?", shown[0].Question)
	assert.NotEmpty(t, shown[0].ID)
}

func TestMemorySurveys_Campaigns(t *testing.T) {
	m := NewMemorySurveys("env", "anon", map[string]string{"test_event": "Rate us"})
	s := &screen{}

	m.TrackAndPresent(EventPayload{Event: "other"}, s)
	m.TrackAndPresent(EventPayload{Event: "test_event"}, s)
	m.TrackAndPresent(EventPayload{Event: "test_event"}, nil)

	shown := s.shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "Rate us", shown[0].Question)
	assert.Equal(t, []string{"other", "test_event", "test_event"}, m.Visitor().Events)
}

func TestMemorySurveys_Logout(t *testing.T) {
	m := NewMemorySurveys("env", "anon", nil)
	m.SetUserIdentifier("test_user_id")
	m.SetVisitorAttribute("v2", "2")

	m.Logout()

	v := m.Visitor()
	assert.Empty(t, v.UserID)
	assert.Empty(t, v.Attributes)
	assert.NotEqual(t, "anon", v.AnonymousID)
	assert.NotEmpty(t, v.AnonymousID)
}
