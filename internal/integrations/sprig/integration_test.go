package sprig

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/logging"
)

func newTestIntegration(t *testing.T) (*Integration, *recordingSurveys, *Factory) {
	t.Helper()

	rs := &recordingSurveys{}
	f := NewFactory(logging.Discard(), WithSurveys(func(string, string, map[string]string) Surveys { return rs }))
	in, err := f.Create(map[string]interface{}{"environmentId": "env"}, nil, analytics.Config{})
	require.NoError(t, err)
	return in.(*Integration), rs, f
}

func identifyMessage(userID string, traits analytics.Traits) analytics.Message {
	return analytics.Message{
		Type:    analytics.TypeIdentify,
		UserID:  userID,
		Context: analytics.MessageContext{Traits: traits},
	}
}

func TestIntegration_TrackWithoutScreen(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(analytics.Message{Type: analytics.TypeTrack, Event: "test_event"})

	assert.Equal(t, []string{"track test_event map[]"}, rs.recorded())
}

func TestIntegration_TrackPresentsOnScreen(t *testing.T) {
	in, rs, f := newTestIntegration(t)
	s := &screen{}
	f.SetCurrentScreen(s)

	in.Dump(analytics.Message{
		Type:       analytics.TypeTrack,
		Event:      "test_event_with_properties",
		Properties: analytics.Properties{"key_1": "value_1", "key_2": "value_2"},
	})

	assert.Equal(t, []string{"present test_event_with_properties map[key_1:value_1 key_2:value_2]"}, rs.recorded())
	require.Len(t, rs.presented, 1)
	assert.Same(t, s, rs.presented[0])
}

func TestIntegration_TrackWithoutEventIgnored(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(analytics.Message{Type: analytics.TypeTrack})

	assert.Empty(t, rs.recorded())
}

func TestIntegration_Identify(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(identifyMessage("test_user_id", analytics.NewTraits().
		PutEmail("test@gmail.com").
		Put("v1", 1).
		Put("v2", "2")))

	assert.Equal(t, []string{
		"user test_user_id",
		"email test@gmail.com",
		"int v1=1",
		"string v2=2",
	}, rs.recorded())
}

func TestIntegration_IdentifyAttributeRules(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(identifyMessage("", analytics.Traits{
		"a_float":                2.9,
		"b_negative":             -2.9,
		"c_bool":                 true,
		"d_json":                 json.Number("7"),
		"e_slice":                []string{"x"},
		"f_nil":                  nil,
		"!reserved":              "x",
		strings.Repeat("k", 256): "too long",
		strings.Repeat("k", 255): "ok",
	}))

	assert.Equal(t, []string{
		"int a_float=2",
		"int b_negative=-2",
		"bool c_bool=true",
		"int d_json=7",
		"string " + strings.Repeat("k", 255) + "=ok",
	}, rs.recorded())
}

func TestIntegration_IdentifyWithoutUserOrEmail(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(identifyMessage("", nil))

	assert.Empty(t, rs.recorded())
}

func TestIntegration_OtherTypesIgnored(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Dump(analytics.Message{Type: analytics.TypeScreen, Event: "Home"})

	assert.Empty(t, rs.recorded())
}

func TestIntegration_Reset(t *testing.T) {
	in, rs, _ := newTestIntegration(t)

	in.Reset()

	assert.Equal(t, []string{"logout"}, rs.recorded())
}

func TestIntegration_Uninitialized(t *testing.T) {
	in := &Integration{}

	assert.NotPanics(t, func() {
		in.Dump(analytics.Message{Type: analytics.TypeTrack, Event: "test_event"})
		in.Reset()
	})
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   int
		wantOK bool
	}{
		{int64(5), 5, true},
		{uint8(3), 3, true},
		{float32(1.5), 1, true},
		{json.Number("2.75"), 2, true},
		{json.Number("nope"), 0, false},
		{"5", 0, false},
	}

	for _, tt := range tests {
		got, ok := toInt(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
