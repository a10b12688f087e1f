package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testWriteKey = "2AbCdEfGhIjKlMnOpQrStUvWxYz"

// dataPlane is a fake data plane and control plane.
type dataPlane struct {
	server *httptest.Server

	mu           sync.Mutex
	batches      []batchRequest
	auth         []string
	status       int
	sourceConfig *SourceConfig
	configCalls  int
}

func newDataPlane(t *testing.T) *dataPlane {
	t.Helper()

	dp := &dataPlane{status: http.StatusOK}
	dp.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dp.mu.Lock()
		defer dp.mu.Unlock()

		switch r.URL.Path {
		case "/sourceConfig":
			dp.configCalls++
			if dp.sourceConfig == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(dp.sourceConfig)
		case "/v1/batch":
			var req batchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			dp.auth = append(dp.auth, r.Header.Get("Authorization"))
			if dp.status == http.StatusOK {
				dp.batches = append(dp.batches, req)
			}
			w.WriteHeader(dp.status)
			_, _ = w.Write([]byte("OK"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(dp.server.Close)
	return dp
}

func (dp *dataPlane) setStatus(code int) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.status = code
}

func (dp *dataPlane) setSourceConfig(sc *SourceConfig) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.sourceConfig = sc
}

func (dp *dataPlane) authHeaders() []string {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return append([]string(nil), dp.auth...)
}

func (dp *dataPlane) sourceConfigCalls() int {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.configCalls
}

// messages returns every delivered message in order.
func (dp *dataPlane) messages() []Message {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	var out []Message
	for _, b := range dp.batches {
		out = append(out, b.Batch...)
	}
	return out
}

func (dp *dataPlane) builder() *ConfigBuilder {
	return NewConfigBuilder().
		WithDataPlaneURL(dp.server.URL).
		WithControlPlaneURL(dp.server.URL).
		WithTrackLifecycleEvents(false).
		WithSleepCount(60)
}

// newTestClient builds a client against dp and closes it when the test ends.
func newTestClient(t *testing.T, dp *dataPlane, b *ConfigBuilder, opts ...Option) *Client {
	t.Helper()

	cfg, err := b.Build()
	require.NoError(t, err)

	opts = append([]Option{WithHTTPClient(dp.server.Client()), WithoutRetry()}, opts...)
	client, err := New(testWriteKey, cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type fakeIntegration struct {
	mu      sync.Mutex
	msgs    []Message
	resets  int
	panicOn string
}

func (f *fakeIntegration) Dump(msg Message) {
	if f.panicOn != "" && msg.Event == f.panicOn {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeIntegration) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeIntegration) dumped() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.msgs...)
}

func (f *fakeIntegration) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

type fakeFactory struct {
	key     string
	err     error
	panicOn string

	mu        sync.Mutex
	created   *fakeIntegration
	gotConfig map[string]interface{}
	gotClient *Client
}

func (f *fakeFactory) Key() string { return f.key }

func (f *fakeFactory) Create(config map[string]interface{}, client *Client, cfg Config) (Integration, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotConfig = config
	f.gotClient = client
	f.created = &fakeIntegration{panicOn: f.panicOn}
	return f.created, nil
}

func (f *fakeFactory) integration() *fakeIntegration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

func sourceConfigWith(destinations ...Destination) *SourceConfig {
	return &SourceConfig{Source: Source{
		ID:           "src_1",
		Name:         "terminal sample",
		WriteKey:     testWriteKey,
		Enabled:      true,
		Destinations: destinations,
	}}
}

func destination(displayName string, enabled bool, config map[string]interface{}) Destination {
	return Destination{
		ID:                    "dst_" + displayName,
		Name:                  displayName + " destination",
		Enabled:               enabled,
		Config:                config,
		DestinationDefinition: DestinationDefinition{Name: displayName, DisplayName: displayName},
	}
}
