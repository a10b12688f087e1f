package analytics

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katyella/sprig-sample/internal/analytics/transport"
	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
)

// Lifecycle event names.
const (
	EventApplicationOpened       = "Application Opened"
	EventApplicationBackgrounded = "Application Backgrounded"
)

// Client records identify, track and screen calls for one source.
type Client struct {
	writeKey     string
	config       Config
	logger       *logrus.Logger
	transport    *transport.Transport
	retryer      *retryer
	batcher      *batcher
	integrations *integrationManager
	store        Store
	app          AppInfo
	now          func() time.Time

	mu       sync.RWMutex
	identity Identity
	revision uint64
	closed   bool

	// persistMu orders saves; a snapshot older than saved is skipped.
	persistMu sync.Mutex
	saved     uint64
}

// New builds a client for writeKey. It loads the persisted identity, fetches
// the source config, creates the device-mode integrations the source enables
// and starts the delivery loop.
func New(writeKey string, cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(writeKey) == "" {
		return nil, apperrors.NewConfigError("creating analytics client", ErrWriteKeyRequired)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, apperrors.NewConfigError("creating analytics client", err)
	}

	o := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, apperrors.NewConfigError("invalid option", err)
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = defaultHTTPClient(constants.DefaultRequestTimeout)
	}
	store := o.store
	if store == nil {
		store = NewMemoryStore(Identity{})
	}

	c := &Client{
		writeKey: writeKey,
		config:   cfg,
		logger:   logging.Derive(o.logger, cfg.LogLevel),
		transport: &transport.Transport{
			HTTPClient: httpClient,
			WriteKey:   writeKey,
			UserAgent:  fmt.Sprintf("%s/%s", constants.LibraryName, Version),
		},
		retryer: newRetryer(o.retry),
		store:   store,
		app:     o.app,
		now:     o.now,
	}

	var sc *SourceConfig
	ctx, cancel := context.WithTimeout(context.Background(), constants.SourceConfigTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := store.Load()
		if err != nil {
			return err
		}
		c.identity = id
		return nil
	})
	if len(cfg.Factories) > 0 {
		g.Go(func() error {
			fetched, err := c.fetchSourceConfig(gctx)
			if err != nil {
				// Local destination overrides still apply.
				logging.Warn(c.logger, "%s", apperrors.Describe(err))
				return nil
			}
			if !fetched.Source.Enabled {
				logging.Warn(c.logger, "source %q is disabled", fetched.Source.Name)
			}
			sc = fetched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if c.identity.AnonymousID == "" {
		c.identity.AnonymousID = uuid.NewString()
		c.revision++
		c.persist(c.identity, c.revision)
	}
	logging.Debug(c.logger, "client ready, anonymousId=%s", c.identity.AnonymousID)

	c.integrations = newIntegrationManager(c.logger, constants.DefaultMaxPendingMessages)
	for key, destConfig := range c.destinationConfigs(sc) {
		in, err := cfg.factory(key).Create(destConfig, c, cfg)
		if err != nil {
			logging.Error(c.logger, "%v", apperrors.NewIntegrationError("creating "+key, err))
			continue
		}
		c.integrations.register(key, in)
		logging.Info(c.logger, "%s integration initialized", key)
	}

	c.batcher = newBatcher(c.sendBatch, cfg.FlushQueueSize,
		time.Duration(cfg.SleepCount)*time.Second,
		constants.DefaultMaxPendingMessages, o.onError, c.logger)

	if cfg.TrackLifecycleEvents {
		if err := c.Track(EventApplicationOpened, NewProperties().PutValue("version", c.app.Version)); err != nil {
			logging.Warn(c.logger, "tracking %s: %v", EventApplicationOpened, err)
		}
	}

	return c, nil
}

// Identify associates the current user with userID and merges traits into
// the stored traits. Identifying a different user discards the previous
// user's traits.
func (c *Client) Identify(userID string, traits Traits, opts *Options) error {
	if userID == "" && len(traits) == 0 {
		return fmt.Errorf("%w: identify needs a user ID or traits", ErrInvalidMessage)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if userID != "" && userID != c.identity.UserID {
		if c.identity.UserID != "" {
			c.identity.Traits = nil
		}
		c.identity.UserID = userID
	}
	if c.identity.Traits == nil && len(traits) > 0 {
		c.identity.Traits = NewTraits()
	}
	for k, v := range traits {
		c.identity.Traits[k] = v
	}
	c.revision++
	snapshot, revision := c.identity, c.revision
	snapshot.Traits = c.identity.Traits.clone()
	c.mu.Unlock()

	c.persist(snapshot, revision)

	msg := c.newMessage(TypeIdentify, opts)
	return c.enqueue(msg)
}

// Track records a named event. Property sets are merged in order.
func (c *Client) Track(event string, props ...Properties) error {
	if event == "" {
		return fmt.Errorf("%w: track needs an event name", ErrInvalidMessage)
	}
	msg := c.newMessage(TypeTrack, nil)
	msg.Event = event
	msg.Properties = mergeProperties(props...)
	return c.enqueue(msg)
}

// TrackWithOptions records a named event with per-call options.
func (c *Client) TrackWithOptions(event string, props Properties, opts *Options) error {
	if event == "" {
		return fmt.Errorf("%w: track needs an event name", ErrInvalidMessage)
	}
	msg := c.newMessage(TypeTrack, opts)
	msg.Event = event
	msg.Properties = mergeProperties(props)
	return c.enqueue(msg)
}

// Screen records that the named screen was shown.
func (c *Client) Screen(name string, props Properties) error {
	if name == "" {
		return fmt.Errorf("%w: screen needs a name", ErrInvalidMessage)
	}
	msg := c.newMessage(TypeScreen, nil)
	msg.Event = name
	msg.Properties = mergeProperties(props, Properties{"name": name})
	return c.enqueue(msg)
}

// RecordScreenView records a screen message when screen recording is
// enabled in the config and does nothing otherwise.
func (c *Client) RecordScreenView(name string) {
	if !c.config.RecordScreenViews {
		return
	}
	if err := c.Screen(name, nil); err != nil {
		logging.Warn(c.logger, "recording screen %q: %v", name, err)
	}
}

// Reset forgets the current user and their traits. With clearDeviceData the
// anonymous ID is rotated as well. Every integration is reset.
func (c *Client) Reset(clearDeviceData bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.identity.UserID = ""
	c.identity.Traits = nil
	if clearDeviceData {
		c.identity.AnonymousID = uuid.NewString()
	}
	c.revision++
	snapshot, revision := c.identity, c.revision
	c.mu.Unlock()

	c.persist(snapshot, revision)
	c.integrations.reset()
	logging.Debug(c.logger, "identity reset (clearDeviceData=%v)", clearDeviceData)
}

// Flush delivers every queued message and waits for integrations to catch up.
func (c *Client) Flush(ctx context.Context) error {
	if err := c.batcher.flush(ctx); err != nil {
		return err
	}
	return c.integrations.sync(ctx)
}

// Close tracks the backgrounded lifecycle event when enabled, delivers what
// is queued and stops the client. Further calls return ErrClosed.
func (c *Client) Close() error {
	if c.config.TrackLifecycleEvents {
		if err := c.Track(EventApplicationBackgrounded); err != nil && err != ErrClosed {
			logging.Warn(c.logger, "tracking %s: %v", EventApplicationBackgrounded, err)
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.batcher.stop(gctx) })
	g.Go(func() error { return c.integrations.stop(gctx) })
	return g.Wait()
}

// WriteKey returns the source write key.
func (c *Client) WriteKey() string {
	return c.writeKey
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// Identity returns a copy of the current identity.
func (c *Client) Identity() Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id := c.identity
	id.Traits = c.identity.Traits.clone()
	return id
}

// AnonymousID returns the device-level identifier.
func (c *Client) AnonymousID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity.AnonymousID
}

// Integrations returns the keys of the device-mode integrations in use.
func (c *Client) Integrations() []string {
	return c.integrations.keys()
}

// Integration returns the integration registered under key.
func (c *Client) Integration(key string) (Integration, bool) {
	return c.integrations.get(key)
}

func (c *Client) newMessage(t MessageType, opts *Options) Message {
	c.mu.RLock()
	id := c.identity
	traits := c.identity.Traits.clone()
	c.mu.RUnlock()

	if traits == nil {
		traits = NewTraits()
	}
	traits[TraitAnonymousID] = id.AnonymousID
	if id.UserID != "" {
		traits[TraitUserID] = id.UserID
	}

	integrations := map[string]bool{"All": true}
	if opts != nil && len(opts.Integrations) > 0 {
		integrations = make(map[string]bool, len(opts.Integrations))
		for k, v := range opts.Integrations {
			integrations[k] = v
		}
	}

	return Message{
		MessageID:    uuid.NewString(),
		Type:         t,
		Channel:      constants.ChannelName,
		AnonymousID:  id.AnonymousID,
		UserID:       id.UserID,
		Integrations: integrations,
		Context: MessageContext{
			App:     c.app,
			Library: LibraryInfo{Name: constants.LibraryName, Version: Version},
			OS:      newOSInfo(),
			Traits:  traits,
		},
		OriginalTimestamp: c.now().UTC(),
		options:           opts,
	}
}

func (c *Client) enqueue(msg Message) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	if err := c.batcher.add(msg); err != nil {
		logging.Warn(c.logger, "dropping %s message: %v", msg.Type, err)
		return err
	}
	logging.Verbose(c.logger, "queued %s message %s", msg.Type, msg.MessageID)

	c.integrations.dump(msg)
	return nil
}

func (c *Client) persist(id Identity, revision uint64) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if revision <= c.saved {
		logging.Verbose(c.logger, "skipping stale identity revision %d", revision)
		return
	}
	if err := c.store.Save(id); err != nil {
		logging.Warn(c.logger, "persisting identity: %v", err)
		return
	}
	c.saved = revision
}

// batchRequest is the data-plane batch payload.
type batchRequest struct {
	Batch  []Message `json:"batch"`
	SentAt time.Time `json:"sentAt"`
}

// sendBatch posts msgs to the data plane, retrying transient failures.
func (c *Client) sendBatch(ctx context.Context, msgs []Message) error {
	sentAt := c.now().UTC()
	for i := range msgs {
		msgs[i].SentAt = &sentAt
	}
	body := batchRequest{Batch: msgs, SentAt: sentAt}
	anonymousID := base64.StdEncoding.EncodeToString([]byte(msgs[0].AnonymousID))

	return c.retryer.do(ctx, func() error {
		resp, err := c.transport.Do(ctx, transport.Request{
			Method:  http.MethodPost,
			BaseURL: c.config.DataPlaneURL,
			Path:    constants.BatchPath,
			Body:    body,
			Headers: map[string]string{"AnonymousId": anonymousID},
		})
		if err != nil {
			return &NetworkError{Op: "batch", Err: err}
		}
		if resp.StatusCode >= 400 {
			return &APIError{
				HTTPStatus: resp.StatusCode,
				Message:    strings.TrimSpace(string(resp.Body)),
				Endpoint:   constants.BatchPath,
			}
		}
		return nil
	})
}
