package analytics

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
)

// Integration is a device-mode destination that receives every message the
// client records, in order, on a dedicated goroutine.
type Integration interface {
	Dump(msg Message)
	Reset()
}

// Factory creates an Integration from its destination config.
type Factory interface {
	// Key is the destination display name the factory serves, e.g. "Sprig".
	Key() string
	Create(config map[string]interface{}, client *Client, cfg Config) (Integration, error)
}

var errIntegrationsStopped = errors.New("analytics: integrations stopped")

type integrationEvent struct {
	msg   *Message
	reset bool
	done  chan struct{}
}

// integrationManager serialises dumps and resets onto one goroutine so
// integrations never run on the caller's goroutine.
type integrationManager struct {
	logger *logrus.Logger

	mu           sync.RWMutex
	integrations map[string]Integration
	stopped      bool

	queue  chan integrationEvent
	doneCh chan struct{}
}

func newIntegrationManager(logger *logrus.Logger, capacity int) *integrationManager {
	m := &integrationManager{
		logger:       logger,
		integrations: make(map[string]Integration),
		queue:        make(chan integrationEvent, capacity),
		doneCh:       make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *integrationManager) register(key string, in Integration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.integrations[key] = in
}

// keys returns the registered integration keys, sorted.
func (m *integrationManager) keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.integrations))
	for k := range m.integrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *integrationManager) get(key string) (Integration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.integrations[key]
	return in, ok
}

func (m *integrationManager) dump(msg Message) {
	_ = m.enqueue(integrationEvent{msg: &msg})
}

func (m *integrationManager) reset() {
	_ = m.enqueue(integrationEvent{reset: true})
}

// sync waits until every event queued before the call has been handled.
func (m *integrationManager) sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := m.enqueue(integrationEvent{done: done}); err != nil {
		if errors.Is(err, errIntegrationsStopped) {
			return nil
		}
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *integrationManager) enqueue(ev integrationEvent) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.stopped {
		return errIntegrationsStopped
	}
	select {
	case m.queue <- ev:
		return nil
	default:
		logging.Warn(m.logger, "integration queue is full, dropping event")
		return ErrQueueFull
	}
}

// stop handles the remaining events and ends the loop.
func (m *integrationManager) stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.stopped {
		m.stopped = true
		close(m.queue)
	}
	m.mu.Unlock()

	select {
	case <-m.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *integrationManager) run() {
	defer close(m.doneCh)

	for ev := range m.queue {
		if ev.done != nil {
			close(ev.done)
			continue
		}

		m.mu.RLock()
		targets := make(map[string]Integration, len(m.integrations))
		for k, in := range m.integrations {
			targets[k] = in
		}
		m.mu.RUnlock()

		for key, in := range targets {
			if ev.reset {
				m.call(key, "reset", in.Reset)
				continue
			}
			if !ev.msg.options.integrationEnabled(key) {
				logging.Verbose(m.logger, "%s disabled for message %s", key, ev.msg.MessageID)
				continue
			}
			msg := *ev.msg
			m.call(key, string(msg.Type), func() { in.Dump(msg) })
		}
	}
}

// call runs fn and turns a panic inside an integration into a logged error.
func (m *integrationManager) call(key, op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewIntegrationError(fmt.Sprintf("%s panicked during %s", key, op), fmt.Errorf("%v", r)).
				WithContext("stack", string(debug.Stack()))
			logging.Error(m.logger, "%v", err)
		}
	}()
	fn()
}
