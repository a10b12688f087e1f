package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/logging"
)

// sendFunc delivers one batch, retries included.
type sendFunc func(ctx context.Context, msgs []Message) error

// batcher accumulates messages and delivers them in batches, either when
// maxBatchSize messages are queued or every interval.
type batcher struct {
	send         sendFunc
	maxBatchSize int
	interval     time.Duration
	onError      func(msgs []Message, err error)
	logger       *logrus.Logger

	pending chan Message
	flushCh chan chan error
	stopCh  chan struct{}
	doneCh  chan struct{}

	// ctx bounds every delivery; cancelled when Stop gives up waiting.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
}

func newBatcher(send sendFunc, maxBatchSize int, interval time.Duration, capacity int,
	onError func([]Message, error), logger *logrus.Logger) *batcher {
	ctx, cancel := context.WithCancel(context.Background())
	b := &batcher{
		send:         send,
		maxBatchSize: maxBatchSize,
		interval:     interval,
		onError:      onError,
		logger:       logger,
		pending:      make(chan Message, capacity),
		flushCh:      make(chan chan error),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}

	go b.run()

	return b
}

// add queues a message without blocking.
func (b *batcher) add(msg Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return ErrClosed
	}

	select {
	case b.pending <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// flush delivers everything queued so far and reports the first failure.
func (b *batcher) flush(ctx context.Context) error {
	reply := make(chan error, 1)

	select {
	case b.flushCh <- reply:
	case <-b.doneCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop delivers the remaining messages and ends the loop. If ctx expires
// first, in-flight deliveries are cancelled.
func (b *batcher) stop(ctx context.Context) error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	b.mu.Unlock()

	close(b.stopCh)

	select {
	case <-b.doneCh:
		b.cancel()
		return nil
	case <-ctx.Done():
		b.cancel()
		<-b.doneCh
		return ctx.Err()
	}
}

func (b *batcher) run() {
	defer close(b.doneCh)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	var batch []Message

	for {
		select {
		case msg := <-b.pending:
			batch = append(batch, msg)
			if len(batch) >= b.maxBatchSize {
				b.deliver(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				b.deliver(batch)
				batch = nil
			}

		case reply := <-b.flushCh:
			batch = b.drain(batch)
			reply <- b.deliver(batch)
			batch = nil

		case <-b.stopCh:
			batch = b.drain(batch)
			b.deliver(batch)
			return
		}
	}
}

// drain moves every queued message into batch.
func (b *batcher) drain(batch []Message) []Message {
	for {
		select {
		case msg := <-b.pending:
			batch = append(batch, msg)
		default:
			return batch
		}
	}
}

// deliver sends batch in chunks of at most maxBatchSize.
func (b *batcher) deliver(batch []Message) error {
	var errs []error
	for start := 0; start < len(batch); start += b.maxBatchSize {
		end := start + b.maxBatchSize
		if end > len(batch) {
			end = len(batch)
		}
		chunk := batch[start:end]

		if err := b.send(b.ctx, chunk); err != nil {
			logging.Error(b.logger, "dropping batch of %d messages: %v", len(chunk), err)
			if b.onError != nil {
				b.onError(chunk, err)
			}
			errs = append(errs, err)
			continue
		}
		logging.Debug(b.logger, "delivered batch of %d messages", len(chunk))
	}
	return errors.Join(errs...)
}
