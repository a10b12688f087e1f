package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyella/sprig-sample/internal/logging"
)

type recordingSender struct {
	mu      sync.Mutex
	batches [][]Message
	err     error
}

func (r *recordingSender) send(ctx context.Context, msgs []Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, append([]Message(nil), msgs...))
	return r.err
}

func (r *recordingSender) sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sizes []int
	for _, b := range r.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}

func TestBatcher_SizeTrigger(t *testing.T) {
	t.Parallel()

	rs := &recordingSender{}
	b := newBatcher(rs.send, 3, time.Hour, 100, nil, logging.Discard())
	defer b.stop(context.Background())

	for i := 0; i < 3; i++ {
		require.NoError(t, b.add(Message{Event: "e"}))
	}

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]int{3}, rs.sizes())
	}, time.Second, 5*time.Millisecond)
}

func TestBatcher_IntervalTrigger(t *testing.T) {
	t.Parallel()

	rs := &recordingSender{}
	b := newBatcher(rs.send, 100, 20*time.Millisecond, 100, nil, logging.Discard())
	defer b.stop(context.Background())

	require.NoError(t, b.add(Message{Event: "e"}))

	assert.Eventually(t, func() bool {
		return len(rs.sizes()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBatcher_FlushChunks(t *testing.T) {
	t.Parallel()

	rs := &recordingSender{}
	b := newBatcher(rs.send, 2, time.Hour, 100, nil, logging.Discard())
	defer b.stop(context.Background())

	// add does not block, so the loop may deliver a full pair before Flush
	for i := 0; i < 5; i++ {
		require.NoError(t, b.add(Message{Event: "e"}))
	}
	require.NoError(t, b.flush(context.Background()))

	total := 0
	for _, n := range rs.sizes() {
		assert.LessOrEqual(t, n, 2)
		total += n
	}
	assert.Equal(t, 5, total)
}

func TestBatcher_FlushReportsErrors(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("unavailable")
	rs := &recordingSender{err: sendErr}

	var failed int
	var mu sync.Mutex
	b := newBatcher(rs.send, 10, time.Hour, 100, func(msgs []Message, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed += len(msgs)
	}, logging.Discard())
	defer b.stop(context.Background())

	require.NoError(t, b.add(Message{Event: "e"}))
	err := b.flush(context.Background())
	assert.ErrorIs(t, err, sendErr)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, failed)
}

func TestBatcher_StopDrains(t *testing.T) {
	t.Parallel()

	rs := &recordingSender{}
	b := newBatcher(rs.send, 100, time.Hour, 100, nil, logging.Discard())

	require.NoError(t, b.add(Message{Event: "a"}))
	require.NoError(t, b.add(Message{Event: "b"}))
	require.NoError(t, b.stop(context.Background()))

	assert.Equal(t, []int{2}, rs.sizes())
	assert.ErrorIs(t, b.add(Message{Event: "late"}), ErrClosed)
	assert.ErrorIs(t, b.flush(context.Background()), ErrClosed)
	assert.NoError(t, b.stop(context.Background()))
}

func TestBatcher_QueueFull(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	send := func(ctx context.Context, msgs []Message) error {
		<-block
		return nil
	}
	b := newBatcher(send, 1, time.Hour, 1, nil, logging.Discard())
	defer func() {
		close(block)
		b.stop(context.Background())
	}()

	// first message is picked up by the loop and blocks in send
	require.NoError(t, b.add(Message{Event: "in-flight"}))
	require.Eventually(t, func() bool { return len(b.pending) == 0 }, time.Second, time.Millisecond)

	require.NoError(t, b.add(Message{Event: "queued"}))
	assert.ErrorIs(t, b.add(Message{Event: "overflow"}), ErrQueueFull)
}
