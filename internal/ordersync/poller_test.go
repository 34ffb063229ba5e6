package ordersync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// scriptedSource returns one result per call, repeating the last entry.
type scriptedSource struct {
	mu      sync.Mutex
	results []listResult
	calls   int
	block   chan struct{}
}

type listResult struct {
	orders []*repository.Order
	err    error
}

func (s *scriptedSource) ListOrders(ctx context.Context, _ StatusFilter) ([]*repository.Order, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	res := s.results[idx]
	return res.orders, res.err
}

func (s *scriptedSource) GetOrder(context.Context, int64) (*repository.Order, error) {
	return nil, repository.ErrNotFound
}

func TestPollerDeliversSnapshots(t *testing.T) {
	source := &scriptedSource{results: []listResult{
		{orders: []*repository.Order{order(1, repository.StatusPending)}},
	}}
	poller := NewPoller(source, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := poller.Subscribe(ctx, nil, 10*time.Millisecond)
	defer sub.Stop()

	select {
	case snap := <-sub.Snapshots():
		require.Len(t, snap.Orders, 1)
		assert.Equal(t, int64(1), snap.Orders[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot before timeout")
	}
}

func TestPollerContinuesAfterError(t *testing.T) {
	source := &scriptedSource{results: []listResult{
		{err: errors.New("connection refused")},
		{orders: []*repository.Order{order(2, repository.StatusPending)}},
	}}
	poller := NewPoller(source, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := poller.Subscribe(ctx, nil, 10*time.Millisecond)
	defer sub.Stop()

	select {
	case err := <-sub.Errors():
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("no error before timeout")
	}

	// The loop keeps ticking; the next result comes through untouched.
	select {
	case snap := <-sub.Snapshots():
		require.Len(t, snap.Orders, 1)
		assert.Equal(t, int64(2), snap.Orders[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after transient error")
	}
}

func TestPollerStopDiscardsInFlightResult(t *testing.T) {
	block := make(chan struct{})
	source := &scriptedSource{
		results: []listResult{{orders: []*repository.Order{order(3, repository.StatusPending)}}},
		block:   block,
	}
	poller := NewPoller(source, nil)

	sub := poller.Subscribe(context.Background(), nil, 10*time.Millisecond)

	// Stop while the first fetch is blocked in flight, then let it finish.
	done := make(chan struct{})
	go func() {
		sub.Stop()
		close(done)
	}()
	close(block)
	<-done

	// Channels are closed and drained; the stale result never surfaced.
	snap, ok := <-sub.Snapshots()
	assert.False(t, ok, "expected closed snapshot channel, got %+v", snap)
}

func TestPollerStopDrainsBufferedSnapshot(t *testing.T) {
	source := &scriptedSource{results: []listResult{
		{orders: []*repository.Order{order(4, repository.StatusPending)}},
	}}
	poller := NewPoller(source, nil)

	sub := poller.Subscribe(context.Background(), nil, time.Hour)

	// Wait for the immediate first fetch to land in the channel buffer
	// without consuming it.
	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.calls > 0
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return len(sub.snapshots) > 0
	}, time.Second, time.Millisecond)

	sub.Stop()

	// The unread snapshot is gone; the first receive observes the close.
	snap, ok := <-sub.Snapshots()
	assert.False(t, ok, "expected closed snapshot channel, got %+v", snap)
}

func TestPollerStopIsIdempotent(t *testing.T) {
	source := &scriptedSource{results: []listResult{{}}}
	poller := NewPoller(source, nil)
	sub := poller.Subscribe(context.Background(), nil, 10*time.Millisecond)

	sub.Stop()
	sub.Stop()
}
