package ordersync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Poller repeatedly fetches filtered order sets from an OrderSource and
// delivers full snapshots to subscribers. A failed fetch never terminates
// the loop and never reaches the snapshot channel; it is reported on the
// error side channel and the next tick retries at the same fixed interval.
// No backoff, no circuit breaker: the domain tolerates human-scale latency
// and the simplicity is deliberate.
type Poller struct {
	source OrderSource
	logger *slog.Logger
}

// NewPoller constructs a poller over the given source.
func NewPoller(source OrderSource, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{source: source, logger: logger}
}

// Subscription is one running poll loop. Snapshots and Errors are closed
// after Stop returns the loop.
type Subscription struct {
	snapshots chan Snapshot
	errs      chan error

	active atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
	stop   sync.Once
}

// Snapshots delivers one full order set per successful tick.
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Errors is the side channel for transient fetch failures. Receiving is
// optional; unread errors are dropped rather than blocking the loop.
func (s *Subscription) Errors() <-chan error {
	return s.errs
}

// Stop cancels future ticks and detaches the consumer. An in-flight fetch
// may still complete; its result is discarded, so no emission can follow
// Stop. Safe to call more than once.
func (s *Subscription) Stop() {
	s.stop.Do(func() {
		s.active.Store(false)
		s.cancel()
		<-s.done

		// The loop has exited, so nothing sends anymore. Anything still
		// buffered is stale and must not be readable after Stop returns.
		for len(s.snapshots) > 0 {
			<-s.snapshots
		}
		for len(s.errs) > 0 {
			<-s.errs
		}
		close(s.snapshots)
		close(s.errs)
	})
}

// Subscribe starts a poll loop at the given fixed interval. The first fetch
// happens immediately rather than one interval in. The subscription ends
// when Stop is called or ctx is cancelled.
func (p *Poller) Subscribe(ctx context.Context, filter StatusFilter, interval time.Duration) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		snapshots: make(chan Snapshot, 1),
		errs:      make(chan error, 4),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	sub.active.Store(true)

	go p.run(ctx, sub, filter, interval)
	return sub
}

func (p *Poller) run(ctx context.Context, sub *Subscription, filter StatusFilter, interval time.Duration) {
	defer close(sub.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.tick(ctx, sub, filter)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, sub, filter)
		}
	}
}

func (p *Poller) tick(ctx context.Context, sub *Subscription, filter StatusFilter) {
	orders, err := p.source.ListOrders(ctx, filter)

	// The subscription may have been stopped while the fetch was in
	// flight; a stale result must not resurrect downstream state.
	if !sub.active.Load() || ctx.Err() != nil {
		return
	}
	if err != nil {
		p.logger.Warn("order poll failed", "error", err)
		select {
		case sub.errs <- err:
		default:
		}
		return
	}

	select {
	case sub.snapshots <- Snapshot{Orders: orders}:
	case <-ctx.Done():
	}
}
