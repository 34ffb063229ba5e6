package ordersync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// TrackerState is the customer-facing tracker's lifecycle state.
type TrackerState int

const (
	TrackerIdle TrackerState = iota
	TrackerTracking
	TrackerReadyAlert
	TrackerClosed
)

func (s TrackerState) String() string {
	switch s {
	case TrackerIdle:
		return "idle"
	case TrackerTracking:
		return "tracking"
	case TrackerReadyAlert:
		return "ready_alert"
	case TrackerClosed:
		return "closed"
	}
	return "unknown"
}

// TrackerView is what the rendering layer subscribes to.
type TrackerView struct {
	State     TrackerState
	OrderID   int64
	Status    repository.OrderStatus
	StepIndex int
	Terminal  bool
}

// StepIndexFor maps a status onto the 3-step progress indicator
// (pending=0, cooking=1, ready=2). Completed keeps the last step lit;
// cancelled has no step.
func StepIndexFor(status repository.OrderStatus) int {
	switch status {
	case repository.StatusPending:
		return 0
	case repository.StatusCooking:
		return 1
	case repository.StatusReady, repository.StatusCompleted:
		return 2
	}
	return -1
}

// Tracker is the single-order tracking projection. Apply is the whole
// state machine; Run drives it from a poll loop. Any forward jump is
// accepted: a tracker that missed the cooking tick goes straight from
// pending to ready without erroring.
type Tracker struct {
	source   OrderSource
	session  SessionStore
	logger   *slog.Logger
	interval time.Duration

	// dismissAfter delays the Tracking→Closed cleanup so the customer sees
	// the final state before the tracker disappears.
	dismissAfter time.Duration
	afterFunc    func(d time.Duration, f func()) *time.Timer

	mu         sync.Mutex
	state      TrackerState
	orderID    int64
	lastStatus repository.OrderStatus
	onChange   func(TrackerView)
	stopPoll   context.CancelFunc
}

// TrackerOption customizes a Tracker.
type TrackerOption func(*Tracker)

// WithDismissDelay overrides the auto-dismiss delay after a terminal status.
func WithDismissDelay(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.dismissAfter = d }
}

// WithAfterFunc replaces the timer used for auto-dismiss, for tests.
func WithAfterFunc(fn func(time.Duration, func()) *time.Timer) TrackerOption {
	return func(t *Tracker) { t.afterFunc = fn }
}

// WithOnChange registers the rendering-layer subscriber. Called with every
// visible transition, on the goroutine that caused it.
func WithOnChange(fn func(TrackerView)) TrackerOption {
	return func(t *Tracker) { t.onChange = fn }
}

// NewTracker constructs an idle tracker.
func NewTracker(source OrderSource, session SessionStore, interval time.Duration, logger *slog.Logger, opts ...TrackerOption) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		source:       source,
		session:      session,
		logger:       logger,
		interval:     interval,
		dismissAfter: 5 * time.Second,
		afterFunc:    time.AfterFunc,
		state:        TrackerIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins tracking a freshly created order. The only transition that
// persists session state is this one.
func (t *Tracker) Start(ctx context.Context, orderID int64) {
	t.mu.Lock()
	t.state = TrackerTracking
	t.orderID = orderID
	t.lastStatus = repository.StatusPending
	t.session.SaveTracking(orderID)
	view := t.viewLocked()
	t.mu.Unlock()

	t.notify(view)
	t.startPolling(ctx)
}

// Resume restores tracking from session state after a reload. Returns false
// when nothing was being tracked this session.
func (t *Tracker) Resume(ctx context.Context) bool {
	id, ok := t.session.LoadTracking()
	if !ok {
		return false
	}
	t.mu.Lock()
	t.state = TrackerTracking
	t.orderID = id
	t.lastStatus = repository.StatusPending
	view := t.viewLocked()
	t.mu.Unlock()

	t.notify(view)
	t.startPolling(ctx)
	return true
}

// View returns the current projection.
func (t *Tracker) View() TrackerView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

// Dismiss acknowledges the ready alert and closes the tracker.
func (t *Tracker) Dismiss() {
	t.mu.Lock()
	if t.state != TrackerReadyAlert {
		t.mu.Unlock()
		return
	}
	view := t.closeLocked()
	t.mu.Unlock()
	t.notify(view)
}

// Apply ingests one polled order and performs whatever transition its
// status requires. It is the tracker's entire state machine and is safe to
// call directly in tests.
func (t *Tracker) Apply(order *repository.Order) {
	t.mu.Lock()
	if t.state != TrackerTracking || order == nil || order.ID != t.orderID {
		t.mu.Unlock()
		return
	}
	if order.Status == t.lastStatus {
		t.mu.Unlock()
		return
	}
	t.lastStatus = order.Status

	var view TrackerView
	switch order.Status {
	case repository.StatusReady:
		// Blocking alert: stop polling, clear the session, wait for an
		// explicit dismissal. Entered at most once because the state
		// leaves Tracking here.
		t.state = TrackerReadyAlert
		t.session.ClearTracking()
		t.stopPollingLocked()
		view = t.viewLocked()
	case repository.StatusCompleted, repository.StatusCancelled:
		t.session.ClearTracking()
		t.stopPollingLocked()
		view = t.viewLocked()
		t.afterFunc(t.dismissAfter, t.autoClose)
	default:
		view = t.viewLocked()
	}
	t.mu.Unlock()
	t.notify(view)
}

// Run polls the tracked order until the tracker leaves the Tracking state
// or ctx is cancelled. Transient fetch failures are retried on the next
// tick; they never surface to the customer.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		t.pollOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (t *Tracker) pollOnce(ctx context.Context) {
	t.mu.Lock()
	id := t.orderID
	tracking := t.state == TrackerTracking
	t.mu.Unlock()
	if !tracking {
		return
	}

	order, err := t.source.GetOrder(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Warn("tracking poll failed", "order_id", id, "error", err)
		}
		return
	}
	// A fetch that resolved after cancellation must be discarded.
	if ctx.Err() != nil {
		return
	}
	t.Apply(order)
}

func (t *Tracker) startPolling(ctx context.Context) {
	t.mu.Lock()
	t.stopPollingLocked()
	pollCtx, cancel := context.WithCancel(ctx)
	t.stopPoll = cancel
	t.mu.Unlock()
	go t.Run(pollCtx)
}

func (t *Tracker) stopPollingLocked() {
	if t.stopPoll != nil {
		t.stopPoll()
		t.stopPoll = nil
	}
}

func (t *Tracker) autoClose() {
	t.mu.Lock()
	if t.state == TrackerClosed || t.state == TrackerIdle {
		t.mu.Unlock()
		return
	}
	view := t.closeLocked()
	t.mu.Unlock()
	t.notify(view)
}

func (t *Tracker) closeLocked() TrackerView {
	t.state = TrackerClosed
	t.session.ClearTracking()
	t.stopPollingLocked()
	return t.viewLocked()
}

func (t *Tracker) viewLocked() TrackerView {
	return TrackerView{
		State:     t.state,
		OrderID:   t.orderID,
		Status:    t.lastStatus,
		StepIndex: StepIndexFor(t.lastStatus),
		Terminal:  t.lastStatus.Terminal(),
	}
}

func (t *Tracker) notify(view TrackerView) {
	if t.onChange != nil {
		t.onChange(view)
	}
}
