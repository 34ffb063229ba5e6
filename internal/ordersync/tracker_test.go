package ordersync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type memorySession struct {
	mu  sync.Mutex
	id  int64
	set bool
}

func (s *memorySession) SaveTracking(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.set = orderID, true
}

func (s *memorySession) LoadTracking() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.set
}

func (s *memorySession) ClearTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.set = 0, false
}

// immediateAfter runs auto-dismiss callbacks synchronously.
func immediateAfter(_ time.Duration, f func()) *time.Timer {
	f()
	return time.NewTimer(time.Hour)
}

type nullSource struct{}

func (nullSource) ListOrders(context.Context, StatusFilter) ([]*repository.Order, error) {
	return nil, nil
}

func (nullSource) GetOrder(context.Context, int64) (*repository.Order, error) {
	return nil, repository.ErrNotFound
}

func newTestTracker(t *testing.T, session SessionStore, opts ...TrackerOption) (*Tracker, *[]TrackerView) {
	t.Helper()
	views := &[]TrackerView{}
	var mu sync.Mutex
	opts = append(opts, WithOnChange(func(v TrackerView) {
		mu.Lock()
		defer mu.Unlock()
		*views = append(*views, v)
	}))
	return NewTracker(nullSource{}, session, time.Hour, nil, opts...), views
}

func TestTrackerStartPersistsSession(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	id, ok := session.LoadTracking()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, TrackerTracking, tracker.View().State)
	assert.Equal(t, 0, tracker.View().StepIndex)
}

func TestTrackerProgressSteps(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusCooking})
	view := tracker.View()
	assert.Equal(t, TrackerTracking, view.State)
	assert.Equal(t, 1, view.StepIndex)
}

func TestTrackerReadyAlertFiresOnce(t *testing.T) {
	session := &memorySession{}
	tracker, views := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusReady})
	assert.Equal(t, TrackerReadyAlert, tracker.View().State)

	// The alert cleared the session so a reload cannot re-ring.
	_, ok := session.LoadTracking()
	assert.False(t, ok)

	// Re-applying the same status is inert.
	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusReady})

	alerts := 0
	for _, v := range *views {
		if v.State == TrackerReadyAlert {
			alerts++
		}
	}
	assert.Equal(t, 1, alerts)
}

func TestTrackerDismissClosesAlert(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusReady})
	tracker.Dismiss()
	assert.Equal(t, TrackerClosed, tracker.View().State)

	// Dismiss outside the alert state is a no-op.
	tracker.Dismiss()
	assert.Equal(t, TrackerClosed, tracker.View().State)
}

func TestTrackerAutoCloseAfterTerminal(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session, WithAfterFunc(immediateAfter))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusCompleted})
	assert.Equal(t, TrackerClosed, tracker.View().State)
	_, ok := session.LoadTracking()
	assert.False(t, ok)
}

func TestTrackerCancelledAutoCloses(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session, WithAfterFunc(immediateAfter))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusCancelled})
	view := tracker.View()
	assert.Equal(t, TrackerClosed, view.State)
}

func TestTrackerIgnoresForeignOrders(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	tracker.Apply(&repository.Order{ID: 99, Status: repository.StatusReady})
	assert.Equal(t, TrackerTracking, tracker.View().State)
}

func TestTrackerResume(t *testing.T) {
	session := &memorySession{}
	session.SaveTracking(42)

	tracker, _ := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.True(t, tracker.Resume(ctx))
	assert.Equal(t, TrackerTracking, tracker.View().State)
	assert.Equal(t, int64(42), tracker.View().OrderID)
}

func TestTrackerResumeWithoutSession(t *testing.T) {
	tracker, _ := newTestTracker(t, &memorySession{})
	assert.False(t, tracker.Resume(context.Background()))
	assert.Equal(t, TrackerIdle, tracker.View().State)
}

func TestTrackerStatusJump(t *testing.T) {
	session := &memorySession{}
	tracker, _ := newTestTracker(t, session)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx, 42)

	// Missed the cooking tick entirely; pending jumps straight to ready.
	tracker.Apply(&repository.Order{ID: 42, Status: repository.StatusReady})
	assert.Equal(t, TrackerReadyAlert, tracker.View().State)
	assert.Equal(t, 2, tracker.View().StepIndex)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	session := NewSession(time.Minute)
	_, ok := session.LoadTracking()
	assert.False(t, ok)

	session.SaveTracking(7)
	id, ok := session.LoadTracking()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	session.ClearTracking()
	_, ok = session.LoadTracking()
	assert.False(t, ok)
}
