package ordersync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type fakeWriter struct {
	calls []statusCall
	err   error
}

type statusCall struct {
	id     int64
	status repository.OrderStatus
}

func (w *fakeWriter) UpdateOrderStatus(_ context.Context, id int64, status repository.OrderStatus) (*repository.Order, error) {
	w.calls = append(w.calls, statusCall{id: id, status: status})
	if w.err != nil {
		return nil, w.err
	}
	return &repository.Order{ID: id, Status: status}, nil
}

func TestBoardPartition(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot(
		order(1, repository.StatusPending),
		order(2, repository.StatusCooking),
		order(3, repository.StatusReady),
		order(4, repository.StatusCompleted),
		order(5, repository.StatusCancelled),
	))

	snap := board.Snapshot()
	require.Len(t, snap.Active, 2)
	require.Len(t, snap.Done, 2)
	assert.Equal(t, int64(1), snap.Active[0].ID)
	assert.Equal(t, int64(2), snap.Active[1].ID)
	assert.Equal(t, int64(3), snap.Done[0].ID)
	assert.Equal(t, int64(4), snap.Done[1].ID)
	// Cancelled order 5 is in neither column.
}

func TestBoardColumnsOldestFirst(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot(
		&repository.Order{ID: 9, Status: repository.StatusPending, CreatedAt: 300},
		&repository.Order{ID: 4, Status: repository.StatusPending, CreatedAt: 100},
		&repository.Order{ID: 6, Status: repository.StatusCooking, CreatedAt: 200},
	))

	active := board.Snapshot().Active
	require.Len(t, active, 3)
	assert.Equal(t, int64(4), active[0].ID)
	assert.Equal(t, int64(6), active[1].ID)
	assert.Equal(t, int64(9), active[2].ID)
}

func TestBoardAlertQueueFIFO(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot())

	// Three orders land in a single tick; none may be dropped.
	board.ApplySnapshot(snapshot(
		order(1, repository.StatusPending),
		order(2, repository.StatusPending),
		order(3, repository.StatusPending),
	))
	assert.Equal(t, 3, board.PendingAlerts())

	first, ok := board.CurrentAlert()
	require.True(t, ok)
	assert.Equal(t, int64(1), first.ID)

	board.AcknowledgeOrder(first.ID)
	second, ok := board.CurrentAlert()
	require.True(t, ok)
	assert.Equal(t, int64(2), second.ID)

	board.AcknowledgeOrder(second.ID)
	board.AcknowledgeOrder(3)
	_, ok = board.CurrentAlert()
	assert.False(t, ok)
}

func TestBoardRejectCancelsAtStore(t *testing.T) {
	writer := &fakeWriter{}
	board := NewBoard(writer)
	board.ApplySnapshot(snapshot())
	board.ApplySnapshot(snapshot(order(8, repository.StatusPending)))

	require.NoError(t, board.RejectOrder(context.Background(), 8))
	require.Len(t, writer.calls, 1)
	assert.Equal(t, statusCall{id: 8, status: repository.StatusCancelled}, writer.calls[0])

	_, ok := board.CurrentAlert()
	assert.False(t, ok, "rejected order's alert must be dismissed")
}

func TestBoardRejectFailureKeepsAlert(t *testing.T) {
	writer := &fakeWriter{err: errors.New("conflict")}
	board := NewBoard(writer)
	board.ApplySnapshot(snapshot())
	board.ApplySnapshot(snapshot(order(8, repository.StatusPending)))

	require.Error(t, board.RejectOrder(context.Background(), 8))
	_, ok := board.CurrentAlert()
	assert.True(t, ok, "local state must not change when the store refused")
}

func TestBoardAdvanceStatus(t *testing.T) {
	writer := &fakeWriter{}
	board := NewBoard(writer)
	board.ApplySnapshot(snapshot(order(2, repository.StatusCooking)))

	require.NoError(t, board.AdvanceStatus(context.Background(), 2))
	require.Len(t, writer.calls, 1)
	assert.Equal(t, statusCall{id: 2, status: repository.StatusReady}, writer.calls[0])
}

func TestBoardAdvanceTerminal(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot(order(2, repository.StatusCompleted)))

	err := board.AdvanceStatus(context.Background(), 2)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestBoardAdvanceUnknownOrder(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot())

	err := board.AdvanceStatus(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBoardDegraded(t *testing.T) {
	board := NewBoard(&fakeWriter{})
	board.ApplySnapshot(snapshot(order(1, repository.StatusPending)))

	board.ApplyError()
	board.ApplyError()
	assert.False(t, board.Degraded(), "two failures are still a blip")

	board.ApplyError()
	assert.True(t, board.Degraded())

	// Stale data stays visible while degraded.
	assert.Len(t, board.Snapshot().Active, 1)

	// One success resets the counter.
	board.ApplySnapshot(snapshot(order(1, repository.StatusPending)))
	assert.False(t, board.Degraded())
}
