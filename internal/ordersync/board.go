package ordersync

import (
	"context"
	"sort"
	"sync"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// BoardSnapshot is the kitchen display's view of the world: active orders
// (pending, cooking) and done orders (ready, completed), both oldest first.
// Cancelled orders appear in neither column.
type BoardSnapshot struct {
	Active []*repository.Order
	Done   []*repository.Order
}

// degradedAfter is how many consecutive failed ticks it takes before the
// board reports the connection as degraded. A single blip stays invisible.
const degradedAfter = 3

// Board is the kitchen display projection. It consumes snapshots and
// detector events, partitions orders into columns, and queues new-order
// alerts for one-at-a-time presentation. Mutating actions go straight to
// the OrderWriter; local state is never optimistically updated, the next
// poll reconciles.
type Board struct {
	writer OrderWriter

	mu       sync.Mutex
	detector *Detector
	orders   []*repository.Order
	alerts   []*repository.Order
	failures int
}

// NewBoard constructs an empty board projection.
func NewBoard(writer OrderWriter) *Board {
	return &Board{
		writer:   writer,
		detector: NewDetector(),
	}
}

// ApplySnapshot ingests one poll result. NewOrder events join the alert
// queue; the queue is FIFO and nothing is dropped. If several orders
// arrive in one tick they are presented one after another as each alert is
// dismissed.
func (b *Board) ApplySnapshot(snap Snapshot) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.orders = snap.Orders
	events := b.detector.Observe(snap)
	for _, ev := range events {
		if newOrder, ok := ev.(NewOrder); ok {
			b.alerts = append(b.alerts, newOrder.Order)
		}
	}
	return events
}

// ApplyError records a failed tick for the degraded indicator.
func (b *Board) ApplyError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
}

// Degraded reports whether polling has failed enough consecutive ticks to
// warrant a non-blocking "can't reach server" indicator.
func (b *Board) Degraded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures >= degradedAfter
}

// Snapshot returns the current board partition. Every non-cancelled order
// lands in exactly one column; both columns are sorted by creation time
// ascending (FIFO service discipline).
func (b *Board) Snapshot() BoardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	var snap BoardSnapshot
	for _, order := range b.orders {
		switch order.Status {
		case repository.StatusPending, repository.StatusCooking:
			snap.Active = append(snap.Active, order)
		case repository.StatusReady, repository.StatusCompleted:
			snap.Done = append(snap.Done, order)
		}
	}
	sortByCreation(snap.Active)
	sortByCreation(snap.Done)
	return snap
}

// CurrentAlert returns the new-order alert awaiting acknowledgment, if any.
// Only one alert is presented at a time.
func (b *Board) CurrentAlert() (*repository.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.alerts) == 0 {
		return nil, false
	}
	return b.alerts[0], true
}

// PendingAlerts reports how many alerts are queued, the presented one
// included.
func (b *Board) PendingAlerts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.alerts)
}

// AcknowledgeOrder dismisses the alert for the given order, promoting the
// next queued alert if there is one.
func (b *Board) AcknowledgeOrder(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dropAlert(id)
}

// RejectOrder cancels a pending order at the store and dismisses its alert.
// A store rejection (illegal transition, concurrent update) leaves local
// state unchanged; the next poll shows the authoritative status.
func (b *Board) RejectOrder(ctx context.Context, id int64) error {
	if _, err := b.writer.UpdateOrderStatus(ctx, id, repository.StatusCancelled); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dropAlert(id)
	return nil
}

// AdvanceStatus moves an order to its defined successor (pending→cooking,
// cooking→ready, ready→completed) at the store.
func (b *Board) AdvanceStatus(ctx context.Context, id int64) error {
	b.mu.Lock()
	var current repository.OrderStatus
	found := false
	for _, order := range b.orders {
		if order.ID == id {
			current = order.Status
			found = true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		return repository.ErrNotFound
	}
	next, ok := current.Next()
	if !ok {
		return ErrTerminalStatus
	}
	_, err := b.writer.UpdateOrderStatus(ctx, id, next)
	return err
}

func (b *Board) dropAlert(id int64) {
	for i, order := range b.alerts {
		if order.ID == id {
			b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
			return
		}
	}
}

func sortByCreation(orders []*repository.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt != orders[j].CreatedAt {
			return orders[i].CreatedAt < orders[j].CreatedAt
		}
		return orders[i].ID < orders[j].ID
	})
}
