package ordersync

import "github.com/creamcroissant/foodpos/internal/repository"

// Event is one observed change between two poll snapshots.
type Event interface {
	event()
}

// NewOrder reports an order identifier seen for the first time. Carries the
// full order from the current snapshot.
type NewOrder struct {
	Order *repository.Order
}

// StatusChanged reports a tracked order moving between statuses. Emitted at
// most once per distinct status value; non-adjacent jumps are legal because
// intermediate ticks can be missed.
type StatusChanged struct {
	OrderID int64
	Old     repository.OrderStatus
	New     repository.OrderStatus
}

// OrderRemoved reports an order leaving the filtered view, typically after
// advancing past the filter or being cancelled by another client.
type OrderRemoved struct {
	OrderID int64
}

func (NewOrder) event()      {}
func (StatusChanged) event() {}
func (OrderRemoved) event()  {}
