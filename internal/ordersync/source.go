// Package ordersync implements the order status synchronization protocol:
// fixed-interval polling against the order store, snapshot diffing, and the
// board/tracker projections that drive the kitchen display and the
// customer-facing tracker. There is no push channel; every client observes
// the store through polls and treats whatever the next poll returns as
// authoritative.
package ordersync

import (
	"context"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// StatusFilter selects which order statuses a subscription observes.
type StatusFilter []repository.OrderStatus

// Contains reports whether the filter matches the given status. An empty
// filter matches everything.
func (f StatusFilter) Contains(status repository.OrderStatus) bool {
	if len(f) == 0 {
		return true
	}
	for _, s := range f {
		if s == status {
			return true
		}
	}
	return false
}

// OrderSource is the read side of the order store as seen by polling
// clients.
type OrderSource interface {
	ListOrders(ctx context.Context, filter StatusFilter) ([]*repository.Order, error)
	GetOrder(ctx context.Context, id int64) (*repository.Order, error)
}

// OrderWriter is the mutation side. Mutations are not synchronized with
// in-flight polls; the next tick reconciles.
type OrderWriter interface {
	UpdateOrderStatus(ctx context.Context, id int64, status repository.OrderStatus) (*repository.Order, error)
}

// Snapshot is the full set of orders returned by one poll.
type Snapshot struct {
	Orders []*repository.Order
}
