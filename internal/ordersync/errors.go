package ordersync

import "errors"

var (
	// ErrTerminalStatus indicates an advance was requested on a completed
	// or cancelled order.
	ErrTerminalStatus = errors.New("ordersync: order is in a terminal status")
	// ErrNotTracking indicates a tracker action without an active order.
	ErrNotTracking = errors.New("ordersync: no order is being tracked")
)
