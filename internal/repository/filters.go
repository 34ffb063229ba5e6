package repository

// OrderFilter constrains order listings. An empty Statuses slice matches
// every status. Results are always ordered by creation time ascending so
// polling clients see a stable FIFO sequence.
type OrderFilter struct {
	Statuses []OrderStatus
	Limit    int
	Offset   int
}

// MenuItemFilter constrains menu listings.
type MenuItemFilter struct {
	CategoryID    *int64
	AvailableOnly bool
}
