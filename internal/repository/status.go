package repository

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// successor maps each status to its single forward successor. Cancellation
// is a side transition out of pending, not part of the forward chain.
var successor = map[OrderStatus]OrderStatus{
	StatusPending: StatusCooking,
	StatusCooking: StatusReady,
	StatusReady:   StatusCompleted,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case StatusPending, StatusCooking, StatusReady, StatusCompleted, StatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// Next returns the forward successor of s. Terminal states have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := successor[s]
	return next, ok
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from → to is a legal transition. Only the
// forward chain pending → cooking → ready → completed plus the rejection
// pending → cancelled are allowed; no backward moves, no skipping.
func CanTransition(from, to OrderStatus) bool {
	if from == StatusPending && to == StatusCancelled {
		return true
	}
	next, ok := successor[from]
	return ok && next == to
}
