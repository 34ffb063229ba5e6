package repository

import "fmt"

// DestinationKind classifies where an order is going.
type DestinationKind int

const (
	DineIn DestinationKind = iota
	Takeaway
	Delivery
)

// Destination is the decoded form of the overloaded table-number integer.
type Destination struct {
	Kind  DestinationKind
	Table int // set only for DineIn
}

// ParseTableNumber decodes the wire convention: positive = dine-in table,
// zero = takeaway, negative = delivery.
func ParseTableNumber(raw int) Destination {
	switch {
	case raw > 0:
		return Destination{Kind: DineIn, Table: raw}
	case raw == 0:
		return Destination{Kind: Takeaway}
	default:
		return Destination{Kind: Delivery}
	}
}

// Encode returns the wire integer for the destination.
func (d Destination) Encode() int {
	switch d.Kind {
	case DineIn:
		return d.Table
	case Delivery:
		return -1
	default:
		return 0
	}
}

func (d Destination) String() string {
	switch d.Kind {
	case DineIn:
		return fmt.Sprintf("Table %d", d.Table)
	case Delivery:
		return "Delivery"
	default:
		return "Takeaway"
	}
}
