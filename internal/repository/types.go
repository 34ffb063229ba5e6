package repository

// Category groups menu items on the customer-facing menu.
type Category struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt int64
	UpdatedAt int64
}

// MenuItem is a sellable dish. Price is unit price in satang (1/100 THB).
type MenuItem struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       int64
	IsAvailable bool
	ImageURL    string
	Options     []*MenuItemOption
	CreatedAt   int64
	UpdatedAt   int64
}

// MenuItemOption is a single selectable choice inside an option group,
// e.g. group "Sweetness", name "Less sugar". AdditionalPrice is in satang.
type MenuItemOption struct {
	ID              int64
	MenuItemID      int64
	GroupName       string
	Name            string
	AdditionalPrice int64
	IsRequired      bool
}

// Order is a customer order. TableNumber keeps the raw wire encoding
// (positive = dine-in table, zero = takeaway, negative = delivery); use
// Destination() instead of inspecting the sign.
type Order struct {
	ID          int64
	TableNumber int
	Status      OrderStatus
	Items       []*OrderItem
	CreatedAt   int64
	UpdatedAt   int64
}

// Destination decodes the table number once at the boundary.
func (o *Order) Destination() Destination {
	return ParseTableNumber(o.TableNumber)
}

// OrderItem is one line of an order. Price is the unit price including
// option surcharges, captured when the order was created; it is never
// recomputed from current menu data.
type OrderItem struct {
	ID           int64
	OrderID      int64
	MenuItemID   int64
	MenuItemName string
	Quantity     int
	Price        int64
	Notes        string
}
