package repository

import "context"

// CategoryRepository persists menu categories.
type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	FindByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
}

// MenuItemRepository persists menu items together with their option groups.
type MenuItemRepository interface {
	List(ctx context.Context, filter MenuItemFilter) ([]*MenuItem, error)
	FindByID(ctx context.Context, id int64) (*MenuItem, error)
	Create(ctx context.Context, item *MenuItem) (*MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id int64) error
	ReplaceOptions(ctx context.Context, menuItemID int64, options []*MenuItemOption) error
}

// OrderRepository persists orders. Orders are never deleted; terminal
// states are retained for history and bill display.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]*Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, order *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus, updatedAt int64) error
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
}
