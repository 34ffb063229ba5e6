package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// OrderService owns the order lifecycle: creation with authoritative
// pricing, status transitions, and filtered listings for polling clients.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*repository.Order, error)
	List(ctx context.Context, statuses []repository.OrderStatus) ([]*repository.Order, error)
	Get(ctx context.Context, id int64) (*repository.Order, error)
	UpdateStatus(ctx context.Context, id int64, status repository.OrderStatus) (*repository.Order, error)
	CountByStatus(ctx context.Context) (map[repository.OrderStatus]int64, error)
}

// CreateOrderInput is the checkout payload. Client-supplied prices are
// accepted on the wire for compatibility but never trusted: the store
// reprices every line from current menu data.
type CreateOrderInput struct {
	TableNumber int
	Items       []CreateOrderItemInput
}

// CreateOrderItemInput is one requested order line.
type CreateOrderItemInput struct {
	MenuItemID int64
	Quantity   int
	Price      int64 // ignored; see CreateOrderInput
	Notes      string
}

type orderService struct {
	orders    repository.OrderRepository
	menuItems repository.MenuItemRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderService constructs the order service.
func NewOrderService(orders repository.OrderRepository, menuItems repository.MenuItemRepository, logger *slog.Logger) OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderService{
		orders:    orders,
		menuItems: menuItems,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (*repository.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := s.now().Unix()
	order := &repository.Order{
		TableNumber: input.TableNumber,
		Status:      repository.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		menuItem, err := s.menuItems.FindByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrUnknownMenuItem, line.MenuItemID)
			}
			return nil, fmt.Errorf("load menu item %d: %w", line.MenuItemID, err)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.Name)
		}

		order.Items = append(order.Items, &repository.OrderItem{
			MenuItemID:   menuItem.ID,
			MenuItemName: menuItem.Name,
			Quantity:     line.Quantity,
			Price:        priceLine(menuItem, line.Notes),
			Notes:        line.Notes,
		})
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order created",
		"order_id", created.ID,
		"destination", created.Destination().String(),
		"items", len(created.Items),
	)
	return created, nil
}

func (s *orderService) List(ctx context.Context, statuses []repository.OrderStatus) ([]*repository.Order, error) {
	return s.orders.List(ctx, repository.OrderFilter{Statuses: statuses})
}

func (s *orderService) Get(ctx context.Context, id int64) (*repository.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, status repository.OrderStatus) (*repository.Order, error) {
	if _, ok := repository.ParseOrderStatus(string(status)); !ok {
		return nil, ErrUnknownStatus
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !repository.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	updatedAt := s.now().Unix()
	if err := s.orders.UpdateStatus(ctx, id, status, updatedAt); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	s.logger.Info("order status updated", "order_id", id, "from", order.Status, "to", status)

	order.Status = status
	order.UpdatedAt = updatedAt
	return order, nil
}

func (s *orderService) CountByStatus(ctx context.Context) (map[repository.OrderStatus]int64, error) {
	return s.orders.CountByStatus(ctx)
}

// priceLine computes the authoritative unit price for an order line: the
// current menu price plus the surcharge of every option the notes text
// names. Notes carry selections as "Group: Choice" pairs, comma-joined;
// fragments that match no option are customer free text and price at zero.
func priceLine(item *repository.MenuItem, notes string) int64 {
	price := item.Price
	if strings.TrimSpace(notes) == "" || len(item.Options) == 0 {
		return price
	}

	byLabel := make(map[string]int64, len(item.Options))
	for _, opt := range item.Options {
		byLabel[fmt.Sprintf("%s: %s", opt.GroupName, opt.Name)] = opt.AdditionalPrice
	}
	for _, fragment := range strings.Split(notes, ",") {
		if surcharge, ok := byLabel[strings.TrimSpace(fragment)]; ok {
			price += surcharge
		}
	}
	return price
}
