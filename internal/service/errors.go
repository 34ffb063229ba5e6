package service

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("service: not found")
	// ErrEmptyOrder rejects order creation with no items.
	ErrEmptyOrder = errors.New("service: order has no items")
	// ErrInvalidQuantity rejects zero or negative line quantities.
	ErrInvalidQuantity = errors.New("service: invalid quantity")
	// ErrUnknownStatus indicates a status string outside the enum.
	ErrUnknownStatus = errors.New("service: unknown order status")
	// ErrInvalidTransition indicates a status update outside the legal set.
	ErrInvalidTransition = errors.New("service: illegal status transition")
	// ErrUnknownMenuItem indicates an order line references a missing item.
	ErrUnknownMenuItem = errors.New("service: unknown menu item")
	// ErrItemUnavailable indicates an order line references an item that is
	// not currently sold.
	ErrItemUnavailable = errors.New("service: menu item unavailable")
	// ErrInvalidCredentials indicates the admin password was wrong.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
)
