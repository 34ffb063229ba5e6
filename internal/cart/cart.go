// Package cart holds the customer's in-progress order. The cart is an
// explicitly owned session object; all mutation goes through its methods,
// never through ambient globals. Option selections stay structured inside
// the cart and are flattened to notes text only when the outbound order
// payload is built.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/creamcroissant/foodpos/internal/repository"
)

var (
	// ErrEmptyCart rejects checkout before any network call is made.
	ErrEmptyCart = errors.New("cart: cart is empty")
	// ErrRequiredOption indicates a required option group has no choice.
	ErrRequiredOption = errors.New("cart: required option not selected")
	// ErrUnavailableItem rejects adding an item marked unavailable.
	ErrUnavailableItem = errors.New("cart: menu item is not available")
)

// Selection is one chosen option: the group it answers and the choice made.
type Selection struct {
	Group string
	Name  string
	Price int64
}

// Line is one cart entry: a menu item configured with selections.
// UnitPrice includes option surcharges and is what the customer saw at
// add-to-cart time; the store reprices authoritatively at checkout.
type Line struct {
	MenuItemID int64
	Name       string
	Quantity   int
	UnitPrice  int64
	Selections []Selection
}

// Notes flattens the selections into the wire's free-text form:
// "Group: Choice, Group: Choice".
func (l Line) Notes() string {
	if len(l.Selections) == 0 {
		return ""
	}
	parts := make([]string, 0, len(l.Selections))
	for _, sel := range l.Selections {
		parts = append(parts, fmt.Sprintf("%s: %s", sel.Group, sel.Name))
	}
	return strings.Join(parts, ", ")
}

// OrderCreator is the checkout boundary; posclient implements it.
type OrderCreator interface {
	CreateOrder(ctx context.Context, tableNumber int, lines []Line) (*repository.Order, error)
}

// Cart is a single customer session's cart.
type Cart struct {
	destination repository.Destination
	lines       []Line
}

// New returns an empty cart for the given destination.
func New(destination repository.Destination) *Cart {
	return &Cart{destination: destination}
}

// Add configures a menu item with the chosen options and puts it in the
// cart. Identical configurations merge into one line; the same dish with
// different selections stays separate. Option ids must belong to the item
// and every required group needs a choice.
func (c *Cart) Add(item *repository.MenuItem, quantity int, optionIDs []int64) error {
	if item == nil {
		return errors.New("cart: menu item is nil")
	}
	if !item.IsAvailable {
		return ErrUnavailableItem
	}
	if quantity <= 0 {
		quantity = 1
	}

	selections, unitPrice, err := configure(item, optionIDs)
	if err != nil {
		return err
	}

	line := Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Selections: selections,
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == line.MenuItemID && c.lines[i].Notes() == line.Notes() {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, line)
	return nil
}

// SetQuantity adjusts a line's quantity; zero or below removes it.
func (c *Cart) SetQuantity(index, quantity int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
		return
	}
	c.lines[index].Quantity = quantity
}

// Remove drops a line from the cart.
func (c *Cart) Remove(index int) {
	c.SetQuantity(index, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count is the total item quantity across lines.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Total is the cart value in satang, from client-side prices. Display
// only; the store computes the authoritative order total.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// Checkout submits the cart. An empty cart fails before the creator is
// touched. On success the cart is cleared and the created order returned
// so the caller can begin tracking it.
func (c *Cart) Checkout(ctx context.Context, creator OrderCreator) (*repository.Order, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	order, err := creator.CreateOrder(ctx, c.destination.Encode(), c.Lines())
	if err != nil {
		return nil, fmt.Errorf("send order: %w", err)
	}
	c.Clear()
	return order, nil
}

// configure resolves option ids against the item, enforces required
// groups, and computes the configured unit price.
func configure(item *repository.MenuItem, optionIDs []int64) ([]Selection, int64, error) {
	chosen := make(map[int64]bool, len(optionIDs))
	for _, id := range optionIDs {
		chosen[id] = true
	}

	var selections []Selection
	unitPrice := item.Price
	answered := make(map[string]bool)
	required := make(map[string]bool)

	for _, opt := range item.Options {
		if opt.IsRequired {
			required[opt.GroupName] = true
		}
		if !chosen[opt.ID] {
			continue
		}
		selections = append(selections, Selection{
			Group: opt.GroupName,
			Name:  opt.Name,
			Price: opt.AdditionalPrice,
		})
		unitPrice += opt.AdditionalPrice
		answered[opt.GroupName] = true
	}

	for group := range required {
		if !answered[group] {
			return nil, 0, fmt.Errorf("%w: %s", ErrRequiredOption, group)
		}
	}

	// Stable notes text regardless of selection order.
	sort.Slice(selections, func(i, j int) bool {
		if selections[i].Group != selections[j].Group {
			return selections[i].Group < selections[j].Group
		}
		return selections[i].Name < selections[j].Name
	})
	return selections, unitPrice, nil
}
