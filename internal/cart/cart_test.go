package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/repository"
)

func padThai() *repository.MenuItem {
	return &repository.MenuItem{
		ID:          1,
		Name:        "Pad Thai",
		Price:       9000,
		IsAvailable: true,
		Options: []*repository.MenuItemOption{
			{ID: 10, MenuItemID: 1, GroupName: "Spice", Name: "Mild", IsRequired: true},
			{ID: 11, MenuItemID: 1, GroupName: "Spice", Name: "Hot", IsRequired: true},
			{ID: 12, MenuItemID: 1, GroupName: "Protein", Name: "Shrimp", AdditionalPrice: 2000},
		},
	}
}

type recordingCreator struct {
	tableNumber int
	lines       []Line
	err         error
	calls       int
}

func (c *recordingCreator) CreateOrder(_ context.Context, tableNumber int, lines []Line) (*repository.Order, error) {
	c.calls++
	c.tableNumber = tableNumber
	c.lines = lines
	if c.err != nil {
		return nil, c.err
	}
	return &repository.Order{ID: 100, TableNumber: tableNumber, Status: repository.StatusPending}, nil
}

func TestAddComputesConfiguredPrice(t *testing.T) {
	c := New(repository.Destination{Kind: repository.DineIn, Table: 4})
	require.NoError(t, c.Add(padThai(), 2, []int64{11, 12}))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(11000), lines[0].UnitPrice)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(22000), c.Total())
}

func TestNotesFlattening(t *testing.T) {
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{12, 11}))

	// Groups sort alphabetically, so selection order does not matter.
	assert.Equal(t, "Protein: Shrimp, Spice: Hot", c.Lines()[0].Notes())
}

func TestAddMergesIdenticalConfigurations(t *testing.T) {
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{10}))
	require.NoError(t, c.Add(padThai(), 2, []int64{10}))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddKeepsDifferentConfigurationsSeparate(t *testing.T) {
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{10}))
	require.NoError(t, c.Add(padThai(), 1, []int64{11}))

	assert.Len(t, c.Lines(), 2)
}

func TestAddRequiresRequiredGroup(t *testing.T) {
	c := New(repository.Destination{Kind: repository.Takeaway})
	err := c.Add(padThai(), 1, nil)
	assert.ErrorIs(t, err, ErrRequiredOption)
	assert.Empty(t, c.Lines())
}

func TestAddRejectsUnavailableItem(t *testing.T) {
	item := padThai()
	item.IsAvailable = false

	c := New(repository.Destination{Kind: repository.Takeaway})
	assert.ErrorIs(t, c.Add(item, 1, []int64{10}), ErrUnavailableItem)
}

func TestSetQuantityAndRemove(t *testing.T) {
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{10}))

	c.SetQuantity(0, 5)
	assert.Equal(t, 5, c.Count())

	c.SetQuantity(0, 0)
	assert.Empty(t, c.Lines())
}

func TestCheckoutEmptyCartSkipsNetwork(t *testing.T) {
	creator := &recordingCreator{}
	c := New(repository.Destination{Kind: repository.Takeaway})

	_, err := c.Checkout(context.Background(), creator)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, creator.calls, "empty cart checkout must not touch the network")
}

func TestCheckoutEncodesDestination(t *testing.T) {
	creator := &recordingCreator{}

	dineIn := New(repository.Destination{Kind: repository.DineIn, Table: 8})
	require.NoError(t, dineIn.Add(padThai(), 1, []int64{10}))
	_, err := dineIn.Checkout(context.Background(), creator)
	require.NoError(t, err)
	assert.Equal(t, 8, creator.tableNumber)

	delivery := New(repository.Destination{Kind: repository.Delivery})
	require.NoError(t, delivery.Add(padThai(), 1, []int64{10}))
	_, err = delivery.Checkout(context.Background(), creator)
	require.NoError(t, err)
	assert.Equal(t, -1, creator.tableNumber)
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	creator := &recordingCreator{}
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{10}))

	order, err := c.Checkout(context.Background(), creator)
	require.NoError(t, err)
	assert.Equal(t, int64(100), order.ID)
	assert.Empty(t, c.Lines())
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	creator := &recordingCreator{err: errors.New("backend down")}
	c := New(repository.Destination{Kind: repository.Takeaway})
	require.NoError(t, c.Add(padThai(), 1, []int64{10}))

	_, err := c.Checkout(context.Background(), creator)
	require.Error(t, err)
	assert.Len(t, c.Lines(), 1, "a failed checkout must not lose the cart")
}
