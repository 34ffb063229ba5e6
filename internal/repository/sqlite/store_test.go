package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/bootstrap"
	"github.com/creamcroissant/foodpos/internal/migrations"
	"github.com/creamcroissant/foodpos/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := bootstrap.OpenMemorySQLite(fmt.Sprintf("foodpos_test_%s_%d", t.Name(), time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db))
	return NewStore(db)
}

func seedMenuItem(t *testing.T, store *Store) *repository.MenuItem {
	t.Helper()
	ctx := context.Background()

	category, err := store.Categories().Create(ctx, &repository.Category{Name: "Mains", IsActive: true})
	require.NoError(t, err)

	item, err := store.MenuItems().Create(ctx, &repository.MenuItem{
		CategoryID:  category.ID,
		Name:        "Tom Yum",
		Description: "Hot and sour soup",
		Price:       15000,
		IsAvailable: true,
		Options: []*repository.MenuItemOption{
			{GroupName: "Spice", Name: "Mild", IsRequired: true},
			{GroupName: "Spice", Name: "Hot", IsRequired: true},
			{GroupName: "Protein", Name: "Prawn", AdditionalPrice: 3000},
		},
	})
	require.NoError(t, err)
	return item
}

func TestMenuItemRoundTrip(t *testing.T) {
	store := newTestStore(t)
	item := seedMenuItem(t, store)

	loaded, err := store.MenuItems().FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom Yum", loaded.Name)
	assert.Equal(t, int64(15000), loaded.Price)
	require.Len(t, loaded.Options, 3)
	assert.Equal(t, "Spice", loaded.Options[0].GroupName)
}

func TestMenuItemFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	item := seedMenuItem(t, store)

	item.IsAvailable = false
	require.NoError(t, store.MenuItems().Update(ctx, item))

	all, err := store.MenuItems().List(ctx, repository.MenuItemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	available, err := store.MenuItems().List(ctx, repository.MenuItemFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestMenuItemNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.MenuItems().FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func createOrder(t *testing.T, store *Store, item *repository.MenuItem, tableNumber int, createdAt int64) *repository.Order {
	t.Helper()
	order, err := store.Orders().Create(context.Background(), &repository.Order{
		TableNumber: tableNumber,
		Status:      repository.StatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Items: []*repository.OrderItem{{
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Quantity:     2,
			Price:        item.Price,
			Notes:        "Spice: Hot",
		}},
	})
	require.NoError(t, err)
	return order
}

func TestOrderRoundTrip(t *testing.T) {
	store := newTestStore(t)
	item := seedMenuItem(t, store)
	order := createOrder(t, store, item, 5, 1000)

	loaded, err := store.Orders().FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.TableNumber)
	assert.Equal(t, repository.StatusPending, loaded.Status)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Tom Yum", loaded.Items[0].MenuItemName)
	assert.Equal(t, "Spice: Hot", loaded.Items[0].Notes)
}

func TestOrderListFiltersAndOrders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	item := seedMenuItem(t, store)

	newest := createOrder(t, store, item, 1, 3000)
	oldest := createOrder(t, store, item, 2, 1000)
	middle := createOrder(t, store, item, 3, 2000)

	require.NoError(t, store.Orders().UpdateStatus(ctx, middle.ID, repository.StatusCooking, 2500))

	all, err := store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, oldest.ID, all[0].ID, "oldest first")
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, newest.ID, all[2].ID)

	pending, err := store.Orders().List(ctx, repository.OrderFilter{
		Statuses: []repository.OrderStatus{repository.StatusPending},
	})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	active, err := store.Orders().List(ctx, repository.OrderFilter{
		Statuses: []repository.OrderStatus{repository.StatusPending, repository.StatusCooking},
	})
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	store := newTestStore(t)
	err := store.Orders().UpdateStatus(context.Background(), 404, repository.StatusCooking, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderCountByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	item := seedMenuItem(t, store)

	createOrder(t, store, item, 1, 1000)
	second := createOrder(t, store, item, 2, 2000)
	require.NoError(t, store.Orders().UpdateStatus(ctx, second.ID, repository.StatusCooking, 2500))

	counts, err := store.Orders().CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[repository.StatusPending])
	assert.Equal(t, int64(1), counts[repository.StatusCooking])
}

func TestCategoryActiveFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Categories().Create(ctx, &repository.Category{Name: "Drinks", IsActive: true})
	require.NoError(t, err)
	hidden, err := store.Categories().Create(ctx, &repository.Category{Name: "Secret", IsActive: false})
	require.NoError(t, err)

	active, err := store.Categories().List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := store.Categories().List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.Categories().Delete(ctx, hidden.ID))
	all, err = store.Categories().List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
