package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type fakeOrderRepo struct {
	orders  []*repository.Order
	filters []repository.OrderFilter
	listErr error
}

func (f *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.orders, nil
}

func (f *fakeOrderRepo) FindByID(context.Context, int64) (*repository.Order, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) Create(_ context.Context, order *repository.Order) (*repository.Order, error) {
	return order, nil
}

func (f *fakeOrderRepo) UpdateStatus(context.Context, int64, repository.OrderStatus, int64) error {
	return nil
}

func (f *fakeOrderRepo) CountByStatus(context.Context) (map[repository.OrderStatus]int64, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStalePendingCutoff(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	threshold := 10 * time.Minute

	repo := &fakeOrderRepo{orders: []*repository.Order{
		// Exactly threshold old counts as stale.
		{ID: 1, Status: repository.StatusPending, CreatedAt: now.Add(-threshold).Unix()},
		{ID: 2, Status: repository.StatusPending, CreatedAt: now.Add(-threshold + time.Second).Unix()},
		{ID: 3, Status: repository.StatusPending, CreatedAt: now.Add(-time.Hour).Unix(), TableNumber: 7},
	}}

	j := NewStalePendingJob(repo, testLogger(), threshold)
	j.now = func() time.Time { return now }

	require.NoError(t, j.Run(context.Background()))
	assert.InDelta(t, 2, testutil.ToFloat64(stalePendingOrders), 0)

	require.Len(t, repo.filters, 1)
	assert.Equal(t, []repository.OrderStatus{repository.StatusPending}, repo.filters[0].Statuses)
}

func TestStalePendingGaugeResets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	repo := &fakeOrderRepo{orders: []*repository.Order{
		{ID: 1, Status: repository.StatusPending, CreatedAt: now.Add(-time.Hour).Unix()},
	}}

	j := NewStalePendingJob(repo, testLogger(), 10*time.Minute)
	j.now = func() time.Time { return now }

	require.NoError(t, j.Run(context.Background()))
	assert.InDelta(t, 1, testutil.ToFloat64(stalePendingOrders), 0)

	// The stuck order got handled; the next sweep must clear the gauge.
	repo.orders = nil
	require.NoError(t, j.Run(context.Background()))
	assert.InDelta(t, 0, testutil.ToFloat64(stalePendingOrders), 0)
}

func TestStalePendingListError(t *testing.T) {
	repo := &fakeOrderRepo{listErr: errors.New("database locked")}
	j := NewStalePendingJob(repo, testLogger(), 10*time.Minute)

	require.Error(t, j.Run(context.Background()))
}

func TestStalePendingDefaultThreshold(t *testing.T) {
	j := NewStalePendingJob(&fakeOrderRepo{}, testLogger(), 0)
	assert.Equal(t, 10*time.Minute, j.threshold)
}
