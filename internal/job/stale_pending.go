package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/creamcroissant/foodpos/internal/repository"
)

var stalePendingOrders = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "foodpos",
	Subsystem: "orders",
	Name:      "stale_pending",
	Help:      "Number of orders stuck in pending beyond the alert threshold.",
})

// StalePendingJob flags orders that have sat in pending longer than the
// configured threshold. It only warns; a stuck order still needs a human
// on the kitchen board to accept or reject it.
type StalePendingJob struct {
	orders    repository.OrderRepository
	logger    *slog.Logger
	threshold time.Duration
	now       func() time.Time
}

// NewStalePendingJob constructs the watcher.
func NewStalePendingJob(orders repository.OrderRepository, logger *slog.Logger, threshold time.Duration) *StalePendingJob {
	if threshold <= 0 {
		threshold = 10 * time.Minute
	}
	return &StalePendingJob{
		orders:    orders,
		logger:    logger,
		threshold: threshold,
		now:       time.Now,
	}
}

// Name returns the job identifier.
func (j *StalePendingJob) Name() string {
	return "stale-pending"
}

// Run scans pending orders and reports the stale ones.
func (j *StalePendingJob) Run(ctx context.Context) error {
	orders, err := j.orders.List(ctx, repository.OrderFilter{
		Statuses: []repository.OrderStatus{repository.StatusPending},
	})
	if err != nil {
		return err
	}

	cutoff := j.now().Add(-j.threshold).Unix()
	stale := 0
	for _, order := range orders {
		if order.CreatedAt <= cutoff {
			stale++
			j.logger.Warn("order stuck in pending",
				"order_id", order.ID,
				"age", time.Duration(j.now().Unix()-order.CreatedAt)*time.Second,
				"destination", order.Destination().String(),
			)
		}
	}

	stalePendingOrders.Set(float64(stale))
	return nil
}
