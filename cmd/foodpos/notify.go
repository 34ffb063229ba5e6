package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/ordersync"
	"github.com/creamcroissant/foodpos/internal/posclient"
	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/support/logging"
	"github.com/creamcroissant/foodpos/internal/support/money"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Watch for new pending orders",
	Long:  "Poll the backend for pending orders and announce each newly arrived one. Orders already pending at startup are not announced.",
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Options{Level: cfg.Log.SlogLevel(), Format: cfg.Log.Format})

	client := posclient.NewClient(cfg.Server.BaseURL)
	if err := client.WaitReady(ctx); err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Server.BaseURL, err)
	}

	detector := ordersync.NewDetector()
	poller := ordersync.NewPoller(client, logger)
	sub := poller.Subscribe(ctx, ordersync.StatusFilter{repository.StatusPending}, cfg.Polling.NotifyInterval)
	defer sub.Stop()

	logger.Info("watching for new orders", "interval", cfg.Polling.NotifyInterval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.Snapshots():
			if !ok {
				return nil
			}
			for _, ev := range detector.Observe(snap) {
				newOrder, ok := ev.(ordersync.NewOrder)
				if !ok {
					continue
				}
				announce(logger, newOrder.Order)
			}
		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			logger.Warn("poll failed, retrying", "error", err)
		}
	}
}

func announce(logger *slog.Logger, order *repository.Order) {
	var total int64
	items := 0
	for _, item := range order.Items {
		total += item.Price * int64(item.Quantity)
		items += item.Quantity
	}
	logger.Info("new order",
		"order_id", order.ID,
		"destination", order.Destination().String(),
		"items", items,
		"total", money.FormatSatang(total),
	)
}
