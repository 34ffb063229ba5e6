package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/ordersync"
	"github.com/creamcroissant/foodpos/internal/posclient"
	"github.com/creamcroissant/foodpos/internal/support/logging"
)

var trackCmd = &cobra.Command{
	Use:   "track <order-id>",
	Short: "Track one order until it is done",
	Long:  "Follow a single order's status with the customer tracker: a progress line per change, a bell when the order is ready, and automatic exit after a terminal status.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Options{Level: cfg.Log.SlogLevel(), Format: "text"})

	client := posclient.NewClient(cfg.Server.BaseURL)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := client.WaitReady(ctx); err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Server.BaseURL, err)
	}

	closed := make(chan struct{})
	session := ordersync.NewSession(2 * time.Hour)
	tracker := ordersync.NewTracker(client, session, cfg.Polling.TrackerInterval, logger,
		ordersync.WithOnChange(func(view ordersync.TrackerView) {
			switch view.State {
			case ordersync.TrackerTracking:
				fmt.Printf("order #%d: %s %s\n", view.OrderID, progressLine(view.StepIndex), view.Status)
			case ordersync.TrackerReadyAlert:
				// \a rings the terminal bell in place of the web client's
				// notification sound.
				fmt.Printf("\aorder #%d is READY, pick it up!\n", view.OrderID)
			case ordersync.TrackerClosed:
				close(closed)
			}
		}),
	)

	tracker.Start(ctx, orderID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-time.After(time.Second):
		}
		view := tracker.View()
		if view.State == ordersync.TrackerReadyAlert {
			// The CLI has no dismiss button; acknowledge on behalf of the
			// customer once the alert has been printed.
			tracker.Dismiss()
		}
	}
}

func progressLine(step int) string {
	marks := []rune{'○', '○', '○'}
	for i := 0; i <= step && i < len(marks); i++ {
		marks[i] = '●'
	}
	return fmt.Sprintf("[%c received %c cooking %c ready]", marks[0], marks[1], marks[2])
}
