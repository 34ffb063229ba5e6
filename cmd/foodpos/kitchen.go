package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/ordersync"
	"github.com/creamcroissant/foodpos/internal/posclient"
	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/support/logging"
	"github.com/creamcroissant/foodpos/internal/tui"
)

var kitchenCmd = &cobra.Command{
	Use:   "kitchen",
	Short: "Launch the kitchen board",
	Long:  "Launch the interactive kitchen display that polls for orders and alerts on new arrivals.",
	RunE:  runKitchen,
}

func init() {
	rootCmd.AddCommand(kitchenCmd)
}

func runKitchen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The TUI owns the terminal; route logs away from stdout.
	logger := logging.New(logging.Options{Level: cfg.Log.SlogLevel(), Output: io.Discard})

	client := posclient.NewClient(cfg.Server.BaseURL)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := client.WaitReady(ctx); err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Server.BaseURL, err)
	}

	board := ordersync.NewBoard(client)
	poller := ordersync.NewPoller(client, logger)
	sub := poller.Subscribe(ctx, ordersync.StatusFilter{
		repository.StatusPending,
		repository.StatusCooking,
		repository.StatusReady,
	}, cfg.Polling.BoardInterval)
	defer sub.Stop()

	p := tea.NewProgram(
		tui.NewModel(board, sub),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run kitchen board: %w", err)
	}
	return nil
}
