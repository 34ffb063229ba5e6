package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build info, injected via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "foodpos",
	Short: "FoodPOS restaurant point of sale",
	Long:  `FoodPOS runs the restaurant backend and its polling clients: the kitchen board, the order tracker, and the notification watcher.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
