package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/foodpos/internal/bootstrap"
	"github.com/creamcroissant/foodpos/internal/cache"
	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/migrations"
	"github.com/creamcroissant/foodpos/internal/repository/sqlite"
	"github.com/creamcroissant/foodpos/internal/service"
	"github.com/creamcroissant/foodpos/internal/support/logging"
)

func init() {
	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Menu management",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import categories and items from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(logging.Options{Level: cfg.Log.SlogLevel(), Format: "text"})

			db, err := bootstrap.OpenSQLite(cfg.DB.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrations.Up(db); err != nil {
				return err
			}

			store := sqlite.NewStore(db)
			menuService := service.NewMenuService(
				store.Categories(),
				store.MenuItems(),
				cache.NewStore(cache.Options{Prefix: "foodpos"}),
				logger,
			)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			created, err := service.ImportMenu(cmd.Context(), menuService, f)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d menu items\n", created)
			return nil
		},
	}

	menuCmd.AddCommand(importCmd)
	rootCmd.AddCommand(menuCmd)
}
