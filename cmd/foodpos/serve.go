package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/foodpos/internal/api"
	"github.com/creamcroissant/foodpos/internal/auth/token"
	"github.com/creamcroissant/foodpos/internal/bootstrap"
	"github.com/creamcroissant/foodpos/internal/cache"
	"github.com/creamcroissant/foodpos/internal/config"
	"github.com/creamcroissant/foodpos/internal/job"
	"github.com/creamcroissant/foodpos/internal/migrations"
	"github.com/creamcroissant/foodpos/internal/repository/sqlite"
	"github.com/creamcroissant/foodpos/internal/service"
	"github.com/creamcroissant/foodpos/internal/support/hash"
	"github.com/creamcroissant/foodpos/internal/support/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FoodPOS backend server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	bootTime := time.Now().UTC()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.SlogLevel(),
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	db, err := bootstrap.OpenSQLite(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}

	store := sqlite.NewStore(db)
	cacheStore := cache.NewStore(cache.Options{Prefix: "foodpos"})

	hasher, err := hash.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := token.NewManager(token.Options{
		SigningKey: []byte(cfg.Auth.SigningKey),
		Issuer:     cfg.Auth.Issuer,
		TTL:        cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}

	menuService := service.NewMenuService(store.Categories(), store.MenuItems(), cacheStore, logger)
	orderService := service.NewOrderService(store.Orders(), store.MenuItems(), logger)
	authService := service.NewAuthService(cfg.Auth.AdminPasswordHash, hasher, tokens)
	systemService := service.NewSystemService(Version, bootTime, store.Orders())

	scheduler := job.NewScheduler(logger)
	if _, err := scheduler.Register(cfg.Jobs.StalePendingSpec, job.NewStalePendingJob(store.Orders(), logger, cfg.Jobs.StalePendingThreshold)); err != nil {
		return err
	}
	if _, err := scheduler.Register(cfg.Jobs.MenuCacheRefreshSpec, job.NewMenuCacheRefreshJob(menuService, logger)); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	router := api.NewRouter(logger, api.Services{
		Menu:   menuService,
		Order:  orderService,
		Auth:   authService,
		System: systemService,
	}, cfg.Metrics)

	server := bootstrap.NewHTTPServer(cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
