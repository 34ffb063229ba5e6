package job

import (
	"context"
	"log/slog"

	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/service"
)

// MenuCacheRefreshJob drops and rewarms the cached menu listings. It
// covers menu edits made outside this process, e.g. a direct database
// import.
type MenuCacheRefreshJob struct {
	menu   service.MenuService
	logger *slog.Logger
}

// NewMenuCacheRefreshJob constructs the refresh job.
func NewMenuCacheRefreshJob(menu service.MenuService, logger *slog.Logger) *MenuCacheRefreshJob {
	return &MenuCacheRefreshJob{menu: menu, logger: logger}
}

// Name returns the job identifier.
func (j *MenuCacheRefreshJob) Name() string {
	return "menu-cache-refresh"
}

// Run invalidates the cache and reloads the hot listings.
func (j *MenuCacheRefreshJob) Run(ctx context.Context) error {
	j.menu.InvalidateCache()

	if _, err := j.menu.Categories(ctx, true); err != nil {
		return err
	}
	if _, err := j.menu.Items(ctx, repository.MenuItemFilter{AvailableOnly: true}); err != nil {
		return err
	}

	j.logger.Debug("menu cache rewarmed")
	return nil
}
