package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/creamcroissant/foodpos/internal/cache"
	"github.com/creamcroissant/foodpos/internal/repository"
)

// MenuService serves the customer-facing menu and the admin CRUD behind
// it. Listings go through a read-through cache because the menu changes
// rarely and every customer page load hits it.
type MenuService interface {
	Categories(ctx context.Context, activeOnly bool) ([]*repository.Category, error)
	Items(ctx context.Context, filter repository.MenuItemFilter) ([]*repository.MenuItem, error)
	Item(ctx context.Context, id int64) (*repository.MenuItem, error)

	CreateCategory(ctx context.Context, name string, isActive bool) (*repository.Category, error)
	UpdateCategory(ctx context.Context, category *repository.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *repository.MenuItem) (*repository.MenuItem, error)
	UpdateItem(ctx context.Context, item *repository.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error

	InvalidateCache()
}

const (
	menuCacheTTL       = 5 * time.Minute
	cacheKeyCategories = "categories"
	cacheKeyItems      = "items"
)

type menuService struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
	cache      cache.Store
	sanitizer  *bluemonday.Policy
	logger     *slog.Logger
	now        func() time.Time
}

// NewMenuService constructs the menu service. Descriptions are sanitized
// with bluemonday on write because they are rendered into customer pages.
func NewMenuService(categories repository.CategoryRepository, items repository.MenuItemRepository, cacheStore cache.Store, logger *slog.Logger) MenuService {
	if logger == nil {
		logger = slog.Default()
	}
	return &menuService{
		categories: categories,
		items:      items,
		cache:      cacheStore.Namespace("menu"),
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *menuService) Categories(ctx context.Context, activeOnly bool) ([]*repository.Category, error) {
	key := fmt.Sprintf("%s:%t", cacheKeyCategories, activeOnly)
	var cached []*repository.Category
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	categories, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, categories, menuCacheTTL); err != nil {
		s.logger.Warn("menu cache write failed", "error", err)
	}
	return categories, nil
}

func (s *menuService) Items(ctx context.Context, filter repository.MenuItemFilter) ([]*repository.MenuItem, error) {
	// Per-category listings skip the cache; only the full customer menu
	// is hot enough to be worth invalidation bookkeeping.
	if filter.CategoryID != nil {
		return s.items.List(ctx, filter)
	}

	key := itemsCacheKey(filter)
	var cached []*repository.MenuItem
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, items, menuCacheTTL); err != nil {
		s.logger.Warn("menu cache write failed", "error", err)
	}
	return items, nil
}

func (s *menuService) Item(ctx context.Context, id int64) (*repository.MenuItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) CreateCategory(ctx context.Context, name string, isActive bool) (*repository.Category, error) {
	now := s.now().Unix()
	category, err := s.categories.Create(ctx, &repository.Category{
		Name:      name,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return category, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, category *repository.Category) error {
	category.UpdatedAt = s.now().Unix()
	if err := s.categories.Update(ctx, category); err != nil {
		return err
	}
	s.InvalidateCache()
	return nil
}

func (s *menuService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateCache()
	return nil
}

func (s *menuService) CreateItem(ctx context.Context, item *repository.MenuItem) (*repository.MenuItem, error) {
	now := s.now().Unix()
	item.Description = s.sanitizer.Sanitize(item.Description)
	item.CreatedAt = now
	item.UpdatedAt = now
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.InvalidateCache()
	return created, nil
}

func (s *menuService) UpdateItem(ctx context.Context, item *repository.MenuItem) error {
	item.Description = s.sanitizer.Sanitize(item.Description)
	item.UpdatedAt = s.now().Unix()
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}
	if item.Options != nil {
		if err := s.items.ReplaceOptions(ctx, item.ID, item.Options); err != nil {
			return err
		}
	}
	s.InvalidateCache()
	return nil
}

func (s *menuService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateCache()
	return nil
}

// InvalidateCache drops all cached menu listings. Called after every admin
// write and periodically by the refresh job as a safety net for writes
// that bypass this process.
func (s *menuService) InvalidateCache() {
	ctx := context.Background()
	s.cache.Delete(ctx, cacheKeyCategories+":true")
	s.cache.Delete(ctx, cacheKeyCategories+":false")
	s.cache.Delete(ctx, cacheKeyItems+":all")
	s.cache.Delete(ctx, cacheKeyItems+":available")
}

func itemsCacheKey(filter repository.MenuItemFilter) string {
	if filter.AvailableOnly {
		return cacheKeyItems + ":available"
	}
	return cacheKeyItems + ":all"
}
