package service

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// MenuFile is the YAML seed format consumed by `foodpos menu import`.
type MenuFile struct {
	Categories []MenuFileCategory `yaml:"categories"`
}

// MenuFileCategory is one category with its items.
type MenuFileCategory struct {
	Name   string         `yaml:"name"`
	Active *bool          `yaml:"active"`
	Items  []MenuFileItem `yaml:"items"`
}

// MenuFileItem is one menu item. Price is in satang.
type MenuFileItem struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Price       int64            `yaml:"price"`
	Available   *bool            `yaml:"available"`
	ImageURL    string           `yaml:"image_url"`
	Options     []MenuFileOption `yaml:"options"`
}

// MenuFileOption is one selectable option.
type MenuFileOption struct {
	Group    string `yaml:"group"`
	Name     string `yaml:"name"`
	Price    int64  `yaml:"price"`
	Required bool   `yaml:"required"`
}

// ImportMenu reads a MenuFile and creates its categories and items.
// Existing data is left alone; the command is for seeding fresh
// installations. Returns the number of items created.
func ImportMenu(ctx context.Context, menu MenuService, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read menu file: %w", err)
	}
	var file MenuFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse menu file: %w", err)
	}

	created := 0
	for _, cat := range file.Categories {
		active := true
		if cat.Active != nil {
			active = *cat.Active
		}
		category, err := menu.CreateCategory(ctx, cat.Name, active)
		if err != nil {
			return created, fmt.Errorf("create category %q: %w", cat.Name, err)
		}
		for _, it := range cat.Items {
			available := true
			if it.Available != nil {
				available = *it.Available
			}
			item := &repository.MenuItem{
				CategoryID:  category.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price,
				IsAvailable: available,
				ImageURL:    it.ImageURL,
			}
			for _, opt := range it.Options {
				item.Options = append(item.Options, &repository.MenuItemOption{
					GroupName:       opt.Group,
					Name:            opt.Name,
					AdditionalPrice: opt.Price,
					IsRequired:      opt.Required,
				})
			}
			if _, err := menu.CreateItem(ctx, item); err != nil {
				return created, fmt.Errorf("create item %q: %w", it.Name, err)
			}
			created++
		}
	}
	return created, nil
}
