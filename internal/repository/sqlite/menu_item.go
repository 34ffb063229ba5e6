package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type menuItemRepo struct {
	db *sql.DB
}

func (r *menuItemRepo) List(ctx context.Context, filter repository.MenuItemFilter) ([]*repository.MenuItem, error) {
	query := listMenuItemsQuery
	args := []any{}
	where := ""
	if filter.CategoryID != nil {
		where = ` WHERE category_id = ?`
		args = append(args, *filter.CategoryID)
	}
	if filter.AvailableOnly {
		if where == "" {
			where = ` WHERE is_available = 1`
		} else {
			where += ` AND is_available = 1`
		}
	}
	rows, err := r.db.QueryContext(ctx, query+where+` ORDER BY category_id ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*repository.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachOptions(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepo) FindByID(ctx context.Context, id int64) (*repository.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, menuItemByIDQuery, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachOptions(ctx, []*repository.MenuItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuItemRepo) Create(ctx context.Context, item *repository.MenuItem) (*repository.MenuItem, error) {
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	const stmt = `INSERT INTO menu_items(category_id, name, description, price, is_available, image_url, created_at, updated_at)
                  VALUES(?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, stmt,
		item.CategoryID,
		item.Name,
		item.Description,
		item.Price,
		boolToInt(item.IsAvailable),
		nullableText(item.ImageURL),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if id, err := res.LastInsertId(); err == nil {
		item.ID = id
	}
	if len(item.Options) > 0 {
		if err := r.ReplaceOptions(ctx, item.ID, item.Options); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (r *menuItemRepo) Update(ctx context.Context, item *repository.MenuItem) error {
	if item == nil {
		return errors.New("menu item is nil")
	}
	const stmt = `UPDATE menu_items
                  SET category_id = ?, name = ?, description = ?, price = ?, is_available = ?, image_url = ?, updated_at = ?
                  WHERE id = ?`
	_, err := r.db.ExecContext(ctx, stmt,
		item.CategoryID,
		item.Name,
		item.Description,
		item.Price,
		boolToInt(item.IsAvailable),
		nullableText(item.ImageURL),
		item.UpdatedAt,
		item.ID,
	)
	return err
}

func (r *menuItemRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_item_options WHERE menu_item_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *menuItemRepo) ReplaceOptions(ctx context.Context, menuItemID int64, options []*repository.MenuItemOption) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_item_options WHERE menu_item_id = ?`, menuItemID); err != nil {
		return err
	}
	const stmt = `INSERT INTO menu_item_options(menu_item_id, group_name, name, additional_price, is_required)
                  VALUES(?, ?, ?, ?, ?)`
	for _, opt := range options {
		res, err := tx.ExecContext(ctx, stmt,
			menuItemID,
			opt.GroupName,
			opt.Name,
			opt.AdditionalPrice,
			boolToInt(opt.IsRequired),
		)
		if err != nil {
			return err
		}
		if id, err := res.LastInsertId(); err == nil {
			opt.ID = id
		}
		opt.MenuItemID = menuItemID
	}
	return tx.Commit()
}

// attachOptions loads option rows for the given items in one query.
func (r *menuItemRepo) attachOptions(ctx context.Context, items []*repository.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[int64]*repository.MenuItem, len(items))
	ids := make([]any, 0, len(items))
	for _, item := range items {
		byID[item.ID] = item
		ids = append(ids, item.ID)
	}
	query := `SELECT id, menu_item_id, group_name, name, additional_price, is_required
              FROM menu_item_options
              WHERE menu_item_id IN (` + statusPlaceholders(len(ids)) + `)
              ORDER BY menu_item_id ASC, group_name ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			opt          repository.MenuItemOption
			requiredFlag int64
		)
		if err := rows.Scan(&opt.ID, &opt.MenuItemID, &opt.GroupName, &opt.Name, &opt.AdditionalPrice, &requiredFlag); err != nil {
			return err
		}
		opt.IsRequired = requiredFlag == 1
		if item, ok := byID[opt.MenuItemID]; ok {
			o := opt
			item.Options = append(item.Options, &o)
		}
	}
	return rows.Err()
}

type menuItemScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(scanner menuItemScanner) (*repository.MenuItem, error) {
	var (
		id            int64
		categoryID    int64
		name          string
		description   string
		price         int64
		availableFlag int64
		imageURL      sql.NullString
		createdAt     int64
		updatedAt     int64
	)
	if err := scanner.Scan(&id, &categoryID, &name, &description, &price, &availableFlag, &imageURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &repository.MenuItem{
		ID:          id,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Price:       price,
		IsAvailable: availableFlag == 1,
		ImageURL:    textOrEmpty(imageURL),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

const (
	menuItemColumns   = `id, category_id, name, description, price, is_available, image_url, created_at, updated_at`
	listMenuItemsQuery = `SELECT ` + menuItemColumns + ` FROM menu_items`
	menuItemByIDQuery  = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ? LIMIT 1`
)
