package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type categoryRepo struct {
	db *sql.DB
}

func (r *categoryRepo) List(ctx context.Context, activeOnly bool) ([]*repository.Category, error) {
	query := listCategoriesQuery
	if activeOnly {
		query = listActiveCategoriesQuery
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*repository.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*repository.Category, error) {
	row := r.db.QueryRowContext(ctx, categoryByIDQuery, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *repository.Category) (*repository.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	const stmt = `INSERT INTO categories(name, is_active, created_at, updated_at)
                  VALUES(?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, stmt,
		category.Name,
		boolToInt(category.IsActive),
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if id, err := res.LastInsertId(); err == nil {
		category.ID = id
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *repository.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	const stmt = `UPDATE categories SET name = ?, is_active = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, stmt,
		category.Name,
		boolToInt(category.IsActive),
		category.UpdatedAt,
		category.ID,
	)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

type categoryScanner interface {
	Scan(dest ...any) error
}

func scanCategory(scanner categoryScanner) (*repository.Category, error) {
	var (
		id         int64
		name       string
		activeFlag int64
		createdAt  int64
		updatedAt  int64
	)
	if err := scanner.Scan(&id, &name, &activeFlag, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &repository.Category{
		ID:        id,
		Name:      name,
		IsActive:  activeFlag == 1,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

const (
	categoryColumns           = `id, name, is_active, created_at, updated_at`
	listCategoriesQuery       = `SELECT ` + categoryColumns + ` FROM categories ORDER BY id ASC`
	listActiveCategoriesQuery = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active = 1 ORDER BY id ASC`
	categoryByIDQuery         = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ? LIMIT 1`
)
