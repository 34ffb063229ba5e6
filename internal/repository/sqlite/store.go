package sqlite

import (
	"database/sql"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// Store wires SQLite-backed repository implementations.
type Store struct {
	db         *sql.DB
	categories repository.CategoryRepository
	menuItems  repository.MenuItemRepository
	orders     repository.OrderRepository
}

// NewStore constructs a SQLite-backed repository store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:         db,
		categories: &categoryRepo{db: db},
		menuItems:  &menuItemRepo{db: db},
		orders:     &orderRepo{db: db},
	}
}

func (s *Store) Categories() repository.CategoryRepository {
	return s.categories
}

func (s *Store) MenuItems() repository.MenuItemRepository {
	return s.menuItems
}

func (s *Store) Orders() repository.OrderRepository {
	return s.orders
}
