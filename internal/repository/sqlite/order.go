package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/creamcroissant/foodpos/internal/repository"
)

type orderRepo struct {
	db *sql.DB
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	query := listOrdersQuery
	args := []any{}
	if len(filter.Statuses) > 0 {
		query += ` WHERE status IN (` + statusPlaceholders(len(filter.Statuses)) + `)`
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*repository.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*repository.Order, error) {
	row := r.db.QueryRowContext(ctx, orderByIDQuery, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachItems(ctx, []*repository.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Create(ctx context.Context, order *repository.Order) (*repository.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if len(order.Items) == 0 {
		return nil, errors.New("order has no items")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const orderStmt = `INSERT INTO orders(table_number, status, created_at, updated_at)
                       VALUES(?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderStmt,
		order.TableNumber,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	const itemStmt = `INSERT INTO order_items(order_id, menu_item_id, menu_item_name, quantity, price, notes)
                      VALUES(?, ?, ?, ?, ?, ?)`
	for _, item := range order.Items {
		itemRes, err := tx.ExecContext(ctx, itemStmt,
			orderID,
			item.MenuItemID,
			item.MenuItemName,
			item.Quantity,
			item.Price,
			item.Notes,
		)
		if err != nil {
			return nil, err
		}
		if id, err := itemRes.LastInsertId(); err == nil {
			item.ID = id
		}
		item.OrderID = orderID
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status repository.OrderStatus, updatedAt int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), updatedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[repository.OrderStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[repository.OrderStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[repository.OrderStatus(status)] = count
	}
	return counts, rows.Err()
}

// attachItems loads order lines for the given orders in one query.
func (r *orderRepo) attachItems(ctx context.Context, orders []*repository.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*repository.Order, len(orders))
	ids := make([]any, 0, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	query := `SELECT id, order_id, menu_item_id, menu_item_name, quantity, price, notes
              FROM order_items
              WHERE order_id IN (` + statusPlaceholders(len(ids)) + `)
              ORDER BY order_id ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item repository.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &item.Price, &item.Notes); err != nil {
			return err
		}
		if order, ok := byID[item.OrderID]; ok {
			i := item
			order.Items = append(order.Items, &i)
		}
	}
	return rows.Err()
}

type orderScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner orderScanner) (*repository.Order, error) {
	var (
		id          int64
		tableNumber int64
		status      string
		createdAt   int64
		updatedAt   int64
	)
	if err := scanner.Scan(&id, &tableNumber, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &repository.Order{
		ID:          id,
		TableNumber: int(tableNumber),
		Status:      repository.OrderStatus(status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

const (
	orderColumns    = `id, table_number, status, created_at, updated_at`
	listOrdersQuery = `SELECT ` + orderColumns + ` FROM orders`
	orderByIDQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE id = ? LIMIT 1`
)
