package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/storefront/internal/domain/order"
)

// OrderRepository implements order.Repository on SQL. An order header and
// its items are written in a single transaction.
type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o *order.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.db.rebind(`
		INSERT INTO orders (id, customer_name, customer_address, customer_phone, customer_email, payment_method, card_number, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		o.ID, o.CustomerName, o.Address, o.Phone, o.Email,
		string(o.PaymentMethod), o.CardRef, o.Total.StringFixed(2), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := r.db.rebind(`INSERT INTO order_items (order_id, line_no, product_id, quantity, price) VALUES (?, ?, ?, ?, ?)`)
	for i, item := range o.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, o.ID, i, item.ProductID, item.Quantity, item.Price.StringFixed(2)); err != nil {
			return fmt.Errorf("insert order item %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

const orderColumns = `id, customer_name, customer_address, customer_phone, customer_email, payment_method, card_number, total, created_at`

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ?`), id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.rebind(`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the connection before loading items; sqlite runs with one.
	rows.Close()

	for _, o := range orders {
		if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID string) ([]order.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.rebind(`SELECT product_id, quantity, price FROM order_items WHERE order_id = ? ORDER BY line_no`), orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var (
		o      order.Order
		method string
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.Address, &o.Phone, &o.Email, &method, &o.CardRef, &o.Total, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod = order.PaymentMethod(method)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}
