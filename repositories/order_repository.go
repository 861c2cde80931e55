package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

const orderColumns = `id, user_id, order_number, status,
	shipping_full_name, shipping_phone, shipping_address_line1, shipping_address_line2,
	shipping_city, shipping_state, shipping_postal_code, shipping_country,
	subtotal, shipping_cost, total, receipt_url, created_at, updated_at`

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts the snapshot and consumes the cart rows it was built
// from in one transaction. When a concurrent checkout already emptied the
// cart, no rows are deleted and the whole transaction rolls back with
// ErrCartEmpty, so double submission cannot produce two orders.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, cartID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	query := `
		INSERT INTO orders (user_id, order_number, status,
			shipping_full_name, shipping_phone, shipping_address_line1, shipping_address_line2,
			shipping_city, shipping_state, shipping_postal_code, shipping_country,
			subtotal, shipping_cost, total, receipt_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		order.UserID, order.OrderNumber, order.Status,
		order.ShippingFullName, order.ShippingPhone, order.ShippingAddressLine1, order.ShippingAddressLine2,
		order.ShippingCity, order.ShippingState, order.ShippingPostalCode, order.ShippingCountry,
		order.Subtotal, order.ShippingCost, order.Total, order.ReceiptURL, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, subtotal, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			order.ID, item.ProductID, item.ProductName, item.ProductPrice, item.Quantity, item.Subtotal, now,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	result, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return services.ErrCartEmpty
	}

	return tx.Commit(ctx)
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status,
		&o.ShippingFullName, &o.ShippingPhone, &o.ShippingAddressLine1, &o.ShippingAddressLine2,
		&o.ShippingCity, &o.ShippingState, &o.ShippingPostalCode, &o.ShippingCountry,
		&o.Subtotal, &o.ShippingCost, &o.Total, &o.ReceiptURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *models.Order) error {
	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
		FROM order_items WHERE order_id = $1 ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.Subtotal, &item.CreatedAt)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) GetForUser(ctx context.Context, userID, id int64) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)
	order, err := scanOrder(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	rows, err := r.db.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) List(ctx context.Context, status string, page, limit int) ([]models.Order, int, error) {
	where := ""
	countArgs := []any{}
	args := []any{limit, (page - 1) * limit}
	if status != "" {
		where = " WHERE status = $1"
		countArgs = append(countArgs, status)
		args = []any{status, limit, (page - 1) * limit}
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var query string
	if status != "" {
		query = fmt.Sprintf(`SELECT %s FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	} else {
		query = fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, orderColumns)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) SetReceipt(ctx context.Context, id int64, receiptURL string) error {
	result, err := r.db.Exec(ctx, `UPDATE orders SET receipt_url = $1, updated_at = $2 WHERE id = $3`, receiptURL, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}
