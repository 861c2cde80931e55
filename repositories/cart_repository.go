package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreateCart returns the user's single cart row, creating it on first
// use. The unique index on user_id makes concurrent first calls converge.
func (r *CartRepository) GetOrCreateCart(ctx context.Context, userID int64) (int64, error) {
	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	var cartID int64
	err := r.db.QueryRow(ctx, query, userID, time.Now()).Scan(&cartID)
	return cartID, err
}

// ListItems returns persisted cart rows with their products joined in.
// Rows whose product is unavailable carry a nil Product.
func (r *CartRepository) ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.id, p.name, p.slug, p.category_id, p.brand_id, p.description, p.price, p.discount,
			p.weight, p.taste, p.stock, p.rating, p.image_url, p.cloudinary_id, p.available,
			p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`
	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.BrandID, &p.Description, &p.Price, &p.Discount,
			&p.Weight, &p.Taste, &p.Stock, &p.Rating, &p.ImageURL, &p.CloudinaryID, &p.Available,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if p.Available {
			item.Product = &p
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ApplyDiff executes the reconciliation plan in one transaction so a cart
// is never observed half-merged.
func (r *CartRepository) ApplyDiff(ctx context.Context, cartID int64, diff services.CartDiff) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	batch := &pgx.Batch{}
	for _, change := range diff.Create {
		batch.Queue(
			`INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $4)
			 ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
			cartID, change.ProductID, change.Quantity, now,
		)
	}
	for _, change := range diff.Update {
		batch.Queue(
			`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE cart_id = $3 AND product_id = $4`,
			change.Quantity, now, cartID, change.ProductID,
		)
	}
	if len(diff.Delete) > 0 {
		batch.Queue(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = ANY($2)`, cartID, diff.Delete)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
