package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
)

type WishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) List(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
			p.id, p.name, p.slug, p.category_id, p.brand_id, p.description, p.price, p.discount,
			p.weight, p.taste, p.stock, p.rating, p.image_url, p.cloudinary_id, p.available,
			p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.BrandID, &p.Description, &p.Price, &p.Discount,
			&p.Weight, &p.Taste, &p.Stock, &p.Rating, &p.ImageURL, &p.CloudinaryID, &p.Available,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(&exists)
	return exists, err
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) error {
	query := `INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, product_id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, userID, productID, time.Now())
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}
