package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
	"gorilla-shop/services"
)

const productColumns = `p.id, p.name, p.slug, p.category_id, p.brand_id, p.description, p.price, p.discount,
	p.weight, p.taste, p.stock, p.rating, p.image_url, p.cloudinary_id, p.available, p.created_at, p.updated_at`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.BrandID, &p.Description, &p.Price, &p.Discount,
		&p.Weight, &p.Taste, &p.Stock, &p.Rating, &p.ImageURL, &p.CloudinaryID, &p.Available,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAvailableByIDs resolves cart entries in one query. IDs that do not
// exist or are not available are simply absent from the result.
func (r *ProductRepository) FindAvailableByIDs(ctx context.Context, ids []int64) (map[int64]*models.Product, error) {
	if len(ids) == 0 {
		return map[int64]*models.Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products p WHERE p.id = ANY($1) AND p.available = true`, productColumns)
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := map[int64]*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context, filter services.ProductFilter) ([]models.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.AvailableOnly {
		where = append(where, "p.available = true")
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		where = append(where, fmt.Sprintf("p.category_id IN (SELECT id FROM categories WHERE slug = $%d)", len(args)))
	}
	if filter.BrandSlug != "" {
		args = append(args, filter.BrandSlug)
		where = append(where, fmt.Sprintf("p.brand_id IN (SELECT id FROM brands WHERE slug = $%d)", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE %s ORDER BY p.%s LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, filter.OrderBy(), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE p.id = $1`, productColumns)
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE p.slug = $1`, productColumns)
	p, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) ListImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	query := `SELECT id, product_id, alt, image_url, cloudinary_id FROM product_images WHERE product_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Alt, &img.ImageURL, &img.CloudinaryID); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, slug, category_id, brand_id, description, price, discount,
			weight, taste, stock, rating, image_url, cloudinary_id, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRow(ctx, query,
		product.Name, product.Slug, product.CategoryID, product.BrandID, product.Description,
		product.Price, product.Discount, product.Weight, product.Taste, product.Stock,
		product.ImageURL, product.CloudinaryID, product.Available, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, slug = $2, category_id = $3, brand_id = $4, description = $5, price = $6,
			discount = $7, weight = $8, taste = $9, stock = $10, available = $11, updated_at = $12
		WHERE id = $13
	`
	_, err := r.db.Exec(ctx, query,
		product.Name, product.Slug, product.CategoryID, product.BrandID, product.Description,
		product.Price, product.Discount, product.Weight, product.Taste, product.Stock,
		product.Available, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) SetImage(ctx context.Context, productID int64, imageURL, cloudinaryID string) error {
	query := `UPDATE products SET image_url = $1, cloudinary_id = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.Exec(ctx, query, imageURL, cloudinaryID, time.Now(), productID)
	return err
}

// Deactivate hides the product instead of deleting it so order history and
// cart reconciliation keep working.
func (r *ProductRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE products SET available = false, updated_at = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return services.ErrProductNotFound
	}
	return nil
}
