package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, description, parent_id, is_active, created_at, updated_at
	          FROM categories ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ParentID,
			&cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, name, slug, description, parent_id, is_active, created_at, updated_at
	          FROM categories WHERE id = $1`
	var cat models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description,
		&cat.ParentID, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, description, parent_id, is_active, created_at, updated_at
	          FROM categories WHERE slug = $1`
	var cat models.Category
	err := r.db.QueryRow(ctx, query, slug).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description,
		&cat.ParentID, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		category.Name, category.Slug, category.Description, category.ParentID, category.IsActive, time.Now(),
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET name = $1, slug = $2, description = $3, parent_id = $4,
	          is_active = $5, updated_at = $6 WHERE id = $7`
	_, err := r.db.Exec(ctx, query,
		category.Name, category.Slug, category.Description, category.ParentID,
		category.IsActive, time.Now(), category.ID,
	)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

type BrandRepository struct {
	db *pgxpool.Pool
}

func NewBrandRepository(db *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	query := `SELECT id, name, slug, logo_url, description, website, is_active, created_at, updated_at
	          FROM brands ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		var b models.Brand
		err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.Website,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	query := `SELECT id, name, slug, logo_url, description, website, is_active, created_at, updated_at
	          FROM brands WHERE id = $1`
	var b models.Brand
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description,
		&b.Website, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (name, slug, logo_url, description, website, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		brand.Name, brand.Slug, brand.LogoURL, brand.Description, brand.Website, brand.IsActive, time.Now(),
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	query := `UPDATE brands SET name = $1, slug = $2, logo_url = $3, description = $4, website = $5,
	          is_active = $6, updated_at = $7 WHERE id = $8`
	_, err := r.db.Exec(ctx, query,
		brand.Name, brand.Slug, brand.LogoURL, brand.Description, brand.Website,
		brand.IsActive, time.Now(), brand.ID,
	)
	return err
}

func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	return err
}
