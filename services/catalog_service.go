package services

import (
	"context"
	"errors"

	"gorilla-shop/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
)

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type BrandStore interface {
	List(ctx context.Context) ([]models.Brand, error)
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id int64) error
}

// CatalogService manages the product taxonomy (categories and brands).
type CatalogService struct {
	categories CategoryStore
	brands     BrandStore
}

func NewCatalogService(categories CategoryStore, brands BrandStore) *CatalogService {
	return &CatalogService{categories: categories, brands: brands}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = req.Name
	category.Slug = Slugify(req.Name)
	category.Description = req.Description
	category.ParentID = req.ParentID
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.brands.List(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error) {
	brand := &models.Brand{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		Website:     req.Website,
		IsActive:    true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, req models.BrandRequest) (*models.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	brand.Name = req.Name
	brand.Slug = Slugify(req.Name)
	brand.Description = req.Description
	brand.Website = req.Website
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id int64) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	return s.brands.Delete(ctx, id)
}
