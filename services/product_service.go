package services

import (
	"context"
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"gorilla-shop/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows the public catalog listing.
type ProductFilter struct {
	Query         string
	CategorySlug  string
	BrandSlug     string
	AvailableOnly bool
	Sort          string
	Page          int
	Limit         int
}

var allowedSorts = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"name":        "name ASC",
	"-name":       "name DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// OrderBy maps the requested sort onto the whitelisted SQL clause,
// defaulting to newest first.
func (f ProductFilter) OrderBy() string {
	if clause, ok := allowedSorts[f.Sort]; ok {
		return clause
	}
	return "created_at DESC"
}

type ProductStore interface {
	ProductFinder
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListImages(ctx context.Context, productID int64) ([]models.ProductImage, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetImage(ctx context.Context, productID int64, imageURL, cloudinaryID string) error
	Deactivate(ctx context.Context, id int64) error
}

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) List(ctx context.Context, filter ProductFilter) (*models.PaginationResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	products, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.MetaData{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, []models.ProductImage, error) {
	product, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, ErrProductNotFound
	}

	images, err := s.store.ListImages(ctx, product.ID)
	if err != nil {
		return nil, nil, err
	}
	return product, images, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, errors.New("invalid price")
	}

	discount := decimal.Zero
	if req.Discount != "" {
		discount, err = decimal.NewFromString(req.Discount)
		if err != nil {
			return nil, errors.New("invalid discount")
		}
	}

	product := &models.Product{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Description: req.Description,
		Price:       price,
		Discount:    discount,
		Weight:      req.Weight,
		Taste:       req.Taste,
		Stock:       req.Stock,
		Available:   req.Available,
	}
	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != "" {
		product.Name = req.Name
		product.Slug = Slugify(req.Name)
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			return nil, errors.New("invalid price")
		}
		product.Price = price
	}
	if req.Discount != "" {
		discount, err := decimal.NewFromString(req.Discount)
		if err != nil {
			return nil, errors.New("invalid discount")
		}
		product.Discount = discount
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Taste != "" {
		product.Taste = req.Taste
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.store.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.store.Deactivate(ctx, id)
}

func (s *ProductService) SetImage(ctx context.Context, id int64, imageURL, cloudinaryID string) error {
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.store.SetImage(ctx, id, imageURL, cloudinaryID)
}
