package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	CategoryID   int64           `json:"category_id"`
	BrandID      *int64          `json:"brand_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	Weight       int             `json:"weight"`
	Taste        string          `json:"taste,omitempty"`
	Stock        int             `json:"stock"`
	Rating       decimal.Decimal `json:"rating"`
	ImageURL     string          `json:"image_url,omitempty"`
	CloudinaryID string          `json:"-"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProductImage struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	Alt          string `json:"alt,omitempty"`
	ImageURL     string `json:"image_url"`
	CloudinaryID string `json:"-"`
}

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// GetPrice returns the selling price after discount, rounded to one decimal
// place. A discount of 1 or less is a fraction (0.25 = 25% off), anything
// larger is a percentage (25 = 25% off).
func (p *Product) GetPrice() decimal.Decimal {
	price := p.Price
	if p.Discount.IsPositive() {
		if p.Discount.LessThanOrEqual(decimalOne) {
			price = price.Mul(decimalOne.Sub(p.Discount))
		} else {
			price = price.Mul(decimalOne.Sub(p.Discount.Div(decimalHundred)))
		}
	}
	return price.Round(1)
}

// DiscountAmount is the per-unit difference between list and selling price.
func (p *Product) DiscountAmount() decimal.Decimal {
	return p.Price.Sub(p.GetPrice())
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}
