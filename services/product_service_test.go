package services

import (
	"context"
	"testing"

	"gorilla-shop/models"
)

func TestProductFilterOrderBy(t *testing.T) {
	cases := []struct {
		sort, want string
	}{
		{"price", "price ASC"},
		{"-price", "price DESC"},
		{"-name", "name DESC"},
		{"", "created_at DESC"},
		{"rating; DROP TABLE products", "created_at DESC"},
	}

	for _, tc := range cases {
		f := ProductFilter{Sort: tc.sort}
		if got := f.OrderBy(); got != tc.want {
			t.Errorf("OrderBy(%q) = %q, want %q", tc.sort, got, tc.want)
		}
	}
}

// listCapturingStore records the filter List was called with.
type listCapturingStore struct {
	ProductStore
	filter ProductFilter
	total  int
}

func (s *listCapturingStore) List(_ context.Context, filter ProductFilter) ([]models.Product, int, error) {
	s.filter = filter
	return []models.Product{}, s.total, nil
}

func TestProductListClampsPagination(t *testing.T) {
	store := &listCapturingStore{total: 250}
	svc := NewProductService(store)

	resp, err := svc.List(context.Background(), ProductFilter{Page: -3, Limit: 1000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if store.filter.Page != 1 {
		t.Errorf("Expected page clamped to 1, got %d", store.filter.Page)
	}
	if store.filter.Limit != 100 {
		t.Errorf("Expected limit clamped to 100, got %d", store.filter.Limit)
	}
	if resp.Meta.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", resp.Meta.TotalPages)
	}
}

func TestProductListDefaultLimit(t *testing.T) {
	store := &listCapturingStore{total: 0}
	svc := NewProductService(store)

	resp, err := svc.List(context.Background(), ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.filter.Limit != 12 {
		t.Errorf("Expected default limit 12, got %d", store.filter.Limit)
	}
	if resp.Meta.TotalPages != 0 {
		t.Errorf("Expected 0 total pages, got %d", resp.Meta.TotalPages)
	}
}
