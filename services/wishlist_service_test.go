package services

import (
	"context"
	"errors"
	"testing"

	"gorilla-shop/models"
)

type fakeWishlistStore struct {
	items map[int64]map[int64]bool
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{items: map[int64]map[int64]bool{}}
}

func (f *fakeWishlistStore) List(_ context.Context, userID int64) ([]models.WishlistItem, error) {
	out := []models.WishlistItem{}
	for productID := range f.items[userID] {
		out = append(out, models.WishlistItem{UserID: userID, ProductID: productID})
	}
	return out, nil
}

func (f *fakeWishlistStore) Exists(_ context.Context, userID, productID int64) (bool, error) {
	return f.items[userID][productID], nil
}

func (f *fakeWishlistStore) Add(_ context.Context, userID, productID int64) error {
	if f.items[userID] == nil {
		f.items[userID] = map[int64]bool{}
	}
	f.items[userID][productID] = true
	return nil
}

func (f *fakeWishlistStore) Remove(_ context.Context, userID, productID int64) error {
	delete(f.items[userID], productID)
	return nil
}

func TestToggleAddsThenRemoves(t *testing.T) {
	store := newFakeWishlistStore()
	catalog := &fakeCatalog{products: map[int64]*models.Product{1: testProduct(1, 1000, 5, 10)}}
	svc := NewWishlistService(store, catalog)
	ctx := context.Background()

	added, err := svc.Toggle(ctx, 7, 1)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !added {
		t.Error("First toggle should add")
	}

	added, err = svc.Toggle(ctx, 7, 1)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if added {
		t.Error("Second toggle should remove")
	}

	items, _ := svc.List(ctx, 7)
	if len(items) != 0 {
		t.Errorf("Expected empty wishlist, got %+v", items)
	}
}

func TestToggleUnknownProduct(t *testing.T) {
	store := newFakeWishlistStore()
	catalog := &fakeCatalog{products: map[int64]*models.Product{}}
	svc := NewWishlistService(store, catalog)

	if _, err := svc.Toggle(context.Background(), 7, 99); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}
