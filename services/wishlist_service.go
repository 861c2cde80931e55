package services

import (
	"context"

	"gorilla-shop/models"
)

type WishlistStore interface {
	List(ctx context.Context, userID int64) ([]models.WishlistItem, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
}

type WishlistService struct {
	store    WishlistStore
	products ProductFinder
}

func NewWishlistService(store WishlistStore, products ProductFinder) *WishlistService {
	return &WishlistService{store: store, products: products}
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	return s.store.List(ctx, userID)
}

// Toggle adds the product when absent and removes it when present,
// returning true when the product ended up in the wishlist.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	found, err := s.products.FindAvailableByIDs(ctx, []int64{productID})
	if err != nil {
		return false, err
	}
	if _, ok := found[productID]; !ok {
		return false, ErrProductNotFound
	}

	exists, err := s.store.Exists(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.store.Remove(ctx, userID, productID)
	}
	return true, s.store.Add(ctx, userID, productID)
}
