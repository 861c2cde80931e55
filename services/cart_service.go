package services

import (
	"context"

	"gorilla-shop/models"
)

// CartStore is the persisted per-user cart.
type CartStore interface {
	GetOrCreateCart(ctx context.Context, userID int64) (int64, error)
	ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	ApplyDiff(ctx context.Context, cartID int64, diff CartDiff) error
}

// CartService reconciles the session-resident cart with the persisted one.
// Whichever direction runs, both sides converge on a single state; the side
// invoked second wins on conflicting quantities.
type CartService struct {
	carts    CartStore
	products ProductFinder
}

func NewCartService(carts CartStore, products ProductFinder) *CartService {
	return &CartService{carts: carts, products: products}
}

// MergeSessionCart makes the persisted cart items exactly match the session
// cart for one user: one batched product fetch, one item fetch, then a
// create/update/delete diff applied in a single transaction.
func (s *CartService) MergeSessionCart(ctx context.Context, userID int64, cs *CartSession) error {
	if userID == 0 {
		return nil
	}

	cartID, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	entries := cs.Entries()

	available := map[int64]bool{}
	if len(entries) > 0 {
		ids := make([]int64, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.ProductID)
		}
		products, err := s.products.FindAvailableByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for id := range products {
			available[id] = true
		}
	}

	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return err
	}
	existing := make(map[int64]int, len(items))
	for _, item := range items {
		existing[item.ProductID] = item.Quantity
	}

	diff := DiffCartItems(entries, existing, available)
	if diff.Empty() {
		return nil
	}
	return s.carts.ApplyDiff(ctx, cartID, diff)
}

// SyncFromDB pulls persisted quantities into the session (overwriting
// matching entries, appending DB-only ones) and then merges back so both
// sides end up consistent. Called when a user logs in.
func (s *CartService) SyncFromDB(ctx context.Context, userID int64, cs *CartSession) error {
	if userID == 0 {
		return nil
	}

	cartID, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if existing := cs.find(item.ProductID); existing != nil {
			if existing.Quantity != item.Quantity {
				existing.Quantity = item.Quantity
				cs.modified = true
			}
		} else {
			cs.data.Items = append(cs.data.Items, models.SessionCartEntry{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
			cs.modified = true
		}
	}

	return s.MergeSessionCart(ctx, userID, cs)
}
