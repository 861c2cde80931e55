package services

import "gorilla-shop/models"

type CartItemChange struct {
	ProductID int64
	Quantity  int
}

// CartDiff partitions a reconciliation into the three row operations needed
// to make the persisted cart equal the desired state.
type CartDiff struct {
	Create []CartItemChange
	Update []CartItemChange
	Delete []int64
}

func (d CartDiff) Empty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}

// DiffCartItems computes the set reconciliation between the desired entries
// (session order preserved) and the existing persisted quantities, keyed by
// product ID. Desired entries whose product is not available are skipped,
// so after applying the diff the persisted set equals the desired set
// restricted to available products.
func DiffCartItems(desired []models.SessionCartEntry, existing map[int64]int, available map[int64]bool) CartDiff {
	var diff CartDiff

	keep := make(map[int64]bool, len(desired))
	for _, entry := range desired {
		if entry.Quantity < 1 || !available[entry.ProductID] {
			continue
		}
		if keep[entry.ProductID] {
			continue
		}
		keep[entry.ProductID] = true

		current, ok := existing[entry.ProductID]
		switch {
		case !ok:
			diff.Create = append(diff.Create, CartItemChange{ProductID: entry.ProductID, Quantity: entry.Quantity})
		case current != entry.Quantity:
			diff.Update = append(diff.Update, CartItemChange{ProductID: entry.ProductID, Quantity: entry.Quantity})
		}
	}

	for productID := range existing {
		if !keep[productID] {
			diff.Delete = append(diff.Delete, productID)
		}
	}
	return diff
}
