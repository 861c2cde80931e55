package services

import (
	"sort"
	"testing"

	"gorilla-shop/models"
)

func entries(pairs ...[2]int64) []models.SessionCartEntry {
	out := make([]models.SessionCartEntry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.SessionCartEntry{ProductID: p[0], Quantity: int(p[1])})
	}
	return out
}

func TestDiffCartItemsPartitions(t *testing.T) {
	desired := entries([2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1})
	existing := map[int64]int{2: 1, 3: 1, 4: 5}
	available := map[int64]bool{1: true, 2: true, 3: true, 4: true}

	diff := DiffCartItems(desired, existing, available)

	if len(diff.Create) != 1 || diff.Create[0].ProductID != 1 || diff.Create[0].Quantity != 2 {
		t.Errorf("Expected create of product 1 qty 2, got %+v", diff.Create)
	}
	if len(diff.Update) != 1 || diff.Update[0].ProductID != 2 || diff.Update[0].Quantity != 3 {
		t.Errorf("Expected update of product 2 to qty 3, got %+v", diff.Update)
	}
	if len(diff.Delete) != 1 || diff.Delete[0] != 4 {
		t.Errorf("Expected delete of product 4, got %+v", diff.Delete)
	}
}

func TestDiffCartItemsSkipsUnavailable(t *testing.T) {
	desired := entries([2]int64{1, 2}, [2]int64{2, 1})
	existing := map[int64]int{2: 1}
	available := map[int64]bool{2: true}

	diff := DiffCartItems(desired, existing, available)

	// product 1 is unavailable: not created, and product 2 is unchanged
	if !diff.Empty() {
		t.Errorf("Expected empty diff, got %+v", diff)
	}
}

func TestDiffCartItemsDeletesUnavailablePersisted(t *testing.T) {
	// a persisted item whose product went unavailable gets removed
	desired := entries([2]int64{1, 2})
	existing := map[int64]int{1: 2}
	available := map[int64]bool{}

	diff := DiffCartItems(desired, existing, available)

	if len(diff.Delete) != 1 || diff.Delete[0] != 1 {
		t.Errorf("Expected delete of product 1, got %+v", diff)
	}
	if len(diff.Create) != 0 || len(diff.Update) != 0 {
		t.Errorf("Expected no creates or updates, got %+v", diff)
	}
}

func TestDiffCartItemsIgnoresBadQuantitiesAndDupes(t *testing.T) {
	desired := entries([2]int64{1, 0}, [2]int64{2, 2}, [2]int64{2, 5})
	existing := map[int64]int{}
	available := map[int64]bool{1: true, 2: true}

	diff := DiffCartItems(desired, existing, available)

	// qty 0 is skipped, and the first occurrence of a duplicate wins
	if len(diff.Create) != 1 || diff.Create[0].ProductID != 2 || diff.Create[0].Quantity != 2 {
		t.Errorf("Expected single create of product 2 qty 2, got %+v", diff.Create)
	}
}

// apply replays a diff against a persisted map the way the repository does,
// so convergence can be checked end to end.
func apply(existing map[int64]int, diff CartDiff) map[int64]int {
	out := map[int64]int{}
	for id, qty := range existing {
		out[id] = qty
	}
	for _, c := range diff.Create {
		out[c.ProductID] = c.Quantity
	}
	for _, c := range diff.Update {
		out[c.ProductID] = c.Quantity
	}
	for _, id := range diff.Delete {
		delete(out, id)
	}
	return out
}

func TestDiffCartItemsConverges(t *testing.T) {
	desired := entries([2]int64{1, 2}, [2]int64{2, 4}, [2]int64{3, 1}, [2]int64{5, 9})
	existing := map[int64]int{2: 1, 4: 7, 5: 9}
	available := map[int64]bool{1: true, 2: true, 3: true, 4: true}

	got := apply(existing, DiffCartItems(desired, existing, available))

	// the result is the desired set restricted to available products
	want := map[int64]int{1: 2, 2: 4, 3: 1}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for id, qty := range want {
		if got[id] != qty {
			t.Errorf("Product %d: expected qty %d, got %d", id, qty, got[id])
		}
	}

	// re-diffing the converged state yields nothing
	again := DiffCartItems(desired, got, available)
	if !again.Empty() {
		t.Errorf("Expected stable state, got %+v", again)
	}
}

func TestDiffCartItemsEmptyDesiredDeletesAll(t *testing.T) {
	existing := map[int64]int{1: 1, 2: 2}

	diff := DiffCartItems(nil, existing, map[int64]bool{1: true, 2: true})

	sort.Slice(diff.Delete, func(i, j int) bool { return diff.Delete[i] < diff.Delete[j] })
	if len(diff.Delete) != 2 || diff.Delete[0] != 1 || diff.Delete[1] != 2 {
		t.Errorf("Expected deletes of products 1 and 2, got %+v", diff.Delete)
	}
}
