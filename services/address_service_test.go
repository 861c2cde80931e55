package services

import (
	"context"
	"errors"
	"testing"

	"gorilla-shop/models"
)

// fakeAddressStore is an in-memory address book keyed by address ID.
type fakeAddressStore struct {
	nextID    int64
	addresses map[int64]*models.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{nextID: 1, addresses: map[int64]*models.Address{}}
}

func (f *fakeAddressStore) GetByID(_ context.Context, userID, id int64) (*models.Address, error) {
	addr, ok := f.addresses[id]
	if !ok || addr.UserID != userID {
		return nil, nil
	}
	copied := *addr
	return &copied, nil
}

func (f *fakeAddressStore) ListByUser(_ context.Context, userID int64) ([]models.Address, error) {
	out := []models.Address{}
	// default first, then by ID, matching the repository's ordering
	for id := int64(1); id < f.nextID; id++ {
		if addr, ok := f.addresses[id]; ok && addr.UserID == userID && addr.IsDefault {
			out = append(out, *addr)
		}
	}
	for id := int64(1); id < f.nextID; id++ {
		if addr, ok := f.addresses[id]; ok && addr.UserID == userID && !addr.IsDefault {
			out = append(out, *addr)
		}
	}
	return out, nil
}

func (f *fakeAddressStore) CountByUser(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, addr := range f.addresses {
		if addr.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAddressStore) Create(_ context.Context, addr *models.Address) error {
	addr.ID = f.nextID
	f.nextID++
	copied := *addr
	f.addresses[addr.ID] = &copied
	return nil
}

func (f *fakeAddressStore) Update(_ context.Context, addr *models.Address) error {
	existing, ok := f.addresses[addr.ID]
	if !ok || existing.UserID != addr.UserID {
		return errors.New("address not found")
	}
	copied := *addr
	f.addresses[addr.ID] = &copied
	return nil
}

func (f *fakeAddressStore) Delete(_ context.Context, userID, id int64) error {
	if addr, ok := f.addresses[id]; ok && addr.UserID == userID {
		delete(f.addresses, id)
	}
	return nil
}

func (f *fakeAddressStore) ClearDefault(_ context.Context, userID, exceptID int64) error {
	for _, addr := range f.addresses {
		if addr.UserID == userID && addr.ID != exceptID {
			addr.IsDefault = false
		}
	}
	return nil
}

func (f *fakeAddressStore) SetDefault(_ context.Context, userID, id int64) error {
	addr, ok := f.addresses[id]
	if !ok || addr.UserID != userID {
		return errors.New("address not found")
	}
	addr.IsDefault = true
	return nil
}

func (f *fakeAddressStore) defaults(userID int64) []int64 {
	out := []int64{}
	for _, addr := range f.addresses {
		if addr.UserID == userID && addr.IsDefault {
			out = append(out, addr.ID)
		}
	}
	return out
}

func testAddress(userID int64) *models.Address {
	return &models.Address{
		UserID:       userID,
		FullName:     "Test User",
		Phone:        "09120000000",
		AddressLine1: "1 Main St",
		City:         "Tehran",
		Country:      "Iran",
	}
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	addr := testAddress(1)
	if err := svc.Create(ctx, addr); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !addr.IsDefault {
		t.Error("First address should be promoted to default")
	}

	second := testAddress(1)
	svc.Create(ctx, second)
	if second.IsDefault {
		t.Error("Second address should not become default")
	}
	if got := store.defaults(1); len(got) != 1 || got[0] != addr.ID {
		t.Errorf("Expected only the first address to be default, got %v", got)
	}
}

func TestCreateDefaultClearsPreviousDefault(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	first := testAddress(1)
	svc.Create(ctx, first)

	second := testAddress(1)
	second.IsDefault = true
	if err := svc.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := store.defaults(1); len(got) != 1 || got[0] != second.ID {
		t.Errorf("Expected only the new address to be default, got %v", got)
	}
}

func TestUpdateToDefaultClearsOthers(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	first := testAddress(1)
	svc.Create(ctx, first)
	second := testAddress(1)
	svc.Create(ctx, second)

	second.IsDefault = true
	if err := svc.Update(ctx, second); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := store.defaults(1); len(got) != 1 || got[0] != second.ID {
		t.Errorf("Expected only the updated address to be default, got %v", got)
	}
}

func TestUpdateMissingAddress(t *testing.T) {
	svc := NewAddressService(newFakeAddressStore())

	addr := testAddress(1)
	addr.ID = 99
	if err := svc.Update(context.Background(), addr); !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("Expected ErrAddressNotFound, got %v", err)
	}
}

func TestDeleteLastAddressRefused(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	addr := testAddress(1)
	svc.Create(ctx, addr)

	if err := svc.Delete(ctx, 1, addr.ID); !errors.Is(err, ErrLastAddress) {
		t.Errorf("Expected ErrLastAddress, got %v", err)
	}
	if _, ok := store.addresses[addr.ID]; !ok {
		t.Error("Address should still exist")
	}
}

func TestDeleteDefaultPromotesAnother(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	first := testAddress(1)
	svc.Create(ctx, first)
	second := testAddress(1)
	svc.Create(ctx, second)

	if err := svc.Delete(ctx, 1, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := store.defaults(1); len(got) != 1 || got[0] != second.ID {
		t.Errorf("Expected the remaining address to become default, got %v", got)
	}
}

func TestDeleteOtherUsersAddress(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	addr := testAddress(1)
	svc.Create(ctx, addr)

	if err := svc.Delete(ctx, 2, addr.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("Expected ErrAddressNotFound, got %v", err)
	}
}

func TestSetDefault(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewAddressService(store)
	ctx := context.Background()

	first := testAddress(1)
	svc.Create(ctx, first)
	second := testAddress(1)
	svc.Create(ctx, second)

	if err := svc.SetDefault(ctx, 1, second.ID); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if got := store.defaults(1); len(got) != 1 || got[0] != second.ID {
		t.Errorf("Expected address %d to be the only default, got %v", second.ID, got)
	}

	if err := svc.SetDefault(ctx, 1, 99); !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("Expected ErrAddressNotFound, got %v", err)
	}
}
