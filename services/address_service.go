package services

import (
	"context"
	"errors"

	"gorilla-shop/models"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrLastAddress     = errors.New("at least one address is required")
)

// AddressService owns the default-address invariant: for any user at most
// one address carries is_default, the first address a user registers
// becomes default automatically, and deleting the default promotes another.
type AddressService struct {
	store AddressStore
}

func NewAddressService(store AddressStore) *AddressService {
	return &AddressService{store: store}
}

func (s *AddressService) List(ctx context.Context, userID int64) ([]models.Address, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *AddressService) Get(ctx context.Context, userID, id int64) (*models.Address, error) {
	addr, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, ErrAddressNotFound
	}
	return addr, nil
}

func (s *AddressService) Create(ctx context.Context, addr *models.Address) error {
	count, err := s.store.CountByUser(ctx, addr.UserID)
	if err != nil {
		return err
	}
	if count == 0 {
		addr.IsDefault = true
	}

	if addr.IsDefault {
		if err := s.store.ClearDefault(ctx, addr.UserID, 0); err != nil {
			return err
		}
	}
	return s.store.Create(ctx, addr)
}

func (s *AddressService) Update(ctx context.Context, addr *models.Address) error {
	existing, err := s.store.GetByID(ctx, addr.UserID, addr.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}

	if addr.IsDefault {
		if err := s.store.ClearDefault(ctx, addr.UserID, addr.ID); err != nil {
			return err
		}
	}
	return s.store.Update(ctx, addr)
}

// Delete refuses to remove a user's only address. When the default address
// is removed, another one is promoted so the user always keeps a default.
func (s *AddressService) Delete(ctx context.Context, userID, id int64) error {
	addr, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if addr == nil {
		return ErrAddressNotFound
	}

	count, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAddress
	}

	if err := s.store.Delete(ctx, userID, id); err != nil {
		return err
	}

	if addr.IsDefault {
		remaining, err := s.store.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return s.store.SetDefault(ctx, userID, remaining[0].ID)
		}
	}
	return nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id int64) error {
	addr, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if addr == nil {
		return ErrAddressNotFound
	}

	if err := s.store.ClearDefault(ctx, userID, id); err != nil {
		return err
	}
	return s.store.SetDefault(ctx, userID, id)
}
