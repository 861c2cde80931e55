package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
)

const addressColumns = `id, user_id, address_type, label, full_name, phone, address_line1, address_line2,
	city, state, postal_code, country, is_default, created_at, updated_at`

type AddressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddress(row pgx.Row) (*models.Address, error) {
	var a models.Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.AddressType, &a.Label, &a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) GetByID(ctx context.Context, userID, id int64) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`
	addr, err := scanAddress(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return addr, err
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addrs := []models.Address{}
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, *addr)
	}
	return addrs, rows.Err()
}

func (r *AddressRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *AddressRepository) Create(ctx context.Context, addr *models.Address) error {
	query := `
		INSERT INTO addresses (user_id, address_type, label, full_name, phone, address_line1, address_line2,
			city, state, postal_code, country, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		addr.UserID, addr.AddressType, addr.Label, addr.FullName, addr.Phone, addr.AddressLine1, addr.AddressLine2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.IsDefault, time.Now(),
	).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)
}

func (r *AddressRepository) Update(ctx context.Context, addr *models.Address) error {
	query := `
		UPDATE addresses
		SET address_type = $1, label = $2, full_name = $3, phone = $4, address_line1 = $5, address_line2 = $6,
			city = $7, state = $8, postal_code = $9, country = $10, is_default = $11, updated_at = $12
		WHERE id = $13 AND user_id = $14
	`
	_, err := r.db.Exec(ctx, query,
		addr.AddressType, addr.Label, addr.FullName, addr.Phone, addr.AddressLine1, addr.AddressLine2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.IsDefault, time.Now(),
		addr.ID, addr.UserID,
	)
	return err
}

func (r *AddressRepository) Delete(ctx context.Context, userID, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// ClearDefault unsets is_default on every address of the user except the
// given one (0 clears all).
func (r *AddressRepository) ClearDefault(ctx context.Context, userID, exceptID int64) error {
	query := `UPDATE addresses SET is_default = false, updated_at = $1 WHERE user_id = $2 AND id <> $3 AND is_default = true`
	_, err := r.db.Exec(ctx, query, time.Now(), userID, exceptID)
	return err
}

func (r *AddressRepository) SetDefault(ctx context.Context, userID, id int64) error {
	query := `UPDATE addresses SET is_default = true, updated_at = $1 WHERE id = $2 AND user_id = $3`
	_, err := r.db.Exec(ctx, query, time.Now(), id, userID)
	return err
}
