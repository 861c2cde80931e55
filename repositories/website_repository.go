package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gorilla-shop/models"
)

type WebsiteRepository struct {
	db *pgxpool.Pool
}

func NewWebsiteRepository(db *pgxpool.Pool) *WebsiteRepository {
	return &WebsiteRepository{db: db}
}

func (r *WebsiteRepository) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		contact.Name, contact.Email, contact.Subject, contact.Message, time.Now(),
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *WebsiteRepository) ListContacts(ctx context.Context, page, limit int) ([]models.Contact, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, email, subject, message, created_at
	          FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

// SubscribeNewsletter is idempotent on email.
func (r *WebsiteRepository) SubscribeNewsletter(ctx context.Context, email string) error {
	query := `INSERT INTO newsletter_subscribers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`
	_, err := r.db.Exec(ctx, query, email)
	return err
}

func (r *WebsiteRepository) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email FROM newsletter_subscribers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []models.NewsletterSubscriber{}
	for rows.Next() {
		var s models.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}
