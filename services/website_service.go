package services

import (
	"context"
	"log"

	"gorilla-shop/models"
)

type WebsiteStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context, page, limit int) ([]models.Contact, int, error)
	SubscribeNewsletter(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

type ContactNotifier interface {
	SendContactNotification(name, email, subject, message string) error
}

// WebsiteService handles the contact form and newsletter signups.
type WebsiteService struct {
	store    WebsiteStore
	notifier ContactNotifier
}

func NewWebsiteService(store WebsiteStore, notifier ContactNotifier) *WebsiteService {
	return &WebsiteService{store: store, notifier: notifier}
}

func (s *WebsiteService) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(req.Name, req.Email, req.Subject, req.Message); err != nil {
			log.Printf("Failed to forward contact message %d: %v", contact.ID, err)
		}
	}
	return contact, nil
}

func (s *WebsiteService) ListContacts(ctx context.Context, page, limit int) ([]models.Contact, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.ListContacts(ctx, page, limit)
}

// Subscribe is idempotent: re-subscribing an existing email succeeds.
func (s *WebsiteService) Subscribe(ctx context.Context, email string) error {
	return s.store.SubscribeNewsletter(ctx, email)
}

func (s *WebsiteService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return s.store.ListSubscribers(ctx)
}
