package services

import (
	"context"
	"errors"
	"testing"

	"gorilla-shop/models"
)

type fakeWebsiteStore struct {
	contacts    []models.Contact
	subscribers map[string]bool
}

func newFakeWebsiteStore() *fakeWebsiteStore {
	return &fakeWebsiteStore{subscribers: map[string]bool{}}
}

func (f *fakeWebsiteStore) CreateContact(_ context.Context, contact *models.Contact) error {
	contact.ID = int64(len(f.contacts) + 1)
	f.contacts = append(f.contacts, *contact)
	return nil
}

func (f *fakeWebsiteStore) ListContacts(_ context.Context, page, limit int) ([]models.Contact, int, error) {
	return f.contacts, len(f.contacts), nil
}

func (f *fakeWebsiteStore) SubscribeNewsletter(_ context.Context, email string) error {
	f.subscribers[email] = true
	return nil
}

func (f *fakeWebsiteStore) ListSubscribers(_ context.Context) ([]models.NewsletterSubscriber, error) {
	out := []models.NewsletterSubscriber{}
	for email := range f.subscribers {
		out = append(out, models.NewsletterSubscriber{Email: email})
	}
	return out, nil
}

type fakeContactNotifier struct {
	sent []string
	err  error
}

func (f *fakeContactNotifier) SendContactNotification(name, email, subject, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, subject)
	return nil
}

func TestSubmitContactPersistsAndNotifies(t *testing.T) {
	store := newFakeWebsiteStore()
	notifier := &fakeContactNotifier{}
	svc := NewWebsiteService(store, notifier)

	contact, err := svc.SubmitContact(context.Background(), models.ContactRequest{
		Name:    "Visitor",
		Email:   "v@example.com",
		Subject: "Opening hours",
		Message: "When are you open?",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if contact.ID == 0 {
		t.Error("Contact should be persisted with an ID")
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "Opening hours" {
		t.Errorf("Expected one forwarded notification, got %v", notifier.sent)
	}
}

func TestSubmitContactSurvivesNotifierFailure(t *testing.T) {
	store := newFakeWebsiteStore()
	notifier := &fakeContactNotifier{err: errors.New("smtp down")}
	svc := NewWebsiteService(store, notifier)

	if _, err := svc.SubmitContact(context.Background(), models.ContactRequest{Name: "V", Email: "v@example.com", Message: "hi"}); err != nil {
		t.Fatalf("SubmitContact should not fail on notifier errors, got %v", err)
	}
	if len(store.contacts) != 1 {
		t.Error("Contact should still be persisted")
	}
}

func TestSubmitContactWithoutNotifier(t *testing.T) {
	store := newFakeWebsiteStore()
	svc := NewWebsiteService(store, nil)

	if _, err := svc.SubmitContact(context.Background(), models.ContactRequest{Name: "V", Email: "v@example.com", Message: "hi"}); err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	store := newFakeWebsiteStore()
	svc := NewWebsiteService(store, nil)
	ctx := context.Background()

	if err := svc.Subscribe(ctx, "v@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.Subscribe(ctx, "v@example.com"); err != nil {
		t.Fatalf("Re-subscribe: %v", err)
	}

	subs, _ := svc.ListSubscribers(ctx)
	if len(subs) != 1 {
		t.Errorf("Expected one subscriber, got %d", len(subs))
	}
}
