package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorilla-shop/config"
	"gorilla-shop/models"
)

type fakeUserStore struct {
	nextID   int64
	users    map[int64]*models.User
	profiles map[int64]*models.Profile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]*models.User{}, profiles: map[int64]*models.Profile{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.IsVerified = true
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserStore) CreateProfile(_ context.Context, profile *models.Profile) error {
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeUserStore) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, profile *models.Profile) error {
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeUserStore) UpdateProfilePhoto(_ context.Context, userID int64, photoURL string) error {
	profile, ok := f.profiles[userID]
	if !ok {
		return errors.New("profile not found")
	}
	profile.PhotoURL = photoURL
	return nil
}

type fakeToken struct {
	userID    int64
	expiresAt time.Time
}

// fakeTokenStore is an in-memory one-time token store keyed by purpose and
// token value.
type fakeTokenStore struct {
	tokens map[string]fakeToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]fakeToken{}}
}

func (f *fakeTokenStore) Put(_ context.Context, purpose, token string, userID int64, ttl time.Duration) error {
	f.tokens[purpose+":"+token] = fakeToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (f *fakeTokenStore) Pop(_ context.Context, purpose, token string) (int64, error) {
	key := purpose + ":" + token
	entry, ok := f.tokens[key]
	if !ok {
		return 0, nil
	}
	delete(f.tokens, key)
	if time.Now().After(entry.expiresAt) {
		return 0, nil
	}
	return entry.userID, nil
}

// fakeAccountMailer records the links it was asked to deliver so tests can
// pull tokens out of them.
type fakeAccountMailer struct {
	activationLinks []string
	resetLinks      []string
}

func (f *fakeAccountMailer) SendActivationEmail(to, activationLink string) error {
	f.activationLinks = append(f.activationLinks, activationLink)
	return nil
}

func (f *fakeAccountMailer) SendPasswordResetEmail(to, resetLink string) error {
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

func lastToken(t *testing.T, links []string) string {
	t.Helper()
	if len(links) == 0 {
		t.Fatal("Expected a link to have been mailed")
	}
	link := links[len(links)-1]
	return link[strings.LastIndex(link, "/")+1:]
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore, *fakeAccountMailer) {
	t.Helper()
	if config.AppConfig == nil {
		config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	}
	users := newFakeUserStore()
	mailer := &fakeAccountMailer{}
	return NewAuthService(users, newFakeTokenStore(), mailer, "http://localhost:8080"), users, mailer
}

func registerUser(t *testing.T, svc *AuthService) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:     "gorilla@example.com",
		Password:  "correct-horse",
		FirstName: "Gor",
		LastName:  "Illa",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterCreatesUnverifiedAccount(t *testing.T) {
	svc, users, mailer := newAuthFixture(t)

	user := registerUser(t, svc)

	if user.IsVerified {
		t.Error("New account should not be verified")
	}
	if user.Role != models.RoleCustomer {
		t.Errorf("Expected customer role, got %s", user.Role)
	}
	if user.Password == "correct-horse" {
		t.Error("Password should be stored hashed")
	}
	if users.profiles[user.ID] == nil {
		t.Error("Registration should create a profile")
	}
	if len(mailer.activationLinks) != 1 {
		t.Fatalf("Expected one activation email, got %d", len(mailer.activationLinks))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registerUser(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "gorilla@example.com",
		Password: "another-pass",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestActivationFlow(t *testing.T) {
	svc, users, mailer := newAuthFixture(t)
	ctx := context.Background()

	user := registerUser(t, svc)

	// login before activation is refused
	_, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "correct-horse"})
	if !errors.Is(err, ErrNotVerified) {
		t.Errorf("Expected ErrNotVerified, got %v", err)
	}

	token := lastToken(t, mailer.activationLinks)
	if err := svc.Activate(ctx, token); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !users.users[user.ID].IsVerified {
		t.Error("Activation should mark the account verified")
	}

	// the token is one-time
	if err := svc.Activate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken on reuse, got %v", err)
	}

	bearer, loggedIn, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if bearer == "" || loggedIn.ID != user.ID {
		t.Error("Login should return a token and the user")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	user := registerUser(t, svc)
	users.users[user.ID].IsVerified = true

	_, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, mailer := newAuthFixture(t)
	ctx := context.Background()

	user := registerUser(t, svc)
	users.users[user.ID].IsVerified = true

	if err := svc.RequestPasswordReset(ctx, user.Email); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	token := lastToken(t, mailer.resetLinks)

	if err := svc.ResetPassword(ctx, token, "new-password-1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "correct-horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Old password should no longer work, got %v", err)
	}
	if _, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "new-password-1"}); err != nil {
		t.Errorf("New password should work, got %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "again"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken on token reuse, got %v", err)
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, mailer := newAuthFixture(t)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if len(mailer.resetLinks) != 0 {
		t.Error("No reset email should be sent for an unknown address")
	}
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	user := registerUser(t, svc)
	users.users[user.ID].IsVerified = true

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "whatever-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "correct-horse", "battery-staple"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "battery-staple"}); err != nil {
		t.Errorf("New password should work, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	user := registerUser(t, svc)

	profile, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{
		FirstName: "New",
		LastName:  "Name",
		Phone:     "09121112233",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if profile.FullName() != "New Name" {
		t.Errorf("Expected full name 'New Name', got %q", profile.FullName())
	}

	if _, err := svc.UpdateProfile(ctx, 99, models.UpdateProfileRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
