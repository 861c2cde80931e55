package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gorilla-shop/models"
	"gorilla-shop/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not activated, check your email")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	TokenPurposeActivation    = "activate"
	TokenPurposePasswordReset = "pwreset"

	activationTokenTTL = 48 * time.Hour
	resetTokenTTL      = 30 * time.Minute
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetVerified(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error
}

// TokenStore holds short-lived one-time tokens (activation, password
// reset). Pop consumes the token.
type TokenStore interface {
	Put(ctx context.Context, purpose, token string, userID int64, ttl time.Duration) error
	Pop(ctx context.Context, purpose, token string) (int64, error)
}

type AccountMailer interface {
	SendActivationEmail(to, activationLink string) error
	SendPasswordResetEmail(to, resetLink string) error
}

type AuthService struct {
	users   UserStore
	tokens  TokenStore
	mailer  AccountMailer
	baseURL string
}

func NewAuthService(users UserStore, tokens TokenStore, mailer AccountMailer, baseURL string) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, baseURL: baseURL}
}

// Register creates an unverified account with its profile and emails an
// activation link. Email delivery is best effort; registration itself
// never fails because of the mailer.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := s.users.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.sendActivation(ctx, user)
	return user, nil
}

func (s *AuthService) sendActivation(ctx context.Context, user *models.User) {
	token := uuid.NewString()
	if err := s.tokens.Put(ctx, TokenPurposeActivation, token, user.ID, activationTokenTTL); err != nil {
		log.Printf("Failed to store activation token for user %d: %v", user.ID, err)
		return
	}

	if s.mailer == nil {
		log.Printf("Mailer disabled, activation link for %s: %s", user.Email, s.activationLink(token))
		return
	}
	if err := s.mailer.SendActivationEmail(user.Email, s.activationLink(token)); err != nil {
		log.Printf("Failed to send activation email to %s: %v", user.Email, err)
	}
}

func (s *AuthService) activationLink(token string) string {
	return fmt.Sprintf("%s/auth/activate/%s", s.baseURL, token)
}

// Activate consumes an activation token and marks the account verified.
func (s *AuthService) Activate(ctx context.Context, token string) error {
	userID, err := s.tokens.Pop(ctx, TokenPurposeActivation, token)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrInvalidToken
	}
	return s.users.SetVerified(ctx, userID)
}

// Login checks credentials and returns a signed bearer token. Unverified
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	ok, err := utils.VerifyPassword(user.Password, oldPassword)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// RequestPasswordReset emails a one-time reset link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token := uuid.NewString()
	if err := s.tokens.Put(ctx, TokenPurposePasswordReset, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/auth/password-reset/%s", s.baseURL, token)
	if s.mailer == nil {
		log.Printf("Mailer disabled, reset link for %s: %s", user.Email, resetLink)
		return nil
	}
	return s.mailer.SendPasswordResetEmail(user.Email, resetLink)
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Pop(ctx, TokenPurposePasswordReset, token)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrInvalidToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone

	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error {
	return s.users.UpdateProfilePhoto(ctx, userID, photoURL)
}
