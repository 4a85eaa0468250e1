package user

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/frognance/frognance/pkg/middleware"
)

// Common errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid username or password")
)

// Store is the persistence interface the user service depends on
type Store interface {
	Create(ctx context.Context, username, email, passwordHash string, phone *string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error)
}

// Service handles user business logic
type Service struct {
	store Store
	auth  *middleware.Authenticator
}

// NewService creates a new user service with dependencies injected
func NewService(store Store, auth *middleware.Authenticator) *Service {
	return &Service{store: store, auth: auth}
}

// Register creates a new account with a hashed password
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	existing, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameAlreadyTaken
	}

	existing, err = s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, req.Username, req.Email, string(hash), req.Phone)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues a token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *User, error) {
	user, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile modifies the caller's own profile
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	return s.store.Update(ctx, id, req)
}
