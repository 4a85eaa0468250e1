package category

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrCategoryNotFound = errors.New("category not found")
)

// Store is the persistence interface the category service depends on
type Store interface {
	Create(ctx context.Context, userID int64, req *CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListVisible(ctx context.Context, userID int64) ([]*Category, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service handles category business logic
type Service struct {
	store Store
}

// NewService creates a new category service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a category owned by the caller
func (s *Service) Create(ctx context.Context, userID int64, req *CreateCategoryRequest) (*Category, error) {
	return s.store.Create(ctx, userID, req)
}

// List retrieves the caller's categories plus globals
func (s *Service) List(ctx context.Context, userID int64) ([]*Category, error) {
	return s.store.ListVisible(ctx, userID)
}

// Delete removes a category the caller owns. Global categories cannot be
// deleted through this path.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	removed, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCategoryNotFound
	}
	return nil
}
