package services

import (
	"context"

	"loanhub-portal/internal/core/domain"
)

// UserService exposes the backend's user directory to the admin views
type UserService struct {
	users UserBackend
}

// NewUserService creates a new user service
func NewUserService(users UserBackend) *UserService {
	return &UserService{users: users}
}

// List returns all registered users (admin only upstream).
func (s *UserService) List(ctx context.Context, token string) ([]domain.User, error) {
	return s.users.Users(ctx, token)
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, token, id string) (*domain.User, error) {
	return s.users.UserByID(ctx, token, id)
}
