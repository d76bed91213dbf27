package repositories

import (
	"context"

	"solace/internal/domain/models"
)

// UserRepository defines data access for registered users
type UserRepository interface {
	// Create inserts a new user
	// Returns domain.ErrConflict if the email is already registered
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email
	// Returns domain.ErrNotFound if not found
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
