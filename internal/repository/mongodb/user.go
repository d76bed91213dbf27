package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"solace/internal/domain"
	"solace/internal/domain/models"
	"solace/internal/domain/repositories"
)

// MongoUserRepository implements the UserRepository interface using MongoDB
type MongoUserRepository struct {
	users  *mongo.Collection
	logger *slog.Logger
}

// NewUserRepository creates a new MongoUserRepository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &MongoUserRepository{
		users:  config.DB.Collection(config.Collections.Users),
		logger: config.Logger,
	}
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{
				Message:      "Email already registered",
				ResourceType: "user",
				ResourceID:   user.Email,
			}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
