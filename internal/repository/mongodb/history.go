package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
)

// MongoHistoryRepository implements the HistoryRepository interface using MongoDB.
// Session existence is not enforced here; callers append only to resolved sessions.
type MongoHistoryRepository struct {
	history *mongo.Collection
	logger  *slog.Logger
}

// NewHistoryRepository creates a new MongoHistoryRepository
func NewHistoryRepository(config *RepositoryConfig) chatRepo.HistoryRepository {
	return &MongoHistoryRepository{
		history: config.DB.Collection(config.Collections.ChatHistory),
		logger:  config.Logger,
	}
}

// Create inserts a history entry
func (r *MongoHistoryRepository) Create(ctx context.Context, entry *chatModels.HistoryEntry) error {
	if _, err := r.history.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}
	return nil
}

// CountBySession returns the number of entries in a session
func (r *MongoHistoryRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	count, err := r.history.CountDocuments(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// ListBySession returns all entries of a session ordered by created_at then response_id
func (r *MongoHistoryRepository) ListBySession(ctx context.Context, sessionID string, order chatRepo.SortOrder) ([]chatModels.HistoryEntry, error) {
	direction := 1
	if order == chatRepo.Descending {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: direction},
		{Key: "response_id", Value: direction},
	})

	cursor, err := r.history.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := []chatModels.HistoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}
