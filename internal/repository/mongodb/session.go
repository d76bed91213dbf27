package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
)

// MongoSessionRepository implements the SessionRepository interface using MongoDB
type MongoSessionRepository struct {
	sessions       *mongo.Collection
	historyCollection string
	logger         *slog.Logger
}

// NewSessionRepository creates a new MongoSessionRepository
func NewSessionRepository(config *RepositoryConfig) chatRepo.SessionRepository {
	return &MongoSessionRepository{
		sessions:       config.DB.Collection(config.Collections.ChatSessions),
		historyCollection: config.Collections.ChatHistory,
		logger:         config.Logger,
	}
}

// Create inserts a new session
func (r *MongoSessionRepository) Create(ctx context.Context, session *chatModels.Session) error {
	if _, err := r.sessions.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrConflict)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *MongoSessionRepository) Get(ctx context.Context, sessionID string) (*chatModels.Session, error) {
	var session chatModels.Session
	err := r.sessions.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// FindOldestUnused returns the user's oldest session that has no history entries.
// The lookup stops at the first history document per session.
func (r *MongoSessionRepository) FindOldestUnused(ctx context.Context, userEmail string) (*chatModels.Session, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_email": userEmail}}},
		{{Key: "$sort", Value: bson.D{{Key: "session_start", Value: 1}, {Key: "session_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.historyCollection},
			{Key: "localField", Value: "session_id"},
			{Key: "foreignField", Value: "session_id"},
			{Key: "pipeline", Value: bson.A{bson.M{"$limit": 1}}},
			{Key: "as", Value: "used"},
		}}},
		{{Key: "$match", Value: bson.M{"used": bson.M{"$size": 0}}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$project", Value: bson.M{"used": 0}}},
	}

	cursor, err := r.sessions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find unused session: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("find unused session: %w", err)
		}
		return nil, fmt.Errorf("unused session for %s: %w", userEmail, domain.ErrNotFound)
	}

	var session chatModels.Session
	if err := cursor.Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// SetTitle stores the generated title
func (r *MongoSessionRepository) SetTitle(ctx context.Context, sessionID, title string) error {
	result, err := r.sessions.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"title": title}},
	)
	if err != nil {
		return fmt.Errorf("set session title: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

// ListByStartRange returns the user's sessions started in [from, to), newest first
func (r *MongoSessionRepository) ListByStartRange(ctx context.Context, userEmail string, from, to time.Time) ([]chatModels.Session, error) {
	filter := bson.M{
		"user_email":    userEmail,
		"session_start": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "session_start", Value: -1}})

	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := []chatModels.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}
