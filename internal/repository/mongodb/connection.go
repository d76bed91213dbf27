package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB          *mongo.Database
	Collections *CollectionNames
	Logger      *slog.Logger
}

// CollectionNames holds prefixed collection names
type CollectionNames struct {
	Users        string
	ChatSessions string
	ChatHistory  string
}

// NewCollectionNames creates collection names with the given prefix
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Users:        prefix + "users",
		ChatSessions: prefix + "chat_sessions",
		ChatHistory:  prefix + "chat_history",
	}
}

// Connect opens a client and pings the primary.
// The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names *CollectionNames) error {
	indexes := map[string][]mongo.IndexModel{
		names.Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		names.ChatSessions: {
			{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "session_start", Value: 1}}},
		},
		names.ChatHistory: {
			{Keys: bson.D{{Key: "response_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "response_id", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// DropCollections drops every collection of the prefix. Dev and test only.
func DropCollections(ctx context.Context, db *mongo.Database, names *CollectionNames) error {
	for _, collection := range []string{names.ChatHistory, names.ChatSessions, names.Users} {
		if err := db.Collection(collection).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", collection, err)
		}
	}
	return nil
}
