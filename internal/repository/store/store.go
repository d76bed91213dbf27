// Package store opens the configured conversation store and exposes its repositories.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"solace/internal/config"
	"solace/internal/domain/repositories"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/repository/mongodb"
	"solace/internal/repository/postgres"
	postgresChat "solace/internal/repository/postgres/chat"
)

// Store bundles the repositories of one driver
type Store struct {
	Users    repositories.UserRepository
	Sessions chatRepo.SessionRepository
	History  chatRepo.HistoryRepository

	// reset drops all data and recreates the schema
	reset func(ctx context.Context) error
	close func()
}

// Open connects to the configured database and ensures its schema
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StoreDriverMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Reset drops every table or collection of the configured prefix and recreates them
func (s *Store) Reset(ctx context.Context) error {
	return s.reset(ctx)
}

// Close releases the underlying connection pool
func (s *Store) Close() {
	s.close()
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database connected",
		"driver", config.StoreDriverPostgres,
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &Store{
		Users:    postgres.NewUserRepository(repoConfig),
		Sessions: postgresChat.NewSessionRepository(repoConfig),
		History:  postgresChat.NewHistoryRepository(repoConfig),
		reset: func(ctx context.Context) error {
			if err := postgres.DropSchema(ctx, pool, tables); err != nil {
				return err
			}
			return postgres.EnsureSchema(ctx, pool, tables)
		},
		close: pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	collections := mongodb.NewCollectionNames(cfg.TablePrefix)
	if err := mongodb.EnsureIndexes(ctx, db, collections); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("database connected",
		"driver", config.StoreDriverMongo,
		"database", cfg.MongoDatabase,
	)

	repoConfig := &mongodb.RepositoryConfig{
		DB:          db,
		Collections: collections,
		Logger:      logger,
	}
	return &Store{
		Users:    mongodb.NewUserRepository(repoConfig),
		Sessions: mongodb.NewSessionRepository(repoConfig),
		History:  mongodb.NewHistoryRepository(repoConfig),
		reset: func(ctx context.Context) error {
			if err := mongodb.DropCollections(ctx, db, collections); err != nil {
				return err
			}
			return mongodb.EnsureIndexes(ctx, db, collections)
		},
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		},
	}, nil
}
