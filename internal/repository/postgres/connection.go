package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users        string
	ChatSessions string
	ChatHistory  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:        fmt.Sprintf("%susers", prefix),
		ChatSessions: fmt.Sprintf("%schat_sessions", prefix),
		ChatHistory:  fmt.Sprintf("%schat_history", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and pings the database.
//
// PgBouncer in transaction pooling mode (port 6543 on hosted Postgres poolers) does not
// support prepared statements, so on that port the pool falls back to
// QueryExecModeCacheDescribe unless the connection string sets
// default_query_exec_mode explicitly.
//
// Table names are interpolated with fmt.Sprintf before the SQL reaches the server;
// they come from configuration, never from requests.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
