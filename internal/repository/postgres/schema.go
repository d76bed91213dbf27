package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist yet.
// It is idempotent and runs at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				email         TEXT PRIMARY KEY,
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id    TEXT PRIMARY KEY,
				user_email    TEXT NOT NULL,
				title         TEXT,
				session_start TIMESTAMPTZ NOT NULL
			)`, tables.ChatSessions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_start_idx ON %s (user_email, session_start)`,
			tables.ChatSessions, tables.ChatSessions),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				response_id   TEXT PRIMARY KEY,
				session_id    TEXT NOT NULL REFERENCES %s(session_id),
				query_text    TEXT NOT NULL,
				response_text TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL
			)`, tables.ChatHistory, tables.ChatSessions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_session_created_idx ON %s (session_id, created_at, response_id)`,
			tables.ChatHistory, tables.ChatHistory),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table of the prefix. Dev and test only.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %s, %s, %s CASCADE`,
		tables.ChatHistory, tables.ChatSessions, tables.Users)
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
