package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/repository/postgres"
)

// PostgresHistoryRepository implements the HistoryRepository interface using PostgreSQL
type PostgresHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewHistoryRepository creates a new PostgresHistoryRepository
func NewHistoryRepository(config *postgres.RepositoryConfig) chatRepo.HistoryRepository {
	return &PostgresHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a history entry
func (r *PostgresHistoryRepository) Create(ctx context.Context, entry *chatModels.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (response_id, session_id, query_text, response_text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.ChatHistory)

	_, err := r.pool.Exec(ctx, query,
		entry.ResponseID,
		entry.SessionID,
		entry.QueryText,
		entry.ResponseText,
		entry.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("session %s: %w", entry.SessionID, domain.ErrNotFound)
		}
		return fmt.Errorf("create history entry: %w", err)
	}

	return nil
}

// CountBySession returns the number of entries in a session
func (r *PostgresHistoryRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE session_id = $1`, r.tables.ChatHistory)

	var count int64
	if err := r.pool.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// ListBySession returns all entries of a session in creation order
func (r *PostgresHistoryRepository) ListBySession(ctx context.Context, sessionID string, order chatRepo.SortOrder) ([]chatModels.HistoryEntry, error) {
	direction := "ASC"
	if order == chatRepo.Descending {
		direction = "DESC"
	}

	// response_id is a UUIDv7 and breaks created_at ties in insertion order
	query := fmt.Sprintf(`
		SELECT response_id, session_id, query_text, response_text, created_at
		FROM %s
		WHERE session_id = $1
		ORDER BY created_at %s, response_id %s
	`, r.tables.ChatHistory, direction, direction)

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []chatModels.HistoryEntry{}
	for rows.Next() {
		var entry chatModels.HistoryEntry
		err := rows.Scan(
			&entry.ResponseID,
			&entry.SessionID,
			&entry.QueryText,
			&entry.ResponseText,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}
