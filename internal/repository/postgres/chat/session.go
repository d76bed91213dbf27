package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/repository/postgres"
)

// PostgresSessionRepository implements the SessionRepository interface using PostgreSQL
type PostgresSessionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewSessionRepository creates a new PostgresSessionRepository
func NewSessionRepository(config *postgres.RepositoryConfig) chatRepo.SessionRepository {
	return &PostgresSessionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *chatModels.Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, user_email, title, session_start)
		VALUES ($1, $2, $3, $4)
	`, r.tables.ChatSessions)

	_, err := r.pool.Exec(ctx, query,
		session.SessionID,
		session.UserEmail,
		session.Title,
		session.SessionStart,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrConflict)
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *PostgresSessionRepository) Get(ctx context.Context, sessionID string) (*chatModels.Session, error) {
	query := fmt.Sprintf(`
		SELECT session_id, user_email, title, session_start
		FROM %s
		WHERE session_id = $1
	`, r.tables.ChatSessions)

	session, err := scanSession(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

// FindOldestUnused returns the user's oldest session that has no history entries
func (r *PostgresSessionRepository) FindOldestUnused(ctx context.Context, userEmail string) (*chatModels.Session, error) {
	query := fmt.Sprintf(`
		SELECT s.session_id, s.user_email, s.title, s.session_start
		FROM %s s
		WHERE s.user_email = $1
		  AND NOT EXISTS (
		    SELECT 1 FROM %s h
		    WHERE h.session_id = s.session_id
		  )
		ORDER BY s.session_start ASC, s.session_id ASC
		LIMIT 1
	`, r.tables.ChatSessions, r.tables.ChatHistory)

	session, err := scanSession(r.pool.QueryRow(ctx, query, userEmail))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("unused session for %s: %w", userEmail, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find unused session: %w", err)
	}

	return session, nil
}

// SetTitle stores the generated title
func (r *PostgresSessionRepository) SetTitle(ctx context.Context, sessionID, title string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1
		WHERE session_id = $2
	`, r.tables.ChatSessions)

	result, err := r.pool.Exec(ctx, query, title, sessionID)
	if err != nil {
		return fmt.Errorf("set session title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	return nil
}

// ListByStartRange returns the user's sessions started in [from, to), newest first
func (r *PostgresSessionRepository) ListByStartRange(ctx context.Context, userEmail string, from, to time.Time) ([]chatModels.Session, error) {
	query := fmt.Sprintf(`
		SELECT session_id, user_email, title, session_start
		FROM %s
		WHERE user_email = $1
		  AND session_start >= $2
		  AND session_start < $3
		ORDER BY session_start DESC
	`, r.tables.ChatSessions)

	rows, err := r.pool.Query(ctx, query, userEmail, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []chatModels.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*chatModels.Session, error) {
	var session chatModels.Session
	err := row.Scan(
		&session.SessionID,
		&session.UserEmail,
		&session.Title,
		&session.SessionStart,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
