package chat

import (
	"context"
	"time"

	"solace/internal/domain/models/chat"
)

// SessionRepository defines data access for chat sessions
type SessionRepository interface {
	// Create inserts a new session
	Create(ctx context.Context, session *chat.Session) error

	// Get retrieves a session by ID without ownership scoping.
	// Callers compare UserEmail themselves so foreign sessions can be reported as forbidden.
	// Returns domain.ErrNotFound if not found
	Get(ctx context.Context, sessionID string) (*chat.Session, error)

	// FindOldestUnused returns the user's oldest session with no history entries.
	// Returns domain.ErrNotFound when every session of the user has history
	FindOldestUnused(ctx context.Context, userEmail string) (*chat.Session, error)

	// SetTitle stores the generated title
	// Returns domain.ErrNotFound if the session does not exist
	SetTitle(ctx context.Context, sessionID, title string) error

	// ListByStartRange returns the user's sessions started in [from, to), newest first.
	// Returns empty slice if none
	ListByStartRange(ctx context.Context, userEmail string, from, to time.Time) ([]chat.Session, error)
}
