package chat

import (
	"context"

	"solace/internal/domain/models/chat"
)

// SortOrder selects the timestamp ordering of history reads
type SortOrder int

const (
	// Ascending is oldest first (canonical conversation order)
	Ascending SortOrder = iota
	// Descending is newest first
	Descending
)

// HistoryRepository defines data access for history entries
type HistoryRepository interface {
	// Create inserts a history entry
	Create(ctx context.Context, entry *chat.HistoryEntry) error

	// CountBySession returns the number of entries in a session
	CountBySession(ctx context.Context, sessionID string) (int64, error)

	// ListBySession returns all entries of a session ordered by creation time.
	// Returns empty slice if none
	ListBySession(ctx context.Context, sessionID string, order SortOrder) ([]chat.HistoryEntry, error)
}
