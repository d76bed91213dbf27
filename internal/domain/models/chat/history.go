package chat

import "time"

// HistoryEntry is one user query and the assistant's response, written together.
// Entries of a session are ordered by CreatedAt, then ResponseID (UUIDv7).
type HistoryEntry struct {
	ResponseID   string    `json:"response_id" db:"response_id" bson:"response_id"`
	SessionID    string    `json:"session_id" db:"session_id" bson:"session_id"`
	QueryText    string    `json:"query_text" db:"query_text" bson:"query_text"`
	ResponseText string    `json:"response_text" db:"response_text" bson:"response_text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

// Exchange is the context projection of a history entry replayed to the model
type Exchange struct {
	QueryText    string `json:"query_text"`
	ResponseText string `json:"response_text"`
}

// SessionHistory is the response shape for history reads
type SessionHistory struct {
	SessionID string         `json:"session_id"`
	Data      []HistoryEntry `json:"data"`
}

// SessionWithHistory adds session metadata to its history
type SessionWithHistory struct {
	SessionID    string         `json:"session_id"`
	Title        string         `json:"title"`
	SessionStart time.Time      `json:"session_start"`
	Data         []HistoryEntry `json:"data"`
}
