package chat

import "time"

// UntitledSession is shown for sessions whose title has not been generated yet
const UntitledSession = "Untitled Session"

// Session is one conversation owned by a single user.
// Title is set once, when the first message is appended.
type Session struct {
	SessionID    string    `json:"session_id" db:"session_id" bson:"session_id"`
	UserEmail    string    `json:"user_email" db:"user_email" bson:"user_email"`
	Title        *string   `json:"title,omitempty" db:"title" bson:"title,omitempty"`
	SessionStart time.Time `json:"session_start" db:"session_start" bson:"session_start"`
}

// DisplayTitle returns the title or the untitled placeholder
func (s *Session) DisplayTitle() string {
	if s.Title == nil || *s.Title == "" {
		return UntitledSession
	}
	return *s.Title
}

// OwnedBy reports whether the session belongs to the given user
func (s *Session) OwnedBy(userEmail string) bool {
	return s.UserEmail == userEmail
}

// GroupedSessions partitions a user's recent sessions by calendar day.
// Empty buckets are nil so they are omitted from the JSON response.
type GroupedSessions struct {
	Today     []Session `json:"today,omitempty"`
	Yesterday []Session `json:"yesterday,omitempty"`
	LastWeek  []Session `json:"last_week,omitempty"`
}
