package services

import (
	"context"

	"solace/internal/domain/models/chat"
)

// SessionService resolves which session a message belongs to and lists sessions
type SessionService interface {
	// ResolveSession picks the target session for a user.
	// An empty requestedID reuses the oldest unused session or creates one.
	// A requestedID that does not exist yields a brand new session.
	// A requestedID owned by someone else returns domain.ErrForbidden
	ResolveSession(ctx context.Context, userEmail, requestedID string) (string, error)

	// GetSessionWithHistory returns metadata and the full history, oldest first
	GetSessionWithHistory(ctx context.Context, userEmail, sessionID string) (*chat.SessionWithHistory, error)

	// GetHistory returns the session history, newest first
	GetHistory(ctx context.Context, userEmail, sessionID string) (*chat.SessionHistory, error)

	// GroupedSessions buckets the user's recent sessions into today, yesterday and last week
	GroupedSessions(ctx context.Context, userEmail string) (*chat.GroupedSessions, error)
}

// ConversationService appends turns to sessions
type ConversationService interface {
	// SendMessage resolves the session, appends the turn and returns the updated history, newest first
	SendMessage(ctx context.Context, req *SendMessageRequest) (*chat.SessionHistory, error)

	// AppendTurn runs one turn against an already resolved session and returns the model's reply
	AppendTurn(ctx context.Context, sessionID, queryText string) (string, error)

	// GenerateTitle produces a short session title; it never fails
	GenerateTitle(ctx context.Context, firstQuery string) string

	// Analyze produces a one-shot supportive analysis of described concerns
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error)
}

// SendMessageRequest is the DTO for POST /chat/
type SendMessageRequest struct {
	UserEmail string `json:"-"` // Set by handler from auth context
	QueryText string `json:"query_text"`
	SessionID string `json:"session_id,omitempty"`
}

// AnalyzeRequest is the DTO for POST /analyze/
type AnalyzeRequest struct {
	ClinicalText string `json:"clinical_text"`
}

// AnalyzeResponse wraps the analysis text
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
