package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/domain/services"
	authSvc "solace/internal/service/auth"
)

// sessionService implements the SessionService interface
type sessionService struct {
	sessionRepo chatRepo.SessionRepository
	historyRepo chatRepo.HistoryRepository
	authorizer  services.SessionAuthorizer
	location    *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService creates a new session service.
// loc is the time zone used for calendar-day grouping.
func NewSessionService(
	sessionRepo chatRepo.SessionRepository,
	historyRepo chatRepo.HistoryRepository,
	authorizer services.SessionAuthorizer,
	loc *time.Location,
	logger *slog.Logger,
) services.SessionService {
	if loc == nil {
		loc = time.Local
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		authorizer:  authorizer,
		location:    loc,
		now:         time.Now,
		logger:      logger,
	}
}

// ResolveSession picks the target session for a user
func (s *sessionService) ResolveSession(ctx context.Context, userEmail, requestedID string) (string, error) {
	if requestedID == "" {
		return s.reuseOrCreate(ctx, userEmail)
	}

	session, err := s.sessionRepo.Get(ctx, requestedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Unknown ids are replaced by a fresh session rather than rejected
			s.logger.Info("requested session not found, creating new one",
				"requested_session_id", requestedID,
				"user_email", userEmail,
			)
			return s.create(ctx, userEmail)
		}
		return "", err
	}

	if !session.OwnedBy(userEmail) {
		s.logger.Warn("session access denied",
			"session_id", requestedID,
			"user_email", userEmail,
		)
		return "", authSvc.ErrSessionAccessDenied
	}

	return session.SessionID, nil
}

// reuseOrCreate returns the user's oldest unused session, creating one if none exists
func (s *sessionService) reuseOrCreate(ctx context.Context, userEmail string) (string, error) {
	unused, err := s.sessionRepo.FindOldestUnused(ctx, userEmail)
	if err == nil {
		s.logger.Debug("reusing unused session", "session_id", unused.SessionID)
		return unused.SessionID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	return s.create(ctx, userEmail)
}

func (s *sessionService) create(ctx context.Context, userEmail string) (string, error) {
	session := &chatModels.Session{
		SessionID:    uuid.NewString(),
		UserEmail:    userEmail,
		SessionStart: s.now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	s.logger.Info("session created",
		"session_id", session.SessionID,
		"user_email", userEmail,
	)
	return session.SessionID, nil
}

// GetSessionWithHistory returns metadata and the full history, oldest first
func (s *sessionService) GetSessionWithHistory(ctx context.Context, userEmail, sessionID string) (*chatModels.SessionWithHistory, error) {
	if err := s.authorizer.CanAccessSession(ctx, userEmail, sessionID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListBySession(ctx, sessionID, chatRepo.Ascending)
	if err != nil {
		return nil, err
	}

	return &chatModels.SessionWithHistory{
		SessionID:    session.SessionID,
		Title:        session.DisplayTitle(),
		SessionStart: session.SessionStart,
		Data:         entries,
	}, nil
}

// GetHistory returns the session history, newest first
func (s *sessionService) GetHistory(ctx context.Context, userEmail, sessionID string) (*chatModels.SessionHistory, error) {
	if sessionID == "" {
		return nil, domain.NewError(domain.ErrValidation, "session_id is required")
	}
	if err := s.authorizer.CanAccessSession(ctx, userEmail, sessionID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListBySession(ctx, sessionID, chatRepo.Descending)
	if err != nil {
		return nil, err
	}

	return &chatModels.SessionHistory{SessionID: sessionID, Data: entries}, nil
}

// GroupedSessions buckets the user's recent sessions by calendar day
func (s *sessionService) GroupedSessions(ctx context.Context, userEmail string) (*chatModels.GroupedSessions, error) {
	bounds := dayBoundsAt(s.now(), s.location)

	sessions, err := s.sessionRepo.ListByStartRange(ctx, userEmail, bounds.LastWeekStart, bounds.Tomorrow)
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}

	return groupSessions(sessions, bounds), nil
}
