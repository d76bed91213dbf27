package auth

import (
	"context"
	"errors"
	"fmt"

	"solace/internal/domain"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/domain/services"
)

// OwnerBasedAuthorizer implements SessionAuthorizer using ownership checks.
// A user can access a session only if the session's user email matches theirs.
type OwnerBasedAuthorizer struct {
	sessionRepo chatRepo.SessionRepository
}

var _ services.SessionAuthorizer = (*OwnerBasedAuthorizer)(nil)

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(sessionRepo chatRepo.SessionRepository) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{sessionRepo: sessionRepo}
}

// CanAccessSession checks if the user owns the session
func (a *OwnerBasedAuthorizer) CanAccessSession(ctx context.Context, userEmail, sessionID string) error {
	session, err := a.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("get session for auth: %w", err)
	}

	if !session.OwnedBy(userEmail) {
		return ErrSessionAccessDenied
	}
	return nil
}

var (
	// ErrSessionNotFound is returned for unknown session ids
	ErrSessionNotFound = domain.NewError(domain.ErrNotFound, "Session not found")
	// ErrSessionAccessDenied does not reveal who owns the session
	ErrSessionAccessDenied = domain.NewError(domain.ErrForbidden, "Access denied to this session")
)
