package services

import (
	"context"

	"solace/internal/domain/models"
)

// AuthService handles registration, credential checks and token issuance
type AuthService interface {
	// Register creates a user and returns an access token for it.
	// Returns domain.ErrValidation on bad input or mismatched passwords,
	// domain.ErrConflict if the email is taken
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)

	// Login verifies credentials and returns an access token.
	// Returns domain.ErrUnauthorized on unknown email or wrong password
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)

	// CurrentUser loads the authenticated caller
	CurrentUser(ctx context.Context, email string) (*models.User, error)
}

// RegisterRequest is the DTO for account registration
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the DTO for credential login (JSON body or OAuth2 form)
type LoginRequest struct {
	Email    string `json:"email" schema:"username"`
	Password string `json:"password" schema:"password"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	Message     string `json:"message,omitempty"`
}

// SessionAuthorizer checks session ownership for read endpoints
type SessionAuthorizer interface {
	// CanAccessSession returns domain.ErrNotFound if the session does not exist
	// and domain.ErrForbidden if it belongs to another user
	CanAccessSession(ctx context.Context, userEmail, sessionID string) error
}
