package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"solace/internal/auth"
	"solace/internal/config"
	"solace/internal/domain"
	"solace/internal/domain/models"
	"solace/internal/domain/repositories"
	"solace/internal/domain/services"
)

const tokenTypeBearer = "bearer"

// authService implements the AuthService interface
type authService struct {
	userRepo repositories.UserRepository
	hasher   auth.PasswordHasher
	issuer   auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher auth.PasswordHasher,
	issuer auth.TokenIssuer,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register creates a user and returns an access token for it
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*services.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, domain.NewError(domain.ErrValidation, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.NewError(domain.ErrValidation, "Passwords do not match")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "email", user.Email)

	return s.issue(user.Email)
}

// Login verifies credentials and returns an access token
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.NewError(domain.ErrValidation, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Debug("login rejected", "email", email)
			return nil, errBadCredentials
		}
		return nil, err
	}

	return s.issue(user.Email)
}

// CurrentUser loads the authenticated caller.
// Callers authenticated by an external identity provider have no local record.
func (s *authService) CurrentUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &models.User{Email: email}, nil
		}
		return nil, err
	}
	return user, nil
}

var errBadCredentials = domain.NewError(domain.ErrUnauthorized, "Incorrect email or password")

func (s *authService) issue(email string) (*services.TokenResponse, error) {
	token, err := s.issuer.IssueToken(email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &services.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		Email:       email,
	}, nil
}

func (s *authService) validateRegisterRequest(req *services.RegisterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email,
			validation.Required,
			validation.Length(3, config.MaxEmailLength),
			is.EmailFormat,
		),
		validation.Field(&req.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength),
		),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
