package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace/internal/domain"
	"solace/internal/domain/models"
	chatModels "solace/internal/domain/models/chat"
	"solace/internal/domain/services"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return &domain.ConflictError{Message: "Email already registered", ResourceType: "user", ResourceID: u.Email}
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if hash != "hashed:"+p {
		return domain.ErrUnauthorized
	}
	return nil
}

type stubIssuer struct{}

func (stubIssuer) IssueToken(email string) (string, error) { return "token-for-" + email, nil }

func newTestAuthService() (services.AuthService, *memUsers) {
	users := &memUsers{byEmail: map[string]*models.User{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(users, plainHasher{}, stubIssuer{}, logger), users
}

func TestRegister(t *testing.T) {
	svc, users := newTestAuthService()

	resp, err := svc.Register(context.Background(), &services.RegisterRequest{
		Email:           "  Ada@Example.com ",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "token-for-ada@example.com", resp.AccessToken)
	require.Contains(t, users.byEmail, "ada@example.com")
	assert.Equal(t, "hashed:longenough", users.byEmail["ada@example.com"].PasswordHash)
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     services.RegisterRequest
		wantErr error
		wantMsg string
	}{
		{
			name:    "password mismatch",
			req:     services.RegisterRequest{Email: "ada@example.com", Password: "longenough", ConfirmPassword: "different1"},
			wantErr: domain.ErrValidation,
			wantMsg: "Passwords do not match",
		},
		{
			name:    "invalid email",
			req:     services.RegisterRequest{Email: "not-an-email", Password: "longenough", ConfirmPassword: "longenough"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "short password",
			req:     services.RegisterRequest{Email: "ada@example.com", Password: "short", ConfirmPassword: "short"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestAuthService()
			_, err := svc.Register(context.Background(), &tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
			assert.Empty(t, users.byEmail)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService()
	req := services.RegisterRequest{Email: "ada@example.com", Password: "longenough", ConfirmPassword: "longenough"}

	_, err := svc.Register(context.Background(), &req)
	require.NoError(t, err)

	again := req
	_, err = svc.Register(context.Background(), &again)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Email already registered", conflict.Message)
}

func TestLogin(t *testing.T) {
	svc, users := newTestAuthService()
	users.byEmail["ada@example.com"] = &models.User{Email: "ada@example.com", PasswordHash: "hashed:longenough"}

	t.Run("valid", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &services.LoginRequest{Email: "ADA@example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-ada@example.com", resp.AccessToken)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, wrongPw := svc.Login(context.Background(), &services.LoginRequest{Email: "ada@example.com", Password: "nope"})
		_, unknown := svc.Login(context.Background(), &services.LoginRequest{Email: "bob@example.com", Password: "nope"})

		assert.ErrorIs(t, wrongPw, domain.ErrUnauthorized)
		assert.ErrorIs(t, unknown, domain.ErrUnauthorized)
		assert.Equal(t, wrongPw.Error(), unknown.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &services.LoginRequest{Email: "ada@example.com"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCurrentUser(t *testing.T) {
	svc, users := newTestAuthService()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	users.byEmail["ada@example.com"] = &models.User{Email: "ada@example.com", CreatedAt: created}

	user, err := svc.CurrentUser(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created, user.CreatedAt)

	external, err := svc.CurrentUser(context.Background(), "sso@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sso@example.com", external.Email)
	assert.True(t, external.CreatedAt.IsZero())
}

type memSessions struct {
	byID map[string]*chatModels.Session
}

func (m *memSessions) Create(context.Context, *chatModels.Session) error { return nil }

func (m *memSessions) Get(_ context.Context, id string) (*chatModels.Session, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSessions) FindOldestUnused(context.Context, string) (*chatModels.Session, error) {
	return nil, domain.ErrNotFound
}

func (m *memSessions) SetTitle(context.Context, string, string) error { return nil }

func (m *memSessions) ListByStartRange(context.Context, string, time.Time, time.Time) ([]chatModels.Session, error) {
	return nil, nil
}

func TestOwnerBasedAuthorizer(t *testing.T) {
	sessions := &memSessions{byID: map[string]*chatModels.Session{
		"s-1": {SessionID: "s-1", UserEmail: "ada@example.com"},
	}}
	authz := NewOwnerBasedAuthorizer(sessions)
	ctx := context.Background()

	assert.NoError(t, authz.CanAccessSession(ctx, "ada@example.com", "s-1"))
	assert.ErrorIs(t, authz.CanAccessSession(ctx, "bob@example.com", "s-1"), domain.ErrForbidden)
	assert.ErrorIs(t, authz.CanAccessSession(ctx, "ada@example.com", "missing"), domain.ErrNotFound)
}
