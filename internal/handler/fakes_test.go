package handler

import (
	"context"
	"io"
	"log/slog"

	"solace/internal/domain"
	"solace/internal/domain/models"
	"solace/internal/domain/models/chat"
	"solace/internal/domain/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAuthService struct {
	registerErr error
	loginErr    error
	user        *models.User
	gotLogin    *services.LoginRequest
}

func (f *fakeAuthService) Register(_ context.Context, req *services.RegisterRequest) (*services.TokenResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &services.TokenResponse{AccessToken: "tok", TokenType: "bearer", Email: req.Email}, nil
}

func (f *fakeAuthService) Login(_ context.Context, req *services.LoginRequest) (*services.TokenResponse, error) {
	f.gotLogin = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenResponse{AccessToken: "tok", TokenType: "bearer", Email: req.Email}, nil
}

func (f *fakeAuthService) CurrentUser(_ context.Context, email string) (*models.User, error) {
	if f.user != nil {
		return f.user, nil
	}
	return &models.User{Email: email}, nil
}

type fakeSessionService struct {
	resolveID    string
	resolveErr   error
	withHistory  *chat.SessionWithHistory
	history      *chat.SessionHistory
	grouped      *chat.GroupedSessions
	err          error
	gotUser      string
	gotSessionID string
}

func (f *fakeSessionService) ResolveSession(_ context.Context, userEmail, requestedID string) (string, error) {
	f.gotUser = userEmail
	f.gotSessionID = requestedID
	return f.resolveID, f.resolveErr
}

func (f *fakeSessionService) GetSessionWithHistory(_ context.Context, userEmail, sessionID string) (*chat.SessionWithHistory, error) {
	f.gotUser = userEmail
	f.gotSessionID = sessionID
	if f.err != nil {
		return nil, f.err
	}
	return f.withHistory, nil
}

func (f *fakeSessionService) GetHistory(_ context.Context, userEmail, sessionID string) (*chat.SessionHistory, error) {
	f.gotUser = userEmail
	f.gotSessionID = sessionID
	if sessionID == "" {
		return nil, domain.NewError(domain.ErrValidation, "session_id is required")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func (f *fakeSessionService) GroupedSessions(_ context.Context, userEmail string) (*chat.GroupedSessions, error) {
	f.gotUser = userEmail
	if f.err != nil {
		return nil, f.err
	}
	return f.grouped, nil
}

type fakeConversationService struct {
	history  *chat.SessionHistory
	analysis string
	err      error
	gotSend  *services.SendMessageRequest
}

func (f *fakeConversationService) SendMessage(_ context.Context, req *services.SendMessageRequest) (*chat.SessionHistory, error) {
	f.gotSend = req
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func (f *fakeConversationService) AppendTurn(context.Context, string, string) (string, error) {
	return "", nil
}

func (f *fakeConversationService) GenerateTitle(context.Context, string) string {
	return ""
}

func (f *fakeConversationService) Analyze(_ context.Context, req *services.AnalyzeRequest) (*services.AnalyzeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.AnalyzeResponse{Analysis: f.analysis}, nil
}

type fixedAvailability map[string]bool

func (a fixedAvailability) Available(name string) bool { return a[name] }
