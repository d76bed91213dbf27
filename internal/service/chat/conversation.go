package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"solace/internal/config"
	"solace/internal/domain"
	chatModels "solace/internal/domain/models/chat"
	chatRepo "solace/internal/domain/repositories/chat"
	"solace/internal/domain/services"
	domainllm "solace/internal/domain/services/llm"
)

const (
	titleMaxTokens    = 30
	analysisMaxTokens = 800
	analysisTemp      = 0.7
)

// ConversationConfig selects the models used for replies and titles
type ConversationConfig struct {
	Model      string
	TitleModel string
}

// conversationService implements the ConversationService interface
type conversationService struct {
	sessions    services.SessionService
	sessionRepo chatRepo.SessionRepository
	historyRepo chatRepo.HistoryRepository
	gateway     domainllm.LLMProvider
	prompts     *Prompts
	cfg         ConversationConfig
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	sessions services.SessionService,
	sessionRepo chatRepo.SessionRepository,
	historyRepo chatRepo.HistoryRepository,
	gateway domainllm.LLMProvider,
	prompts *Prompts,
	cfg ConversationConfig,
	logger *slog.Logger,
) services.ConversationService {
	if cfg.TitleModel == "" {
		cfg.TitleModel = cfg.Model
	}
	return &conversationService{
		sessions:    sessions,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		gateway:     gateway,
		prompts:     prompts,
		cfg:         cfg,
		now:         time.Now,
		newID:       newResponseID,
		logger:      logger,
	}
}

// SendMessage resolves the session, appends the turn and returns the history newest first
func (s *conversationService) SendMessage(ctx context.Context, req *services.SendMessageRequest) (*chatModels.SessionHistory, error) {
	if err := s.validateSendMessage(req); err != nil {
		return nil, domain.NewError(domain.ErrValidation, err.Error())
	}

	sessionID, err := s.sessions.ResolveSession(ctx, req.UserEmail, strings.TrimSpace(req.SessionID))
	if err != nil {
		return nil, err
	}

	if _, err := s.AppendTurn(ctx, sessionID, req.QueryText); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListBySession(ctx, sessionID, chatRepo.Descending)
	if err != nil {
		return nil, err
	}

	return &chatModels.SessionHistory{SessionID: sessionID, Data: entries}, nil
}

// AppendTurn runs one turn against an already resolved session.
// Nothing is persisted when the model call fails.
func (s *conversationService) AppendTurn(ctx context.Context, sessionID, queryText string) (string, error) {
	count, err := s.historyRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if count == 0 {
		title := s.GenerateTitle(ctx, queryText)
		if err := s.sessionRepo.SetTitle(ctx, sessionID, title); err != nil {
			s.logger.Warn("failed to store session title",
				"session_id", sessionID,
				"error", err,
			)
		}
	}

	history, err := s.historyRepo.ListBySession(ctx, sessionID, chatRepo.Ascending)
	if err != nil {
		return "", err
	}

	resp, err := s.gateway.GenerateResponse(ctx, &domainllm.GenerateRequest{
		System:   s.prompts.ConversationSystem,
		Messages: buildMessages(project(history), queryText),
		Model:    s.cfg.Model,
	})
	if err != nil {
		s.logger.Error("llm call failed",
			"session_id", sessionID,
			"model", s.cfg.Model,
			"error", err,
		)
		return "", &domain.UpstreamError{Message: "Error processing query", Err: err}
	}

	entry := &chatModels.HistoryEntry{
		ResponseID:   s.newID(),
		SessionID:    sessionID,
		QueryText:    queryText,
		ResponseText: resp.Text,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("save history entry: %w", err)
	}

	s.logger.Info("turn appended",
		"session_id", sessionID,
		"response_id", entry.ResponseID,
		"history_length", len(history)+1,
	)

	return resp.Text, nil
}

// GenerateTitle asks the model for a short session title.
// Any failure yields the fallback title.
func (s *conversationService) GenerateTitle(ctx context.Context, firstQuery string) string {
	maxTokens := titleMaxTokens
	resp, err := s.gateway.GenerateResponse(ctx, &domainllm.GenerateRequest{
		System:    s.prompts.TitleSystem,
		Messages:  []domainllm.Message{{Role: domainllm.RoleUser, Content: firstQuery}},
		Model:     s.cfg.TitleModel,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		s.logger.Warn("title generation failed, using fallback", "error", err)
		return s.prompts.FallbackTitle
	}

	title := cleanTitle(resp.Text, config.MaxSessionTitleLength)
	if title == "" {
		return s.prompts.FallbackTitle
	}
	return title
}

// Analyze produces a one-shot supportive analysis of described concerns
func (s *conversationService) Analyze(ctx context.Context, req *services.AnalyzeRequest) (*services.AnalyzeResponse, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ClinicalText,
			validation.Required,
			validation.Length(1, config.MaxClinicalTextLength),
		),
	)
	if err != nil {
		return nil, domain.NewError(domain.ErrValidation, err.Error())
	}

	temp := analysisTemp
	maxTokens := analysisMaxTokens
	resp, err := s.gateway.GenerateResponse(ctx, &domainllm.GenerateRequest{
		System: s.prompts.AnalysisSystem,
		Messages: []domainllm.Message{{
			Role:    domainllm.RoleUser,
			Content: fmt.Sprintf(s.prompts.AnalysisUser, req.ClinicalText),
		}},
		Model:       s.cfg.Model,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		s.logger.Error("analysis failed", "model", s.cfg.Model, "error", err)
		return nil, &domain.UpstreamError{Message: "Error analyzing mental health concerns", Err: err}
	}

	return &services.AnalyzeResponse{Analysis: strings.TrimSpace(resp.Text)}, nil
}

func (s *conversationService) validateSendMessage(req *services.SendMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserEmail, validation.Required),
		validation.Field(&req.QueryText,
			validation.Required,
			validation.Length(1, config.MaxQueryLength),
		),
	)
}

// project reduces stored entries to the pairs replayed to the model
func project(entries []chatModels.HistoryEntry) []chatModels.Exchange {
	out := make([]chatModels.Exchange, len(entries))
	for i, e := range entries {
		out[i] = chatModels.Exchange{QueryText: e.QueryText, ResponseText: e.ResponseText}
	}
	return out
}

// buildMessages expands each exchange into a user and an assistant turn,
// then appends the new query as the final user turn
func buildMessages(history []chatModels.Exchange, queryText string) []domainllm.Message {
	messages := make([]domainllm.Message, 0, 2*len(history)+1)
	for _, ex := range history {
		messages = append(messages,
			domainllm.Message{Role: domainllm.RoleUser, Content: ex.QueryText},
			domainllm.Message{Role: domainllm.RoleAssistant, Content: ex.ResponseText},
		)
	}
	return append(messages, domainllm.Message{Role: domainllm.RoleUser, Content: queryText})
}

// newResponseID returns a time-ordered UUIDv7, falling back to v4
func newResponseID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
