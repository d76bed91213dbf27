package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace/internal/domain"
	"solace/internal/domain/services"
	domainllm "solace/internal/domain/services/llm"
)

func TestSendMessage_RoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	got, err := h.conv.SendMessage(ctx, &services.SendMessageRequest{
		UserEmail: "ada@example.com",
		QueryText: "I feel anxious before exams",
	})
	require.NoError(t, err)
	require.NotEmpty(t, got.SessionID)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "I feel anxious before exams", got.Data[0].QueryText)
	assert.NotEmpty(t, got.Data[0].ResponseText)
	assert.Equal(t, got.SessionID, got.Data[0].SessionID)

	// history comes back newest first
	got, err = h.conv.SendMessage(ctx, &services.SendMessageRequest{
		UserEmail: "ada@example.com",
		QueryText: "and I can't sleep",
		SessionID: got.SessionID,
	})
	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "and I can't sleep", got.Data[0].QueryText)
	assert.Equal(t, "I feel anxious before exams", got.Data[1].QueryText)
}

func TestSendMessage_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.conv.SendMessage(context.Background(), &services.SendMessageRequest{UserEmail: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.conv.SendMessage(context.Background(), &services.SendMessageRequest{
		UserEmail: "ada@example.com",
		QueryText: strings.Repeat("a", 8001),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, h.gateway.calls)
}

func TestSendMessage_ForeignSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	mine, err := h.conv.SendMessage(ctx, &services.SendMessageRequest{UserEmail: "ada@example.com", QueryText: "hi"})
	require.NoError(t, err)

	_, err = h.conv.SendMessage(ctx, &services.SendMessageRequest{
		UserEmail: "eve@example.com",
		QueryText: "let me in",
		SessionID: mine.SessionID,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	count, err := memoryHistory{h.store}.CountBySession(ctx, mine.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAppendTurn_TitleGeneratedOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	id, err := h.sessions.ResolveSession(ctx, "ada@example.com", "")
	require.NoError(t, err)

	for _, q := range []string{"first", "second", "third"} {
		_, err := h.conv.AppendTurn(ctx, id, q)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, h.gateway.titleCalls())
	assert.Equal(t, 1, h.store.setTitleCalls[id])
	assert.Equal(t, "Finding Calm", *h.store.sessions[id].Title)

	titleReq := h.gateway.calls[0]
	assert.Equal(t, "gpt-4o-mini", titleReq.Model)
	require.Len(t, titleReq.Messages, 1)
	assert.Equal(t, "first", titleReq.Messages[0].Content)
}

func TestAppendTurn_TitleFailureUsesFallbackOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.gateway.titleFn = func(*domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
		return nil, errors.New("title model down")
	}

	id, err := h.sessions.ResolveSession(ctx, "ada@example.com", "")
	require.NoError(t, err)

	reply, err := h.conv.AppendTurn(ctx, id, "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", reply)
	assert.Equal(t, "Mental Health Conversation", *h.store.sessions[id].Title)

	_, err = h.conv.AppendTurn(ctx, id, "again")
	require.NoError(t, err)
	assert.Equal(t, 1, h.gateway.titleCalls())
}

func TestAppendTurn_ReplaysHistoryInOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	id, err := h.sessions.ResolveSession(ctx, "ada@example.com", "")
	require.NoError(t, err)

	for _, q := range []string{"one", "two"} {
		_, err := h.conv.AppendTurn(ctx, id, q)
		require.NoError(t, err)
	}
	_, err = h.conv.AppendTurn(ctx, id, "three")
	require.NoError(t, err)

	req := h.gateway.lastReplyRequest()
	require.NotNil(t, req)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, h.conv.prompts.ConversationSystem, req.System)

	want := []domainllm.Message{
		{Role: domainllm.RoleUser, Content: "one"},
		{Role: domainllm.RoleAssistant, Content: "echo: one"},
		{Role: domainllm.RoleUser, Content: "two"},
		{Role: domainllm.RoleAssistant, Content: "echo: two"},
		{Role: domainllm.RoleUser, Content: "three"},
	}
	assert.Equal(t, want, req.Messages)
}

func TestAppendTurn_GatewayFailurePersistsNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.gateway.replyFn = func(*domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
		return nil, errors.New("503 from upstream")
	}

	id, err := h.sessions.ResolveSession(ctx, "ada@example.com", "")
	require.NoError(t, err)

	_, err = h.conv.AppendTurn(ctx, id, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "Error processing query", upstream.Message)

	count, err := memoryHistory{h.store}.CountBySession(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAppendTurn_StoreFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	boom := errors.New("disk full")
	h.store.failHistory = boom

	id, err := h.sessions.ResolveSession(ctx, "ada@example.com", "")
	require.NoError(t, err)

	_, err = h.conv.AppendTurn(ctx, id, "hello")
	assert.ErrorIs(t, err, boom)
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{name: "plain", reply: "Coping With Stress", want: "Coping With Stress"},
		{name: "quoted", reply: "  \"Coping With Stress\"\n", want: "Coping With Stress"},
		{name: "too long", reply: "Navigating Difficult Feelings Around Work", want: "Navigating Difficult Feelings"},
		{name: "empty", reply: "   ", want: "Mental Health Conversation"},
		{name: "error", err: errors.New("boom"), want: "Mental Health Conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.gateway.titleFn = func(*domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &domainllm.GenerateResponse{Text: tt.reply}, nil
			}

			got := h.conv.GenerateTitle(context.Background(), "something")
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 30)
		})
	}
}

func TestAnalyze(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.gateway.replyFn = func(req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
		return &domainllm.GenerateResponse{Text: "  It sounds like a lot.  "}, nil
	}

	got, err := h.conv.Analyze(ctx, &services.AnalyzeRequest{ClinicalText: "low mood for weeks"})
	require.NoError(t, err)
	assert.Equal(t, "It sounds like a lot.", got.Analysis)

	req := h.gateway.lastReplyRequest()
	require.NotNil(t, req)
	assert.Equal(t, h.conv.prompts.AnalysisSystem, req.System)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.7, *req.Temperature)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 800, *req.MaxTokens)
	assert.Contains(t, req.Messages[0].Content, "'low mood for weeks'")

	_, err = h.conv.Analyze(ctx, &services.AnalyzeRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	h.gateway.replyFn = func(*domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
		return nil, errors.New("timeout")
	}
	_, err = h.conv.Analyze(ctx, &services.AnalyzeRequest{ClinicalText: "x"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLoadPrompts(t *testing.T) {
	p, err := LoadPrompts()
	require.NoError(t, err)
	assert.Equal(t, "Mental Health Conversation", p.FallbackTitle)
	assert.Contains(t, p.TitleSystem, "30 characters")
	assert.NotEqual(t, p.ConversationSystem, p.TitleSystem)
}
