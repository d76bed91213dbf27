package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	domainllm "solace/internal/domain/services/llm"
)

// OpenAIAdapter calls the OpenAI chat completions API and implements the
// backend's LLMProvider interface.
type OpenAIAdapter struct {
	client openai.Client
}

var _ domainllm.LLMProvider = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter creates a new OpenAI adapter.
// Extra options (base URL, retries) are passed to the client.
func NewOpenAIAdapter(apiKey string, opts ...option.RequestOption) *OpenAIAdapter {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIAdapter{
		client: openai.NewClient(opts...),
	}
}

// Name returns the provider name.
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// SupportsModel returns true for chat models served by OpenAI.
func (a *OpenAIAdapter) SupportsModel(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "gpt-") ||
		strings.HasPrefix(m, "o1-") ||
		strings.HasPrefix(m, "o3-") ||
		strings.HasPrefix(m, "chatgpt-") ||
		strings.HasPrefix(m, "ft:")
}

// GenerateResponse sends the conversation as one chat completion request.
func (a *OpenAIAdapter) GenerateResponse(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case domainllm.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*req.MaxTokens))
	}

	completion, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	choice := completion.Choices[0]
	return &domainllm.GenerateResponse{
		Text:         choice.Message.Content,
		Model:        completion.Model,
		InputTokens:  int(completion.Usage.PromptTokens),
		OutputTokens: int(completion.Usage.CompletionTokens),
		StopReason:   string(choice.FinishReason),
	}, nil
}
