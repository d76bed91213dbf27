package llm

import (
	"context"
)

// Message roles understood by every provider
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMProvider defines the interface that all LLM providers must implement.
// This abstraction allows supporting multiple providers (OpenAI, Anthropic, etc.)
// while the chat services stay provider agnostic.
type LLMProvider interface {
	// GenerateResponse sends the ordered messages and returns one completion.
	GenerateResponse(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Name returns the provider name (e.g., "openai", "anthropic")
	Name() string

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// GenerateRequest contains the parameters for an LLM generation request.
type GenerateRequest struct {
	// System is the fixed instruction sent ahead of the conversation
	System string

	// Messages contains the conversation in canonical order, alternating user/assistant
	// and ending with the new user message.
	Messages []Message

	// Model is the provider-local model identifier (e.g., "gpt-4o")
	Model string

	// Optional sampling parameters; nil means provider default
	Temperature *float64
	MaxTokens   *int
}

// Message represents a single role-tagged message in the conversation.
type Message struct {
	Role    string
	Content string
}

// GenerateResponse contains the LLM provider's response.
type GenerateResponse struct {
	// Text is the completion text
	Text string

	// Model is the model that was used (may differ from request if aliased)
	Model string

	InputTokens  int
	OutputTokens int

	// StopReason indicates why generation stopped (e.g., "stop", "end_turn")
	StopReason string
}
