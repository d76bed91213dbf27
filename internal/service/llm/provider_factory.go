package llm

import (
	"fmt"

	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"

	"solace/internal/config"
	domainllm "solace/internal/domain/services/llm"
	"solace/internal/service/llm/adapters"
)

// ProviderFactory creates provider adapters from configuration
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		config: cfg,
	}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "openai" - GPT models via the OpenAI API
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - Mock provider for testing (no API key required)
func (f *ProviderFactory) GetProvider(providerName string) (domainllm.LLMProvider, error) {
	switch providerName {
	case ProviderOpenAI:
		return f.createOpenAIProvider()
	case ProviderAnthropic:
		return f.createAnthropicProvider()
	case ProviderLorem:
		return adapters.NewLibraryAdapter(lorem.NewProvider()), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// Available reports whether a provider can be created with the current config
func (f *ProviderFactory) Available(providerName string) bool {
	switch providerName {
	case ProviderOpenAI:
		return f.config.OpenAIAPIKey != ""
	case ProviderAnthropic:
		return f.config.AnthropicAPIKey != ""
	case ProviderLorem:
		return true
	default:
		return false
	}
}

func (f *ProviderFactory) createOpenAIProvider() (domainllm.LLMProvider, error) {
	if f.config.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return adapters.NewOpenAIAdapter(f.config.OpenAIAPIKey), nil
}

func (f *ProviderFactory) createAnthropicProvider() (domainllm.LLMProvider, error) {
	if f.config.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	return adapters.NewLibraryAdapter(provider), nil
}
