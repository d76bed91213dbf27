package llm

import (
	"context"
	"fmt"
	"log/slog"

	"solace/internal/capabilities"
	domainllm "solace/internal/domain/services/llm"
)

// Router is the language model gateway used by the chat services.
// It resolves the provider from the model name and forwards the request.
type Router struct {
	registry     *ProviderRegistry
	capabilities *capabilities.Registry
	logger       *slog.Logger
}

var _ domainllm.LLMProvider = (*Router)(nil)

// NewRouter creates a gateway over the provider registry.
// caps may be nil, in which case output limits are not clamped.
func NewRouter(registry *ProviderRegistry, caps *capabilities.Registry, logger *slog.Logger) *Router {
	return &Router{
		registry:     registry,
		capabilities: caps,
		logger:       logger,
	}
}

// Name returns the gateway name.
func (r *Router) Name() string {
	return "router"
}

// SupportsModel reports whether the model string names a routable provider.
func (r *Router) SupportsModel(model string) bool {
	info, err := ParseModel(model)
	if err != nil {
		return false
	}
	_, err = r.registry.GetProvider(info.Provider)
	return err == nil
}

// GenerateResponse routes the request to the model's provider.
func (r *Router) GenerateResponse(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	info, err := ParseModel(req.Model)
	if err != nil {
		return nil, err
	}

	provider, err := r.registry.GetProvider(info.Provider)
	if err != nil {
		return nil, err
	}

	routed := *req
	routed.Model = info.Model
	routed.MaxTokens = r.clampMaxTokens(info, req.MaxTokens)

	resp, err := provider.GenerateResponse(ctx, &routed)
	if err != nil {
		return nil, fmt.Errorf("%s generate: %w", info.Provider, err)
	}

	r.logger.Debug("llm response",
		"provider", info.Provider,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"stop_reason", resp.StopReason,
	)

	return resp, nil
}

// clampMaxTokens caps the requested output at the catalog limit of known models
func (r *Router) clampMaxTokens(info *ModelInfo, requested *int) *int {
	if r.capabilities == nil || requested == nil {
		return requested
	}
	caps, err := r.capabilities.GetModelCapabilities(info.Provider, info.Model)
	if err != nil || caps.MaxOutput <= 0 || *requested <= caps.MaxOutput {
		return requested
	}
	limit := caps.MaxOutput
	return &limit
}
