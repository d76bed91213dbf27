package adapters

import (
	"context"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "solace/internal/domain/services/llm"
)

// LibraryAdapter wraps a meridian-llm-go provider (Anthropic, Lorem) and
// implements the backend's LLMProvider interface.
type LibraryAdapter struct {
	provider llmprovider.Provider
}

var _ domainllm.LLMProvider = (*LibraryAdapter)(nil)

// NewLibraryAdapter creates a new adapter from an existing library provider.
// Used by the provider factory for dynamic provider creation.
func NewLibraryAdapter(provider llmprovider.Provider) *LibraryAdapter {
	return &LibraryAdapter{
		provider: provider,
	}
}

// Name returns the provider name.
func (a *LibraryAdapter) Name() string {
	return a.provider.Name().String()
}

// SupportsModel returns true if this provider supports the given model.
func (a *LibraryAdapter) SupportsModel(model string) bool {
	return a.provider.SupportsModel(model)
}

// GenerateResponse generates a single completion.
func (a *LibraryAdapter) GenerateResponse(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	libResp, err := a.provider.GenerateResponse(ctx, ConvertToLibraryRequest(req))
	if err != nil {
		return nil, err
	}

	return convertFromLibraryResponse(libResp), nil
}
