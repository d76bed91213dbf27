package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace/internal/capabilities"
	domainllm "solace/internal/domain/services/llm"
)

type recordingProvider struct {
	name string
	last *domainllm.GenerateRequest
	err  error
}

func (p *recordingProvider) Name() string              { return p.name }
func (p *recordingProvider) SupportsModel(string) bool { return true }

func (p *recordingProvider) GenerateResponse(_ context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	p.last = req
	if p.err != nil {
		return nil, p.err
	}
	return &domainllm.GenerateResponse{Text: "reply from " + p.name, Model: req.Model}, nil
}

type countingSource struct {
	mu        sync.Mutex
	providers map[string]*recordingProvider
	created   map[string]int
}

func newCountingSource(names ...string) *countingSource {
	s := &countingSource{providers: map[string]*recordingProvider{}, created: map[string]int{}}
	for _, n := range names {
		s.providers[n] = &recordingProvider{name: n}
	}
	return s
}

func (s *countingSource) GetProvider(name string) (domainllm.LLMProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.providers[name]
	if !ok {
		return nil, errors.New("unsupported provider: " + name)
	}
	s.created[name]++
	return p, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProviderRegistry_CachesProviders(t *testing.T) {
	source := newCountingSource("openai")
	registry := NewProviderRegistry(source)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := registry.GetProvider("openai")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, source.created["openai"])

	_, err := registry.GetProvider("")
	assert.Error(t, err)
	_, err = registry.GetProvider("gemini")
	assert.Error(t, err)
}

func TestRouter_RoutesByModelPrefix(t *testing.T) {
	source := newCountingSource("openai", "anthropic")
	router := NewRouter(NewProviderRegistry(source), nil, discardLogger())

	resp, err := router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: "claude-haiku-4-5"})
	require.NoError(t, err)
	assert.Equal(t, "reply from anthropic", resp.Text)

	resp, err = router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: "openai/gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "reply from openai", resp.Text)
	// provider prefix is stripped before the call
	assert.Equal(t, "gpt-4o", source.providers["openai"].last.Model)

	assert.True(t, router.SupportsModel("gpt-4o-mini"))
	assert.False(t, router.SupportsModel("lorem-fast"))
	assert.False(t, router.SupportsModel("mystery"))
}

func TestRouter_WrapsProviderError(t *testing.T) {
	source := newCountingSource("openai")
	boom := errors.New("rate limited")
	source.providers["openai"].err = boom
	router := NewRouter(NewProviderRegistry(source), nil, discardLogger())

	_, err := router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: "gpt-4o"})
	assert.ErrorIs(t, err, boom)

	_, err = router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: ""})
	assert.Error(t, err)
}

func TestRouter_ClampsMaxTokens(t *testing.T) {
	caps, err := capabilities.NewRegistry()
	require.NoError(t, err)

	source := newCountingSource("lorem")
	router := NewRouter(NewProviderRegistry(source), caps, discardLogger())

	huge := 1_000_000
	_, err = router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: "lorem-fast", MaxTokens: &huge})
	require.NoError(t, err)
	require.NotNil(t, source.providers["lorem"].last.MaxTokens)
	assert.Equal(t, 4096, *source.providers["lorem"].last.MaxTokens)
	// caller's value untouched
	assert.Equal(t, 1_000_000, huge)

	small := 50
	_, err = router.GenerateResponse(context.Background(), &domainllm.GenerateRequest{Model: "lorem-fast", MaxTokens: &small})
	require.NoError(t, err)
	assert.Equal(t, 50, *source.providers["lorem"].last.MaxTokens)
}
