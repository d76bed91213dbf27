package llm

import (
	"fmt"
	"log/slog"

	"solace/internal/capabilities"
	"solace/internal/config"
)

// SetupGateway initializes the provider factory, registry and router.
// It fails fast when the configured models cannot be routed.
func SetupGateway(cfg *config.Config, caps *capabilities.Registry, logger *slog.Logger) (*Router, *ProviderFactory, error) {
	factory := NewProviderFactory(cfg)
	registry := NewProviderRegistry(factory)

	if err := registry.Validate(); err != nil {
		return nil, nil, fmt.Errorf("provider registry validation failed: %w", err)
	}

	for _, model := range []string{cfg.DefaultModel, cfg.TitleModel} {
		info, err := ParseModel(model)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid model %q: %w", model, err)
		}
		if !factory.Available(info.Provider) {
			return nil, nil, fmt.Errorf("model %q needs the %s provider, which is not configured", model, info.Provider)
		}
	}

	for _, name := range []string{ProviderOpenAI, ProviderAnthropic} {
		if factory.Available(name) {
			logger.Info("provider available", "name", name)
		} else {
			logger.Warn("provider not configured", "name", name)
		}
	}

	logger.Info("language model gateway initialized",
		"default_model", cfg.DefaultModel,
		"title_model", cfg.TitleModel,
	)

	return NewRouter(registry, caps, logger), factory, nil
}
