package handler

import (
	"log/slog"
	"net/http"

	"solace/internal/capabilities"
	"solace/internal/httputil"
)

// ProviderAvailability reports which providers are configured
type ProviderAvailability interface {
	Available(providerName string) bool
}

// ModelsHandler handles HTTP requests for model capabilities
type ModelsHandler struct {
	availability ProviderAvailability
	registry     *capabilities.Registry
	logger       *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(availability ProviderAvailability, registry *capabilities.Registry, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		availability: availability,
		registry:     registry,
		logger:       logger,
	}
}

// ProviderResponse represents a provider with its models
type ProviderResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Models []ModelResponse `json:"models"`
}

// ModelResponse represents a model for the API response.
// ID is the routable "provider/model" string accepted as DEFAULT_MODEL.
type ModelResponse struct {
	ID            string      `json:"id"`
	DisplayName   string      `json:"display_name"`
	Description   string      `json:"description,omitempty"`
	ContextWindow int         `json:"context_window"`
	MaxOutput     int         `json:"max_output"`
	Pricing       PricingInfo `json:"pricing"`
}

// PricingInfo represents model pricing per million tokens
type PricingInfo struct {
	InputPer1M  float64                    `json:"input_per_1m"`  // First tier
	OutputPer1M float64                    `json:"output_per_1m"` // First tier
	Tiers       []capabilities.PricingTier `json:"tiers"`
}

// modelsResponse is the GET /models/ body
type modelsResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

// GetCapabilities returns model capabilities for all configured providers
// GET /models/
func (h *ModelsHandler) GetCapabilities(w http.ResponseWriter, r *http.Request) {
	providers := []ProviderResponse{}

	for _, name := range h.registry.Providers() {
		if !h.availability.Available(name) {
			continue
		}
		providerCaps, err := h.registry.GetProvider(name)
		if err != nil {
			h.logger.Warn("provider missing from catalog", "provider", name, "error", err)
			continue
		}
		providers = append(providers, convertProvider(providerCaps))
	}

	httputil.RespondJSON(w, http.StatusOK, modelsResponse{Providers: providers})
}

// convertProvider converts capability registry data to API response format
func convertProvider(p *capabilities.ProviderCapabilities) ProviderResponse {
	models := make([]ModelResponse, 0, len(p.Models))

	for _, m := range p.Models {
		var inputPer1M, outputPer1M float64
		if len(m.PricingTiers) > 0 {
			inputPer1M = m.PricingTiers[0].InputPrice
			outputPer1M = m.PricingTiers[0].OutputPrice
		}

		models = append(models, ModelResponse{
			ID:            p.Provider + "/" + m.ID,
			DisplayName:   m.DisplayName,
			Description:   m.Description,
			ContextWindow: m.ContextWindow,
			MaxOutput:     m.MaxOutput,
			Pricing: PricingInfo{
				InputPer1M:  inputPer1M,
				OutputPer1M: outputPer1M,
				Tiers:       m.PricingTiers,
			},
		})
	}

	return ProviderResponse{
		ID:     p.Provider,
		Name:   p.DisplayName,
		Models: models,
	}
}
