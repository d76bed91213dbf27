package capabilities

import "gopkg.in/yaml.v3"

// PricingTier is the per million token price below a context threshold
type PricingTier struct {
	Threshold   *int    `yaml:"threshold" json:"threshold"` // null = unlimited
	InputPrice  float64 `yaml:"input_price" json:"input_price"`
	OutputPrice float64 `yaml:"output_price" json:"output_price"`
}

// ModelCapabilities describes one chat model
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`

	PricingTiers []PricingTier `yaml:"pricing_tiers" json:"pricing_tiers"`
}

// ProviderCapabilities represents all models for a provider
type ProviderCapabilities struct {
	Provider    string              `yaml:"provider" json:"provider"`
	DisplayName string              `yaml:"display_name" json:"display_name"`
	Models      []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML keeps models in file order
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	type header struct {
		Provider    string                       `yaml:"provider"`
		DisplayName string                       `yaml:"display_name"`
		Models      map[string]ModelCapabilities `yaml:"models"`
	}
	var h header
	if err := node.Decode(&h); err != nil {
		return err
	}
	p.Provider = h.Provider
	p.DisplayName = h.DisplayName

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		modelsNode := node.Content[i+1]
		// key, value, key, value...
		for j := 0; j+1 < len(modelsNode.Content); j += 2 {
			modelID := modelsNode.Content[j].Value
			if model, ok := h.Models[modelID]; ok {
				model.ID = modelID
				p.Models = append(p.Models, model)
			}
		}
		break
	}

	return nil
}
