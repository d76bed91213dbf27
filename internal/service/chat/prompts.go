package chat

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompts holds the fixed instructions sent to the language model
type Prompts struct {
	ConversationSystem string `yaml:"conversation_system"`
	TitleSystem        string `yaml:"title_system"`
	AnalysisSystem     string `yaml:"analysis_system"`
	AnalysisUser       string `yaml:"analysis_user"` // fmt template, one %s
	FallbackTitle      string `yaml:"fallback_title"`
}

// LoadPrompts parses the embedded prompt file
func LoadPrompts() (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(promptsYAML, &p); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	p.ConversationSystem = strings.TrimSpace(p.ConversationSystem)
	p.TitleSystem = strings.TrimSpace(p.TitleSystem)
	p.AnalysisSystem = strings.TrimSpace(p.AnalysisSystem)

	switch {
	case p.ConversationSystem == "":
		return nil, fmt.Errorf("prompts: conversation_system is empty")
	case p.TitleSystem == "":
		return nil, fmt.Errorf("prompts: title_system is empty")
	case p.AnalysisSystem == "":
		return nil, fmt.Errorf("prompts: analysis_system is empty")
	case strings.Count(p.AnalysisUser, "%s") != 1:
		return nil, fmt.Errorf("prompts: analysis_user needs exactly one %%s")
	case p.FallbackTitle == "":
		return nil, fmt.Errorf("prompts: fallback_title is empty")
	}

	return &p, nil
}
