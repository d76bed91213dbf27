package adapters

import (
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "solace/internal/domain/services/llm"
)

const blockTypeText = "text"

// ConvertToLibraryRequest converts a backend GenerateRequest to the library's
// block-based request. Each message becomes a single text block.
func ConvertToLibraryRequest(req *domainllm.GenerateRequest) *llmprovider.GenerateRequest {
	messages := make([]llmprovider.Message, len(req.Messages))
	for i, msg := range req.Messages {
		text := msg.Content
		messages[i] = llmprovider.Message{
			Role: msg.Role,
			Blocks: []*llmprovider.Block{
				{
					BlockType:   blockTypeText,
					TextContent: &text,
				},
			},
		}
	}

	params := &llmprovider.RequestParams{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		system := req.System
		params.System = &system
	}

	return &llmprovider.GenerateRequest{
		Messages: messages,
		Model:    req.Model,
		Params:   params,
	}
}

// convertFromLibraryResponse joins the text blocks of a library response
func convertFromLibraryResponse(resp *llmprovider.GenerateResponse) *domainllm.GenerateResponse {
	var text strings.Builder
	for _, block := range resp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		text.WriteString(*block.TextContent)
	}

	return &domainllm.GenerateResponse{
		Text:         text.String(),
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		StopReason:   resp.StopReason,
	}
}
