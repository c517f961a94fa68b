package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const anthropicMaxTokens = 300

// AnthropicProvider talks to the Anthropic messages API
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates an Anthropic provider. baseURL may be empty
// for the public API.
func NewAnthropicProvider(apiKey, model, baseURL string) *AnthropicProvider {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete sends the prompt as a single user message
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create messages: %w", err)
	}

	return extractText(resp), nil
}

func extractText(resp anthropic.MessagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text
		}
	}
	return ""
}
