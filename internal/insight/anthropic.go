package insight

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the Provider interface on top of the Anthropic
// Messages API.
type AnthropicProvider struct {
	name      string
	apiKey    string
	model     string
	maxTokens int64
	client    sdk.Client
}

// NewAnthropicProvider builds a provider for the given model. The API key is
// only validated on first use so the dashboard can run without one configured.
func NewAnthropicProvider(apiKey, model string, maxTokens int64) *AnthropicProvider {
	return &AnthropicProvider{
		name:      "anthropic",
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (p *AnthropicProvider) Name() string {
	return p.name
}

// Generate sends the rendered prompt as a single message and returns the text
// of the response.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("anthropic api key is not configured")
	}

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(p.model),
		MaxTokens:   p.maxTokens,
		Temperature: sdk.Float(0.7),
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(BuildPrompt(req))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("anthropic returned an empty response")
	}
	return text, nil
}
