package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
)

// AnthropicAdvisor talks to the Anthropic messages API.
type AnthropicAdvisor struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicAdvisor creates an advisor. An empty baseURL means the public API.
func NewAnthropicAdvisor(apiKey, baseURL, model string, maxTokens int) *AnthropicAdvisor {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(baseURL, "/")))
	}
	if model == "" {
		model = DefaultAnthropicModel
	}

	return &AnthropicAdvisor{
		client:    anthropic.NewClient(apiKey, opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Advise implements Advisor.
func (a *AnthropicAdvisor) Advise(ctx context.Context, player models.Player) (string, error) {
	prompt := Prompt(player)
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			sb.WriteString(*block.Text)
		}
	}
	return sb.String(), nil
}
