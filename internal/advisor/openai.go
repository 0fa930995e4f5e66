package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/models"
)

// OpenAIAdvisor talks to any OpenAI-compatible chat completion endpoint,
// including Gemini's compatibility layer when BaseURL points there.
type OpenAIAdvisor struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIAdvisor creates an advisor for the given endpoint. An empty baseURL means api.openai.com.
func NewOpenAIAdvisor(apiKey, baseURL, model string, maxTokens int) *OpenAIAdvisor {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIAdvisor{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Advise implements Advisor.
func (a *OpenAIAdvisor) Advise(ctx context.Context, player models.Player) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(player)},
		},
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
