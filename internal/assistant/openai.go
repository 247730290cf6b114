package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIAssistant struct {
	client *openai.Client
	model  string
}

func NewOpenAIAssistant(apiKey, model, baseURL string) *OpenAIAssistant {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIAssistant{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (a *OpenAIAssistant) SubmitQuery(ctx context.Context, qc QueryContext) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(qc),
			},
		},
	}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("%w: no response choices", ErrNetwork)
}
