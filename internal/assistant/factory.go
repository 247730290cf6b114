package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/longevitylab/gerograph/internal/config"
)

// New builds an assistant from configuration. "mock" is the default canned
// responder; the rest are real inference backends behind the same interface.
func New(ctx context.Context, cfg config.AssistantConfig) (Assistant, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "mock":
		return NewMockAssistant(time.Duration(cfg.ReplyDelayMS) * time.Millisecond), nil

	case "openai":
		return NewOpenAIAssistant(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "claude":
		return NewClaudeAssistant(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiAssistant(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; the key is a dummy.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimRight(baseURL, "/") + "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIAssistant(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported assistant provider: %s", provider)
	}
}
