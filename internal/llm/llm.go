// Package llm provides the chat-completion backends used by the advisor.
// A backend is chosen once at wiring time and injected as a Generator.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/models"
)

// ErrEmptyResponse is returned when a backend completes without any text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator turns an ordered list of role-tagged messages into a text completion
type Generator interface {
	Generate(ctx context.Context, messages []models.Message) (string, error)
}

// Default models per provider
var defaultModels = map[string]string{
	"ollama":   "mistral",
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"gemini":   "gemini-2.5-flash",
}

// New builds the Generator selected by cfg.LLMProvider
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	model := cfg.LLMModel
	if model == "" {
		model = defaultModels[cfg.LLMProvider]
	}

	switch cfg.LLMProvider {
	case "ollama":
		return NewOpenAIChatModel(ctx, cfg.OllamaURL+"/v1", "ollama", model, cfg.LLMTemperature)
	case "openai":
		return NewOpenAIChatModel(ctx, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, model, cfg.LLMTemperature)
	case "deepseek":
		return NewDeepSeekChatModel(ctx, cfg.DeepSeekAPIKey, model, cfg.LLMTemperature)
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, model, cfg.LLMTemperature)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
