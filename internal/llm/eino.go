package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Dan9191/ambient-finance/internal/models"
)

const maxTokens = 2048

// ChatModel adapts an eino chat model to Generator
type ChatModel struct {
	model model.BaseChatModel
}

// NewChatModel wraps an existing eino chat model
func NewChatModel(m model.BaseChatModel) *ChatModel {
	return &ChatModel{model: m}
}

// NewOpenAIChatModel creates a model against any OpenAI-compatible endpoint, including a local Ollama server
func NewOpenAIChatModel(ctx context.Context, baseURL, apiKey, modelName string, temperature float32) (*ChatModel, error) {
	tokens := maxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       modelName,
		MaxTokens:   &tokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create openai chat model: %w", err)
	}
	return NewChatModel(chatModel), nil
}

// NewDeepSeekChatModel creates a DeepSeek hosted model
func NewDeepSeekChatModel(ctx context.Context, apiKey, modelName string, temperature float32) (*ChatModel, error) {
	chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:      apiKey,
		Model:       modelName,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deepseek chat model: %w", err)
	}
	return NewChatModel(chatModel), nil
}

// Generate sends the conversation and returns the completion text
func (c *ChatModel) Generate(ctx context.Context, messages []models.Message) (string, error) {
	resp, err := c.model.Generate(ctx, toSchema(messages))
	if err != nil {
		return "", fmt.Errorf("chat model request failed: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}

func toSchema(messages []models.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}
