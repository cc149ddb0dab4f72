package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/models"
)

type fakeChatModel struct {
	got   []*schema.Message
	reply *schema.Message
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func conversation() []models.Message {
	return []models.Message{
		{Role: models.RoleSystem, Content: "respond in json"},
		{Role: models.RoleUser, Content: "first question"},
		{Role: models.RoleAssistant, Content: `{"recommendation": "No"}`},
		{Role: models.RoleUser, Content: "second question"},
	}
}

func TestChatModelGenerate(t *testing.T) {
	fake := &fakeChatModel{reply: schema.AssistantMessage(`{"ok": true}`, nil)}
	text, err := NewChatModel(fake).Generate(context.Background(), conversation())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != `{"ok": true}` {
		t.Fatalf("unexpected text %q", text)
	}

	wantRoles := []schema.RoleType{schema.System, schema.User, schema.Assistant, schema.User}
	if len(fake.got) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(fake.got))
	}
	for i, role := range wantRoles {
		if fake.got[i].Role != role {
			t.Errorf("message %d: role %q, want %q", i, fake.got[i].Role, role)
		}
	}
}

func TestChatModelGenerateErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewChatModel(&fakeChatModel{reply: schema.AssistantMessage("  ", nil)}).Generate(ctx, conversation())
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	boom := errors.New("connection refused")
	_, err = NewChatModel(&fakeChatModel{err: boom}).Generate(ctx, conversation())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestToGenai(t *testing.T) {
	system, contents := toGenai(conversation())
	if system == nil || len(system.Parts) != 1 || system.Parts[0].Text != "respond in json" {
		t.Fatalf("unexpected system instruction: %+v", system)
	}
	wantRoles := []string{"user", "model", "user"}
	if len(contents) != len(wantRoles) {
		t.Fatalf("expected %d contents, got %d", len(wantRoles), len(contents))
	}
	for i, role := range wantRoles {
		if contents[i].Role != role {
			t.Errorf("content %d: role %q, want %q", i, contents[i].Role, role)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.Config{LLMProvider: "bard"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
