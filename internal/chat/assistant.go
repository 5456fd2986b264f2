// Package chat is the market assistant. It answers portfolio questions in
// Portuguese through an eino chat model, with the dashboard data injected as
// conversation context.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/painelfin/painelgo/config"
)

// ErrDisabled means no API key is configured for the active provider.
var ErrDisabled = errors.New("assistente desativado: configure OPENAI_API_KEY ou DEEPSEEK_API_KEY")

const systemPrompt = `Você é o assistente do painel financeiro. Responda em português do Brasil,
de forma direta, sobre ações da B3, indicadores macroeconômicos e o portfólio do usuário.
Quando houver dados do painel na conversa, baseie a resposta neles e diga quando um dado
não estiver disponível. Nunca invente preços ou indicadores.`

const maxHistory = 20

// Assistant holds one conversation against the configured chat model.
type Assistant struct {
	model   model.BaseChatModel
	history []*schema.Message
}

// NewAssistant builds the assistant for the provider in cfg. It fails with
// ErrDisabled when the provider has no API key.
func NewAssistant(ctx context.Context, cfg *config.Config) (*Assistant, error) {
	apiKey := cfg.ChatAPIKey()
	if apiKey == "" {
		return nil, ErrDisabled
	}

	var (
		cm  model.BaseChatModel
		err error
	)
	switch cfg.LLMProvider {
	case "deepseek":
		cm, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    apiKey,
			Model:     cfg.ChatModel,
			MaxTokens: 2000,
		})
	default:
		maxTokens := 2000
		cm, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:    apiKey,
			Model:     cfg.ChatModel,
			MaxTokens: &maxTokens,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao iniciar modelo de chat: %w", err)
	}

	return &Assistant{
		model:   cm,
		history: []*schema.Message{schema.SystemMessage(systemPrompt)},
	}, nil
}

// AddContext injects dashboard data (quotes, portfolio summary, indicators)
// into the conversation so the model can ground its answers.
func (a *Assistant) AddContext(label, data string) {
	if data == "" {
		return
	}
	a.history = append(a.history, schema.SystemMessage(
		fmt.Sprintf("Dados do painel (%s):\n%s", label, data)))
}

// Ask sends one user question and returns the model's answer, keeping both
// in the conversation history.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	a.history = append(a.history, schema.UserMessage(question))
	a.trimHistory()

	out, err := a.model.Generate(ctx, a.history)
	if err != nil {
		// Drop the unanswered question so a retry does not duplicate it.
		a.history = a.history[:len(a.history)-1]
		return "", fmt.Errorf("falha ao consultar o assistente: %w", err)
	}

	a.history = append(a.history, out)
	return out.Content, nil
}

// Reset clears the conversation, keeping only the system prompt.
func (a *Assistant) Reset() {
	a.history = a.history[:1]
}

// trimHistory bounds the prompt size by dropping the oldest turns. The
// system prompt at index zero always stays.
func (a *Assistant) trimHistory() {
	if len(a.history) <= maxHistory {
		return
	}
	trimmed := make([]*schema.Message, 0, maxHistory)
	trimmed = append(trimmed, a.history[0])
	trimmed = append(trimmed, a.history[len(a.history)-(maxHistory-1):]...)
	a.history = trimmed
}
