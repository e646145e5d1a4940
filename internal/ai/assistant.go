// Package ai wraps the LLM used by the chat assistant behind a small
// interface so services can run without an API key.
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Assistant generates a natural-language reply for a chat turn.
type Assistant interface {
	Reply(ctx context.Context, system, prompt string) (string, error)
}

// OpenAI is an Assistant backed by the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI assistant. Model defaults to gpt-4o-mini.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Reply sends the prompt and returns the first choice.
func (a *OpenAI) Reply(ctx context.Context, system, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
