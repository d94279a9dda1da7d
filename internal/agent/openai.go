// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend calls an OpenAI-compatible chat completions API through the
// official SDK. BaseURL is optional and supports compatible gateways.
type OpenAIBackend struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Complete sends one chat completion request and returns the first
// choice's content.
func (b *OpenAIBackend) Complete(ctx context.Context, req Request) (string, error) {
	opts := []option.RequestOption{option.WithAPIKey(b.APIKey)}
	if b.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(b.BaseURL))
	}
	client := openai.NewClient(opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.System),
		openai.UserMessage(req.Prompt),
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(b.Model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
