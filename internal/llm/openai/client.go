package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"aidetect-backend/internal/llm"
)

// Client implements llm.Client against an OpenAI-compatible chat completions
// endpoint with vision support.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// New constructs a client. baseURL may be empty for the default OpenAI
// endpoint or point at any compatible gateway.
func New(apiKey, baseURL, model string, temperature float32) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimSpace(baseURL)
	}
	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       strings.TrimSpace(model),
		temperature: temperature,
	}
}

// GenerateFromImage sends the prompt and image as a single user message and
// returns the first choice's content.
func (c *Client) GenerateFromImage(ctx context.Context, prompt string, imageData []byte, format string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:image/%s;base64,%s", format, encoded),
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("response empty content")
	}
	return llm.StripCodeFences(content), nil
}

var _ llm.Client = (*Client)(nil)
