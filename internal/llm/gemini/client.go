package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"aidetect-backend/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	apiKey      string
	model       string
	temperature float32
}

// New constructs a Gemini client.
func New(apiKey, model string, temperature float32) *Client {
	return &Client{
		apiKey:      strings.TrimSpace(apiKey),
		model:       strings.TrimSpace(model),
		temperature: temperature,
	}
}

// GenerateFromImage sends the prompt and image to Gemini and returns the
// text of the first candidate.
func (c *Client) GenerateFromImage(ctx context.Context, prompt string, imageData []byte, format string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini API key is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	if m == nil {
		return "", fmt.Errorf("gemini: model %q is nil", c.model)
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(c.temperature),
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(format, imageData),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", errors.New("gemini: empty response")
	}
	return llm.StripCodeFences(txt), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

var _ llm.Client = (*Client)(nil)
