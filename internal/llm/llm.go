package llm

import (
	"context"
	"strings"
)

// Client abstracts multimodal vision model providers. Implementations make
// exactly one outbound call per invocation and return the model's raw text
// reply.
type Client interface {
	GenerateFromImage(ctx context.Context, prompt string, imageData []byte, format string) (string, error)
}

// StripCodeFences removes a surrounding markdown code fence from a model
// reply, if present. Models occasionally wrap plain-text answers in fences
// despite instructions.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop an optional language tag on the opening fence line.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if first != "" && !strings.ContainsAny(first, " \t") && len(first) <= 16 {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
