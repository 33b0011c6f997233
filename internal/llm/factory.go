package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loomai/internal/config"
)

// NewClient selects a provider from configuration. Gemini is the default;
// OpenAI is available as an alternate when configured.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, "")
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
