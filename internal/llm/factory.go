package llm

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/config"
)

const defaultOllamaURL = "http://localhost:11434"

// NewEmbedder builds the embedder for the configured provider. An empty
// provider or "none" returns a nil Embedder, which disables semantic search.
func NewEmbedder(ctx context.Context, cfg config.LLMConfig, logger *zap.SugaredLogger) (Embedder, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", "none":
		return nil, nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.EmbeddingModel, cfg.BaseURL), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "ollama":
		baseURL := OllamaBaseURL(cfg.BaseURL)
		logger.Infow("Using Ollama through its OpenAI-compatible API", "url", baseURL)

		// Ollama ignores the key but the client requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		model := cfg.EmbeddingModel
		if model == "" {
			model = "nomic-embed-text"
		}
		return NewOpenAIClient(apiKey, model, baseURL), nil

	default:
		return nil, errors.Newf("unsupported llm provider: %s", provider)
	}
}

// OllamaBaseURL normalizes an Ollama address to its /v1 API root.
func OllamaBaseURL(base string) string {
	if base == "" {
		base = defaultOllamaURL
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base
}
