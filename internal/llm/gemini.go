package llm

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiEmbeddingModel = "text-embedding-004"

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	if model == "" {
		model = DefaultGeminiEmbeddingModel
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.client.EmbeddingModel(c.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, errors.Wrapf(err, "embed content with %s", c.model)
	}
	if res.Embedding != nil {
		return res.Embedding.Values, nil
	}
	return nil, errors.New("no embedding values")
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
