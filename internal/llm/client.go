package llm

import (
	"context"
)

// Embedder turns text into a dense vector comparable with the stored
// asset description embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
