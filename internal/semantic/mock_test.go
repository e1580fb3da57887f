package semantic

import (
	"context"
)

type MockEmbedder struct {
	Vector []float32
	Err    error
	Texts  []string
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}
