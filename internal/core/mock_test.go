package core

import (
	"context"

	"github.com/agenthands/storygraph/internal/core/model"
)

type MockSource struct {
	Assets []model.AssetRecord
	Err    error
	Calls  int
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) Load(ctx context.Context) ([]model.AssetRecord, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	// fresh copy per call, like a real snapshot
	out := make([]model.AssetRecord, len(m.Assets))
	copy(out, m.Assets)
	return out, nil
}
