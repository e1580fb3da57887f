package server

import (
	"context"

	"github.com/agenthands/storygraph/internal/core/model"
)

type MockNetwork struct {
	View    model.View
	Records []model.AssetRecord
	Detail  model.AssetDetail
	Err     error
	Limit   int
}

func (m *MockNetwork) CommunityView(ctx context.Context) (model.View, error) {
	return m.view(model.ModeCommunity)
}

func (m *MockNetwork) OptimizedView(ctx context.Context) (model.View, error) {
	return m.view(model.ModeOptimized)
}

func (m *MockNetwork) FullView(ctx context.Context) (model.View, error) {
	return m.view(model.ModeFull)
}

func (m *MockNetwork) view(mode string) (model.View, error) {
	if m.Err != nil {
		return model.View{}, m.Err
	}
	v := m.View
	v.Mode = mode
	return v, nil
}

func (m *MockNetwork) Assets(ctx context.Context, limit int) ([]model.AssetRecord, error) {
	m.Limit = limit
	return m.Records, m.Err
}

func (m *MockNetwork) Asset(ctx context.Context, id string) (model.AssetDetail, error) {
	return m.Detail, m.Err
}

type MockSemantic struct {
	SimGraph  model.SemanticGraph
	Results   []model.SearchResult
	Err       error
	Limit     int
	Threshold float64
	Query     string
}

func (m *MockSemantic) Graph(ctx context.Context, limit int, threshold float64) (model.SemanticGraph, error) {
	m.Limit, m.Threshold = limit, threshold
	return m.SimGraph, m.Err
}

func (m *MockSemantic) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	m.Query, m.Limit = query, limit
	return m.Results, m.Err
}

func (m *MockSemantic) Similar(ctx context.Context, id string, limit int) ([]model.SearchResult, error) {
	m.Query, m.Limit = id, limit
	return m.Results, m.Err
}
