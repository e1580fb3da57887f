package semantic

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/llm"
	"github.com/agenthands/storygraph/internal/metrics"
)

const (
	DefaultGraphLimit  = 50
	MaxGraphLimit      = 5000
	DefaultThreshold   = 0.7
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	DefaultSimilar     = 25
)

var (
	// ErrEmptyQuery is returned by Search for a blank query.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrSearchDisabled is returned when no embedder is configured.
	ErrSearchDisabled = errors.New("semantic search is not configured")
	ErrVectorNotFound = errors.New("no embedding for asset")
)

type Service struct {
	Path       string
	MaxVectors int
	Embedder   llm.Embedder
	Logger     *zap.SugaredLogger
	Metrics    *metrics.Collector
}

func NewService(path string, maxVectors int, embedder llm.Embedder, logger *zap.SugaredLogger, m *metrics.Collector) *Service {
	return &Service{
		Path:       path,
		MaxVectors: maxVectors,
		Embedder:   embedder,
		Logger:     logger,
		Metrics:    m,
	}
}

// graphCeiling is the largest vector count Graph compares pairwise.
func (s *Service) graphCeiling() int {
	if s.MaxVectors > 0 {
		return min(s.MaxVectors, MaxGraphLimit)
	}
	return MaxGraphLimit
}

// Graph builds a similarity graph over the first limit vectors.
func (s *Service) Graph(ctx context.Context, limit int, threshold float64) (model.SemanticGraph, error) {
	limit = Clamp(limit, DefaultGraphLimit, s.graphCeiling())
	records, err := LoadVectors(ctx, s.Path, limit, s.Logger, s.Metrics)
	if err != nil {
		return model.SemanticGraph{}, err
	}
	g := Graph(records, threshold)
	s.Logger.Infow("Built similarity graph", "nodes", len(g.Nodes), "edges", len(g.Links))
	return g, nil
}

// Search ranks all vectors against the embedded query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if s.Embedder == nil {
		return nil, ErrSearchDisabled
	}
	limit = Clamp(limit, DefaultSearchLimit, MaxSearchLimit)

	vec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "embed query")
	}
	records, err := LoadVectors(ctx, s.Path, 0, s.Logger, s.Metrics)
	if err != nil {
		return nil, err
	}
	return Rank(records, vec, limit, ""), nil
}

// Similar returns the assets closest to the embedding of asset id.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]model.SearchResult, error) {
	limit = Clamp(limit, DefaultSimilar, MaxSearchLimit)
	records, err := LoadVectors(ctx, s.Path, 0, s.Logger, s.Metrics)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return Rank(records, r.Embedding, limit, id), nil
		}
	}
	return nil, errors.Wrapf(ErrVectorNotFound, "asset %s", id)
}

// Clamp applies def to non-positive values and caps the result at ceiling.
func Clamp(v, def, ceiling int) int {
	if v <= 0 {
		return def
	}
	return min(v, ceiling)
}

func sortBySimilarity(results []model.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}
