package semantic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/config"
	"github.com/agenthands/storygraph/internal/metrics"
	"github.com/agenthands/storygraph/internal/source"
)

const vectors = `{"id":"v1","embedding":[1,0],"descriptionText":"a red fox","nftMetadata":{"name":"Fox"}}
{"id":"v2","embedding":[0.8,0.2],"descriptionText":"a fox cub"}
{"id":"v3","embedding":[0,1],"descriptionText":"a blue whale"}
{"id":"","embedding":[1,1]}
{"id":"v4","embedding":[]}
garbage
`

func newService(t *testing.T, embedder *MockEmbedder) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(vectors), 0o644))
	s := NewService(path, 0, nil, zap.NewNop().Sugar(), nil)
	if embedder != nil {
		s.Embedder = embedder
	}
	return s
}

func TestLoadVectors(t *testing.T) {
	s := newService(t, nil)
	records, err := LoadVectors(context.Background(), s.Path, 0, s.Logger, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = LoadVectors(context.Background(), s.Path, 2, s.Logger, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = LoadVectors(context.Background(), filepath.Join(t.TempDir(), "none"), 0, s.Logger, nil)
	assert.True(t, errors.Is(err, source.ErrInputUnavailable))
}

func TestLoadVectors_StopsAtLimit(t *testing.T) {
	s := newService(t, nil)
	m := metrics.NewCollector()

	records, err := LoadVectors(context.Background(), s.Path, 3, s.Logger, m)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	// the malformed rows follow v3 and are never read
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Malformed.WithLabelValues("vectors")))

	_, err = LoadVectors(context.Background(), s.Path, 0, s.Logger, m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Malformed.WithLabelValues("vectors")))
}

func TestService_DefaultConfigCoversLargeCorpus(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2500; i++ {
		emb := "[1,0]"
		if i == 2400 {
			emb = "[0,1]"
		}
		fmt.Fprintf(&b, "{\"id\":\"v%d\",\"embedding\":%s}\n", i, emb)
	}
	path := filepath.Join(t.TempDir(), "vectors.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	embedder := &MockEmbedder{Vector: []float32{0, 1}}
	s := NewService(path, config.Default().Semantic.MaxVectors, embedder, zap.NewNop().Sugar(), nil)

	results, err := s.Search(context.Background(), "late", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v2400", results[0].ID)

	similar, err := s.Similar(context.Background(), "v2400", 3)
	require.NoError(t, err)
	assert.Len(t, similar, 3)

	g, err := s.Graph(context.Background(), 3000, DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2500)
}

func TestService_GraphCeiling(t *testing.T) {
	s := newService(t, nil)
	s.MaxVectors = 2
	g, err := s.Graph(context.Background(), 100, DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)

	s.MaxVectors = 0
	assert.Equal(t, MaxGraphLimit, s.graphCeiling())
	s.MaxVectors = 9000
	assert.Equal(t, MaxGraphLimit, s.graphCeiling())
}

func TestService_Graph(t *testing.T) {
	s := newService(t, nil)

	g, err := s.Graph(context.Background(), 0, DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
	require.Len(t, g.Links, 1)
	assert.Equal(t, "v1", g.Links[0].Source)

	g, err = s.Graph(context.Background(), 1, DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Links)
}

func TestService_Search(t *testing.T) {
	embedder := &MockEmbedder{Vector: []float32{0, 1}}
	s := newService(t, embedder)

	results, err := s.Search(context.Background(), "  whale  ", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"whale"}, embedder.Texts)
	require.Len(t, results, 2)
	assert.Equal(t, "v3", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}

func TestService_SearchErrors(t *testing.T) {
	s := newService(t, nil)
	_, err := s.Search(context.Background(), "fox", 5)
	assert.ErrorIs(t, err, ErrSearchDisabled)

	s = newService(t, &MockEmbedder{})
	_, err = s.Search(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	s = newService(t, &MockEmbedder{Err: errors.New("rate limited")})
	_, err = s.Search(context.Background(), "fox", 5)
	assert.ErrorContains(t, err, "rate limited")
}

func TestService_Similar(t *testing.T) {
	s := newService(t, nil)

	results, err := s.Similar(context.Background(), "v1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v3"}, ids(results))

	_, err = s.Similar(context.Background(), "missing", 0)
	assert.True(t, errors.Is(err, ErrVectorNotFound))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 50, Clamp(0, 50, 5000))
	assert.Equal(t, 50, Clamp(-3, 50, 5000))
	assert.Equal(t, 7, Clamp(7, 50, 5000))
	assert.Equal(t, 5000, Clamp(9000, 50, 5000))
}
