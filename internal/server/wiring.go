package server

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/config"
	"github.com/agenthands/storygraph/internal/core"
	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/driver"
	"github.com/agenthands/storygraph/internal/llm"
	"github.com/agenthands/storygraph/internal/metrics"
	"github.com/agenthands/storygraph/internal/semantic"
	"github.com/agenthands/storygraph/internal/source"
)

// FromConfig wires the asset source, the network and semantic services and
// the metrics collector. The returned cleanup releases the graph driver.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Server, func(context.Context) error, error) {
	m := metrics.NewCollector()
	cleanup := func(context.Context) error { return nil }

	var src core.AssetSource
	switch cfg.Source.Kind {
	case config.SourceMemgraph:
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connect asset store")
		}
		cleanup = d.Close
		src = source.NewGraphSource(d, cfg.Source.Limit, logger, m)
	default:
		src = source.NewNDJSONSource(cfg.Source.AssetsPath, logger, m)
	}

	embedder, err := llm.NewEmbedder(ctx, cfg.LLM, logger)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, errors.Wrap(err, "initialize embedder")
	}
	if embedder == nil {
		logger.Infow("No embedding provider configured, semantic search disabled")
	}

	network := core.NewNetwork(src, community.NewLabeler(cfg.Collections), logger, m)
	sem := semantic.NewService(cfg.Semantic.VectorsPath, cfg.Semantic.MaxVectors, embedder, logger, m)

	return NewServer(network, sem, logger, m), cleanup, nil
}
