package core

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/layout"
	"github.com/agenthands/storygraph/internal/core/model"
	"github.com/agenthands/storygraph/internal/core/summary"
	"github.com/agenthands/storygraph/internal/metrics"
)

// ErrAssetNotFound is returned by Asset for an id missing from the snapshot.
var ErrAssetNotFound = errors.New("asset not found")

// AssetSource yields a fresh snapshot of normalized asset records.
type AssetSource interface {
	Name() string
	Load(ctx context.Context) ([]model.AssetRecord, error)
}

// Network builds graph views over the snapshot provided by Source.
// It holds no state between calls.
type Network struct {
	Source   AssetSource
	Detector community.Detector
	Labels   community.Labeler
	Logger   *zap.SugaredLogger
	Metrics  *metrics.Collector
}

func NewNetwork(src AssetSource, labels community.Labeler, logger *zap.SugaredLogger, m *metrics.Collector) *Network {
	return &Network{
		Source:   src,
		Detector: community.NewKeyDetector(),
		Labels:   labels,
		Logger:   logger,
		Metrics:  m,
	}
}

func (n *Network) CommunityView(ctx context.Context) (model.View, error) {
	return n.view(ctx, model.ModeCommunity, func(p *community.Partition) model.View {
		return BuildCommunityView(p, n.Labels)
	})
}

func (n *Network) OptimizedView(ctx context.Context) (model.View, error) {
	return n.view(ctx, model.ModeOptimized, func(p *community.Partition) model.View {
		return BuildBudgetView(p, layout.OptimizedPolicy(), n.Labels)
	})
}

func (n *Network) FullView(ctx context.Context) (model.View, error) {
	return n.view(ctx, model.ModeFull, func(p *community.Partition) model.View {
		return BuildBudgetView(p, layout.FullPolicy(), n.Labels)
	})
}

// Assets returns up to limit records of the current snapshot in source order.
// A non-positive limit returns all of them.
func (n *Network) Assets(ctx context.Context, limit int) ([]model.AssetRecord, error) {
	assets, err := n.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(assets) > limit {
		assets = assets[:limit]
	}
	return assets, nil
}

// Asset looks up one record and reports on its group.
func (n *Network) Asset(ctx context.Context, id string) (model.AssetDetail, error) {
	assets, err := n.load(ctx)
	if err != nil {
		return model.AssetDetail{}, err
	}
	p := n.Detector.Detect(assets)
	ref, ok := p.Lookup(id)
	if !ok {
		return model.AssetDetail{}, errors.Wrapf(ErrAssetNotFound, "asset %s", id)
	}
	return model.AssetDetail{
		Asset:          *ref.Asset,
		GroupSize:      ref.Group.Size(),
		Tier:           string(ref.Group.Tier()),
		HasConnections: ref.Group.HasConnections,
	}, nil
}

func (n *Network) load(ctx context.Context) ([]model.AssetRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	assets, err := n.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

func (n *Network) view(ctx context.Context, mode string, build func(*community.Partition) model.View) (model.View, error) {
	start := time.Now()

	assets, err := n.load(ctx)
	if err != nil {
		status := metrics.StatusUnavailable
		if ctx.Err() != nil {
			status = metrics.StatusCanceled
		}
		n.Metrics.ObserveView(mode, status, time.Since(start))
		n.Logger.Warnw("View build failed", "view", mode, "source", n.Source.Name(), "error", err)
		return model.View{}, err
	}

	v := build(n.Detector.Detect(assets))

	status := metrics.StatusOK
	if v.Empty {
		status = metrics.StatusEmpty
	}
	elapsed := time.Since(start)
	n.Metrics.ObserveView(mode, status, elapsed)
	n.Logger.Infow("Built view",
		"view", mode,
		"count", v.Stats.TotalAssets,
		"groups", v.Stats.VisibleGroups,
		"nodes", len(v.Nodes),
		"edges", len(v.Edges),
		"duration_ms", elapsed.Milliseconds(),
	)
	return v, nil
}

// BuildCommunityView aggregates every qualifying group into a single node.
func BuildCommunityView(p *community.Partition, labels community.Labeler) model.View {
	r := community.BuildRollup(p, labels)
	stats := summary.Summarize(p, len(r.Qualifying), len(r.Nodes), len(r.Edges))
	stats.CommunityStats = &model.CommunityStats{TotalConnections: len(r.Edges)}
	return model.View{
		Mode:  model.ModeCommunity,
		Nodes: r.Nodes,
		Edges: r.Edges,
		Stats: stats,
		Empty: len(r.Nodes) == 0,
	}
}

// BuildBudgetView renders individual assets within the budget of policy.
func BuildBudgetView(p *community.Partition, policy layout.Policy, labels community.Labeler) model.View {
	r := layout.Build(p, policy, labels)
	stats := summary.Summarize(p, len(r.Qualifying), len(r.Nodes), len(r.Edges))
	stats.BudgetStats = &model.BudgetStats{
		TotalCommunities:    len(p.Groups),
		FilteredCommunities: len(r.Qualifying),
		OptimizedNodes:      len(r.Nodes),
		OptimizedEdges:      len(r.Edges),
	}
	return model.View{
		Mode:  policy.Mode,
		Nodes: r.Nodes,
		Edges: r.Edges,
		Stats: stats,
		Empty: len(r.Nodes) == 0,
	}
}
