package summary

import (
	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/model"
)

// Summarize computes the dataset-wide statistics reported with every view.
// visible is the number of groups the view qualified; nodes and edges are
// what the view actually emitted.
func Summarize(p *community.Partition, visible, nodes, edges int) model.Stats {
	stats := model.Stats{
		TotalGroups:   len(p.Groups),
		VisibleGroups: visible,
		LargestGroup:  p.Largest(),
		TierBreakdown: Breakdown(p.Groups),
		NodeCount:     nodes,
		EdgeCount:     edges,
	}
	for _, g := range p.Groups {
		stats.TotalAssets += g.Size()
	}
	return stats
}

// Breakdown counts groups per size tier.
func Breakdown(groups []*community.Group) model.TierBreakdown {
	var b model.TierBreakdown
	for _, g := range groups {
		switch g.Tier() {
		case community.TierLarge:
			b.Large++
		case community.TierMedium:
			b.Medium++
		case community.TierSmall:
			b.Small++
		default:
			b.Tiny++
		}
	}
	return b
}

