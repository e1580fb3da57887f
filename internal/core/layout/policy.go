package layout

import (
	"math"

	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/model"
)

// Qualification selects which groups a budget view renders.
type Qualification int

const (
	// QualifyByTier keeps large and medium groups, small groups with
	// connections, then relaxes toward MinViableGroups.
	QualifyByTier Qualification = iota
	// QualifyAll renders every group.
	QualifyAll
)

// SamplingCaps bound how many members of a non-aggregated group are shown.
type SamplingCaps struct {
	MediumMax      int
	MediumFraction float64
	SmallMax       int
}

// Policy parameterizes the budget builder.
type Policy struct {
	Mode            string
	Qualification   Qualification
	MinViableGroups int
	Caps            SamplingCaps

	// Cross-group edges are capped at min(CrossGroupMax, floor(nodes*CrossGroupFraction)).
	// A zero fraction means the fixed CrossGroupMax applies.
	CrossGroupMax      int
	CrossGroupFraction float64
}

func OptimizedPolicy() Policy {
	return Policy{
		Mode:            model.ModeOptimized,
		Qualification:   QualifyByTier,
		MinViableGroups: 20,
		Caps: SamplingCaps{
			MediumMax:      25,
			MediumFraction: 0.3,
			SmallMax:       15,
		},
		CrossGroupMax:      30,
		CrossGroupFraction: 0.1,
	}
}

func FullPolicy() Policy {
	return Policy{
		Mode:          model.ModeFull,
		Qualification: QualifyAll,
		Caps: SamplingCaps{
			MediumMax:      40,
			MediumFraction: 0.5,
			SmallMax:       20,
		},
		CrossGroupMax: 50,
	}
}

// MediumCap is the subset size for a medium group of the given size.
func (p Policy) MediumCap(size int) int {
	return min(p.Caps.MediumMax, int(math.Ceil(float64(size)*p.Caps.MediumFraction)))
}

func (p Policy) SmallCap(size int) int {
	return min(p.Caps.SmallMax, size)
}

// CrossGroupCap is the global budget for cross-group edges.
func (p Policy) CrossGroupCap(nodes int) int {
	if p.CrossGroupFraction <= 0 {
		return p.CrossGroupMax
	}
	return min(p.CrossGroupMax, int(math.Floor(float64(nodes)*p.CrossGroupFraction)))
}

// Qualify returns the groups to render, in discovery order.
func (p Policy) Qualify(groups []*community.Group) []*community.Group {
	if p.Qualification == QualifyAll {
		out := make([]*community.Group, len(groups))
		copy(out, groups)
		return out
	}

	in := make(map[*community.Group]bool, len(groups))
	count := 0
	for _, g := range groups {
		switch g.Tier() {
		case community.TierLarge, community.TierMedium:
			in[g] = true
		case community.TierSmall:
			in[g] = g.HasConnections
		}
		if in[g] {
			count++
		}
	}

	// relax toward the minimum viable set using groups above the community floor
	for _, g := range groups {
		if count >= p.MinViableGroups {
			break
		}
		if !in[g] && g.Size() >= community.MinCommunitySize {
			in[g] = true
			count++
		}
	}

	// Only reachable when MinViableGroups is zero.
	if count == 0 {
		for _, g := range groups {
			if g.Size() >= community.MinCommunitySize {
				in[g] = true
			}
		}
	}

	out := make([]*community.Group, 0, count)
	for _, g := range groups {
		if in[g] {
			out = append(out, g)
		}
	}
	return out
}
