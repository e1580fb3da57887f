package community

import (
	"fmt"
	"math"
	"sort"

	"github.com/agenthands/storygraph/internal/core/model"
)

const topMemberCount = 5

// Rollup is the community view: one node per qualifying group and one
// weighted edge per pair of groups linked by at least one parent relation.
type Rollup struct {
	Nodes      []model.VisualNode
	Edges      []model.VisualEdge
	Qualifying []*Group
}

// BuildRollup aggregates a partition into community blobs. Only groups with
// at least MinCommunitySize members qualify.
func BuildRollup(p *Partition, labels Labeler) Rollup {
	r := Rollup{
		Nodes: []model.VisualNode{},
		Edges: []model.VisualEdge{},
	}

	ordinal := make(map[*Group]int)
	maxSize := 0
	for _, g := range p.Groups {
		if g.Size() < MinCommunitySize {
			continue
		}
		ordinal[g] = len(r.Qualifying)
		r.Qualifying = append(r.Qualifying, g)
		if g.Size() > maxSize {
			maxSize = g.Size()
		}
	}
	if len(r.Qualifying) == 0 {
		return r
	}

	for i, g := range r.Qualifying {
		size := g.Size()
		avg := 0.0
		if size > 0 {
			avg = float64(g.InternalConnections) / float64(size)
		}
		r.Nodes = append(r.Nodes, model.VisualNode{
			ID:             communityID(i),
			Label:          labels.Label(g.Key),
			Size:           CommunityRadius(size),
			Color:          Color(i),
			GroupKey:       g.Key,
			Community:      i,
			MemberCount:    size,
			Brightness:     Brightness(size, maxSize),
			HasConnections: g.HasConnections,
			AvgConnections: avg,
			TopMembers:     topMembers(g),
		})
	}

	type pair struct{ a, b int }
	counts := make(map[pair]int)
	var order []pair

	for i := range p.Assets {
		child := &p.Assets[i]
		childRef, ok := p.Lookup(child.ID)
		if !ok || childRef.Asset != child {
			continue
		}
		ci, ok := ordinal[childRef.Group]
		if !ok {
			continue
		}
		for _, pid := range child.ParentIDs {
			parentRef, ok := p.Lookup(pid)
			if !ok {
				continue
			}
			pi, ok := ordinal[parentRef.Group]
			if !ok || pi == ci {
				continue
			}
			k := pair{a: min(pi, ci), b: max(pi, ci)}
			if _, seen := counts[k]; !seen {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	for _, k := range order {
		n := counts[k]
		src, tgt := communityID(k.a), communityID(k.b)
		r.Edges = append(r.Edges, model.VisualEdge{
			ID:              src + "-" + tgt,
			Source:          src,
			Target:          tgt,
			Weight:          CrossCommunityWeight(n),
			Kind:            model.EdgeCrossCommunity,
			ConnectionCount: n,
		})
	}

	return r
}

// CommunityRadius is a log-scaled radius bounded to [30, 120].
func CommunityRadius(size int) float64 {
	return math.Min(120, 30+math.Log(float64(size))*15)
}

// Brightness maps a group's relative size to [0.4, 1.0].
func Brightness(size, maxSize int) float64 {
	if maxSize <= 0 {
		return 0.4
	}
	return 0.4 + (float64(size)/float64(maxSize))*0.6
}

// CrossCommunityWeight is the log-scaled edge weight for n underlying links, capped at 10.
func CrossCommunityWeight(n int) float64 {
	return math.Min(10, 2+math.Log(float64(n))*2)
}

func communityID(i int) string {
	return fmt.Sprintf("community_%d", i)
}

func topMembers(g *Group) []model.TopMember {
	ranked := make([]*model.AssetRecord, len(g.Members))
	copy(ranked, g.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DescendantCount > ranked[j].DescendantCount
	})
	if len(ranked) > topMemberCount {
		ranked = ranked[:topMemberCount]
	}

	out := make([]model.TopMember, 0, len(ranked))
	for _, a := range ranked {
		name := a.DisplayName
		if name == "" {
			name = "Unnamed Asset"
		}
		out = append(out, model.TopMember{
			ID:              a.ID,
			Name:            name,
			DescendantCount: a.DescendantCount,
		})
	}
	return out
}
