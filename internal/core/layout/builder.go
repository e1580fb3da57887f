package layout

import (
	"math"

	"github.com/agenthands/storygraph/internal/core/common"
	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/dedupe"
	"github.com/agenthands/storygraph/internal/core/model"
)

const (
	mediumLabelRunes = 25
	smallLabelRunes  = 20
	fallbackIDRunes  = 8
	mediumFallback   = 5

	mediumEdgeWeight     = 2
	smallEdgeWeight      = 1
	crossGroupEdgeWeight = 3
)

// Result is the output of one budget build.
type Result struct {
	Nodes      []model.VisualNode
	Edges      []model.VisualEdge
	Qualifying []*community.Group

	// CrossGroupEdges counts the cross-group edges among Edges.
	CrossGroupEdges int
}

type builder struct {
	partition *community.Partition
	policy    Policy
	labels    community.Labeler

	nodes []model.VisualNode
	edges *dedupe.EdgeSet

	emitted    map[string]bool             // asset ids rendered as their own node
	aggregates map[*community.Group]string // collapsed groups
}

// Build renders the qualifying groups of p as individual asset nodes or
// group aggregates, bounded by the policy's sampling caps.
func Build(p *community.Partition, policy Policy, labels community.Labeler) Result {
	b := &builder{
		partition:  p,
		policy:     policy,
		labels:     labels,
		nodes:      []model.VisualNode{},
		edges:      dedupe.NewEdgeSet(),
		emitted:    make(map[string]bool),
		aggregates: make(map[*community.Group]string),
	}

	qualifying := policy.Qualify(p.Groups)
	for _, g := range qualifying {
		switch g.Tier() {
		case community.TierLarge:
			b.aggregate(g)
		case community.TierMedium:
			b.subset(g, b.important(g), mediumLabelRunes, mediumEdgeWeight, MediumRadius)
		default:
			members := g.Members[:policy.SmallCap(g.Size())]
			b.subset(g, members, smallLabelRunes, smallEdgeWeight, SmallRadius)
		}
	}

	cross := b.crossGroup(policy.CrossGroupCap(len(b.nodes)))

	return Result{
		Nodes:           b.nodes,
		Edges:           b.edges.Edges(),
		Qualifying:      qualifying,
		CrossGroupEdges: cross,
	}
}

func (b *builder) aggregate(g *community.Group) {
	id := AggregateID(g.Key)
	descendants, children := 0, 0
	for _, m := range g.Members {
		descendants += m.DescendantCount
		children += m.ChildrenCount
	}
	b.nodes = append(b.nodes, model.VisualNode{
		ID:               id,
		Label:            b.labels.Label(g.Key),
		Size:             AggregateRadius(g.Size()),
		Color:            community.Color(g.Index),
		GroupKey:         g.Key,
		Community:        g.Index,
		IsGroupAggregate: true,
		MemberCount:      g.Size(),
		DescendantCount:  descendants,
		ChildrenCount:    children,
		HasConnections:   g.HasConnections,
	})
	b.aggregates[g] = id
}

// important picks the medium-tier subset: roots, prolific assets and
// assets with a parent link, capped by policy.
func (b *builder) important(g *community.Group) []*model.AssetRecord {
	limit := b.policy.MediumCap(g.Size())
	var out []*model.AssetRecord
	for _, m := range g.Members {
		if len(out) >= limit {
			break
		}
		if m.IsRoot() || m.DescendantCount > 2 || m.ChildrenCount > 1 || len(m.ParentIDs) > 0 {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = g.Members[:min(mediumFallback, g.Size())]
	}
	return out
}

func (b *builder) subset(g *community.Group, members []*model.AssetRecord, labelRunes int, weight float64, radius func(int) float64) {
	inSubset := make(map[string]bool, len(members))
	for _, m := range members {
		if !b.owns(m) || b.emitted[m.ID] {
			continue
		}
		inSubset[m.ID] = true
		b.emitted[m.ID] = true
		b.nodes = append(b.nodes, model.VisualNode{
			ID:              m.ID,
			Label:           assetLabel(m, labelRunes),
			Size:            radius(m.DescendantCount),
			Color:           community.Color(g.Index),
			GroupKey:        g.Key,
			Community:       g.Index,
			DescendantCount: m.DescendantCount,
			ChildrenCount:   m.ChildrenCount,
		})
	}

	for _, m := range members {
		if !inSubset[m.ID] {
			continue
		}
		for _, pid := range m.ParentIDs {
			if !inSubset[pid] {
				continue
			}
			b.edges.Add(model.VisualEdge{
				ID:     pid + "-" + m.ID,
				Source: pid,
				Target: m.ID,
				Weight: weight,
				Kind:   model.EdgeParentChild,
			})
		}
	}
}

// owns reports whether m is the record its id resolves to. Later records
// reusing an id are not rendered.
func (b *builder) owns(m *model.AssetRecord) bool {
	ref, ok := b.partition.Lookup(m.ID)
	return ok && ref.Asset == m
}

// resolve maps an asset to the node that represents it, if any.
func (b *builder) resolve(ref community.Ref) (string, bool) {
	if b.emitted[ref.Asset.ID] {
		return ref.Asset.ID, true
	}
	id, ok := b.aggregates[ref.Group]
	return id, ok
}

// crossGroup scans parent links in input order and adds up to limit edges
// between different groups. The first links found win.
func (b *builder) crossGroup(limit int) int {
	added := 0
	if limit <= 0 {
		return 0
	}
	p := b.partition
	for i := range p.Assets {
		child := &p.Assets[i]
		childRef, ok := p.Lookup(child.ID)
		if !ok || childRef.Asset != child {
			continue
		}
		for _, pid := range child.ParentIDs {
			parentRef, ok := p.Lookup(pid)
			if !ok || parentRef.Group == childRef.Group {
				continue
			}
			src, ok := b.resolve(parentRef)
			if !ok {
				continue
			}
			tgt, ok := b.resolve(childRef)
			if !ok || src == tgt {
				continue
			}
			if b.edges.Add(model.VisualEdge{
				ID:     src + "-" + tgt,
				Source: src,
				Target: tgt,
				Weight: crossGroupEdgeWeight,
				Kind:   model.EdgeCrossGroup,
			}) {
				added++
				if added >= limit {
					return added
				}
			}
		}
	}
	return added
}

func assetLabel(a *model.AssetRecord, runes int) string {
	if a.DisplayName != "" {
		return common.Truncate(a.DisplayName, runes)
	}
	return common.Truncate(a.ID, fallbackIDRunes)
}

// AggregateID is the node id of a collapsed group.
func AggregateID(key string) string {
	return "group_" + key
}

// AggregateRadius is bounded to [50, 120] on a log scale.
func AggregateRadius(size int) float64 {
	return math.Min(120, 50+math.Log(float64(size))*15)
}

func MediumRadius(descendants int) float64 {
	return math.Max(25, math.Min(70, 25+float64(descendants)*3))
}

func SmallRadius(descendants int) float64 {
	return math.Max(20, math.Min(50, 20+float64(descendants)*4))
}
