package community

import (
	"github.com/agenthands/storygraph/internal/core/model"
)

// Detector partitions a flat asset collection into groups.
type Detector interface {
	Detect(assets []model.AssetRecord) *Partition
}

// KeyDetector groups assets by their grouping key (the token contract).
// It is a deterministic grouping, not a graph clustering algorithm.
type KeyDetector struct{}

func NewKeyDetector() Detector {
	return &KeyDetector{}
}

// Group is one partition of assets sharing a grouping key.
type Group struct {
	Key     string
	Index   int // discovery order of Key in the input
	Members []*model.AssetRecord

	// InternalConnections counts parent links that resolve to another
	// member of the same group.
	InternalConnections int
	HasConnections      bool
}

func (g *Group) Size() int {
	return len(g.Members)
}

func (g *Group) Tier() Tier {
	return Classify(len(g.Members))
}

// Ref locates an asset inside a partition.
type Ref struct {
	Asset *model.AssetRecord
	Group *Group
}

// Partition is the result of one grouping pass. Groups are ordered by the
// first appearance of their key in the input.
type Partition struct {
	Groups []*Group
	Assets []model.AssetRecord

	byKey map[string]*Group
	byID  map[string]Ref
}

func (d *KeyDetector) Detect(assets []model.AssetRecord) *Partition {
	p := &Partition{
		Assets: assets,
		byKey:  make(map[string]*Group),
		byID:   make(map[string]Ref, len(assets)),
	}

	for i := range assets {
		a := &assets[i]
		key := a.GroupKey
		if key == "" {
			key = model.UnknownGroup
		}

		g, ok := p.byKey[key]
		if !ok {
			g = &Group{Key: key, Index: len(p.Groups)}
			p.byKey[key] = g
			p.Groups = append(p.Groups, g)
		}
		g.Members = append(g.Members, a)

		// Ids are unique per run; if not, the first record owns the id.
		if _, dup := p.byID[a.ID]; !dup {
			p.byID[a.ID] = Ref{Asset: a, Group: g}
		}
	}

	for _, g := range p.Groups {
		for _, m := range g.Members {
			for _, pid := range m.ParentIDs {
				ref, ok := p.byID[pid]
				if ok && ref.Group == g && ref.Asset != m {
					g.InternalConnections++
				}
			}
			if m.ChildrenCount > 0 || m.DescendantCount > 0 {
				g.HasConnections = true
			}
		}
		if g.InternalConnections > 0 {
			g.HasConnections = true
		}
	}

	return p
}

// Lookup resolves an asset id. Dangling ids report false.
func (p *Partition) Lookup(id string) (Ref, bool) {
	ref, ok := p.byID[id]
	return ref, ok
}

// Largest returns the size of the largest group, or 0 for an empty partition.
func (p *Partition) Largest() int {
	largest := 0
	for _, g := range p.Groups {
		if g.Size() > largest {
			largest = g.Size()
		}
	}
	return largest
}
