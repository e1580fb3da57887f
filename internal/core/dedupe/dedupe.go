package dedupe

import (
	"github.com/agenthands/storygraph/internal/core/model"
)

// EdgeSet collects edges, keeping at most one edge per unordered node pair.
// The first edge added for a pair wins.
type EdgeSet struct {
	seen  map[string]struct{}
	edges []model.VisualEdge
}

func NewEdgeSet() *EdgeSet {
	return &EdgeSet{
		seen:  make(map[string]struct{}),
		edges: []model.VisualEdge{},
	}
}

// PairKey is the identity of the unordered pair {a, b}.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Add appends e unless an edge between the same two nodes already exists.
// Self-loops are rejected. It reports whether e was added.
func (s *EdgeSet) Add(e model.VisualEdge) bool {
	if e.Source == e.Target {
		return false
	}
	key := PairKey(e.Source, e.Target)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	if e.ID == "" {
		e.ID = e.Source + "-" + e.Target
	}
	s.edges = append(s.edges, e)
	return true
}

// Edges returns the collected edges in insertion order.
func (s *EdgeSet) Edges() []model.VisualEdge {
	return s.edges
}
