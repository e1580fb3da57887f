package model

// Edge kinds emitted by the view builders.
const (
	EdgeParentChild    = "parent-child"
	EdgeCrossGroup     = "cross-group"
	EdgeCrossCommunity = "cross-community"
)

// VisualEdge is one renderable edge. Source is the parent side of the
// underlying relationship, Target the derivative side.
type VisualEdge struct {
	ID              string  `json:"id"`
	Source          string  `json:"source"`
	Target          string  `json:"target"`
	Weight          float64 `json:"weight"`
	Kind            string  `json:"kind"`
	ConnectionCount int     `json:"connectionCount,omitempty"`
}
