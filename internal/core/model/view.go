package model

// View modes.
const (
	ModeCommunity = "community"
	ModeOptimized = "optimized"
	ModeFull      = "full"
)

type TierBreakdown struct {
	Large  int `json:"large"`
	Medium int `json:"medium"`
	Small  int `json:"small"`
	Tiny   int `json:"tiny"`
}

// BudgetStats are reported by the optimized and full views only.
type BudgetStats struct {
	TotalCommunities    int `json:"totalCommunities"`
	FilteredCommunities int `json:"filteredCommunities"`
	OptimizedNodes      int `json:"optimizedNodes"`
	OptimizedEdges      int `json:"optimizedEdges"`
}

// CommunityStats are reported by the community view only.
type CommunityStats struct {
	TotalConnections int `json:"totalConnections"`
}

// Stats summarizes the dataset and what a view actually emitted.
// The tier breakdown always covers every group, not only the visible ones.
type Stats struct {
	TotalAssets   int           `json:"totalAssets"`
	TotalGroups   int           `json:"totalGroups"`
	VisibleGroups int           `json:"visibleGroups"`
	LargestGroup  int           `json:"largestGroup"`
	TierBreakdown TierBreakdown `json:"tierBreakdown"`
	NodeCount     int           `json:"nodeCount"`
	EdgeCount     int           `json:"edgeCount"`

	*BudgetStats
	*CommunityStats
}

// View is the response contract consumed by the rendering layer.
type View struct {
	Mode  string       `json:"mode"`
	Nodes []VisualNode `json:"nodes"`
	Edges []VisualEdge `json:"edges"`
	Stats Stats        `json:"stats"`
	Empty bool         `json:"empty"`
}
