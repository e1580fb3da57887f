package model

// TopMember is a compact summary of a prominent member of a community.
type TopMember struct {
	ID              string `json:"ipId"`
	Name            string `json:"name"`
	DescendantCount int    `json:"descendantCount"`
}

// VisualNode is one renderable node of a force-directed view.
//
// Individual asset nodes carry the asset's own counts. Group aggregates
// (IsGroupAggregate) carry totals over all members. Community rollup nodes
// additionally carry Brightness, AvgConnections and TopMembers.
type VisualNode struct {
	ID               string      `json:"id"`
	Label            string      `json:"label"`
	Size             float64     `json:"size"`
	Color            string      `json:"color"`
	GroupKey         string      `json:"groupKey"`
	Community        int         `json:"community"`
	IsGroupAggregate bool        `json:"isGroupAggregate"`
	MemberCount      int         `json:"memberCount,omitempty"`
	DescendantCount  int         `json:"descendantCount"`
	ChildrenCount    int         `json:"childrenCount"`
	Brightness       float64     `json:"brightness,omitempty"`
	HasConnections   bool        `json:"hasConnections,omitempty"`
	AvgConnections   float64     `json:"avgConnections,omitempty"`
	TopMembers       []TopMember `json:"topMembers,omitempty"`
}
