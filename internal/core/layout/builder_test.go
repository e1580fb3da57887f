package layout

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storygraph/internal/core/community"
	"github.com/agenthands/storygraph/internal/core/model"
)

func members(key, prefix string, n int) []model.AssetRecord {
	out := make([]model.AssetRecord, n)
	for i := range out {
		out[i] = model.AssetRecord{
			ID:        fmt.Sprintf("%s%d", prefix, i+1),
			GroupKey:  key,
			ParentIDs: []string{},
		}
	}
	return out
}

func build(assets []model.AssetRecord, policy Policy) Result {
	p := community.NewKeyDetector().Detect(assets)
	return Build(p, policy, community.NewLabeler(nil))
}

func TestBuild_LargeGroupCollapses(t *testing.T) {
	assets := members("G", "g", 150)
	for i := range assets {
		assets[i].DescendantCount = 1
		assets[i].ChildrenCount = 2
	}

	res := build(assets, FullPolicy())

	require.Len(t, res.Nodes, 1)
	n := res.Nodes[0]
	assert.Equal(t, "group_G", n.ID)
	assert.True(t, n.IsGroupAggregate)
	assert.Equal(t, 150, n.MemberCount)
	assert.Equal(t, 150, n.DescendantCount)
	assert.Equal(t, 300, n.ChildrenCount)
	assert.InDelta(t, 120.0, n.Size, 1e-9) // 50 + ln(150)*15 > 120
	assert.Empty(t, res.Edges)
}

func TestBuild_MediumFallback(t *testing.T) {
	assets := members("M", "m", 25)
	for i := range assets {
		assets[i].ParentCount = 1 // registered parents but none resolvable: not a root
	}

	for _, policy := range []Policy{OptimizedPolicy(), FullPolicy()} {
		res := build(assets, policy)
		require.Len(t, res.Nodes, 5, policy.Mode)
		for i, n := range res.Nodes {
			assert.Equal(t, fmt.Sprintf("m%d", i+1), n.ID)
			assert.False(t, n.IsGroupAggregate)
			assert.Equal(t, 25.0, n.Size)
		}
		assert.Empty(t, res.Edges)
	}
}

func TestBuild_MediumImportantSubsetCapped(t *testing.T) {
	// 40 roots: all important, optimized cap is min(25, ceil(40*0.3)) = 12
	assets := members("M", "m", 40)
	res := build(assets, OptimizedPolicy())
	assert.Len(t, res.Nodes, 12)

	res = build(assets, FullPolicy())
	assert.Len(t, res.Nodes, 20) // min(40, ceil(40*0.5))
}

func TestBuild_MediumInternalEdges(t *testing.T) {
	assets := members("M", "m", 20)
	assets[1].ParentIDs = []string{"m1"}
	assets[2].ParentIDs = []string{"m1", "m2"}
	assets[3].ParentIDs = []string{"m19"} // outside the selected subset

	res := build(assets, OptimizedPolicy()) // cap ceil(20*0.3) = 6

	require.Len(t, res.Nodes, 6)
	require.Len(t, res.Edges, 3)
	assert.Equal(t, model.VisualEdge{ID: "m1-m2", Source: "m1", Target: "m2", Weight: 2, Kind: model.EdgeParentChild}, res.Edges[0])
	assert.Equal(t, "m1-m3", res.Edges[1].ID)
	assert.Equal(t, "m2-m3", res.Edges[2].ID)
}

func TestBuild_SmallGroupSampling(t *testing.T) {
	assets := members("S", "s", 18)
	assets[0].ChildrenCount = 1
	assets[0].DisplayName = "A fairly long creative work title"
	assets[5].ParentIDs = []string{"s1"}
	assets[5].DescendantCount = 10

	res := build(assets, OptimizedPolicy())
	require.Len(t, res.Nodes, 15)
	assert.Equal(t, "A fairly long creati", res.Nodes[0].Label)
	assert.Equal(t, "s2", res.Nodes[1].Label)
	assert.Equal(t, 50.0, res.Nodes[5].Size)
	assert.Equal(t, 20.0, res.Nodes[1].Size)

	require.Len(t, res.Edges, 1)
	assert.Equal(t, 1.0, res.Edges[0].Weight)

	res = build(assets, FullPolicy())
	assert.Len(t, res.Nodes, 18)
}

func TestBuild_CrossGroupEdges(t *testing.T) {
	var assets []model.AssetRecord
	assets = append(assets, members("L", "l", 100)...)
	assets = append(assets, members("S", "s", 10)...)
	assets[100].ChildrenCount = 1
	assets[101].ParentIDs = []string{"l1"}
	assets[102].ParentIDs = []string{"l2"} // second link out of the same aggregate
	assets[103].ParentIDs = []string{"s1"} // internal

	res := build(assets, FullPolicy())

	require.Len(t, res.Nodes, 11)
	assert.Equal(t, "group_L", res.Nodes[0].ID)

	var cross []model.VisualEdge
	for _, e := range res.Edges {
		if e.Kind == model.EdgeCrossGroup {
			cross = append(cross, e)
		}
	}
	require.Len(t, cross, 2)
	assert.Equal(t, 2, res.CrossGroupEdges)
	assert.Equal(t, "group_L-s2", cross[0].ID)
	assert.Equal(t, 3.0, cross[0].Weight)
	assert.Equal(t, "group_L-s3", cross[1].ID)
}

func TestBuild_CrossGroupCap(t *testing.T) {
	// 30 nodes in optimized mode: cap = min(30, floor(30*0.1)) = 3
	var assets []model.AssetRecord
	for g := 0; g < 3; g++ {
		grp := members(fmt.Sprintf("K%d", g), fmt.Sprintf("k%d-", g), 10)
		for i := range grp {
			grp[i].ChildrenCount = 1
		}
		assets = append(assets, grp...)
	}
	for i := 10; i < 30; i++ {
		assets[i].ParentIDs = []string{fmt.Sprintf("k0-%d", i%10+1)}
	}

	res := build(assets, OptimizedPolicy())
	require.Len(t, res.Nodes, 30)
	assert.Equal(t, 3, res.CrossGroupEdges)
	assert.Len(t, res.Edges, 3)
	// first found wins
	assert.Equal(t, "k0-1-k1-1", res.Edges[0].ID)
}

func TestBuild_EdgeDedupAcrossDirections(t *testing.T) {
	assets := members("S", "s", 5)
	assets[0].ParentIDs = []string{"s2"}
	assets[1].ParentIDs = []string{"s1"}

	res := build(assets, FullPolicy())
	require.Len(t, res.Edges, 1)
	assert.Equal(t, "s2-s1", res.Edges[0].ID)
}

func TestBuild_DuplicateIDsRenderOnce(t *testing.T) {
	assets := members("S", "s", 5)
	assets = append(assets, model.AssetRecord{ID: "s1", GroupKey: "S"})

	res := build(assets, FullPolicy())
	assert.Len(t, res.Nodes, 5)
}

func TestBuild_Empty(t *testing.T) {
	for _, policy := range []Policy{OptimizedPolicy(), FullPolicy()} {
		res := build(nil, policy)
		assert.NotNil(t, res.Nodes)
		assert.NotNil(t, res.Edges)
		assert.Empty(t, res.Nodes)
		assert.Empty(t, res.Edges)
		assert.Empty(t, res.Qualifying)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	var assets []model.AssetRecord
	assets = append(assets, members("A", "a", 120)...)
	assets = append(assets, members("B", "b", 30)...)
	assets = append(assets, members("C", "c", 12)...)
	assets[125].ParentIDs = []string{"a3"}
	assets[155].ParentIDs = []string{"b1"}

	for _, policy := range []Policy{OptimizedPolicy(), FullPolicy()} {
		first, err := json.Marshal(build(assets, policy))
		require.NoError(t, err)
		second, err := json.Marshal(build(assets, policy))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}
