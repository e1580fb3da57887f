package community

import (
	"fmt"

	"github.com/agenthands/storygraph/internal/core/model"
)

// assetsIn builds n childless assets in group key with ids prefix1..prefixN.
func assetsIn(key, prefix string, n int) []model.AssetRecord {
	out := make([]model.AssetRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.AssetRecord{
			ID:        fmt.Sprintf("%s%d", prefix, i),
			GroupKey:  key,
			ParentIDs: []string{},
		})
	}
	return out
}
