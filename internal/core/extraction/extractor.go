package extraction

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/agenthands/storygraph/internal/core/model"
)

// ErrMissingID is returned for records that carry neither ipId nor id.
var ErrMissingID = errors.New("asset record has no id")

// FromIPAsset normalizes a raw indexer record into an AssetRecord.
func FromIPAsset(raw model.IPAsset) (model.AssetRecord, error) {
	id := strings.TrimSpace(raw.IPID)
	if id == "" {
		id = strings.TrimSpace(raw.ID)
	}
	if id == "" {
		return model.AssetRecord{}, ErrMissingID
	}

	rec := model.AssetRecord{
		ID:               id,
		GroupKey:         model.UnknownGroup,
		ParentIDs:        compact(raw.RootIPIDs),
		ChildrenCount:    nonNegative(raw.ChildrenCount),
		DescendantCount:  nonNegative(raw.DescendantCount),
		ParentCount:      nonNegative(raw.ParentCount),
		IsGroupAggregate: raw.IsGroup,
	}
	if md := raw.NFTMetadata; md != nil {
		rec.GroupKey = GroupKey(md.TokenContract)
		rec.DisplayName = md.Name
		rec.ImageURL = md.ImageURL
	}
	return rec, nil
}

// FromProps normalizes a flat property map, as returned by the graph store,
// into an AssetRecord. Integer properties may arrive as int64 or float64.
func FromProps(props map[string]any) (model.AssetRecord, error) {
	id := str(props["ipId"])
	if id == "" {
		id = str(props["id"])
	}
	if id == "" {
		return model.AssetRecord{}, ErrMissingID
	}

	parents, err := strList(props["rootIpIds"])
	if err != nil {
		return model.AssetRecord{}, errors.Wrapf(err, "asset %s: rootIpIds", id)
	}

	isGroup, _ := props["isGroup"].(bool)
	return model.AssetRecord{
		ID:               id,
		GroupKey:         GroupKey(str(props["tokenContract"])),
		DisplayName:      str(props["name"]),
		ImageURL:         str(props["imageUrl"]),
		ParentIDs:        compact(parents),
		ChildrenCount:    nonNegative(integer(props["childrenCount"])),
		DescendantCount:  nonNegative(integer(props["descendantCount"])),
		ParentCount:      nonNegative(integer(props["parentCount"])),
		IsGroupAggregate: isGroup,
	}, nil
}

// GroupKey maps a token contract to its grouping key.
func GroupKey(contract string) string {
	contract = strings.TrimSpace(contract)
	if contract == "" {
		return model.UnknownGroup
	}
	return contract
}

// compact drops empty parent ids; order is preserved and the result is never nil.
func compact(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func integer(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func strList(v any) ([]string, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return l, nil
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("unexpected element type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf("unexpected type %T", v)
	}
}
