package community

// Tier is a size bucket that drives the per-group rendering strategy.
type Tier string

const (
	TierLarge  Tier = "large"
	TierMedium Tier = "medium"
	TierSmall  Tier = "small"
	TierTiny   Tier = "tiny"
)

// Tier boundaries are inclusive at the lower edge.
const (
	LargeThreshold  = 100
	MediumThreshold = 20
	SmallThreshold  = 10

	// MinCommunitySize is the floor below which a group is never rendered
	// as a community of its own.
	MinCommunitySize = 5
)

func Classify(size int) Tier {
	switch {
	case size >= LargeThreshold:
		return TierLarge
	case size >= MediumThreshold:
		return TierMedium
	case size >= SmallThreshold:
		return TierSmall
	default:
		return TierTiny
	}
}
