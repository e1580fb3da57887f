package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[int]Tier{
		0:   TierTiny,
		3:   TierTiny,
		9:   TierTiny,
		10:  TierSmall,
		15:  TierSmall,
		19:  TierSmall,
		20:  TierMedium,
		50:  TierMedium,
		99:  TierMedium,
		100: TierLarge,
		150: TierLarge,
	}
	for size, want := range cases {
		assert.Equal(t, want, Classify(size), "size %d", size)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[Tier]int{TierTiny: 0, TierSmall: 1, TierMedium: 2, TierLarge: 3}
	prev := rank[Classify(0)]
	for size := 1; size <= 300; size++ {
		cur := rank[Classify(size)]
		assert.GreaterOrEqual(t, cur, prev, "size %d", size)
		prev = cur
	}
}

func TestLabeler(t *testing.T) {
	l := NewLabeler(map[string]string{"0xdeadbeefcafe": "Custom"})
	assert.Equal(t, "Story NFT", l.Label("0x937BEF10bA6Fb941ED84b8d249Abc76031429A9a"))
	assert.Equal(t, "Custom", l.Label("0xdeadbeefcafe"))
	assert.Equal(t, "0x123456...", l.Label("0x1234567890"))
	assert.Equal(t, "unknown", l.Label("unknown"))

	var empty Labeler
	assert.Equal(t, "0xabc...", empty.Label("0xabc"))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#8b5cf6", Color(0))
	assert.Equal(t, Color(0), Color(len(palette)))
	assert.Equal(t, Color(1), Color(len(palette)+1))
}
