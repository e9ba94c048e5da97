package model

// Tier is a coarse performance bucket derived only from a player's weekly
// positional rank. A week with no score has no tier at all.
type Tier int

const (
	TIER_ELITE Tier = iota
	TIER_GREAT
	TIER_GOOD
	TIER_AVERAGE
)

// Tiers in order from best to worst.
var Tiers = []Tier{TIER_ELITE, TIER_GREAT, TIER_GOOD, TIER_AVERAGE}

func TierFromRank(rank int) Tier {
	switch {
	case rank <= 5:
		return TIER_ELITE
	case rank <= 10:
		return TIER_GREAT
	case rank <= 15:
		return TIER_GOOD
	default:
		return TIER_AVERAGE
	}
}

func (t Tier) String() string {
	switch t {
	case TIER_ELITE:
		return "elite"
	case TIER_GREAT:
		return "great"
	case TIER_GOOD:
		return "good"
	default:
		return "average"
	}
}

// Label is the legend text for the tier.
func (t Tier) Label() string {
	switch t {
	case TIER_ELITE:
		return "Top 5"
	case TIER_GREAT:
		return "Top 10"
	case TIER_GOOD:
		return "Top 15"
	default:
		return "Below"
	}
}
