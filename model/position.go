package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_K       Position = "K"
	POS_DEF     Position = "DEF"
)

// RankedPositions lists the positions that get weekly rankings, in display order.
var RankedPositions = []Position{POS_QB, POS_RB, POS_WR, POS_TE, POS_K, POS_DEF}

func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "qb":
		return POS_QB
	case "rb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "k":
		return POS_K
	case "def":
		return POS_DEF
	default:
		return POS_UNKNOWN
	}
}

// IsRanked returns true for the six positions that are ranked each week.
func (p Position) IsRanked() bool {
	return p.Order() < len(RankedPositions)
}

// Order is the sort order used when displaying players grouped by position.
// Unranked positions sort after all ranked ones.
func (p Position) Order() int {
	for i, r := range RankedPositions {
		if r == p {
			return i
		}
	}
	return len(RankedPositions)
}
