// Package rankings ranks players against everyone else at their position for
// a week, and turns those weekly ranks into per-player results for a roster.
package rankings

import (
	"slices"

	"github.com/knix24/sleeper-pixel-performance/model"
)

// PlayerRanking is where one player finished at their position for a week.
type PlayerRanking struct {
	Position model.Position
	Points   float64
	Rank     int
	Tier     model.Tier
}

// WeeklyRanking maps player ids to their ranking for a single week.
type WeeklyRanking map[string]PlayerRanking

type scoredPlayer struct {
	id     string
	points float64
}

// ComputeWeeklyRankings ranks every scored player in the week's matchups
// within their position. Players missing from the directory or playing a
// position that isn't ranked are left out. Equal scores keep the order the
// players appeared in the matchups.
func ComputeWeeklyRankings(matchups []model.Matchup, players model.PlayerDirectory) WeeklyRanking {
	byPosition := make(map[model.Position][]scoredPlayer)
	seen := make(map[string]bool)

	for _, m := range matchups {
		if m.PlayersPoints == nil {
			continue
		}
		for _, pp := range m.PlayersPoints {
			p, found := players.Lookup(pp.PlayerID)
			if !found || !p.Position.IsRanked() {
				continue
			}
			// A player can only score once per week.
			if seen[pp.PlayerID] {
				continue
			}
			seen[pp.PlayerID] = true
			byPosition[p.Position] = append(byPosition[p.Position], scoredPlayer{id: pp.PlayerID, points: pp.Points})
		}
	}

	result := make(WeeklyRanking, len(seen))
	for pos, scores := range byPosition {
		slices.SortStableFunc(scores, func(a, b scoredPlayer) int {
			switch {
			case a.points > b.points:
				return -1
			case a.points < b.points:
				return 1
			default:
				return 0
			}
		})

		for i, s := range scores {
			rank := i + 1
			result[s.id] = PlayerRanking{
				Position: pos,
				Points:   s.points,
				Rank:     rank,
				Tier:     model.TierFromRank(rank),
			}
		}
	}

	return result
}
