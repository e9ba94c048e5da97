package rankings

import (
	"github.com/knix24/sleeper-pixel-performance/model"
)

// BuildRosterPerformance ranks every week from 1 to maxWeek and returns a
// result for each roster player that scored in that week. Weeks without any
// matchups are skipped, and so are players missing from the directory. The
// results are ordered by week, then by the order of rosterPlayerIDs.
func BuildRosterPerformance(rosterPlayerIDs []string, weekly map[int][]model.Matchup, players model.PlayerDirectory, maxWeek int) []model.PlayerWeekResult {
	results := make([]model.PlayerWeekResult, 0, len(rosterPlayerIDs)*maxWeek)

	for week := 1; week <= maxWeek; week++ {
		matchups := weekly[week]
		if len(matchups) == 0 {
			continue
		}

		// Ranking is done across the whole league at once, never per player.
		ranking := ComputeWeeklyRankings(matchups, players)

		for _, id := range rosterPlayerIDs {
			p, found := players.Lookup(id)
			if !found {
				continue
			}
			r, found := ranking[id]
			if !found {
				continue
			}
			results = append(results, model.PlayerWeekResult{
				PlayerID:   id,
				PlayerName: p.DisplayName(),
				Position:   p.Position,
				Week:       week,
				Points:     r.Points,
				Rank:       r.Rank,
				Tier:       r.Tier,
			})
		}
	}

	return results
}

// RosterWeeksFromMatchups works out which weeks each player was on the given
// roster by looking at the players listed for that roster in each week's matchups.
func RosterWeeksFromMatchups(rosterID int, weekly map[int][]model.Matchup, maxWeek int) model.RosterWeeks {
	rw := make(model.RosterWeeks)
	for week := 1; week <= maxWeek; week++ {
		for _, m := range weekly[week] {
			if m.RosterID != rosterID {
				continue
			}
			for _, id := range m.Players {
				rw.Add(id, week)
			}
		}
	}
	return rw
}

// HistoricalPlayerIDs returns the current roster followed by every other
// player that spent at least one week on the roster, without duplicates.
func HistoricalPlayerIDs(current []string, rosterID int, weekly map[int][]model.Matchup, maxWeek int) []string {
	ids := make([]string, 0, len(current))
	seen := make(map[string]bool)
	for _, id := range current {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	// Walk the matchups rather than the map so the order is deterministic.
	for week := 1; week <= maxWeek; week++ {
		for _, m := range weekly[week] {
			if m.RosterID != rosterID {
				continue
			}
			for _, id := range m.Players {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}
