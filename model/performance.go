package model

// PlayerWeekResult is how a single player ranked at their position in a single week.
type PlayerWeekResult struct {
	PlayerID   string
	PlayerName string
	Position   Position
	Week       int
	Points     float64
	Rank       int
	Tier       Tier
}

// RosterWeeks maps a player id to the set of weeks the player was on a roster.
type RosterWeeks map[string]map[int]bool

// Add records that the player was on the roster during week.
func (rw RosterWeeks) Add(playerID string, week int) {
	weeks, found := rw[playerID]
	if !found {
		weeks = make(map[int]bool)
		rw[playerID] = weeks
	}
	weeks[week] = true
}

// OnRoster reports if the player was on the roster during week. An empty
// RosterWeeks means roster history is unknown, so every week counts.
func (rw RosterWeeks) OnRoster(playerID string, week int) bool {
	if len(rw) == 0 {
		return true
	}
	return rw[playerID][week]
}

// Report is everything needed to draw the grid for a single team.
type Report struct {
	Season     string
	LeagueName string
	TeamName   string
	MaxWeek    int
	Results    []PlayerWeekResult
	// RosterWeeks is nil when roster history is not being tracked.
	RosterWeeks RosterWeeks
}

type TeamReport struct {
	TeamName    string
	Results     []PlayerWeekResult
	RosterWeeks RosterWeeks
}

// CompareReport holds a grid for every team in a league.
type CompareReport struct {
	Season     string
	LeagueName string
	MaxWeek    int
	Teams      []TeamReport
}
