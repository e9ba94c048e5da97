package model

type User struct {
	UserID      string
	Username    string
	DisplayName string
}

// SportState is the current season and week as reported by the platform.
type SportState struct {
	Season string
	Week   int
}

type League struct {
	ExternalID string
	Name       string
	Year       string
	Status     string
}

type LeagueManager struct {
	ExternalID  string
	TeamName    string
	ManagerName string
}

type Roster struct {
	RosterID  int
	OwnerID   string
	PlayerIDs []string
}

// PlayerPoint is the fantasy points one player scored for a team in a week.
type PlayerPoint struct {
	PlayerID string
	Points   float64
}

// Matchup is one team's side of a weekly head-to-head pairing. Both teams in a
// pairing share the same MatchupID.
type Matchup struct {
	Week      int
	RosterID  int
	MatchupID int
	Points    float64
	// PlayersPoints keeps the order the platform listed the players in. It is
	// nil when the platform has no scoring data for the team yet.
	PlayersPoints []PlayerPoint
	// Players are all the player ids on the roster that week, starters and bench.
	Players  []string
	Starters []string
}
