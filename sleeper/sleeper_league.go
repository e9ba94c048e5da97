package sleeper

import (
	"github.com/knix24/sleeper-pixel-performance/model"
)

type sleeperState struct {
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
	Week       int    `json:"week"`
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (u *sleeperUser) toUser() *model.User {
	return &model.User{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

type sleeperLeague struct {
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Season   string `json:"season"`
	Status   string `json:"status"`
}

func (l *sleeperLeague) toLeague() *model.League {
	return &model.League{
		ExternalID: l.LeagueID,
		Name:       l.Name,
		Year:       l.Season,
		Status:     l.Status,
	}
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
}

type sleeperLeagueUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    *struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

// The team name is optional in sleeper, fall back to the display name and
// then the user id.
func (u *sleeperLeagueUser) toLeagueManager() *model.LeagueManager {
	m := &model.LeagueManager{
		ExternalID:  u.UserID,
		ManagerName: u.DisplayName,
	}
	if u.Metadata != nil {
		m.TeamName = u.Metadata.TeamName
	}
	if m.TeamName == "" {
		m.TeamName = u.DisplayName
	}
	if m.TeamName == "" {
		m.TeamName = u.UserID
	}
	return m
}
