package sleeper

import (
	"strings"

	"github.com/knix24/sleeper-pixel-performance/model"
)

type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

// toPlayer converts the player. The directory key is used as the id because
// some entries, like team defenses, don't always repeat it in the body.
func (p *sleeperPlayer) toPlayer(key string) *model.Player {
	id := p.ID
	if id == "" {
		id = key
	}
	return &model.Player{
		ID:        id,
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		FullName:  strings.TrimSpace(p.FullName),
		Position:  model.ParsePosition(p.Position),
		Team:      p.Team,
		Active:    p.Active,
	}
}
