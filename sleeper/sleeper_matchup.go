package sleeper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/knix24/sleeper-pixel-performance/model"
)

type sleeperMatchup struct {
	RosterID      int           `json:"roster_id"`
	MatchupID     int           `json:"matchup_id"`
	Points        float64       `json:"points"`
	Players       []string      `json:"players"`
	Starters      []string      `json:"starters"`
	PlayersPoints orderedPoints `json:"players_points"`
}

func (m *sleeperMatchup) toMatchup(week int) *model.Matchup {
	return &model.Matchup{
		Week:          week,
		RosterID:      m.RosterID,
		MatchupID:     m.MatchupID,
		Points:        m.Points,
		PlayersPoints: []model.PlayerPoint(m.PlayersPoints),
		Players:       m.Players,
		Starters:      m.Starters,
	}
}

// orderedPoints decodes the players_points object while keeping the order of
// its keys. Ties in the weekly rankings are broken by this order, so it can't
// be decoded into a map. A null object decodes to nil, a null score to 0.
type orderedPoints []model.PlayerPoint

func (op *orderedPoints) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("error reading players_points: %w", err)
	}
	if tok == nil {
		*op = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("players_points should be an object, got %v", tok)
	}

	points := make(orderedPoints, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("error reading players_points: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("players_points key should be a string, got %v", tok)
		}

		var v *float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("error parsing points for player %s: %w", id, err)
		}

		pp := model.PlayerPoint{PlayerID: id}
		if v != nil {
			pp.Points = *v
		}
		points = append(points, pp)
	}

	*op = points
	return nil
}
