// Package grid draws roster performance as a pixel grid, one row per player
// and one column per week, either in the terminal or as a static HTML page.
package grid

import (
	"cmp"
	"slices"

	"github.com/knix24/sleeper-pixel-performance/model"
)

type CellState int

const (
	// The player wasn't on the roster that week.
	CELL_NOT_ROSTERED CellState = iota
	// On the roster but no score, usually a bye week or an injury.
	CELL_NO_DATA
	CELL_SCORED
)

type Cell struct {
	Week  int
	State CellState
	// Only set when State is CELL_SCORED.
	Result *model.PlayerWeekResult
}

type Row struct {
	PlayerID string
	Name     string
	Position model.Position
	Cells    []Cell
}

// Options control what is drawn.
type Options struct {
	// Show fantasy points in each cell instead of a tier symbol. Only used in the terminal.
	ShowPoints bool
	// Only show players at these positions. Empty means every position.
	Positions []model.Position
}

// PrepareRows groups results by player and orders the players by position,
// then by name. Every row has a cell for each week from 1 to maxWeek.
func PrepareRows(results []model.PlayerWeekResult, positions []model.Position, rw model.RosterWeeks, maxWeek int) []Row {
	var rows []Row
	index := make(map[string]int)

	for i := range results {
		r := &results[i]
		if len(positions) > 0 && !slices.Contains(positions, r.Position) {
			continue
		}
		if r.Week < 1 || r.Week > maxWeek {
			continue
		}

		idx, found := index[r.PlayerID]
		if !found {
			idx = len(rows)
			index[r.PlayerID] = idx
			rows = append(rows, newRow(r, rw, maxWeek))
		}
		rows[idx].Cells[r.Week-1] = Cell{Week: r.Week, State: CELL_SCORED, Result: r}
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(a.Position.Order(), b.Position.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rows
}

func newRow(r *model.PlayerWeekResult, rw model.RosterWeeks, maxWeek int) Row {
	row := Row{
		PlayerID: r.PlayerID,
		Name:     r.PlayerName,
		Position: r.Position,
		Cells:    make([]Cell, maxWeek),
	}
	for i := range row.Cells {
		week := i + 1
		state := CELL_NOT_ROSTERED
		if rw.OnRoster(r.PlayerID, week) {
			state = CELL_NO_DATA
		}
		row.Cells[i] = Cell{Week: week, State: state}
	}
	return row
}
