package controller

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/knix24/sleeper-pixel-performance/rankings"
)

const unknownTeamName = "Unknown"

// leagueData is everything fetched from sleeper that a report is built from.
type leagueData struct {
	league    *model.League
	rosters   []model.Roster
	teamNames map[string]string // owner id -> team name
	weekly    map[int][]model.Matchup
	players   model.PlayerDirectory
}

func (c *controller) loadLeagueData(ctx context.Context, req ReportRequest) (*leagueData, error) {
	if req.LeagueID == "" {
		return nil, errors.New("league id must be provided")
	}
	if req.MaxWeek < 1 || req.MaxWeek > maxWeeks {
		return nil, fmt.Errorf("max week must be between 1 and %d, got: %d", maxWeeks, req.MaxWeek)
	}

	league, err := c.sleeper.GetLeague(ctx, req.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading league %s: %w", req.LeagueID, err)
	}

	c.log.Info("Fetching rosters...")
	rosters, err := c.sleeper.GetRosters(ctx, req.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters for %s: %w", req.LeagueID, err)
	}

	managers, err := c.sleeper.GetLeagueManagers(ctx, req.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading managers for %s: %w", req.LeagueID, err)
	}
	teamNames := make(map[string]string, len(managers))
	for _, m := range managers {
		teamNames[m.ExternalID] = m.TeamName
	}

	c.log.Infof("Fetching matchups for weeks 1-%d...", req.MaxWeek)
	start := c.clock.Now()
	weekly, err := c.fetchWeeks(ctx, req.LeagueID, req.MaxWeek)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("fetched %d weeks of matchups, took %v", req.MaxWeek, c.clock.Now().Sub(start))

	c.log.Info("Loading player database...")
	players, err := c.loadPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return &leagueData{
		league:    league,
		rosters:   rosters,
		teamNames: teamNames,
		weekly:    weekly,
		players:   players,
	}, nil
}

// rosterPlayers returns the ids to report on for a roster along with the
// weeks each of them was on it.
func (d *leagueData) rosterPlayers(r *model.Roster, maxWeek int, history bool) ([]string, model.RosterWeeks) {
	rw := rankings.RosterWeeksFromMatchups(r.RosterID, d.weekly, maxWeek)
	if history {
		return rankings.HistoricalPlayerIDs(r.PlayerIDs, r.RosterID, d.weekly, maxWeek), rw
	}
	return r.PlayerIDs, rw
}

func (c *controller) BuildTeamReport(ctx context.Context, req ReportRequest) (*model.Report, error) {
	user, err := c.getUser(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	d, err := c.loadLeagueData(ctx, req)
	if err != nil {
		return nil, err
	}

	var roster *model.Roster
	for i := range d.rosters {
		if d.rosters[i].OwnerID == user.UserID {
			roster = &d.rosters[i]
			break
		}
	}
	if roster == nil {
		return nil, ErrRosterNotFound
	}
	if len(roster.PlayerIDs) == 0 {
		return nil, ErrEmptyRoster
	}

	teamName := d.teamNames[user.UserID]
	if teamName == "" {
		teamName = user.DisplayName
	}
	if teamName == "" {
		teamName = user.Username
	}

	c.log.Info("Calculating positional rankings...")
	ids, rw := d.rosterPlayers(roster, req.MaxWeek, req.History)
	results := rankings.BuildRosterPerformance(ids, d.weekly, d.players, req.MaxWeek)

	return &model.Report{
		Season:      req.Season,
		LeagueName:  d.league.Name,
		TeamName:    teamName,
		MaxWeek:     req.MaxWeek,
		Results:     results,
		RosterWeeks: rw,
	}, nil
}

func (c *controller) BuildCompareReport(ctx context.Context, req ReportRequest) (*model.CompareReport, error) {
	d, err := c.loadLeagueData(ctx, req)
	if err != nil {
		return nil, err
	}

	c.log.Info("Calculating positional rankings for all teams...")
	teams := make([]model.TeamReport, 0, len(d.rosters))
	for i := range d.rosters {
		r := &d.rosters[i]
		// Orphaned and empty rosters have nothing to show.
		if r.OwnerID == "" || len(r.PlayerIDs) == 0 {
			continue
		}

		teamName := d.teamNames[r.OwnerID]
		if teamName == "" {
			teamName = unknownTeamName
		}

		ids, rw := d.rosterPlayers(r, req.MaxWeek, req.History)
		teams = append(teams, model.TeamReport{
			TeamName:    teamName,
			Results:     rankings.BuildRosterPerformance(ids, d.weekly, d.players, req.MaxWeek),
			RosterWeeks: rw,
		})
	}

	slices.SortStableFunc(teams, func(a, b model.TeamReport) int {
		return cmp.Compare(a.TeamName, b.TeamName)
	})

	return &model.CompareReport{
		Season:     req.Season,
		LeagueName: d.league.Name,
		MaxWeek:    req.MaxWeek,
		Teams:      teams,
	}, nil
}
