package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/knix24/sleeper-pixel-performance/cache"
	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/knix24/sleeper-pixel-performance/sleeper"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	playersCacheKey = "players:nfl"
	playersCacheTTL = 24 * time.Hour

	// Number of weeks of matchups requested from sleeper at the same time.
	weekFetchLimit = 4
)

var (
	ErrRosterNotFound = errors.New("could not find your roster in this league")
	ErrEmptyRoster    = errors.New("your roster has no players")
)

// C encapsulates business logic without worrying about how the results are displayed
type C interface {
	// Works out which season to show and the last week to include. An empty season means
	// the current one and a week of 0 means as many weeks as have been played.
	ResolveSeason(ctx context.Context, season string, week int) (string, int, error)
	GetLeagues(ctx context.Context, username, season string) (*model.User, []model.League, error)

	BuildTeamReport(ctx context.Context, req ReportRequest) (*model.Report, error)
	BuildCompareReport(ctx context.Context, req ReportRequest) (*model.CompareReport, error)
}

// ReportRequest identifies the league, team and weeks a report covers.
type ReportRequest struct {
	Username string
	LeagueID string
	Season   string
	MaxWeek  int
	// Include players that were on the roster in earlier weeks but have since left.
	History bool
}

type controller struct {
	clock   clock.Clock
	sleeper sleeper.Client
	cache   cache.Store
	log     *logrus.Logger
}

func New(clock clock.Clock, sleeper sleeper.Client, store cache.Store, log *logrus.Logger) (C, error) {
	if store == nil {
		store = cache.NopStore{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	c := &controller{
		clock:   clock,
		sleeper: sleeper,
		cache:   store,
		log:     log,
	}
	return c, nil
}

// The player dump from sleeper is around 5MB and rarely changes, so it is
// cached for a day.
func (c *controller) loadPlayers(ctx context.Context) (model.PlayerDirectory, error) {
	var players model.PlayerDirectory
	err := c.cache.Get(ctx, playersCacheKey, &players)
	if err == nil {
		c.log.Debugf("loaded %d players from cache", len(players))
		return players, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.log.WithError(err).Warn("error reading player cache, loading from sleeper")
	}

	start := c.clock.Now()
	players, err = c.sleeper.LoadPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading players from sleeper: %w", err)
	}
	c.log.Debugf("loaded %d players from sleeper, took %v", len(players), c.clock.Now().Sub(start))

	if err := c.cache.Set(ctx, playersCacheKey, players, playersCacheTTL); err != nil {
		c.log.WithError(err).Warn("error saving player cache")
	}
	return players, nil
}

// fetchWeeks loads the matchups for weeks 1 through maxWeek. The first error
// cancels the remaining requests.
func (c *controller) fetchWeeks(ctx context.Context, leagueID string, maxWeek int) (map[int][]model.Matchup, error) {
	weekly := make(map[int][]model.Matchup, maxWeek)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(weekFetchLimit)

	for week := 1; week <= maxWeek; week++ {
		week := week
		g.Go(func() error {
			matchups, err := c.sleeper.GetMatchups(ctx, leagueID, week)
			if err != nil {
				return fmt.Errorf("error loading matchups for week %d: %w", week, err)
			}

			mu.Lock()
			defer mu.Unlock()
			weekly[week] = matchups
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return weekly, nil
}
