package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	yearOnlyFormat = "2006"
	defaultSeason  = "2024"

	// Weeks in a regular season, used when looking back at a completed season.
	regularSeasonWeeks = 17
	maxWeeks           = 18
)

var ErrNoLeagueMatch = errors.New("no league matches")

func (c *controller) ResolveSeason(ctx context.Context, season string, week int) (string, int, error) {
	if season != "" {
		if _, err := time.Parse(yearOnlyFormat, season); err != nil {
			return "", 0, fmt.Errorf("season must be in the YYYY format, got: %s", season)
		}
	}
	if week < 0 {
		return "", 0, fmt.Errorf("week must be a positive number, got: %d", week)
	}

	c.log.Info("Fetching NFL state...")
	state, err := c.sleeper.GetState(ctx, "nfl")
	if err != nil {
		return "", 0, fmt.Errorf("error fetching NFL state: %w", err)
	}

	current := state.Season
	if current == "" {
		current = defaultSeason
	}
	if season == "" {
		season = current
	}

	var maxWeek int
	switch {
	case week > 0:
		maxWeek = week
	case season != current:
		maxWeek = regularSeasonWeeks
	case state.Week > 0:
		maxWeek = state.Week
	default:
		// Sleeper reports week 0 before the season starts.
		maxWeek = regularSeasonWeeks
	}

	return season, min(maxWeek, maxWeeks), nil
}

func (c *controller) GetLeagues(ctx context.Context, username, season string) (*model.User, []model.League, error) {
	if _, err := time.Parse(yearOnlyFormat, season); err != nil {
		return nil, nil, fmt.Errorf("season must be in the YYYY format, got: %s", season)
	}

	user, err := c.getUser(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	c.log.Infof("Fetching %s leagues...", season)
	leagues, err := c.sleeper.GetLeaguesForUser(ctx, user.UserID, season)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading %s leagues for %s: %w", season, username, err)
	}
	return user, leagues, nil
}

func (c *controller) getUser(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username must be provided")
	}

	c.log.Infof("Looking up user %s...", username)
	user, err := c.sleeper.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error looking up user '%s': %w", username, err)
	}
	return user, nil
}

// SelectLeague picks a league from the list based on what the user typed.
// The choice can be the 1-based position in the list, a league ID, or part
// of a league name. When more than one name matches the closest one wins.
// A number that is neither a position nor an ID matches nothing.
func SelectLeague(leagues []model.League, choice string) (*model.League, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return nil, errors.New("a league must be selected")
	}

	n, err := strconv.Atoi(choice)
	isNumber := err == nil
	if isNumber && n >= 1 && n <= len(leagues) {
		return &leagues[n-1], nil
	}

	for i := range leagues {
		if leagues[i].ExternalID == choice {
			return &leagues[i], nil
		}
	}

	// Numbers are list positions or ids, never part of a name.
	if isNumber {
		return nil, fmt.Errorf("%w '%s'", ErrNoLeagueMatch, choice)
	}

	names := make([]string, len(leagues))
	for i, l := range leagues {
		names[i] = l.Name
	}
	ranks := fuzzy.RankFindFold(choice, names)
	if len(ranks) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrNoLeagueMatch, choice)
	}
	sort.Stable(ranks)
	return &leagues[ranks[0].OriginalIndex], nil
}
