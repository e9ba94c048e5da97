package mocksleeper

import (
	"context"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetState(ctx context.Context, sport string) (*model.SportState, error) {
	args := c.Called(ctx, sport)

	var res *model.SportState
	if args.Get(0) != nil {
		res = args.Get(0).(*model.SportState)
	}

	return res, args.Error(1)
}

func (c *Client) GetUser(ctx context.Context, username string) (*model.User, error) {
	args := c.Called(ctx, username)

	var res *model.User
	if args.Get(0) != nil {
		res = args.Get(0).(*model.User)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error) {
	args := c.Called(ctx, userID, year)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	args := c.Called(ctx, leagueID)

	var res *model.League
	if args.Get(0) != nil {
		res = args.Get(0).(*model.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Roster)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeagueManagers(ctx context.Context, leagueID string) ([]model.LeagueManager, error) {
	args := c.Called(ctx, leagueID)

	var res []model.LeagueManager
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueManager)
	}

	return res, args.Error(1)
}

func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.Matchup, error) {
	args := c.Called(ctx, leagueID, week)

	var res []model.Matchup
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Matchup)
	}

	return res, args.Error(1)
}

func (c *Client) LoadPlayers(ctx context.Context) (model.PlayerDirectory, error) {
	args := c.Called(ctx)

	var res model.PlayerDirectory
	if args.Get(0) != nil {
		res = args.Get(0).(model.PlayerDirectory)
	}

	return res, args.Error(1)
}
