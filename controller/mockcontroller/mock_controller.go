package mockcontroller

import (
	"context"

	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) ResolveSeason(ctx context.Context, season string, week int) (string, int, error) {
	args := c.Called(ctx, season, week)
	return args.String(0), args.Int(1), args.Error(2)
}

func (c *C) GetLeagues(ctx context.Context, username, season string) (*model.User, []model.League, error) {
	args := c.Called(ctx, username, season)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}

	var leagues []model.League
	if args.Get(1) != nil {
		leagues = args.Get(1).([]model.League)
	}

	return u, leagues, args.Error(2)
}

func (c *C) BuildTeamReport(ctx context.Context, req controller.ReportRequest) (*model.Report, error) {
	args := c.Called(ctx, req)

	var r *model.Report
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Report)
	}

	return r, args.Error(1)
}

func (c *C) BuildCompareReport(ctx context.Context, req controller.ReportRequest) (*model.CompareReport, error) {
	args := c.Called(ctx, req)

	var r *model.CompareReport
	if args.Get(0) != nil {
		r = args.Get(0).(*model.CompareReport)
	}

	return r, args.Error(1)
}
