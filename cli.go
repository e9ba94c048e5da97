package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knix24/sleeper-pixel-performance/config"
	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/knix24/sleeper-pixel-performance/grid"
	"github.com/knix24/sleeper-pixel-performance/model"
)

// runCLI builds a report for the configured user and league and draws it to
// out, or to an HTML file when one is configured.
func runCLI(ctx context.Context, cfg *config.Config, ctrl controller.C, in io.Reader, out io.Writer) error {
	season, maxWeek, err := ctrl.ResolveSeason(ctx, cfg.Season, cfg.Week)
	if err != nil {
		return err
	}

	_, leagues, err := ctrl.GetLeagues(ctx, cfg.Username, season)
	if err != nil {
		return err
	}

	leagueID := cfg.League
	if leagueID == "" {
		l, err := promptLeague(ctx, bufio.NewReader(in), out, leagues)
		if err != nil {
			return err
		}
		leagueID = l.ExternalID
	} else if l, err := controller.SelectLeague(leagues, leagueID); err == nil {
		leagueID = l.ExternalID
	}

	req := controller.ReportRequest{
		Username: cfg.Username,
		LeagueID: leagueID,
		Season:   season,
		MaxWeek:  maxWeek,
		History:  cfg.History,
	}
	opts := grid.Options{
		ShowPoints: cfg.ShowPoints,
		Positions:  cfg.Positions,
	}

	var leagueName string
	if cfg.Compare {
		report, err := ctrl.BuildCompareReport(ctx, req)
		if err != nil {
			return err
		}
		leagueName = report.LeagueName

		if cfg.HTML != "" {
			if err := grid.ExportCompareHTML(cfg.HTML, report, opts); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported to %s\n", cfg.HTML)
		} else if err := grid.RenderCompare(out, report, opts); err != nil {
			return err
		}
	} else {
		report, err := ctrl.BuildTeamReport(ctx, req)
		if err != nil {
			return err
		}
		leagueName = report.LeagueName

		if cfg.HTML != "" {
			if err := grid.ExportHTML(cfg.HTML, report, opts); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported to %s\n", cfg.HTML)
		} else if err := grid.RenderTerminal(out, report, opts); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "League: %s\n", leagueName)
	return nil
}

// promptLeague lists the leagues and asks until a valid choice is made.
// Pressing enter picks the first league.
func promptLeague(ctx context.Context, in *bufio.Reader, out io.Writer, leagues []model.League) (*model.League, error) {
	fmt.Fprintln(out, "\nSelect a league:")
	for i, l := range leagues {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, l.Name, l.ExternalID)
	}

	for {
		fmt.Fprint(out, "\nEnter number [1]: ")
		choice, err := readLine(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("no league selected: %w", err)
		}
		if choice == "" {
			choice = "1"
		}

		l, err := controller.SelectLeague(leagues, choice)
		if err == nil {
			return l, nil
		}
		fmt.Fprintf(out, "%v, try again\n", err)
	}
}

// readLine returns early when ctx is cancelled, since a read from a terminal
// can't be interrupted.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := in.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		// A last line without a newline is still an answer.
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
