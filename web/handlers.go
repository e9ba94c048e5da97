package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/knix24/sleeper-pixel-performance/grid"
	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/knix24/sleeper-pixel-performance/sleeper"
	"github.com/unrolled/render"
)

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusOK, "index", nil)
	}
}

// findUserHandler turns the form on the root page into a leagues url.
func findUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.URL.Query().Get("username"))
		if username == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		target := fmt.Sprintf("/users/%s/leagues", url.PathEscape(username))
		if season := strings.TrimSpace(r.URL.Query().Get("season")); season != "" {
			target += "?season=" + url.QueryEscape(season)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func userLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseGridQuery(r.URL.Query())
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		season, _, err := ctrl.ResolveSeason(r.Context(), q.season, q.week)
		if err != nil {
			renderError(w, render, err)
			return
		}

		user, leagues, err := ctrl.GetLeagues(r.Context(), chi.URLParam(r, "username"), season)
		if err != nil {
			renderError(w, render, err)
			return
		}

		data := map[string]any{
			"User":    user,
			"Season":  season,
			"Leagues": leagues,
		}
		render.HTML(w, http.StatusOK, "leagues", data)
	}
}

func teamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseGridQuery(r.URL.Query())
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		season, maxWeek, err := ctrl.ResolveSeason(r.Context(), q.season, q.week)
		if err != nil {
			renderError(w, render, err)
			return
		}

		report, err := ctrl.BuildTeamReport(r.Context(), controller.ReportRequest{
			Username: chi.URLParam(r, "username"),
			LeagueID: chi.URLParam(r, "leagueID"),
			Season:   season,
			MaxWeek:  maxWeek,
			History:  q.history,
		})
		if err != nil {
			renderError(w, render, err)
			return
		}

		if err := grid.WriteHTML(w, report, grid.Options{Positions: q.positions}); err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
		}
	}
}

func compareHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseGridQuery(r.URL.Query())
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		season, maxWeek, err := ctrl.ResolveSeason(r.Context(), q.season, q.week)
		if err != nil {
			renderError(w, render, err)
			return
		}

		report, err := ctrl.BuildCompareReport(r.Context(), controller.ReportRequest{
			LeagueID: chi.URLParam(r, "leagueID"),
			Season:   season,
			MaxWeek:  maxWeek,
			History:  q.history,
		})
		if err != nil {
			renderError(w, render, err)
			return
		}

		if err := grid.WriteCompareHTML(w, report, grid.Options{Positions: q.positions}); err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
		}
	}
}

type gridQuery struct {
	season    string
	week      int
	positions []model.Position
	history   bool
}

// parseGridQuery reads the optional season, week, pos (repeatable) and
// history query parameters.
func parseGridQuery(values url.Values) (*gridQuery, error) {
	q := &gridQuery{
		season: strings.TrimSpace(values.Get("season")),
	}

	if q.season != "" {
		if _, err := time.Parse("2006", q.season); err != nil {
			return nil, fmt.Errorf("season must be in the YYYY format, got: %s", q.season)
		}
	}

	if week := values.Get("week"); week != "" {
		w, err := strconv.Atoi(week)
		if err != nil || w < 1 {
			return nil, fmt.Errorf("week must be a positive number, got: %s", week)
		}
		q.week = w
	}

	for _, p := range values["pos"] {
		pos := model.ParsePosition(p)
		if !pos.IsRanked() {
			return nil, fmt.Errorf("invalid position: %s", p)
		}
		q.positions = append(q.positions, pos)
	}

	if h := values.Get("history"); h != "" {
		history, err := strconv.ParseBool(h)
		if err != nil {
			return nil, fmt.Errorf("history must be true or false, got: %s", h)
		}
		q.history = history
	}

	return q, nil
}

func renderError(w http.ResponseWriter, render *render.Render, err error) {
	switch {
	case errors.Is(err, sleeper.ErrUserNotFound),
		errors.Is(err, sleeper.ErrLeagueNotFound),
		errors.Is(err, sleeper.ErrNoLeagues),
		errors.Is(err, controller.ErrRosterNotFound),
		errors.Is(err, controller.ErrEmptyRoster):
		render.HTML(w, http.StatusNotFound, "404", err.Error())
	default:
		render.HTML(w, http.StatusInternalServerError, "500", err.Error())
	}
}
