package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, log *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)

	// A full season means 18 weeks of matchups plus the player database, so
	// allow more time than a typical page.
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/", rootHandler(render))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Get("/", findUserHandler())
		r.Get("/{username}/leagues", userLeaguesHandler(ctrl, render))
	})

	r.Route("/leagues/{leagueID:\\d+}", func(r chi.Router) {
		r.Get("/", compareHandler(ctrl, render))
		r.Get("/teams/{username}", teamHandler(ctrl, render))
	})

	return r
}
