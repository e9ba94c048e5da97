package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

const (
	SleeperUsername = "sleeperuser"
	SleeperUserID   = "12345678"
	LeagueID        = "924039165950484480"
	OtherLeagueID   = "1005178517580746753"
	Season          = "2024"

	IDMcCaffrey = "4034"
	IDHurts     = "6904"
	IDRobinson  = "9509"
	IDLockett   = "2374"
	IDSeahawks  = "SEA"
	IDSinnott   = "11596"
	IDMahomes   = "4046"
	IDLamb      = "6786"
	IDHall      = "8155"
	IDHockenson = "5844"
	IDJuszczyk  = "1379"
)

type FakeSleeperServer struct {
	s            *httptest.Server
	playerLoads  atomic.Int32
	matchupLoads atomic.Int32
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/state/{sport}", stateHandler)
		r.Get("/players/nfl", f.nflPlayersHandler)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/nfl/{year}", userLeaguesHandler)
			r.Get("/{username}", sleeperUserHandler)
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/rosters", leagueFileHandler("rosters.json"))
			r.Get("/users", leagueFileHandler("users.json"))
			r.Get("/matchups/{week}", f.matchupsHandler)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// PlayerLoads is the number of times the player directory was requested.
func (f *FakeSleeperServer) PlayerLoads() int {
	return int(f.playerLoads.Load())
}

// MatchupLoads is the number of times any week of matchups was requested.
func (f *FakeSleeperServer) MatchupLoads() int {
	return int(f.matchupLoads.Load())
}

func stateHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "sport") != "nfl" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveFile(w, "state.json")
}

func (f *FakeSleeperServer) nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	f.playerLoads.Add(1)
	serveFile(w, "players.json")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == SleeperUserID && year == Season {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == SleeperUsername {
		serveFile(w, "sleeperuser.json")
	} else {
		// requesting a user that doesn't exist seems to return a 200 with "null" as the response body as of 2024-08-12
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != LeagueID {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
		return
	}
	serveFile(w, "league.json")
}

func leagueFileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != LeagueID {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("[]"))
			return
		}
		serveFile(w, name)
	}
}

// Only weeks 1 and 2 have been played, every other week is empty.
func (f *FakeSleeperServer) matchupsHandler(w http.ResponseWriter, r *http.Request) {
	f.matchupLoads.Add(1)
	week := chi.URLParam(r, "week")
	if chi.URLParam(r, "leagueID") != LeagueID || (week != "1" && week != "2") {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}
	serveFile(w, fmt.Sprintf("matchups_%s.json", week))
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
