package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/knix24/sleeper-pixel-performance/testutils"
	"github.com/sony/gobreaker"
)

func TestLoadPlayers_success(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	expected := map[string]model.Player{
		testutils.IDMcCaffrey: {FirstName: "Christian", LastName: "McCaffrey", FullName: "Christian McCaffrey", Position: model.POS_RB, Team: "SF"},
		testutils.IDHurts:     {FirstName: "Jalen", LastName: "Hurts", FullName: "Jalen Hurts", Position: model.POS_QB, Team: "PHI"},
		testutils.IDSeahawks:  {FirstName: "Seattle", LastName: "Seahawks", FullName: "", Position: model.POS_DEF, Team: "SEA"},
		testutils.IDJuszczyk:  {FirstName: "Kyle", LastName: "Juszczyk", FullName: "Kyle Juszczyk", Position: model.POS_UNKNOWN, Team: "SF"},
	}

	players, err := c.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(players) != 11 {
		t.Fatalf("wrong number of players, expected 11, got %d", len(players))
	}
	if _, found := players["9999"]; found {
		t.Errorf("invalid player should have been skipped")
	}

	for id, e := range expected {
		p, found := players[id]
		if !found {
			t.Fatalf("expected player %s in the response", id)
		}
		if p.ID != id {
			t.Errorf("expected id %s, got %s", id, p.ID)
		}
		if p.FirstName != e.FirstName {
			t.Errorf("expected first name %s, got %s", e.FirstName, p.FirstName)
		}
		if p.LastName != e.LastName {
			t.Errorf("expected last name %s, got %s", e.LastName, p.LastName)
		}
		if p.FullName != e.FullName {
			t.Errorf("expected full name %s, got %s", e.FullName, p.FullName)
		}
		if p.Position != e.Position {
			t.Errorf("expected position %v, got %v", e.Position, p.Position)
		}
		if p.Team != e.Team {
			t.Errorf("expected team %v, got %v", e.Team, p.Team)
		}
	}
}

func TestLoadPlayers_httpError(t *testing.T) {
	fakeSleeper := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}))
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL)

	players, err := c.LoadPlayers(context.Background())
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("unexpected error: %v", err)
	}
	if players != nil {
		t.Fatalf("players should have been nil")
	}
}

func TestGetState(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	state, err := c.GetState(context.Background(), "nfl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(state, &model.SportState{Season: "2024", Week: 3}) {
		t.Errorf("state was not expected, got: %v", state)
	}
}

func TestGetUser(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	tests := []struct {
		username string
		expected *model.User
		err      error
	}{
		{username: "sleeperuser", expected: &model.User{UserID: "12345678", Username: "sleeperuser", DisplayName: "SleeperUser"}},
		{username: "badusername", expected: nil, err: ErrUserNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.username, func(t *testing.T) {
			user, err := c.GetUser(context.Background(), tc.username)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected err to be: '%v', got '%v' instead", tc.err, err)
			}
			if !reflect.DeepEqual(user, tc.expected) {
				t.Errorf("user was not expected, wanted: '%v', got: '%v'", tc.expected, user)
			}
		})
	}
}

func TestGetLeaguesForUser(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	tests := []struct {
		userID   string
		year     string
		expected []model.League
		err      error
	}{
		{userID: "12345678", year: "2024", expected: []model.League{
			{ExternalID: "924039165950484480", Name: "Footclan & Friends Dynasty", Year: "2024", Status: "in_season"},
			{ExternalID: "1005178517580746753", Name: "The Megalabowl", Year: "2024", Status: "in_season"}}},
		{userID: "98765432", year: "2024", expected: nil, err: ErrNoLeagues},
		{userID: "12345678", year: "2023", expected: nil, err: ErrNoLeagues},
	}

	for _, tc := range tests {
		t.Run(tc.userID+"_"+tc.year, func(t *testing.T) {
			l, err := c.GetLeaguesForUser(context.Background(), tc.userID, tc.year)
			if !reflect.DeepEqual(l, tc.expected) {
				t.Errorf("result does not match expected leagues: %v", l)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("expected error '%v' but got '%v'", tc.err, err)
			}
		})
	}
}

func TestGetLeague(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	c := NewForTest(fakeSleeper.URL())

	l, err := c.GetLeague(context.Background(), testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Name != "Footclan & Friends Dynasty" || l.Year != "2024" {
		t.Errorf("league was not expected, got: %v", l)
	}

	_, err = c.GetLeague(context.Background(), "1234")
	if !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("expected league not found, got: %v", err)
	}
}

func TestGetRosters(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	c := NewForTest(fakeSleeper.URL())

	rosters, err := c.GetRosters(context.Background(), testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.Roster{
		{RosterID: 1, OwnerID: "12345678", PlayerIDs: []string{"4034", "6904", "9509", "2374", "SEA", "11596"}},
		{RosterID: 2, OwnerID: "300638784440004608", PlayerIDs: []string{"4046", "6786", "8155", "5844", "1379"}},
		{RosterID: 3, OwnerID: "", PlayerIDs: nil},
	}
	if !reflect.DeepEqual(expected, rosters) {
		t.Errorf("expected rosters to be: %v, but was: %v", expected, rosters)
	}
}

func TestGetLeagueManagers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	c := NewForTest(fakeSleeper.URL())

	expectedManagers := []model.LeagueManager{
		{ExternalID: "12345678", TeamName: "No-Bell Prizes", ManagerName: "SleeperUser"},
		{ExternalID: "300638784440004608", TeamName: "Puk Nukem", ManagerName: "8thAndFinalRule"},
		{ExternalID: "300368913101774848", TeamName: "gee17", ManagerName: "gee17"},
	}

	tests := []struct {
		league   string
		expected []model.LeagueManager
	}{
		{league: testutils.LeagueID, expected: expectedManagers},
		{league: "1234", expected: []model.LeagueManager{}},
	}

	for _, tc := range tests {
		t.Run(tc.league, func(t *testing.T) {
			managers, err := c.GetLeagueManagers(context.Background(), tc.league)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.expected, managers) {
				t.Errorf("expected managers to be: %v, but was: %v", tc.expected, managers)
			}
		})
	}
}

func TestGetMatchups(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	c := NewForTest(fakeSleeper.URL())

	matchups, err := c.GetMatchups(context.Background(), testutils.LeagueID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(matchups))
	}

	m := matchups[0]
	if m.Week != 1 || m.RosterID != 1 || m.MatchupID != 1 || m.Points != 75.8 {
		t.Errorf("matchup fields not expected: %+v", m)
	}
	expectedPoints := []model.PlayerPoint{
		{PlayerID: "4034", Points: 22.4},
		{PlayerID: "6904", Points: 25.1},
		{PlayerID: "9509", Points: 14.0},
		{PlayerID: "2374", Points: 8.3},
		{PlayerID: "SEA", Points: 6.0},
		{PlayerID: "11596", Points: 0},
	}
	if !reflect.DeepEqual(expectedPoints, m.PlayersPoints) {
		t.Errorf("players points were not expected, got: %v", m.PlayersPoints)
	}
	if !reflect.DeepEqual([]string{"4034", "6904", "9509", "2374", "SEA", "11596"}, m.Players) {
		t.Errorf("players were not expected, got: %v", m.Players)
	}

	empty, err := c.GetMatchups(context.Background(), testutils.LeagueID, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no matchups for week 9, got %d", len(empty))
	}
}

func TestGetUser_cancelledContext(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	c := NewForTest(fakeSleeper.URL())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetUser(ctx, testutils.SleeperUsername)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context cancelled error, got: %v", err)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(Options{}); err != nil {
		t.Errorf("unexpected error with default options: %v", err)
	}
	if _, err := New(Options{URL: "not a url"}); err == nil {
		t.Error("expected an error for a bad url")
	}
}

// newStatusServer answers GET /v1/state/nfl with the status stored in code.
// While slow is set it holds each request until the caller gives up.
func newStatusServer(code *atomic.Int32, slow *atomic.Bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if slow.Load() {
			select {
			case <-req.Context().Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
		if c := int(code.Load()); c != http.StatusOK {
			rw.WriteHeader(c)
			return
		}
		rw.Write([]byte(`{"season":"2024","week":3}`))
	}))
}

func TestBreaker_ignoresCallerErrors(t *testing.T) {
	tests := map[string]struct {
		code int
		slow bool
	}{
		"cancelled requests": {code: http.StatusOK, slow: true},
		"not found":          {code: http.StatusNotFound},
		"bad request":        {code: http.StatusBadRequest},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var code atomic.Int32
			var slow atomic.Bool
			code.Store(int32(tc.code))
			slow.Store(tc.slow)

			s := newStatusServer(&code, &slow)
			defer s.Close()
			c := NewForTest(s.URL)

			for i := 0; i < 10; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
				_, err := c.GetState(ctx, "nfl")
				cancel()
				if err == nil {
					t.Fatalf("request %d should have failed", i)
				}
				if errors.Is(err, gobreaker.ErrOpenState) {
					t.Fatalf("breaker opened after %d requests", i)
				}
			}

			code.Store(http.StatusOK)
			slow.Store(false)
			state, err := c.GetState(context.Background(), "nfl")
			if err != nil {
				t.Fatalf("healthy request failed: %v", err)
			}
			if state.Season != "2024" {
				t.Errorf("unexpected state: %v", state)
			}
		})
	}
}

func TestBreaker_tripsOnServerErrors(t *testing.T) {
	var code atomic.Int32
	var slow atomic.Bool
	code.Store(http.StatusServiceUnavailable)

	s := newStatusServer(&code, &slow)
	defer s.Close()
	c := NewForTest(s.URL)

	for i := 0; i < 5; i++ {
		_, err := c.GetState(context.Background(), "nfl")
		var se *StatusError
		if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
			t.Fatalf("request %d: expected a 503 status error, got: %v", i, err)
		}
	}

	// Sleeper has recovered but the breaker stays open until its timeout.
	code.Store(http.StatusOK)
	if _, err := c.GetState(context.Background(), "nfl"); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected the breaker to be open, got: %v", err)
	}
}
