package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const SleeperURL = "https://api.sleeper.app"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNoLeagues      = errors.New("no leagues found")
	ErrLeagueNotFound = errors.New("league not found")
)

var sleeperRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sleeper_requests_total",
	Help: "Requests sent to the Sleeper API by endpoint and response code.",
}, []string{"endpoint", "code"})

type Client interface {
	GetState(ctx context.Context, sport string) (*model.SportState, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
	GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error)
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error)
	GetLeagueManagers(ctx context.Context, leagueID string) ([]model.LeagueManager, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]model.Matchup, error)
	LoadPlayers(ctx context.Context) (model.PlayerDirectory, error)
}

// Options configures the client returned by New. Zero values get defaults.
type Options struct {
	URL     string
	Timeout time.Duration
	// Requests per second allowed against the API.
	RateLimit float64
	Logger    *logrus.Logger
}

type client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

func New(opts Options) (Client, error) {
	if opts.URL == "" {
		opts.URL = SleeperURL
	}
	if _, err := url.ParseRequestURI(opts.URL); err != nil {
		return nil, fmt.Errorf("invalid sleeper url %q: %w", opts.URL, err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 1 * time.Minute
	}
	if opts.RateLimit <= 0 {
		// Sleeper asks clients to stay under 1000 calls a minute.
		opts.RateLimit = 10
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	c := &client{
		url: opts.URL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		log:     opts.Logger,
	}
	c.breaker = newBreaker(c.log)
	return c, nil
}

func NewForTest(url string) Client {
	log := logrus.New()
	return &client{
		url:        url,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		breaker:    newBreaker(log),
		log:        log,
	}
}

func newBreaker(log *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "sleeper",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: healthyResponse,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("sleeper circuit breaker state changed")
		},
	})
}

// StatusError is returned when sleeper answers with anything but a 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code from sleeper: %d", e.Code)
}

// callerError marks a request that failed because the caller's context ended.
type callerError struct {
	err error
}

func (e *callerError) Error() string { return e.err.Error() }
func (e *callerError) Unwrap() error { return e.err }

// healthyResponse decides which errors count against the circuit breaker.
// Only server errors and transport failures say sleeper is unhealthy, a
// cancelled request or a 404 for a bad id does not.
func healthyResponse(err error) bool {
	if err == nil {
		return true
	}

	var ce *callerError
	if errors.As(err, &ce) {
		return true
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code < http.StatusInternalServerError
	}
	return false
}

func (c *client) GetState(ctx context.Context, sport string) (*model.SportState, error) {
	var s sleeperState
	if err := c.sleeperRequest(ctx, &s, "state", "/v1/state/%s", sport); err != nil {
		return nil, err
	}
	return &model.SportState{Season: s.Season, Week: s.Week}, nil
}

func (c *client) GetUser(ctx context.Context, username string) (*model.User, error) {
	var u *sleeperUser
	if err := c.sleeperRequest(ctx, &u, "user", "/v1/user/%s", url.PathEscape(username)); err != nil {
		return nil, err
	}
	// Sleeper returns a 200 with a body of "null" for users that don't exist.
	if u == nil || u.UserID == "" {
		return nil, ErrUserNotFound
	}
	return u.toUser(), nil
}

func (c *client) GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error) {
	var leagues []sleeperLeague
	if err := c.sleeperRequest(ctx, &leagues, "user_leagues", "/v1/user/%s/leagues/nfl/%s", userID, year); err != nil {
		return nil, err
	}
	if len(leagues) == 0 {
		return nil, ErrNoLeagues
	}

	result := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, *l.toLeague())
	}
	return result, nil
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	var l *sleeperLeague
	if err := c.sleeperRequest(ctx, &l, "league", "/v1/league/%s", leagueID); err != nil {
		return nil, err
	}
	if l == nil || l.LeagueID == "" {
		return nil, ErrLeagueNotFound
	}
	return l.toLeague(), nil
}

func (c *client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	var rosters []sleeperRoster
	if err := c.sleeperRequest(ctx, &rosters, "rosters", "/v1/league/%s/rosters", leagueID); err != nil {
		return nil, err
	}

	result := make([]model.Roster, 0, len(rosters))
	for _, r := range rosters {
		result = append(result, model.Roster{
			RosterID:  r.RosterID,
			OwnerID:   r.OwnerID,
			PlayerIDs: r.Players,
		})
	}
	return result, nil
}

func (c *client) GetLeagueManagers(ctx context.Context, leagueID string) ([]model.LeagueManager, error) {
	var users []sleeperLeagueUser
	if err := c.sleeperRequest(ctx, &users, "league_users", "/v1/league/%s/users", leagueID); err != nil {
		return nil, err
	}

	result := make([]model.LeagueManager, 0, len(users))
	for _, u := range users {
		result = append(result, *u.toLeagueManager())
	}
	return result, nil
}

func (c *client) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.Matchup, error) {
	var matchups []sleeperMatchup
	if err := c.sleeperRequest(ctx, &matchups, "matchups", "/v1/league/%s/matchups/%d", leagueID, week); err != nil {
		return nil, err
	}

	result := make([]model.Matchup, 0, len(matchups))
	for _, m := range matchups {
		result = append(result, *m.toMatchup(week))
	}
	return result, nil
}

func (c *client) LoadPlayers(ctx context.Context) (model.PlayerDirectory, error) {
	var parsed map[string]sleeperPlayer
	if err := c.sleeperRequest(ctx, &parsed, "players", "/v1/players/nfl"); err != nil {
		return nil, err
	}

	result := make(model.PlayerDirectory, len(parsed))
	for id, p := range parsed {
		if p.FirstName == "Player" && p.LastName == "Invalid" {
			continue
		}
		result[id] = *p.toPlayer(id)
	}

	c.log.WithField("players", len(result)).Debug("loaded player directory from sleeper")
	return result, nil
}

// sleeperRequest waits for the rate limiter, sends a GET for the formatted path
// through the circuit breaker and decodes the JSON response into res.
func (c *client) sleeperRequest(ctx context.Context, res any, endpoint, path string, args ...any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("error waiting for sleeper rate limiter: %w", err)
	}

	p := fmt.Sprintf(path, args...)
	_, err := c.breaker.Execute(func() (interface{}, error) {
		err := c.doRequest(ctx, res, endpoint, p)
		if err != nil && ctx.Err() != nil {
			return nil, &callerError{err: err}
		}
		return nil, err
	})
	if ce, ok := err.(*callerError); ok {
		return ce.err
	}
	return err
}

func (c *client) doRequest(ctx context.Context, res any, endpoint, p string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return fmt.Errorf("error creating sleeper http request: %w", err)
	}

	c.log.WithField("path", p).Debug("sending sleeper request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		sleeperRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("error sending sleeper http request: %w", err)
	}
	defer resp.Body.Close()

	sleeperRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
