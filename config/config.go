// Package config merges command line flags, environment variables and an
// optional .env file into a single Config. Flags win over the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/knix24/sleeper-pixel-performance/sleeper"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName   = "sleeper-pixels"
	EnvPrefix = "SLEEPER"
)

var ErrUsernameRequired = errors.New("a Sleeper username is required")

type Config struct {
	Username   string
	Season     string
	League     string
	Week       int
	ShowPoints bool
	Positions  []model.Position
	Compare    bool
	History    bool
	HTML       string

	Serve bool
	Port  int

	Verbose  bool
	NoCache  bool
	CacheDir string
	RedisURL string

	SleeperURL string
	RateLimit  float64
	Timeout    time.Duration
}

// NewFlagSet defines every flag the cli accepts.
func NewFlagSet(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Visualize fantasy football roster performance with pixel grids\n\n")
		fmt.Fprintf(out, "Usage: %s [flags] <username>\n\n", AppName)
		fs.PrintDefaults()
	}

	fs.String("season", "", "NFL season year (default: current season)")
	fs.String("league", "", "league ID, list number or name (will prompt if not provided)")
	fs.Int("week", 0, "max week to display (default: current week)")
	fs.Bool("show-points", false, "show actual points in each cell instead of symbols")
	fs.StringSliceP("position", "p", nil, "filter by position, can be repeated: -p RB -p WR")
	fs.Bool("compare", false, "compare all teams in the league instead of just your team")
	fs.Bool("history", false, "include players that were on the roster in earlier weeks")
	fs.String("html", "", "export to this HTML file instead of terminal output")

	fs.Bool("serve", false, "run a web server that renders grids on request")
	fs.Int("port", 3000, "port for --serve")

	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.Bool("no-cache", false, "always download the player database")
	fs.String("cache-dir", defaultCacheDir(), "directory for cached sleeper data")
	fs.String("redis-url", "", "cache sleeper data in redis instead of on disk, e.g. redis://localhost:6379/0")

	fs.String("sleeper-url", sleeper.SleeperURL, "base url of the Sleeper API")
	fs.Float64("rate-limit", 10, "max requests per second sent to sleeper")
	fs.Duration("timeout", time.Minute, "timeout for each request to sleeper")
	return fs
}

// Load parses args (without the program name). A .env file in the working
// directory is read first, but never overrides variables that are already set.
func Load(args []string, out io.Writer) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	fs := NewFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	// Common names for these are also honored.
	if err := v.BindEnv("redis-url", EnvPrefix+"_REDIS_URL", "REDIS_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, err
	}

	c := &Config{
		Username:   strings.TrimSpace(fs.Arg(0)),
		Season:     strings.TrimSpace(v.GetString("season")),
		League:     strings.TrimSpace(v.GetString("league")),
		Week:       v.GetInt("week"),
		ShowPoints: v.GetBool("show-points"),
		Compare:    v.GetBool("compare"),
		History:    v.GetBool("history"),
		HTML:       v.GetString("html"),
		Serve:      v.GetBool("serve"),
		Port:       v.GetInt("port"),
		Verbose:    v.GetBool("verbose"),
		NoCache:    v.GetBool("no-cache"),
		CacheDir:   v.GetString("cache-dir"),
		RedisURL:   v.GetString("redis-url"),
		SleeperURL: v.GetString("sleeper-url"),
		RateLimit:  v.GetFloat64("rate-limit"),
		Timeout:    v.GetDuration("timeout"),
	}
	if c.Username == "" {
		c.Username = strings.TrimSpace(v.GetString("username"))
	}

	positions, err := parsePositions(v.GetStringSlice("position"))
	if err != nil {
		return nil, err
	}
	c.Positions = positions

	if err := c.validate(fs); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate(fs *pflag.FlagSet) error {
	if fs.NArg() > 1 {
		return fmt.Errorf("expected a single username, got: %s", strings.Join(fs.Args(), " "))
	}
	if c.Username == "" && !c.Serve {
		return ErrUsernameRequired
	}
	if c.Week < 0 {
		return fmt.Errorf("week must be a positive number, got: %d", c.Week)
	}
	if c.Serve && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be greater than 0, got: %v", c.RateLimit)
	}
	return nil
}

// parsePositions accepts repeated values as well as comma separated lists,
// which is how they arrive from the environment.
func parsePositions(values []string) ([]model.Position, error) {
	var positions []model.Position
	for _, v := range values {
		for _, s := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			p := model.ParsePosition(s)
			if !p.IsRanked() {
				return nil, fmt.Errorf("invalid position '%s', choose from QB, RB, WR, TE, K, DEF", s)
			}
			positions = append(positions, p)
		}
	}
	return positions, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".cache", AppName)
	}
	return filepath.Join(dir, AppName)
}
