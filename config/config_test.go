package config

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	c, err := Load([]string{"sleeperuser"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "sleeperuser", c.Username)
	assert.Equal(t, "", c.Season)
	assert.Equal(t, 0, c.Week)
	assert.False(t, c.ShowPoints)
	assert.Empty(t, c.Positions)
	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, "https://api.sleeper.app", c.SleeperURL)
	assert.Equal(t, 10.0, c.RateLimit)
	assert.Equal(t, time.Minute, c.Timeout)
	assert.NotEmpty(t, c.CacheDir)
}

func TestLoad_flags(t *testing.T) {
	c, err := Load([]string{
		"--season", "2023",
		"--league", "924039165950484480",
		"--week", "9",
		"--show-points",
		"-p", "RB", "-p", "wr,te",
		"--compare",
		"--history",
		"--html", "out.html",
		"--no-cache",
		"--timeout", "5s",
		"sleeperuser",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "sleeperuser", c.Username)
	assert.Equal(t, "2023", c.Season)
	assert.Equal(t, "924039165950484480", c.League)
	assert.Equal(t, 9, c.Week)
	assert.True(t, c.ShowPoints)
	assert.Equal(t, []model.Position{model.POS_RB, model.POS_WR, model.POS_TE}, c.Positions)
	assert.True(t, c.Compare)
	assert.True(t, c.History)
	assert.Equal(t, "out.html", c.HTML)
	assert.True(t, c.NoCache)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("SLEEPER_USERNAME", "envuser")
	t.Setenv("SLEEPER_SEASON", "2022")
	t.Setenv("SLEEPER_SHOW_POINTS", "true")
	t.Setenv("SLEEPER_POSITION", "QB,DEF")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("PORT", "8080")

	c, err := Load(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "envuser", c.Username)
	assert.Equal(t, "2022", c.Season)
	assert.True(t, c.ShowPoints)
	assert.Equal(t, []model.Position{model.POS_QB, model.POS_DEF}, c.Positions)
	assert.Equal(t, "redis://localhost:6379/1", c.RedisURL)
	assert.Equal(t, 8080, c.Port)
}

func TestLoad_flagsOverrideEnv(t *testing.T) {
	t.Setenv("SLEEPER_SEASON", "2022")
	t.Setenv("SLEEPER_WEEK", "4")

	c, err := Load([]string{"--season", "2024", "sleeperuser"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "2024", c.Season)
	assert.Equal(t, 4, c.Week)
}

func TestLoad_serveWithoutUsername(t *testing.T) {
	c, err := Load([]string{"--serve", "--port", "9000"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, c.Serve)
	assert.Equal(t, 9000, c.Port)
	assert.Empty(t, c.Username)
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no username", args: []string{}},
		{name: "two usernames", args: []string{"a", "b"}},
		{name: "bad position", args: []string{"-p", "LB", "sleeperuser"}},
		{name: "negative week", args: []string{"--week", "-1", "sleeperuser"}},
		{name: "bad port", args: []string{"--serve", "--port", "70000"}},
		{name: "bad rate limit", args: []string{"--rate-limit", "0", "sleeperuser"}},
		{name: "unknown flag", args: []string{"--bogus", "sleeperuser"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.args, io.Discard)
			assert.Error(t, err)
		})
	}

	_, err := Load(nil, io.Discard)
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestLoad_help(t *testing.T) {
	_, err := Load([]string{"--help"}, io.Discard)
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}
