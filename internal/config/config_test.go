package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "data/fintrack.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)

	day, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FINTRACK_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("FINTRACK_HISTORY_WEEKSTART", "Monday")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path, "unset flag leaves env in place")
	assert.Equal(t, "debug", cfg.Log.Level)

	day, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	require.NoError(t, flags.Parse([]string{"--db", "/tmp/flag.db"}))
	cfg, err = Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.db", cfg.Database.Path)
}

func TestLoadRejectsUnknownWeekStart(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FINTRACK_HISTORY_WEEKSTART", "someday")

	_, err := Load(nil)
	assert.Error(t, err)
}
