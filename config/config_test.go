package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/restaurant-engine/config"
	"github.com/warp/restaurant-engine/generic"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurant_config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `{
		"db_path": "/tmp/bistro.db",
		"overtime_multiplier": 1.5,
		"default_period": "weekly",
		"restaurant_name": "Dummy Bistro",
		"report_schedule": "0 23 * * *"
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bistro.db", cfg.DBPath)
	assert.True(t, cfg.OvertimeMultiplier.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, cfg.OvertimeThresholdHours.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, generic.PeriodWeekly, cfg.DefaultPeriod)
	assert.Equal(t, "Dummy Bistro", cfg.RestaurantName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)

	agg := cfg.Aggregator()
	assert.True(t, agg.OvertimeMultiplier.Equal(decimal.RequireFromString("1.5")))
}

func TestLoad_MultiplierBelowOne(t *testing.T) {
	path := writeConfig(t, `{"overtime_multiplier": 0.9}`)

	_, err := config.Load(path)

	require.ErrorIs(t, err, generic.ErrConfiguration)
	var cerr *generic.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "overtime_multiplier", cerr.Key)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{"unknown period", `{"default_period": "monthly"}`, "default_period"},
		{"empty db path", `{"db_path": " "}`, "db_path"},
		{"zero threshold", `{"overtime_threshold_hours": 0}`, "overtime_threshold_hours"},
		{"bad cron", `{"report_schedule": "every friday"}`, "report_schedule"},
		{"bad log level", `{"log_level": "chatty"}`, "log_level"},
		{"bad port", `{"port": 70000}`, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))

			var cerr *generic.ConfigurationError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tt.key, cerr.Key)
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := config.Load(writeConfig(t, `{"db_path": `))
	assert.ErrorIs(t, err, generic.ErrConfiguration)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, generic.ErrConfiguration)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RESTAURANT_OVERTIME_MULTIPLIER", "2")
	t.Setenv("RESTAURANT_DB_PATH", "/var/lib/restaurant.db")

	cfg, err := config.Load(writeConfig(t, `{"overtime_multiplier": 1.5}`))
	require.NoError(t, err)

	assert.True(t, cfg.OvertimeMultiplier.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "/var/lib/restaurant.db", cfg.DBPath)
}

func TestWriteDefault_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "restaurant_config.json")

	created, err := config.WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = config.WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/restaurant.db", cfg.DBPath)
	assert.True(t, cfg.OvertimeMultiplier.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, generic.PeriodDaily, cfg.DefaultPeriod)
}
