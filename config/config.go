/*
config.go - Typed configuration, loaded once at startup

PURPOSE:
  Reads the JSON configuration file, applies environment overrides and
  validates every option before anything else runs. The rest of the program
  only sees the typed Config struct.

SOURCES (later wins):
  1. Built-in defaults (SetDefaults)
  2. JSON file (default config/restaurant_config.json, optional)
  3. .env file in the working directory (optional, via godotenv)
  4. Environment variables prefixed RESTAURANT_, e.g. RESTAURANT_DB_PATH

KEYS:
  db_path                   string   data/restaurant.db   non-empty
  overtime_multiplier       decimal  1.0                  >= 1.0
  overtime_threshold_hours  decimal  40                   > 0
  default_period            enum     daily                daily | weekly
  restaurant_name           string   ""
  log_level                 string   info                 zap level
  export_dir                string   reports
  report_schedule           cron     "" (disabled)        5-field cron spec
  port                      int      8080                 1..65535

ERRORS:
  Every violation is a *generic.ConfigurationError naming the key.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/pkg/logger"
	"github.com/warp/restaurant-engine/roster"
)

// DefaultPath is where the CLI looks for the configuration file.
const DefaultPath = "config/restaurant_config.json"

// EnvPrefix namespaces environment overrides.
const EnvPrefix = "RESTAURANT"

type Config struct {
	DBPath                 string             `mapstructure:"db_path"`
	OvertimeMultiplier     decimal.Decimal    `mapstructure:"overtime_multiplier"`
	OvertimeThresholdHours decimal.Decimal    `mapstructure:"overtime_threshold_hours"`
	DefaultPeriod          generic.PeriodType `mapstructure:"default_period"`
	RestaurantName         string             `mapstructure:"restaurant_name"`
	LogLevel               string             `mapstructure:"log_level"`
	ExportDir              string             `mapstructure:"export_dir"`
	ReportSchedule         string             `mapstructure:"report_schedule"`
	Server                 Server             `mapstructure:",squash"`
}

type Server struct {
	Port int `mapstructure:"port"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "data/restaurant.db")
	v.SetDefault("overtime_multiplier", "1.0")
	v.SetDefault("overtime_threshold_hours", "40")
	v.SetDefault("default_period", string(generic.PeriodDaily))
	v.SetDefault("restaurant_name", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("export_dir", "reports")
	v.SetDefault("report_schedule", "")
	v.SetDefault("port", 8080)
}

// Load reads configuration from path. An empty path means DefaultPath, which
// may be absent; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	loadEnvFile()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, &generic.ConfigurationError{Reason: fmt.Sprintf("read %s", path), Err: err}
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			decimalHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return nil, &generic.ConfigurationError{Reason: "malformed value", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every option once.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return &generic.ConfigurationError{Key: "db_path", Reason: "must not be empty"}
	}
	if c.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		return &generic.ConfigurationError{
			Key:    "overtime_multiplier",
			Reason: fmt.Sprintf("must be >= 1.0, got %s", c.OvertimeMultiplier),
		}
	}
	if !c.OvertimeThresholdHours.IsPositive() {
		return &generic.ConfigurationError{
			Key:    "overtime_threshold_hours",
			Reason: fmt.Sprintf("must be > 0, got %s", c.OvertimeThresholdHours),
		}
	}
	if !c.DefaultPeriod.Valid() {
		return &generic.ConfigurationError{
			Key:    "default_period",
			Reason: fmt.Sprintf("must be daily or weekly, got %q", c.DefaultPeriod),
		}
	}
	if !logger.ValidLevel(c.LogLevel) {
		return &generic.ConfigurationError{Key: "log_level", Reason: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	if c.ReportSchedule != "" {
		if _, err := cron.ParseStandard(c.ReportSchedule); err != nil {
			return &generic.ConfigurationError{Key: "report_schedule", Reason: "invalid cron spec", Err: err}
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &generic.ConfigurationError{Key: "port", Reason: fmt.Sprintf("out of range: %d", c.Server.Port)}
	}
	return nil
}

// Aggregator returns the roster aggregator configured by c.
func (c *Config) Aggregator() roster.Aggregator {
	return roster.Aggregator{
		OvertimeMultiplier:     c.OvertimeMultiplier,
		OvertimeThresholdHours: c.OvertimeThresholdHours,
	}
}

// WriteDefault writes a configuration file holding the defaults to path,
// creating parent directories. An existing file is left untouched and
// reported with created == false.
func WriteDefault(path string) (created bool, err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, &generic.ConfigurationError{Reason: "create config directory", Err: err}
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("json")
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return false, nil
		}
		return false, &generic.ConfigurationError{Reason: fmt.Sprintf("write %s", path), Err: err}
	}
	return true, nil
}

// decimalHook decodes JSON numbers and strings into decimal.Decimal.
func decimalHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(decimal.Decimal{})
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != target {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		}
		return data, nil
	}
}

// loadEnvFile loads .env from the working directory if present.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
