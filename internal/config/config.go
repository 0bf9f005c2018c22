package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files/flags.
type Config struct {
	Database struct {
		Path string
	}
	Log struct {
		Level string
	}
	History struct {
		WeekStart string
	}
	Auth struct {
		BcryptCost int
	}
}

// Load reads configuration from environment variables, optional config
// files and, when flags is non-nil, the command line. Flags win over env,
// env wins over the config file.
func Load(flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "data/fintrack.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("history.weekstart", "sunday")
	v.SetDefault("auth.bcryptcost", 10)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	if flags != nil {
		for key, name := range map[string]string{
			"database.path":     "db",
			"log.level":         "log-level",
			"history.weekstart": "week-start",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := cfg.WeekStartDay(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WeekStartDay parses History.WeekStart into a weekday.
func (c Config) WeekStartDay() (time.Weekday, error) {
	name := strings.TrimSpace(c.History.WeekStart)
	if name == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid history.weekstart %q", c.History.WeekStart)
}
