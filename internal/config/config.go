package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Addr               string        // HTTP listen address
	DBPath             string        // SQLite database file
	JWTSecret          string        // HS256 signing key, required
	TokenTTL           time.Duration // auth token lifetime
	UpcomingWindowDays int           // dashboard upcoming-deadline window
	AllowedOrigins     []string      // CORS / websocket origins
}

// Load reads config.yaml from the working directory, if present, and
// applies TASKBOARD_* environment overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TASKBOARD")
	v.AutomaticEnv()

	v.SetDefault("addr", ":3000")
	v.SetDefault("db_path", "app.db")
	v.SetDefault("token_ttl", 168*time.Hour)
	v.SetDefault("upcoming_window_days", 7)
	v.SetDefault("allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Addr:               v.GetString("addr"),
		DBPath:             v.GetString("db_path"),
		JWTSecret:          v.GetString("jwt_secret"),
		TokenTTL:           v.GetDuration("token_ttl"),
		UpcomingWindowDays: v.GetInt("upcoming_window_days"),
		AllowedOrigins:     v.GetStringSlice("allowed_origins"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt_secret is not set")
	}

	return cfg, nil
}
