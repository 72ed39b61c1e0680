package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rates feed
	NBRBBaseURL string
	NBRBTimeout time.Duration

	// Rate synchronization
	SyncOnStartup    bool
	SchedulerEnabled bool
	RatesSyncHour    int // UTC
	RatesSyncMinute  int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("NBRB_BASE_URL", "")
	viper.SetDefault("NBRB_TIMEOUT", "10s")
	viper.SetDefault("SYNC_ON_STARTUP", true)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("RATES_SYNC_AT", "07:30")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.NBRBBaseURL = viper.GetString("NBRB_BASE_URL")

	timeoutStr := viper.GetString("NBRB_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for NBRB_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.NBRBTimeout = timeout

	cfg.SyncOnStartup = viper.GetBool("SYNC_ON_STARTUP")
	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")

	syncAt := viper.GetString("RATES_SYNC_AT")
	hour, minute, err := parseTimeOfDay(syncAt)
	if err != nil {
		return nil, fmt.Errorf("invalid RATES_SYNC_AT %q: %w", syncAt, err)
	}
	cfg.RatesSyncHour = hour
	cfg.RatesSyncMinute = minute

	return cfg, nil
}

// parseTimeOfDay parses a "HH:MM" wall-clock time.
func parseTimeOfDay(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return hour, minute, nil
}
