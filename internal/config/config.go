// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is malformed or missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for hhradar.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty disables caching and event publication
	HHBaseURL   string // optional override of the hh.ru API base URL

	// Scheduled collection. Zero hours disables the cron job.
	CollectIntervalHours int
	CollectQuery         string
	CollectCount         int
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	interval := 0
	if s := os.Getenv("COLLECT_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("COLLECT_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		interval = v
	}

	count := 50
	if s := os.Getenv("COLLECT_COUNT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("COLLECT_COUNT must be a positive integer, got %q", s)
		}
		count = v
	}

	query := os.Getenv("COLLECT_QUERY")
	if query == "" {
		query = "Python"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		HHBaseURL:            os.Getenv("HH_BASE_URL"),
		CollectIntervalHours: interval,
		CollectQuery:         query,
		CollectCount:         count,
	}, nil
}
