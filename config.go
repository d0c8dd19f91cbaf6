package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
)

// config is read from the environment (optionally seeded from .env).
type config struct {
	Addr            string
	StoreDriver     string // "postgres" or "sqlite"
	DBURL           string
	SQLitePath      string
	StreakTolerance float64
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:            envOr("ADDR", "localhost:3000"),
		StoreDriver:     envOr("STORE_DRIVER", "postgres"),
		DBURL:           os.Getenv("DB_URL"),
		SQLitePath:      envOr("SQLITE_PATH", "gerda.db"),
		StreakTolerance: health.DefaultStreakTolerance,
	}

	if s := os.Getenv("STREAK_TOLERANCE"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 1 {
			return cfg, fmt.Errorf("STREAK_TOLERANCE must be a fraction between 0 and 1, got %q", s)
		}
		cfg.StreakTolerance = v
	}

	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DBURL == "" {
			return cfg, fmt.Errorf("DB_URL is required for the postgres store")
		}
	case "sqlite":
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q (want postgres or sqlite)", cfg.StoreDriver)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
