package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort      = 8080
	defaultBeginYear = 1900
	defaultSplitYear = 1970
	defaultEndYear   = 2020
)

// Config holds environment-driven settings for the viewer API.
type Config struct {
	DataDir     string
	Port        int
	BearerToken string
	BeginYear   int
	SplitYear   int
	EndYear     int
	Debug       bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:      defaultPort,
		BeginYear: defaultBeginYear,
		SplitYear: defaultSplitYear,
		EndYear:   defaultEndYear,
	}

	cfg.DataDir = strings.TrimSpace(os.Getenv("DATA_DIR"))
	if cfg.DataDir == "" {
		return cfg, errors.New("DATA_DIR is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	for _, v := range []struct {
		env  string
		dest *int
	}{
		{"FDC_BEGIN_YEAR", &cfg.BeginYear},
		{"FDC_SPLIT_YEAR", &cfg.SplitYear},
		{"FDC_END_YEAR", &cfg.EndYear},
	} {
		if yearStr := os.Getenv(v.env); yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				return cfg, fmt.Errorf("invalid %s: %s", v.env, yearStr)
			}
			*v.dest = year
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	debug := strings.TrimSpace(os.Getenv("DEBUG"))
	cfg.Debug = debug == "1" || strings.EqualFold(debug, "true")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
