package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	// FixturesPath points to a TOML file with rooms to seed. Empty seeds the built-in set.
	FixturesPath string
	Debug        bool
}

// Load reads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads an optional .env file first, then reads the environment.
func LoadWithFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	timeout, err := parseDuration(os.Getenv("OCCUPANCY_READ_HEADER_TIMEOUT"), 20*time.Second) //nolint:gomnd
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:              getenv("OCCUPANCY_HOST", "localhost"),
		Port:              getenv("OCCUPANCY_PORT", "8092"),
		ReadHeaderTimeout: timeout,
		LivenessEndpoint:  getenv("OCCUPANCY_LIVENESS_ENDPOINT", "/liveness"),
		FixturesPath:      os.Getenv("OCCUPANCY_FIXTURES"),
		Debug:             parseBool(os.Getenv("OCCUPANCY_DEBUG")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("OCCUPANCY_PORT %q is not a valid port: %w", c.Port, ErrInvalidConfig)
	}

	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("OCCUPANCY_READ_HEADER_TIMEOUT must be positive: %w", ErrInvalidConfig)
	}

	if len(c.LivenessEndpoint) == 0 || c.LivenessEndpoint[0] != '/' {
		return fmt.Errorf("OCCUPANCY_LIVENESS_ENDPOINT must start with '/': %w", ErrInvalidConfig)
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("OCCUPANCY_READ_HEADER_TIMEOUT: %w", ErrInvalidConfig)
	}

	return d, nil
}

// parseBool defaults to false on anything strconv does not recognise.
func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)

	return b
}
