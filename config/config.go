package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the read-API listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// NotificationsConfig holds the push collaborator configuration. The push
// token is explicit state handed to the notifier at construction time.
type NotificationsConfig struct {
	PushToken     string  `yaml:"push_token"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("PUSH_TOKEN"); v != "" {
		cfg.Notifications.PushToken = v
	}
	if v := os.Getenv("NOTIFICATION_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Notifications.RatePerSecond = f
		}
	}
	if v := os.Getenv("NOTIFICATION_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Notifications.Burst = n
		}
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	// Load Postgres DSN
	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Load NATS URL
	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")
	cfg.Observability.MetricsAddress = os.Getenv("METRICS_ADDRESS") // optional; empty disables metrics
	cfg.Observability.Environment = os.Getenv("ENV")
	cfg.Notifications.PushToken = os.Getenv("PUSH_TOKEN")

	rate := os.Getenv("NOTIFICATION_RATE_PER_SECOND")
	if rate != "" {
		f, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFICATION_RATE_PER_SECOND value: %v", err)
		}
		cfg.Notifications.RatePerSecond = f
	}
	burst := os.Getenv("NOTIFICATION_BURST")
	if burst != "" {
		n, err := strconv.Atoi(burst)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFICATION_BURST value: %v", err)
		}
		cfg.Notifications.Burst = n
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Notifications.RatePerSecond == 0 {
		cfg.Notifications.RatePerSecond = 5
	}
	if cfg.Notifications.Burst == 0 {
		cfg.Notifications.Burst = 10
	}
}
