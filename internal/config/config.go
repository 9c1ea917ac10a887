package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig
	Simulation    SimulationConfig
	Alerts        AlertsConfig
	Notifications NotificationsConfig
	Feed          FeedConfig
	DB            DatabaseConfig
	Logging       LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	RateLimitRPS    int
	ShutdownTimeout time.Duration
}

type SimulationConfig struct {
	Interval            time.Duration
	ThreatCheckInterval time.Duration
	Seed                uint64
	DatasetPath         string // empty uses the built-in dataset
}

type AlertsConfig struct {
	MaxRetained int // 0 keeps every alert in memory
}

type NotificationsConfig struct {
	ToastDuration time.Duration
	Workers       int
	BufferSize    int
	KafkaBrokers  []string
	KafkaTopic    string
}

type FeedConfig struct {
	URL     string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 20),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Simulation: SimulationConfig{
			Interval:            getEnvDuration("SIMULATION_INTERVAL", 30*time.Second),
			ThreatCheckInterval: getEnvDuration("THREAT_CHECK_INTERVAL", 60*time.Second),
			Seed:                getEnvUint("SIMULATION_SEED", 0),
			DatasetPath:         getEnv("DATASET_PATH", ""),
		},
		Alerts: AlertsConfig{
			MaxRetained: getEnvInt("ALERTS_MAX", 200),
		},
		Notifications: NotificationsConfig{
			ToastDuration: getEnvDuration("TOAST_DURATION", 5*time.Second),
			Workers:       getEnvInt("NOTIFY_WORKERS", 2),
			BufferSize:    getEnvInt("NOTIFY_BUFFER", 20),
			KafkaBrokers:  getEnvList("KAFKA_BROKERS"),
			KafkaTopic:    getEnv("KAFKA_TOPIC", "coastal-notifications"),
		},
		Feed: FeedConfig{
			URL:     getEnv("FEED_URL", "http://127.0.0.1:8000/api/alerts"),
			Timeout: getEnvDuration("FEED_TIMEOUT", 10*time.Second),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/coastal-alerts.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Simulation.Interval < time.Second {
		return fmt.Errorf("simulation interval must be at least 1 second")
	}
	if c.Simulation.ThreatCheckInterval < time.Second {
		return fmt.Errorf("threat check interval must be at least 1 second")
	}

	if c.Alerts.MaxRetained < 0 {
		return fmt.Errorf("invalid ALERTS_MAX: %d", c.Alerts.MaxRetained)
	}

	if c.Notifications.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive")
	}
	if c.Notifications.Workers < 1 {
		return fmt.Errorf("notification workers must be at least 1")
	}
	if c.Notifications.BufferSize < 1 {
		return fmt.Errorf("notification buffer must be at least 1")
	}
	if len(c.Notifications.KafkaBrokers) > 0 && c.Notifications.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed timeout must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint(key string, fallback uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
