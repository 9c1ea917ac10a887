package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.RateLimitRPS)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Interval)
	assert.Equal(t, 60*time.Second, cfg.Simulation.ThreatCheckInterval)
	assert.Equal(t, uint64(0), cfg.Simulation.Seed)
	assert.Empty(t, cfg.Simulation.DatasetPath)
	assert.Equal(t, 200, cfg.Alerts.MaxRetained)
	assert.Equal(t, 5*time.Second, cfg.Notifications.ToastDuration)
	assert.Equal(t, 2, cfg.Notifications.Workers)
	assert.Equal(t, 20, cfg.Notifications.BufferSize)
	assert.Empty(t, cfg.Notifications.KafkaBrokers)
	assert.Equal(t, "coastal-notifications", cfg.Notifications.KafkaTopic)
	assert.Equal(t, "http://127.0.0.1:8000/api/alerts", cfg.Feed.URL)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "./data/coastal-alerts.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SIMULATION_INTERVAL", "5s")
	t.Setenv("THREAT_CHECK_INTERVAL", "10s")
	t.Setenv("SIMULATION_SEED", "1234")
	t.Setenv("ALERTS_MAX", "0")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "toasts")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Simulation.Interval)
	assert.Equal(t, 10*time.Second, cfg.Simulation.ThreatCheckInterval)
	assert.Equal(t, uint64(1234), cfg.Simulation.Seed)
	assert.Equal(t, 0, cfg.Alerts.MaxRetained)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Notifications.KafkaBrokers)
	assert.Equal(t, "toasts", cfg.Notifications.KafkaTopic)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, contains string
	}{
		{"port out of range", "SERVER_PORT", "70000", "port"},
		{"bad log level", "LOG_LEVEL", "verbose", "log level"},
		{"bad log format", "LOG_FORMAT", "xml", "log format"},
		{"fast simulation", "SIMULATION_INTERVAL", "10ms", "simulation interval"},
		{"fast threat check", "THREAT_CHECK_INTERVAL", "1ms", "threat check"},
		{"negative retention", "ALERTS_MAX", "-1", "ALERTS_MAX"},
		{"zero workers", "NOTIFY_WORKERS", "0", "workers"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0", "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_UnparsableFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SIMULATION_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Interval)
}
