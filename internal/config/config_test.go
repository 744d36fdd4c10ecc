package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/weather"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Timeout)
	assert.Equal(t, weather.DefaultLocationURL, cfg.LocationURL)
	assert.Equal(t, weather.DefaultWeatherURL, cfg.WeatherURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)

	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.InDelta(t, 1.2, cfg.Retry.BackoffFactor, 1e-9)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, 3*time.Second, cfg.Retry.AttemptTimeout)
	assert.Zero(t, cfg.Retry.MaxDelay)

	assert.Equal(t, 10*time.Minute, cfg.Daemon.Interval)
	assert.Equal(t, "0.0.0.0:8080", cfg.Daemon.BindAddress)
	assert.True(t, cfg.Daemon.RunOnStart)
	assert.False(t, cfg.Webhook.Enabled())
	assert.Zero(t, cfg.RunTimeout())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WEATHER_LOG_LEVEL", "debug")
	t.Setenv("WEATHER_TIMEOUT", "30")
	t.Setenv("WEATHER_RETRY_MAX_RETRIES", "5")
	t.Setenv("WEATHER_RETRY_BACKOFF_FACTOR", "2")
	t.Setenv("WEATHER_RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("WEATHER_DAEMON_INTERVAL", "1m")
	t.Setenv("WEATHER_WEBHOOK_URL", "https://hooks.example.com/weather")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout())
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.InDelta(t, 2.0, cfg.Retry.BackoffFactor, 1e-9)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, time.Minute, cfg.Daemon.Interval)
	assert.True(t, cfg.Webhook.Enabled())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeFile(t, "weather.yaml", `
log-level: warn
location-url: http://127.0.0.1:9000/json
retry:
  max-retries: 1
  backoff-factor: 1.5
  initial-delay: 2s
  attempt-timeout: 0s
  max-delay: 5s
daemon:
  interval: 30s
  bind-address: 127.0.0.1:9090
  run-on-start: false
webhook:
  url: http://hooks.local/notify
  username: ops
  password: secret
`)
	v := newViper()
	v.Set("config", path)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:9000/json", cfg.LocationURL)
	assert.Equal(t, weather.DefaultWeatherURL, cfg.WeatherURL)
	assert.Equal(t, 1, cfg.Retry.MaxRetries)
	assert.InDelta(t, 1.5, cfg.Retry.BackoffFactor, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.Retry.InitialDelay)
	assert.Zero(t, cfg.Retry.AttemptTimeout)
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 30*time.Second, cfg.Daemon.Interval)
	assert.Equal(t, "127.0.0.1:9090", cfg.Daemon.BindAddress)
	assert.False(t, cfg.Daemon.RunOnStart)
	assert.Equal(t, Webhook{URL: "http://hooks.local/notify", Username: "ops", Password: "secret"}, cfg.Webhook)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	path := writeFile(t, "weather.yaml", "retry:\n  max-retries: 1\n")
	t.Setenv("WEATHER_RETRY_MAX_RETRIES", "7")

	v := newViper()
	v.Set("config", path)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Retry.MaxRetries)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "Backoff Below One", yaml: "retry:\n  backoff-factor: 0.5\n"},
		{name: "Negative Retries", yaml: "retry:\n  max-retries: -1\n"},
		{name: "Negative Timeout", yaml: "timeout: -5\n"},
		{name: "Zero Interval", yaml: "daemon:\n  interval: 0s\n"},
		{name: "Empty Weather URL", yaml: "weather-url: \"\"\n"},
		{name: "Bad Duration", yaml: "retry:\n  initial-delay: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set("config", writeFile(t, "weather.yaml", tt.yaml))

			_, err := Load(v)
			require.Error(t, err)
			assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	v := newViper()
	v.Set("config", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load(v)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
}

func TestLoadDotEnv(t *testing.T) {
	const key = "WEATHER_DOTENV_PROBE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-dotenv\n")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
