// Package config loads the weather tool's settings from flags, environment,
// an optional YAML file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/policy"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/weather"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WEATHER_RETRY_MAX_RETRIES.
const EnvPrefix = "WEATHER"

// Config is the fully resolved configuration.
type Config struct {
	LogLevel    string          `mapstructure:"log-level"`
	Timeout     int             `mapstructure:"timeout"` // whole-run limit in seconds, 0 = none
	LocationURL string          `mapstructure:"location-url"`
	WeatherURL  string          `mapstructure:"weather-url"`
	HTTPTimeout time.Duration   `mapstructure:"http-timeout"`
	Retry       policy.Settings `mapstructure:"retry"`
	Daemon      Daemon          `mapstructure:"daemon"`
	Webhook     Webhook         `mapstructure:"webhook"`
}

// Daemon configures the refresh loop and its HTTP endpoints.
type Daemon struct {
	Interval    time.Duration `mapstructure:"interval"`
	BindAddress string        `mapstructure:"bind-address"`
	RunOnStart  bool          `mapstructure:"run-on-start"`
}

// Webhook configures failure notifications. An empty URL disables them.
type Webhook struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Enabled reports whether a webhook endpoint is configured.
func (w Webhook) Enabled() bool {
	return w.URL != ""
}

// SetDefaults registers every known key on v. Keys without a default are
// invisible to AutomaticEnv during Unmarshal, so all of them are listed here.
func SetDefaults(v *viper.Viper) {
	retry := policy.DefaultSettings()

	v.SetDefault("log-level", "info")
	v.SetDefault("timeout", 0)
	v.SetDefault("location-url", weather.DefaultLocationURL)
	v.SetDefault("weather-url", weather.DefaultWeatherURL)
	v.SetDefault("http-timeout", 10*time.Second)

	v.SetDefault("retry.max-retries", retry.MaxRetries)
	v.SetDefault("retry.backoff-factor", retry.BackoffFactor)
	v.SetDefault("retry.initial-delay", retry.InitialDelay)
	v.SetDefault("retry.attempt-timeout", retry.AttemptTimeout)
	v.SetDefault("retry.max-delay", retry.MaxDelay)

	v.SetDefault("daemon.interval", 10*time.Minute)
	v.SetDefault("daemon.bind-address", "0.0.0.0:8080")
	v.SetDefault("daemon.run-on-start", true)

	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.username", "")
	v.SetDefault("webhook.password", "")
}

// BindEnv enables WEATHER_* environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv exports the variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the optional config file named by v's "config" key, then decodes
// and validates the merged settings.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, apperror.Wrap(err, apperror.KindConfiguration, "failed to read config file "+file)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, apperror.Wrap(err, apperror.KindConfiguration, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be expressed as types.
func (c Config) Validate() error {
	if _, err := policy.NewRetryPolicy(c.Retry); err != nil {
		return err
	}
	switch {
	case c.Timeout < 0:
		return apperror.Newf(apperror.KindConfiguration, "timeout must not be negative, got %d", c.Timeout)
	case c.HTTPTimeout < 0:
		return apperror.Newf(apperror.KindConfiguration, "http-timeout must not be negative, got %s", c.HTTPTimeout)
	case c.Daemon.Interval <= 0:
		return apperror.Newf(apperror.KindConfiguration, "daemon.interval must be positive, got %s", c.Daemon.Interval)
	case c.LocationURL == "" || c.WeatherURL == "":
		return apperror.New(apperror.KindConfiguration, "location-url and weather-url must be set")
	}
	return nil
}

// RunTimeout returns the whole-run limit as a duration, 0 when unlimited.
func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
