package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that steer loading itself.
const (
	EnvPrefix     = "RELAY_"
	EnvConfigFile = "RELAY_CONFIG"
	EnvDotEnvFile = "RELAY_DOTENV"

	defaultDotEnvFile = ".env"
)

// legacyEnv maps unprefixed variables used by existing deployments to config keys.
var legacyEnv = map[string]string{
	"PORT":                "port",
	"OPENWEATHER_API_KEY": "openweather_api_key",
}

// Load builds a Config by layering, low -> high precedence:
//  1. defaults (New())
//  2. .env file (RELAY_DOTENV, or ./.env when present)
//  3. YAML file if RELAY_CONFIG is set
//  4. legacy env vars PORT and OPENWEATHER_API_KEY
//  5. env (prefix RELAY_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if err := loadDotEnv(k); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", legacyKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// RELAY_UPSTREAM_TIMEOUT -> upstream_timeout. Underscores are kept to match
	// the koanf tags on the struct.
	if err := k.Load(env.Provider(EnvPrefix, ".", prefixedKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// unmarshalConf decodes durations from strings like "10s" and splits
// comma separated strings, e.g. RELAY_CORS_ALLOWED_ORIGINS, into lists.
func unmarshalConf(out *Config) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           out,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	}
}

// Validate checks the fields the service cannot start without. A missing
// OpenWeather key is allowed; weather calls then fail upstream.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	}
	for name, raw := range map[string]string{
		"weather_base_url":   c.WeatherBaseURL,
		"countries_base_url": c.CountriesBaseURL,
		"exchange_base_url":  c.ExchangeBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
		}
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("%w: upstream_timeout must be positive", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// loadDotEnv merges a dotenv file into k using the same key mapping as the
// process environment. The default ./.env is optional; an explicit path is not.
func loadDotEnv(k *koanf.Koanf) error {
	path, explicit := os.LookupEnv(EnvDotEnvFile)
	if !explicit || path == "" {
		path, explicit = defaultDotEnvFile, false
	}

	dk := koanf.New(".")
	if err := dk.Load(file.Provider(path), dotenv.Parser()); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	for name, value := range dk.All() {
		if key := envKey(name); key != "" {
			if err := k.Set(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// envKey maps both RELAY_* and legacy variable names to config keys.
func envKey(name string) string {
	if key := prefixedKey(name); key != "" {
		return key
	}
	return legacyKey(name)
}

func prefixedKey(name string) string {
	if !strings.HasPrefix(strings.ToUpper(name), EnvPrefix) {
		return ""
	}
	return strings.ToLower(name[len(EnvPrefix):])
}

func legacyKey(name string) string {
	return legacyEnv[strings.ToUpper(name)]
}
