// Package config handles loading and validating application configuration.
//
// Configuration is loaded from an optional YAML file with environment
// variable overrides. Environment variables use the VITRINA_ prefix
// (e.g., VITRINA_AUTH_TOKEN); the listen port also honours PORT.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Server        Server        `yaml:"server"`
	Auth          Auth          `yaml:"auth"`
	Store         Store         `yaml:"store"`
	Log           Log           `yaml:"log"`
	Observability Observability `yaml:"observability"`
}

// Server configures the HTTP listener.
type Server struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// Auth configures the shared-secret token required on mutating routes.
type Auth struct {
	Header string `yaml:"header"`
	Token  string `yaml:"token"`
}

// Store configures the product store.
type Store struct {
	IDStrategy string `yaml:"id_strategy"`
	SeedFile   string `yaml:"seed_file"`
}

// Log configures structured logging.
type Log struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	CloudFormat string `yaml:"cloud_format"`
}

// Observability configures optional OpenTelemetry tracing.
type Observability struct {
	OTelEnabled     bool   `yaml:"otel_enabled"`
	OTelEndpoint    string `yaml:"otel_endpoint"`
	OTelServiceName string `yaml:"otel_service_name"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:         5000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			MaxBodyBytes: 100 << 10,
		},
		Auth: Auth{
			Header: "x-auth-token",
			Token:  "12345",
		},
		Store: Store{
			IDStrategy: "length",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Observability: Observability{
			OTelEndpoint:    "http://localhost:4318",
			OTelServiceName: "vitrina",
		},
	}
}

// Load reads configuration from the given YAML file path, then applies
// environment variable overrides. If path is empty, only defaults and
// environment variables are used.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides reads PORT and VITRINA_* environment variables and
// overrides the corresponding config values. VITRINA_PORT wins over PORT.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VITRINA_HOST"); v != "" {
		cfg.Server.Host = v
	}
	for _, name := range []string{"PORT", "VITRINA_PORT"} {
		if v := os.Getenv(name); v != "" {
			if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				cfg.Server.Port = port
			}
		}
	}
	if v := os.Getenv("VITRINA_AUTH_TOKEN"); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv("VITRINA_ID_STRATEGY"); v != "" {
		cfg.Store.IDStrategy = strings.ToLower(v)
	}
	if v := os.Getenv("VITRINA_SEED_FILE"); v != "" {
		cfg.Store.SeedFile = v
	}
	if v := os.Getenv("VITRINA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("VITRINA_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("VITRINA_LOG_CLOUD_FORMAT"); v != "" {
		cfg.Log.CloudFormat = strings.ToLower(v)
	}
	if v := os.Getenv("VITRINA_OTEL_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Observability.OTelEnabled = enabled
		}
	}
	if v := os.Getenv("VITRINA_OTEL_ENDPOINT"); v != "" {
		cfg.Observability.OTelEndpoint = strings.TrimSpace(v)
	}
	if v := os.Getenv("VITRINA_OTEL_SERVICE_NAME"); v != "" {
		cfg.Observability.OTelServiceName = v
	}
}

// validate checks that the configuration is internally consistent.
func validate(cfg Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}
	if cfg.Server.MaxBodyBytes < 1 {
		errs = append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	if strings.TrimSpace(cfg.Auth.Header) == "" {
		errs = append(errs, errors.New("auth.header is required"))
	}
	if strings.TrimSpace(cfg.Auth.Token) == "" {
		errs = append(errs, errors.New("auth.token is required"))
	}

	validStrategies := map[string]bool{"length": true, "sequence": true}
	if !validStrategies[cfg.Store.IDStrategy] {
		errs = append(errs, fmt.Errorf("store.id_strategy must be length or sequence; got %q", cfg.Store.IDStrategy))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", cfg.Log.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format must be json or text; got %q", cfg.Log.Format))
	}
	validCloud := map[string]bool{"": true, "gcp": true, "gcp_with_resource": true}
	if !validCloud[cfg.Log.CloudFormat] {
		errs = append(errs, fmt.Errorf("log.cloud_format must be empty, gcp or gcp_with_resource; got %q", cfg.Log.CloudFormat))
	}

	if cfg.Observability.OTelEnabled {
		if strings.TrimSpace(cfg.Observability.OTelEndpoint) == "" {
			errs = append(errs, errors.New("observability.otel_endpoint is required when tracing is enabled"))
		}
		if cfg.Observability.OTelServiceName == "" {
			errs = append(errs, errors.New("observability.otel_service_name is required when tracing is enabled"))
		}
	}

	return errors.Join(errs...)
}

// Addr returns the listen address as "host:port". An empty host listens on
// every interface.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
