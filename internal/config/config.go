// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the top-level application configuration.
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	Boom        BoomConfig     `yaml:"boom"`
	Database    DatabaseConfig `yaml:"database"`
	Logging     LoggingConfig  `yaml:"logging"`
}

// IsDevelopment reports whether development-only routes should be served.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// BoomConfig defines Boom API settings. Leaving either credential empty puts
// the search endpoint in mock mode.
type BoomConfig struct {
	BaseURL            string        `yaml:"base_url"`
	ClientID           string        `yaml:"client_id"`
	ClientSecret       string        `yaml:"client_secret"`
	Timeout            time.Duration `yaml:"timeout"`
	TokenSweepInterval time.Duration `yaml:"token_sweep_interval"`
}

// Configured reports whether both credentials are present.
func (b *BoomConfig) Configured() bool {
	return b.ClientID != "" && b.ClientSecret != ""
}

// DatabaseConfig defines PostgreSQL connection settings. The database is
// optional; it is only pinged for readiness.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. An env file next to the config is loaded first:
// config.<APP_ENV>.env when APP_ENV is set, else .env. Variables already in
// the environment take precedence over the file.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(filepath.Dir(path)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(dir string) error {
	candidates := []string{".env"}
	if env := os.Getenv("APP_ENV"); env != "" {
		candidates = append([]string{"config." + env + ".env"}, candidates...)
	}

	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading env file %s: %w", p, err)
		}
		return nil
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.Environment == "" {
		cfg.Environment = EnvProduction
	}
	applyServerDefaults(&cfg.Server)
	applyBoomDefaults(&cfg.Boom)
	applyDatabaseDefaults(&cfg.Database)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyBoomDefaults(b *BoomConfig) {
	if b.BaseURL == "" {
		b.BaseURL = "https://app.boomnow.com/open_api/v1"
	}
	b.BaseURL = strings.TrimRight(b.BaseURL, "/")
	if b.Timeout == 0 {
		b.Timeout = 30 * time.Second
	}
	if b.TokenSweepInterval == 0 {
		b.TokenSweepInterval = time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 5
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf(
			"environment must be one of: development, production (got %q)",
			cfg.Environment,
		))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if !strings.HasPrefix(cfg.Boom.BaseURL, "http://") &&
		!strings.HasPrefix(cfg.Boom.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("boom.base_url must be an http(s) URL (got %q)", cfg.Boom.BaseURL))
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, errors.New("database.user is required when database.host is set"))
		}
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
