package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
boom:
  client_id: my-id
  client_secret: my-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "my-id", cfg.Boom.ClientID)
				assert.Equal(t, "my-secret", cfg.Boom.ClientSecret)
				assert.True(t, cfg.Boom.Configured())
				assert.False(t, cfg.Database.Enabled())
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `{}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, EnvProduction, cfg.Environment)
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "https://app.boomnow.com/open_api/v1", cfg.Boom.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Boom.Timeout)
				assert.Equal(t, time.Minute, cfg.Boom.TokenSweepInterval)
				assert.False(t, cfg.Boom.Configured())
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 5, cfg.Database.PoolSize)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "environment is case insensitive",
			yaml: `environment: DEVELOPMENT`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, EnvDevelopment, cfg.Environment)
				assert.True(t, cfg.IsDevelopment())
			},
		},
		{
			name: "trailing slash trimmed from base URL",
			yaml: `
boom:
  base_url: http://localhost:8089/open_api/v1/
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:8089/open_api/v1", cfg.Boom.BaseURL)
			},
		},
		{
			name: "env var substitution",
			yaml: `
server:
  port: ${TEST_PS_PORT}
boom:
  client_id: "${TEST_PS_CLIENT_ID}"
  client_secret: "${TEST_PS_CLIENT_SECRET}"
`,
			envVars: map[string]string{
				"TEST_PS_PORT":          "9090",
				"TEST_PS_CLIENT_ID":     "env-id",
				"TEST_PS_CLIENT_SECRET": "env-secret",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "env-id", cfg.Boom.ClientID)
				assert.Equal(t, "env-secret", cfg.Boom.ClientSecret)
			},
		},
		{
			name: "unset env vars leave credentials empty",
			yaml: `
boom:
  client_id: "${TEST_PS_UNSET_ID}"
  client_secret: "${TEST_PS_UNSET_SECRET}"
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Boom.Configured())
			},
		},
		{
			name: "database requires name and user when host set",
			yaml: `
database:
  host: localhost
`,
			wantErr: "database.name is required",
		},
		{
			name:    "invalid environment",
			yaml:    `environment: staging`,
			wantErr: "environment must be one of",
		},
		{
			name: "invalid base URL",
			yaml: `
boom:
  base_url: ftp://example.com
`,
			wantErr: "boom.base_url must be an http(s) URL",
		},
		{
			name: "invalid port",
			yaml: `
server:
  port: 70000
`,
			wantErr: "server.port must be between",
		},
		{
			name: "invalid log format",
			yaml: `
logging:
  format: xml
`,
			wantErr: "logging.format must be one of",
		},
		{
			name:    "invalid YAML",
			yaml:    "server: [",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	const key = "TEST_PS_DOTENV_CLIENT_ID"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte(key+"=from-dotenv\n"),
		0o644,
	))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boom:\n  client_id: ${"+key+"}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Boom.ClientID)
}

func TestLoad_EnvFilePerEnvironment(t *testing.T) {
	const key = "TEST_PS_DOTENV_SECRET"
	t.Setenv("APP_ENV", "DEVELOPMENT")
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.DEVELOPMENT.env"),
		[]byte(key+"=dev-secret\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte(key+"=generic-secret\n"),
		0o644,
	))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boom:\n  client_secret: ${"+key+"}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev-secret", cfg.Boom.ClientSecret)
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	const key = "TEST_PS_DOTENV_OVERRIDE"
	t.Setenv(key, "from-environment")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte(key+"=from-dotenv\n"),
		0o644,
	))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boom:\n  client_id: ${"+key+"}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-environment", cfg.Boom.ClientID)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		Name:     "listings",
		User:     "app",
		Password: "pw",
		SSLMode:  "require",
	}

	assert.Equal(
		t,
		"host=db.local port=5433 dbname=listings user=app password=pw sslmode=require",
		d.DSN(),
	)
}
