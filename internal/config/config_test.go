package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/core"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "COOKIE_SECURE",
		"ODOO_URL", "ODOO_DB", "ODOO_PROXY_PREFIX", "LOG_LEVEL", "LOG_FORMAT",
		"DASHBOARD_TITLE", "COMPANY_NAME",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/odoo", cfg.Odoo.ProxyPrefix)
	assert.Equal(t, "https://digres-cz-pokusy.odoo.com", cfg.Odoo.URL)
	assert.True(t, cfg.Server.CookieSecure)
	assert.Len(t, cfg.Server.JWTSecret, 64, "random secret expected when unset")
	assert.True(t, cfg.Server.JWTSecretGenerated)
	assert.Equal(t, core.DefaultWidgetSeeds(), cfg.Dashboard.DefaultWidgets)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  port: "9000"
odoo:
  url: https://erp.example.com
  database: prod
log:
  level: debug
  format: console
dashboard:
  title: Ops
  default_widgets:
    - type: inventory
      title: Stock
`)
	t.Setenv("ODOO_DB", "staging")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://erp.example.com", cfg.Odoo.URL)
	assert.Equal(t, "staging", cfg.Odoo.Database, "env overrides file")
	assert.False(t, cfg.Server.CookieSecure)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
	assert.False(t, cfg.Server.JWTSecretGenerated)
	assert.Equal(t, "Ops", cfg.Dashboard.Title)
	assert.Equal(t, "Your Company", cfg.Dashboard.CompanyName, "unset keys keep defaults")
	assert.Equal(t, []core.WidgetSeed{{Kind: core.WidgetInventory, Title: "Stock"}}, cfg.Dashboard.DefaultWidgets)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "relative odoo url", env: map[string]string{"ODOO_URL": "/odoo"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "bad cookie flag", env: map[string]string{"COOKIE_SECURE": "maybe"}},
		{name: "root proxy prefix", env: map[string]string{"ODOO_PROXY_PREFIX": "/"}},
		{name: "unknown seed widget", file: "dashboard:\n  default_widgets:\n    - type: weather\n"},
		{name: "malformed yaml", file: "server: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRedacted(t *testing.T) {
	cfg := config.Default()
	cfg.Server.JWTSecret = "s3cret"

	red := cfg.Redacted()
	assert.Equal(t, "********", red.Server.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret, "input untouched")
}

func TestLoad_SecretFromFileIsNotGenerated(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  jwt_secret: from-file
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Server.JWTSecret)
	assert.False(t, cfg.Server.JWTSecretGenerated)
}
