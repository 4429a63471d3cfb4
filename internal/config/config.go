package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"odoo-dashboard/internal/core"

	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of both binaries.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Odoo      OdooConfig      `yaml:"odoo"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig controls the HTTP listener and the auth cookie.
type ServerConfig struct {
	Port           string `yaml:"port"`
	AllowedOrigins string `yaml:"allowed_origins"` // comma-separated; empty disables CORS
	JWTSecret      string `yaml:"jwt_secret"`
	CookieSecure   bool   `yaml:"cookie_secure"`

	// JWTSecretGenerated is set by Load when neither the file nor the
	// environment supplied a secret.
	JWTSecretGenerated bool `yaml:"-"`
}

// OdooConfig points at the backend.
type OdooConfig struct {
	URL         string `yaml:"url"`          // upstream origin, e.g. https://example.odoo.com
	Database    string `yaml:"database"`     // sent as db on authenticate
	ProxyPrefix string `yaml:"proxy_prefix"` // path the dev proxy strips before forwarding
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DashboardConfig controls what the pages show.
type DashboardConfig struct {
	Title          string            `yaml:"title"`
	CompanyName    string            `yaml:"company_name"`
	DefaultWidgets []core.WidgetSeed `yaml:"default_widgets"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			CookieSecure: true,
		},
		Odoo: OdooConfig{
			URL:         "https://digres-cz-pokusy.odoo.com",
			Database:    "digres-cz-pokusy1-main-21601808",
			ProxyPrefix: "/odoo",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Dashboard: DashboardConfig{
			Title:          "Odoo Dashboard",
			CompanyName:    "Your Company",
			DefaultWidgets: core.DefaultWidgetSeeds(),
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if path
// is non-empty), then environment overrides. A missing JWT secret is replaced
// by a random per-process one.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.Server.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Server.JWTSecret = secret
		cfg.Server.JWTSecretGenerated = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&c.Server.JWTSecret, "JWT_SECRET")
	setString(&c.Odoo.URL, "ODOO_URL")
	setString(&c.Odoo.Database, "ODOO_DB")
	setString(&c.Odoo.ProxyPrefix, "ODOO_PROXY_PREFIX")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Dashboard.Title, "DASHBOARD_TITLE")
	setString(&c.Dashboard.CompanyName, "COMPANY_NAME")

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		c.Server.CookieSecure = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	u, err := url.Parse(c.Odoo.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("odoo.url must be an absolute URL, got %q", c.Odoo.URL)
	}
	if c.Odoo.Database == "" {
		return errors.New("odoo.database must be set")
	}
	if !strings.HasPrefix(c.Odoo.ProxyPrefix, "/") || c.Odoo.ProxyPrefix == "/" {
		return fmt.Errorf("odoo.proxy_prefix must start with / and not be the root, got %q", c.Odoo.ProxyPrefix)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	for i, w := range c.Dashboard.DefaultWidgets {
		if !w.Kind.Known() {
			return fmt.Errorf("dashboard.default_widgets[%d]: unknown type %q", i, w.Kind)
		}
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	out := c
	if out.Server.JWTSecret != "" {
		out.Server.JWTSecret = "********"
	}
	out.Dashboard.DefaultWidgets = append([]core.WidgetSeed(nil), c.Dashboard.DefaultWidgets...)
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
