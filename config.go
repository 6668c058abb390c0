package inkcms

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Site parameter names. Parameters live in the database and carry
// compiled-in defaults, so a fresh install renders without any setup.
const (
	ParamTitle        = "TITLE"
	ParamSubtitle     = "SUBTITLE"
	ParamPostsPerPage = "POSTS_PER_PAGE"
	ParamSiteURL      = "SITE_URL"
)

var defaultParameters = map[string]string{
	ParamTitle:        "Title",
	ParamSubtitle:     "Subtitle",
	ParamPostsPerPage: "10",
	ParamSiteURL:      "",
}

// intParameter reads a numeric site parameter, falling back to the
// compiled-in default when the stored value is absent or malformed.
func intParameter(params map[string]string, name string) int {
	if v, err := strconv.Atoi(params[name]); err == nil && v > 0 {
		return v
	}
	v, _ := strconv.Atoi(defaultParameters[name])
	return v
}

// SiteConfig holds all configuration for an inkcms site.
type SiteConfig struct {
	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/inkcms.db")
	IndexPath    string `yaml:"index_path"`    // Search index path ("" = in-memory)

	AdminPassword string `yaml:"admin_password"` // Required: admin login password
	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/inkcms.db"
	}
}

func (c *SiteConfig) validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("inkcms: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("inkcms: SessionSecret is required")
	}
	return nil
}

// LoadConfigFile reads a YAML config file into a SiteConfig. Fields
// absent from the file keep their zero values; setDefaults fills them
// when the App starts.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("inkcms: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("inkcms: parse config: %w", err)
	}
	return cfg, nil
}

// EnvOr returns the environment variable value, or fallback if unset.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
