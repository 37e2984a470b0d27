package folio

import (
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/folio/theme"
)

// Theme storage backends.
const (
	StorageCookie = "cookie"
	StorageSQLite = "sqlite"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (defaults to the profile name)
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path"` // SQLite path (default "data/folio.db")

	ContentDir   string   `mapstructure:"content_dir"`   // Content override directory; embedded sample content when empty
	WatchContent bool     `mapstructure:"watch_content"` // Reload ContentDir on change
	ImageDir     string   `mapstructure:"image_dir"`     // Project image sources (default "<content_dir>/images")
	Sections     []string `mapstructure:"sections"`      // Home sections to include (default all)

	ThemeStorage  string `mapstructure:"theme_storage"`  // "cookie" (default) or "sqlite"
	DefaultTheme  string `mapstructure:"default_theme"`  // Used when nothing is stored and no hint is sent
	SessionSecret string `mapstructure:"session_secret"` // Required: cookie signing secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	ToggleLimit         int           `mapstructure:"toggle_limit"`         // Theme toggles per IP per window (default 30)
	ToggleWindow        time.Duration `mapstructure:"toggle_window"`        // default 1m
	PreferenceRetention time.Duration `mapstructure:"preference_retention"` // sqlite rows untouched this long are pruned (default 180 days)

	LogLevel  string `mapstructure:"log_level"`  // default "info"
	LogFormat string `mapstructure:"log_format"` // "json" (default) or "console"
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if len(c.Sections) == 0 {
		c.Sections = nil
	}
	if c.ImageDir == "" && c.ContentDir != "" {
		c.ImageDir = c.ContentDir + "/images"
	}
	if c.ThemeStorage == "" {
		c.ThemeStorage = StorageCookie
	}
	if _, ok := theme.Parse(c.DefaultTheme); !ok {
		c.DefaultTheme = theme.Default.String()
	}
	if c.ToggleLimit == 0 {
		c.ToggleLimit = 30
	}
	if c.ToggleWindow == 0 {
		c.ToggleWindow = time.Minute
	}
	if c.PreferenceRetention == 0 {
		c.PreferenceRetention = 180 * 24 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the logger built from LogLevel and LogFormat.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.log = log
		a.customLogger = true
	}
}

// WithContentFS serves content from fsys instead of ContentDir or the
// embedded sample content.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
