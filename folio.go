// Package folio serves a personal portfolio site built with Go, Echo, and
// templ. Every page is rendered on the server in the visitor's light or dark
// theme, which is remembered across visits and toggled without JavaScript.
//
// Content (profile, projects, skills, blog posts) is YAML and Markdown,
// embedded as sample data or read from a directory on disk.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/folio/content"
)

// App is the central folio application. It wires together content, theme
// storage, middleware, and handlers.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Library *content.Library
	Prefs   *PreferenceStore // nil unless ThemeStorage is sqlite
	Images  *ImageCache
	Metrics *Metrics

	log           zerolog.Logger
	customLogger  bool
	contentFS     fs.FS
	toggleLimiter *RateLimiter
	customRoutes  []func(*App)
	stopCleanup   func()
	stopWatch     context.CancelFunc
	initialized   bool
}

// New creates a new folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:  cfg,
		Echo:    e,
		Metrics: NewMetrics(),
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger {
	return a.log
}

// Init loads content, opens storage, and registers middleware and routes.
// Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}
	if a.Config.ThemeStorage != StorageCookie && a.Config.ThemeStorage != StorageSQLite {
		return fmt.Errorf("folio: unknown theme storage %q", a.Config.ThemeStorage)
	}

	if !a.customLogger {
		log, err := NewLogger(LogOptions{Level: a.Config.LogLevel, Format: a.Config.LogFormat})
		if err != nil {
			return fmt.Errorf("folio: init logger: %w", err)
		}
		a.log = log
	}

	lib, err := content.NewLibrary(a.contentSource())
	if err != nil {
		return fmt.Errorf("folio: load content: %w", err)
	}
	a.Library = lib

	var imageSrc fs.FS
	if a.Config.ImageDir != "" {
		imageSrc = os.DirFS(a.Config.ImageDir)
	}
	a.Images = NewImageCache(imageSrc, time.Hour)
	lib.OnReload(func(err error) {
		result := "ok"
		if err != nil {
			result = "error"
		} else {
			a.Images.Invalidate()
		}
		a.Metrics.ContentReloads.WithLabelValues(result).Inc()
	})

	if a.Config.WatchContent && a.Config.ContentDir != "" && a.contentFS == nil {
		ctx, cancel := context.WithCancel(context.Background())
		if err := lib.Watch(ctx, a.Config.ContentDir, a.log); err != nil {
			cancel()
			return fmt.Errorf("folio: watch content: %w", err)
		}
		a.stopWatch = cancel
	}

	if a.Config.ThemeStorage == StorageSQLite {
		prefs, err := NewPreferenceStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Prefs = prefs
		a.stopCleanup = prefs.StartCleanupScheduler(a.Config.PreferenceRetention, 24*time.Hour, a.log)
	}

	a.toggleLimiter = NewRateLimiter(a.Config.ToggleLimit, a.Config.ToggleWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func (a *App) contentSource() fs.FS {
	switch {
	case a.contentFS != nil:
		return a.contentFS
	case a.Config.ContentDir != "":
		return os.DirFS(a.Config.ContentDir)
	default:
		return content.DefaultFS()
	}
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	cat := a.Library.Catalog()
	a.log.Info().
		Str("addr", a.Config.Addr).
		Str("theme_storage", a.Config.ThemeStorage).
		Int("projects", len(cat.Projects)).
		Int("skills", len(cat.Skills)).
		Int("posts", len(cat.PublishedPosts())).
		Msg("folio listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/nav.css", handleNavCSS)
	e.StaticFS("/public", embeddedFS)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", a.handleHealthz)
	e.GET("/metrics", a.Metrics.handler())

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/projects/", a.handleProjects)
	e.GET("/skills/", a.handleSkills)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/images/projects/:name", a.handleProjectImage)

	e.GET("/theme/", a.handleTheme)
	e.POST("/theme/toggle/", a.handleThemeToggle)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.toggleLimiter != nil {
		a.toggleLimiter.Stop()
	}
	if a.Prefs != nil {
		return a.Prefs.Close()
	}
	return nil
}
