package folio

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/folio/theme"
)

const (
	prefsSession    = "folio_prefs"
	visitorKey      = "visitor"
	controllerKey   = "theme_controller"
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

var errNoVisitor = errors.New("no visitor id")

// cookieStorage keeps the theme in the signed preference cookie.
type cookieStorage struct {
	c echo.Context
}

func (s cookieStorage) Get(key string) (string, error) {
	sess, err := session.Get(prefsSession, s.c)
	if err != nil {
		return "", err
	}
	v, _ := sess.Values[key].(string)
	return v, nil
}

func (s cookieStorage) Set(key, value string) error {
	sess, err := session.Get(prefsSession, s.c)
	if sess == nil {
		return err
	}
	// an undecodable cookie yields a fresh session, which the save replaces
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}

// sqliteStorage keeps the theme in the preference database, keyed by an
// anonymous visitor id carried in the preference cookie.
type sqliteStorage struct {
	c     echo.Context
	store *PreferenceStore
}

func (s sqliteStorage) Get(key string) (string, error) {
	id, err := visitorID(s.c, false)
	if err != nil {
		if errors.Is(err, errNoVisitor) {
			return "", nil
		}
		return "", err
	}
	return s.store.Get(s.c.Request().Context(), id, key)
}

func (s sqliteStorage) Set(key, value string) error {
	id, err := visitorID(s.c, true)
	if err != nil {
		return err
	}
	return s.store.Set(s.c.Request().Context(), id, key, value)
}

// visitorID returns the visitor id from the preference cookie, minting and
// saving a new one when create is set.
func visitorID(c echo.Context, create bool) (string, error) {
	sess, err := session.Get(prefsSession, c)
	if sess == nil {
		return "", err
	}
	if id, ok := sess.Values[visitorKey].(string); ok && err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			return id, nil
		}
	}
	if !create {
		return "", errNoVisitor
	}
	id := uuid.NewString()
	sess.Values[visitorKey] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return id, nil
}

// loggedStorage reports storage failures at debug level and passes them on.
type loggedStorage struct {
	inner theme.Storage
	log   zerolog.Logger
}

func (s loggedStorage) Get(key string) (string, error) {
	v, err := s.inner.Get(key)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("theme storage read failed")
	}
	return v, err
}

func (s loggedStorage) Set(key, value string) error {
	err := s.inner.Set(key, value)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("theme storage write failed")
	}
	return err
}

// headerPreference reads the color scheme client hint. A missing or
// unrecognized header gives no answer.
func headerPreference(r *http.Request) theme.Preference {
	return theme.PreferenceFunc(func() (bool, bool) {
		t, ok := theme.Parse(r.Header.Get(colorSchemeHint))
		if !ok {
			return false, false
		}
		return t.IsDark(), true
	})
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

func (a *App) newController(c echo.Context) *theme.Controller {
	var storage theme.Storage = cookieStorage{c: c}
	if a.Config.ThemeStorage == StorageSQLite && a.Prefs != nil {
		storage = sqliteStorage{c: c, store: a.Prefs}
	}
	fallback, _ := theme.Parse(a.Config.DefaultTheme)
	return theme.NewController(
		loggedStorage{inner: storage, log: a.log},
		headerPreference(c.Request()),
		theme.WithFallback(fallback),
		theme.WithListener(func(t theme.Theme) {
			a.Metrics.ThemeToggles.WithLabelValues(t.String()).Inc()
		}),
	)
}

// themeScope resolves the visitor's theme once per page request and places
// it in the request context, where every rendered component reads it.
func (a *App) themeScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if isMachinePath(path) || strings.HasPrefix(path, "/images/") {
			return next(c)
		}
		ctrl := a.newController(c)
		c.Set(controllerKey, ctrl)

		h := c.Response().Header()
		h.Set("Accept-CH", colorSchemeHint)
		h.Set("Critical-CH", colorSchemeHint)
		h.Add(echo.HeaderVary, colorSchemeHint)
		h.Add(echo.HeaderVary, "Cookie")

		req := c.Request()
		c.SetRequest(req.WithContext(theme.WithContext(req.Context(), ctrl.Current())))
		return next(c)
	}
}

func controllerFrom(c echo.Context) *theme.Controller {
	ctrl, _ := c.Get(controllerKey).(*theme.Controller)
	return ctrl
}

type themeResponse struct {
	Theme string `json:"theme"`
}

func (a *App) handleTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, themeResponse{Theme: controllerFrom(c).Current().String()})
}

func (a *App) handleThemeToggle(c echo.Context) error {
	if !a.toggleLimiter.Allow(c.RealIP()) {
		a.Metrics.ToggleLimited.Inc()
		if !wantsJSON(c) {
			// plain forms land back on their page with the theme unchanged
			return c.Redirect(http.StatusSeeOther, backURL(c))
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
	}
	next := controllerFrom(c).Toggle()
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, themeResponse{Theme: next.String()})
	}
	return c.Redirect(http.StatusSeeOther, backURL(c))
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return req.Header.Get("HX-Request") == "true" ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// backURL returns the same-origin page the form was posted from, or "/".
func backURL(c echo.Context) string {
	ref := c.Request().Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return "/"
	}
	back := u.RequestURI()
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return "/"
	}
	return back
}
