package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate func(*SiteConfig)) *App {
	t.Helper()
	cfg := SiteConfig{
		URL:           "https://example.com",
		SessionSecret: "test-secret-0123456789abcdef0123",
		DatabasePath:  filepath.Join(t.TempDir(), "folio.db"),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	a := New(cfg, WithLogger(zerolog.Nop()))
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(a, req)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// csrfCookie loads a page and returns the CSRF cookie it issued. The
// cookie value doubles as the token.
func csrfCookie(t *testing.T, a *App) *http.Cookie {
	t.Helper()
	rec := get(a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	c := findCookie(rec, "_csrf")
	require.NotNil(t, c, "no csrf cookie issued")
	return c
}

func toggleJSON(t *testing.T, a *App, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	csrf := csrfCookie(t, a)
	req := httptest.NewRequest(http.MethodPost, "/theme/toggle/", nil)
	req.Header.Set("X-CSRF-Token", csrf.Value)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(csrf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(a, req)
}

func decodeTheme(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body themeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Theme
}

func TestInitRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{}, WithLogger(zerolog.Nop()))
	assert.Error(t, a.Init())
}

func TestInitRejectsUnknownStorage(t *testing.T) {
	a := New(SiteConfig{SessionSecret: "s", ThemeStorage: "redis"}, WithLogger(zerolog.Nop()))
	assert.Error(t, a.Init())
}

func TestHomeDefaultsToDarkTheme(t *testing.T) {
	a := newTestApp(t, nil)
	rec := get(a, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en" data-theme="dark"`)
	assert.Equal(t, colorSchemeHint, rec.Header().Get("Accept-CH"))
	assert.Equal(t, colorSchemeHint, rec.Header().Get("Critical-CH"))
	assert.Contains(t, rec.Header().Values("Vary"), colorSchemeHint)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "private")
	assert.Nil(t, findCookie(rec, prefsSession), "loading a page must not persist a theme")
}

func TestHomeFollowsClientHint(t *testing.T) {
	a := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(colorSchemeHint, `"light"`)
	rec := serve(a, req)

	assert.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestConfiguredFallback(t *testing.T) {
	a := newTestApp(t, func(c *SiteConfig) { c.DefaultTheme = "light" })
	assert.Contains(t, get(a, "/").Body.String(), `data-theme="light"`)
}

func TestToggleRoundTrip(t *testing.T) {
	a := newTestApp(t, nil)

	rec := toggleJSON(t, a)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decodeTheme(t, rec))
	prefs := findCookie(rec, prefsSession)
	require.NotNil(t, prefs)

	// the stored choice beats the environment preference
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(colorSchemeHint, "dark")
	req.AddCookie(prefs)
	page := serve(a, req)
	assert.Contains(t, page.Body.String(), `data-theme="light"`)

	rec = toggleJSON(t, a, prefs)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decodeTheme(t, rec))

	state := get(a, "/theme/", findCookie(rec, prefsSession))
	assert.Equal(t, "dark", decodeTheme(t, state))
}

func TestToggleRequiresCSRFToken(t *testing.T) {
	a := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/theme/toggle/", nil)
	rec := serve(a, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestToggleFormRedirectsBack(t *testing.T) {
	a := newTestApp(t, nil)

	cases := map[string]string{
		"":                                "/",
		"https://example.com/projects/":   "/projects/",
		"https://example.com/?category=X": "/?category=X",
		"https://evil.example/phish":      "/",
	}
	for referer, want := range cases {
		csrf := csrfCookie(t, a)
		form := url.Values{"_csrf": {csrf.Value}}
		req := httptest.NewRequest(http.MethodPost, "/theme/toggle/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if referer != "" {
			req.Header.Set("Referer", referer)
		}
		req.AddCookie(csrf)
		rec := serve(a, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, referer)
		assert.Equal(t, want, rec.Header().Get("Location"), referer)
	}
}

func TestToggleRateLimited(t *testing.T) {
	a := newTestApp(t, func(c *SiteConfig) { c.ToggleLimit = 1 })

	require.Equal(t, http.StatusOK, toggleJSON(t, a).Code)

	limited := toggleJSON(t, a)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	csrf := csrfCookie(t, a)
	form := url.Values{"_csrf": {csrf.Value}}
	req := httptest.NewRequest(http.MethodPost, "/theme/toggle/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://example.com/projects/")
	req.AddCookie(csrf)
	rec := serve(a, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects/", rec.Header().Get("Location"))
	assert.Nil(t, findCookie(rec, prefsSession), "a refused toggle must not store a theme")
}

func TestSQLiteThemeStorage(t *testing.T) {
	a := newTestApp(t, func(c *SiteConfig) { c.ThemeStorage = StorageSQLite })
	require.NotNil(t, a.Prefs)

	rec := toggleJSON(t, a)
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := findCookie(rec, prefsSession)
	require.NotNil(t, prefs)

	n, err := a.Prefs.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	page := get(a, "/", prefs)
	assert.Contains(t, page.Body.String(), `data-theme="light"`)
}

func TestMetricsCountToggles(t *testing.T) {
	a := newTestApp(t, nil)
	require.Equal(t, http.StatusOK, toggleJSON(t, a).Code)

	rec := get(a, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `folio_theme_toggles_total{theme="light"} 1`)
}

func TestHomeSkillFilter(t *testing.T) {
	a := newTestApp(t, nil)
	body := get(a, "/?category=Tools").Body.String()

	assert.Contains(t, body, `class="filter-btn filter-btn--active" href="/?category=Tools#skills"`)
	assert.Equal(t, 2, strings.Count(body, `<article class="skill-card`))
}

func TestSkillsFragment(t *testing.T) {
	a := newTestApp(t, nil)

	rec := get(a, "/skills/?category=Tools")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="skills-grid"`), body)
	assert.NotContains(t, body, "<html")
	assert.Equal(t, 2, strings.Count(body, `<article class="skill-card`))

	all := get(a, "/skills/").Body.String()
	assert.Equal(t, 12, strings.Count(all, `<article class="skill-card`))

	none := get(a, "/skills/?category=Cooking").Body.String()
	assert.Equal(t, `<div id="skills-grid" class="skills__grid" data-category="Cooking"></div>`, none)
}

func TestUnknownSkillCategoryIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cfg := SiteConfig{
		URL:           "https://example.com",
		SessionSecret: "test-secret-0123456789abcdef0123",
	}
	a := New(cfg, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })

	rec := get(a, "/skills/?category=Cooking")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "unknown skill category")
	assert.Contains(t, buf.String(), `"category":"Cooking"`)

	buf.Reset()
	get(a, "/?category=Tools")
	assert.NotContains(t, buf.String(), "unknown skill category")
}

func TestProjectsPage(t *testing.T) {
	a := newTestApp(t, nil)

	rec := get(a, "/projects")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = get(a, "/projects/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `<article class="project-card"`))
}

func TestBlogPages(t *testing.T) {
	a := newTestApp(t, nil)

	rec := get(a, "/blog/getting-started-with-data-science/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Getting Started with Data Science")
	assert.Contains(t, rec.Body.String(), `"@type":"BlogPosting"`)

	rec = get(a, "/blog/python-pandas-tips-tricks/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "This page does not exist.")

	rec = get(a, "/blog")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/#blog", rec.Header().Get("Location"))
}

func TestNotFoundPageIsThemed(t *testing.T) {
	a := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/nope/", nil)
	req.Header.Set(colorSchemeHint, "light")
	rec := serve(a, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestFeeds(t *testing.T) {
	a := newTestApp(t, nil)

	feed := get(a, "/feed.xml")
	require.Equal(t, http.StatusOK, feed.Code)
	assert.Equal(t, 1, strings.Count(feed.Body.String(), "<item>"))
	assert.Contains(t, feed.Body.String(), "https://example.com/blog/getting-started-with-data-science/")

	sitemap := get(a, "/sitemap.xml").Body.String()
	assert.Contains(t, sitemap, "<loc>https://example.com/projects/</loc>")
	assert.Contains(t, sitemap, "<loc>https://example.com</loc><lastmod>2026-01-15</lastmod><changefreq>weekly</changefreq>")
	assert.Equal(t, 2, strings.Count(sitemap, "<lastmod>2026-01-15</lastmod>"), "home and the one post")

	robots := get(a, "/robots.txt").Body.String()
	assert.Contains(t, robots, "Sitemap: https://example.com/sitemap.xml")
}

func TestAssets(t *testing.T) {
	a := newTestApp(t, nil)

	css := get(a, "/public/nav.css")
	require.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "var(--nav-progress, 0)")

	script := get(a, "/public/theme.js").Body.String()
	assert.Contains(t, script, "if (!res.ok) return null;")

	for _, name := range []string{"site.css", "theme.js", "nav.js", "avatar.svg"} {
		rec := get(a, "/public/"+name)
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.Empty(t, rec.Header().Get("Accept-CH"), name)
	}
}

var publicRef = regexp.MustCompile(`(?:src|href)="(/public/[^"]+)"`)

func TestHomeAssetsExist(t *testing.T) {
	a := newTestApp(t, nil)
	body := get(a, "/").Body.String()

	refs := publicRef.FindAllStringSubmatch(body, -1)
	require.NotEmpty(t, refs)
	assert.Contains(t, body, `src="/public/avatar.svg"`)
	for _, m := range refs {
		rec := get(a, m[1])
		assert.Equal(t, http.StatusOK, rec.Code, m[1])
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, nil)
	rec := get(a, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 3, body.Projects)
	assert.Equal(t, 1, body.Posts)
}
