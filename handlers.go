package folio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/navbar"
	"github.com/eringen/folio/views"
)

func (a *App) viewSite(cat *content.Catalog) views.SiteConfig {
	name := a.Config.Name
	if name == "" {
		name = cat.Site.Name
	}
	author := a.Config.Author
	if author == "" {
		author = cat.Site.Name
	}
	description := a.Config.Description
	if description == "" {
		description = cat.Site.Tagline
	}
	return views.SiteConfig{
		Name:        name,
		URL:         a.Config.URL,
		Description: description,
		Author:      author,
		Sections:    a.Config.Sections,
	}
}

func (a *App) page(c echo.Context, cat *content.Catalog, meta views.PageMeta) views.Page {
	return views.Page{
		Site:      a.viewSite(cat),
		Meta:      meta,
		CSRFToken: CsrfToken(c),
	}
}

func (a *App) handleHome(c echo.Context) error {
	cat := a.Library.Catalog()
	category := a.skillCategory(c, cat)
	site := a.viewSite(cat)
	page := a.page(c, cat, views.PageMeta{
		URL:    views.BuildURL(a.Config.URL),
		JSONLD: views.PersonJsonLD(site, cat.Site),
	})
	return Render(c, views.Home(page, cat, category))
}

func (a *App) handleProjects(c echo.Context) error {
	cat := a.Library.Catalog()
	page := a.page(c, cat, views.PageMeta{
		Title: "Projects | " + a.viewSite(cat).Name,
		URL:   views.BuildURL(a.Config.URL, "projects"),
	})
	return Render(c, views.AllProjects(page, cat))
}

// handleSkills serves the skill grid alone for in-page filter swaps.
func (a *App) handleSkills(c echo.Context) error {
	cat := a.Library.Catalog()
	category := a.skillCategory(c, cat)
	if category == "" {
		category = content.AllCategory
	}
	return Render(c, views.SkillGrid(content.FilterSkills(cat.Skills, category), category))
}

// skillCategory reads the filter query. Unknown categories still render,
// as an empty grid.
func (a *App) skillCategory(c echo.Context, cat *content.Catalog) string {
	category := c.QueryParam("category")
	if category != "" && !cat.HasCategory(category) {
		a.log.Debug().Str("category", category).Str("path", c.Request().URL.Path).Msg("unknown skill category")
	}
	return category
}

func (a *App) handlePost(c echo.Context) error {
	cat := a.Library.Catalog()
	entry, ok := cat.BlogEntry(c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c, cat, views.PageMeta{})))
	}
	site := a.viewSite(cat)
	page := a.page(c, cat, views.PageMeta{
		Title:       entry.Title + " | " + site.Name,
		Description: entry.Excerpt,
		URL:         views.BuildURL(a.Config.URL, "blog", entry.Slug),
		OGType:      "article",
		JSONLD:      views.BlogPostingJsonLD(site, entry),
	})
	return Render(c, views.Post(page, cat, entry))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Library.Catalog())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Library.Catalog())
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/#blog")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func handleNavCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(navbar.CSS()))
}

type healthResponse struct {
	Status          string `json:"status"`
	ContentLoadedAt string `json:"content_loaded_at"`
	Projects        int    `json:"projects"`
	Skills          int    `json:"skills"`
	Posts           int    `json:"posts"`
}

func (a *App) handleHealthz(c echo.Context) error {
	cat := a.Library.Catalog()
	return c.JSON(http.StatusOK, healthResponse{
		Status:          "ok",
		ContentLoadedAt: a.Library.LoadedAt().UTC().Format(time.RFC3339),
		Projects:        len(cat.Projects),
		Skills:          len(cat.Skills),
		Posts:           len(cat.PublishedPosts()),
	})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.errorPage(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, views.ServerError(a.errorPage(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) errorPage(c echo.Context) views.Page {
	if a.Library == nil {
		return views.Page{Site: views.SiteConfig{Name: a.Config.Name, URL: a.Config.URL}}
	}
	return a.page(c, a.Library.Catalog(), views.PageMeta{})
}
