package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// sitemapEntries lists the indexable pages. The home page carries the date
// of the newest post, since that is the last time its blog list changed.
func sitemapEntries(base string, cat *content.Catalog) []sitemapURL {
	posts := cat.PublishedPosts()
	newest := ""
	for _, p := range posts {
		if p.Date > newest {
			newest = p.Date
		}
	}
	urls := make([]sitemapURL, 0, len(posts)+2)
	urls = append(urls,
		sitemapURL{Loc: views.BuildURL(base), LastMod: newest, ChangeFreq: "weekly"},
		sitemapURL{Loc: views.BuildURL(base, "projects"), ChangeFreq: "monthly"},
	)
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, "blog", p.Slug),
			LastMod: p.Date,
		})
	}
	return urls
}

func (a *App) renderSitemap(c echo.Context, cat *content.Catalog) error {
	return writeXML(c, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: sitemapNS,
		URLs:  sitemapEntries(a.Config.URL, cat),
	})
}

// writeXML sends v with the XML declaration in front.
func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(v)
}
