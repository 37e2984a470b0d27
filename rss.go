package folio

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// buildFeed lists every post that has its own page. Placeholders stay out.
func (a *App) buildFeed(cat *content.Catalog) rssXML {
	site := a.viewSite(cat)
	posts := cat.PublishedPosts()
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if !p.Published.IsZero() {
			pubDate = p.Published.Format(time.RFC1123Z)
		}
		postURL := views.BuildURL(a.Config.URL, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        views.BuildURL(a.Config.URL),
			Description: site.Description,
			Items:       items,
		},
	}
}

func (a *App) renderRSS(c echo.Context, cat *content.Catalog) error {
	return writeXML(c, "application/rss+xml; charset=utf-8", a.buildFeed(cat))
}
