package views

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/navbar"
	"github.com/eringen/folio/theme"
)

// Layout wraps body in the document shell. The theme from ctx lands on the
// root element; the stylesheet keys every color on data-theme.
func Layout(page Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		t := theme.FromContext(ctx)
		title := page.Meta.Title
		if title == "" {
			title = page.Site.Name
		}
		description := page.Meta.Description
		if description == "" {
			description = page.Site.Description
		}
		ogType := page.Meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		w.raw(`<!DOCTYPE html><html lang="en" data-theme="`, esc(t.String()), `" class="`, esc(t.String()), `">`)
		w.raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<meta name="color-scheme" content="`, esc(t.String()), `">`)
		w.raw(`<title>`, esc(title), `</title>`)
		w.raw(`<meta name="description" content="`, esc(description), `">`)
		if page.Meta.URL != "" {
			w.raw(`<link rel="canonical" href="`, href(page.Meta.URL), `">`)
			w.raw(`<meta property="og:url" content="`, esc(page.Meta.URL), `">`)
		}
		w.raw(`<meta property="og:title" content="`, esc(title), `">`)
		w.raw(`<meta property="og:type" content="`, esc(ogType), `">`)
		w.raw(`<meta name="csrf-token" content="`, esc(page.CSRFToken), `">`)
		w.raw(`<link rel="stylesheet" href="/public/site.css"><link rel="stylesheet" href="/public/nav.css">`)
		w.raw(`<link rel="alternate" type="application/rss+xml" title="`, esc(page.Site.Name), `" href="/feed.xml">`)
		if page.Meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the tag
			w.raw(`<script type="application/ld+json">`, page.Meta.JSONLD, `</script>`)
		}
		w.raw(`<script src="/public/theme.js" defer></script><script src="/public/nav.js" defer></script>`)
		w.raw(`</head><body>`)
		w.render(ctx, body)
		w.raw(`</body></html>`)
	})
}

// Navbar renders the floating navigation bar with the theme toggle.
func Navbar(page Page, site content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		t := theme.FromContext(ctx)
		style := navbar.StyleAt(0)
		w.printf(`<header class="navbar" id="navbar" data-threshold="%s" data-hide-distance="%s" data-viewport-offset="%s" style="--nav-progress: %s">`,
			num(navbar.CompactThreshold), num(navbar.HideDistance), num(navbar.ViewportOffset), num(style.Progress))
		w.raw(`<a href="/#top" class="navbar__brand">`)
		if site.Avatar != "" {
			w.raw(`<img class="navbar__icon" src="`, href(site.Avatar), `" alt="`, esc(site.Name), `">`)
		}
		w.raw(`<span class="navbar__name">`, esc(site.Name), `</span>`)
		if site.Available {
			w.raw(`<span class="status-dot" title="Available for work"></span>`)
		}
		w.raw(`</a><nav aria-label="Sections"><ul class="navbar__links">`)
		shown := sectionSet(page.Site.Sections)
		for _, l := range navbar.DefaultLinks {
			if !shown[l.ID] {
				continue
			}
			w.raw(`<li><a class="navbar__link" data-section="`, esc(l.ID), `" href="/#`, esc(l.ID), `">`, esc(l.Label), `</a></li>`)
		}
		w.raw(`</ul></nav>`)
		next := t.Toggle()
		w.raw(`<form class="theme-toggle" method="post" action="/theme/toggle/" data-theme-toggle>`)
		w.raw(`<input type="hidden" name="_csrf" value="`, esc(page.CSRFToken), `">`)
		w.raw(`<button type="submit" class="theme-toggle__button" aria-label="Switch to `, esc(next.String()), ` theme" title="Switch to `, esc(next.String()), ` theme">`)
		if t.IsDark() {
			w.raw(`<span aria-hidden="true">&#9728;</span>`)
		} else {
			w.raw(`<span aria-hidden="true">&#9790;</span>`)
		}
		w.raw(`</button></form></header>`)
	})
}

// Footer renders the closing block with social links.
func Footer(site content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<footer class="footer"><div class="container footer__inner">`)
		w.raw(`<p class="footer__copy">&copy; `, strconv.Itoa(time.Now().Year()), ` `, esc(site.Name), `. Built with Go.</p>`)
		w.raw(`<ul class="footer__socials">`)
		for _, s := range site.Socials {
			w.raw(`<li>`)
			outboundLink(w, s.URL, s.Label, "footer__link")
			w.raw(`</li>`)
		}
		w.raw(`</ul></div></footer>`)
	})
}

// outboundLink opens third-party pages in a new browsing context.
func outboundLink(w *writer, url, label, class string) {
	if isExternal(url) {
		w.raw(`<a class="`, esc(class), `" href="`, href(url), `" target="_blank" rel="noopener noreferrer">`, esc(label), `</a>`)
		return
	}
	w.raw(`<a class="`, esc(class), `" href="`, href(url), `">`, esc(label), `</a>`)
}

func num(f float64) string { return fmt.Sprintf("%g", f) }
