package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// Home composes the configured sections in canonical order.
func Home(page Page, cat *content.Catalog, category string) templ.Component {
	body := component(func(ctx context.Context, w *writer) {
		w.render(ctx, Navbar(page, cat.Site))
		w.raw(`<main>`)
		shown := sectionSet(page.Site.Sections)
		for _, s := range OrderedSections(page.Site.Sections) {
			w.render(ctx, homeSection(s, cat, category, shown))
		}
		w.raw(`</main>`)
		w.render(ctx, Footer(cat.Site))
	})
	return Layout(page, body)
}

func homeSection(name string, cat *content.Catalog, category string, shown map[string]bool) templ.Component {
	switch name {
	case SectionHero:
		return Hero(cat.Site)
	case SectionQuickLinks:
		var links []content.QuickLink
		for _, l := range cat.Site.QuickLinks {
			if shown[l.ID] {
				links = append(links, l)
			}
		}
		return QuickLinks(links)
	case SectionSkills:
		return Skills(cat.Site.SkillCategories, cat.Skills, category)
	case SectionProjects:
		return Projects(cat.Projects)
	case SectionBlog:
		return Blog(cat.Blog)
	case SectionAbout:
		return About(cat.Site)
	case SectionContact:
		return Contact(cat.Site)
	}
	return nil
}

// AllProjects is the expanded project listing.
func AllProjects(page Page, cat *content.Catalog) templ.Component {
	body := component(func(ctx context.Context, w *writer) {
		w.render(ctx, Navbar(page, cat.Site))
		w.raw(`<main class="all-projects"><div class="container">`)
		w.raw(`<a class="back-link" href="/"><span aria-hidden="true">&larr;</span> Back to Home</a>`)
		w.raw(`<header class="section__header"><p class="section-label">// ALL PROJECTS</p><h1 class="section__title">My Work</h1>`)
		w.raw(`<p class="section__subtitle">Every project I have built or am building, from data dashboards to full-stack web applications.</p></header>`)
		projectGrid(ctx, w, cat.Projects)
		w.raw(`</div></main>`)
		w.render(ctx, Footer(cat.Site))
	})
	return Layout(page, body)
}

// Post renders a single blog entry. The body is HTML produced by the
// content loader from trusted Markdown.
func Post(page Page, cat *content.Catalog, entry content.BlogEntry) templ.Component {
	body := component(func(ctx context.Context, w *writer) {
		w.render(ctx, Navbar(page, cat.Site))
		w.raw(`<main class="post"><div class="container container--narrow">`)
		w.raw(`<a class="back-link" href="/#blog"><span aria-hidden="true">&larr;</span> All posts</a>`)
		w.raw(`<article><header class="post__header"><h1 class="post__title">`, esc(entry.Title), `</h1>`)
		w.raw(`<p class="post__meta">`, esc(entry.DisplayDate()))
		if entry.ReadTime != "" {
			w.raw(` &middot; `, esc(entry.ReadTime))
		}
		w.raw(`</p></header><div class="post__body">`, entry.Body, `</div></article>`)
		w.raw(`</div></main>`)
		w.render(ctx, Footer(cat.Site))
	})
	return Layout(page, body)
}

func errorPage(page Page, code, message string) templ.Component {
	body := component(func(ctx context.Context, w *writer) {
		w.raw(`<main class="error-page"><div class="container">`)
		w.raw(`<p class="section-label">`, esc(code), `</p><h1 class="section__title">`, esc(message), `</h1>`)
		w.raw(`<a class="back-link" href="/"><span aria-hidden="true">&larr;</span> Back to Home</a>`)
		w.raw(`</div></main>`)
	})
	return Layout(page, body)
}

// NotFound renders the 404 page.
func NotFound(page Page) templ.Component {
	page.Meta.Title = "Not found"
	return errorPage(page, "404", "This page does not exist.")
}

// ServerError renders the 500 page.
func ServerError(page Page) templ.Component {
	page.Meta.Title = "Something went wrong"
	return errorPage(page, "500", "Something went wrong on our side.")
}
