package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// HomeProjectLimit caps the cards shown on the home page.
const HomeProjectLimit = 3

func sectionHeader(w *writer, index int, label, title, subtitle string) {
	w.raw(`<header class="section__header"><span class="section-label">[`)
	if index < 10 {
		w.raw("0")
	}
	w.raw(strconv.Itoa(index), `] `, esc(label), `</span>`)
	w.raw(`<h2 class="section__title">`, esc(title), `</h2>`)
	if subtitle != "" {
		w.raw(`<p class="section__subtitle">`, esc(subtitle), `</p>`)
	}
	w.raw(`</header>`)
}

// Hero renders the introduction banner.
func Hero(site content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="top" class="hero" data-animate><div class="container hero__inner">`)
		if site.Avatar != "" {
			w.raw(`<img class="hero__avatar" src="`, href(site.Avatar), `" alt="`, esc(site.Name), `" width="96" height="96">`)
		}
		if site.Role != "" {
			w.raw(`<p class="hero__role">`, esc(site.Role), `</p>`)
		}
		w.raw(`<h1 class="hero__name">`, esc(site.Name), `</h1>`)
		if site.Tagline != "" {
			w.raw(`<p class="hero__tagline">`, esc(site.Tagline), `</p>`)
		}
		w.raw(`<div class="hero__actions">`)
		if site.ResumeURL != "" {
			w.raw(`<a class="button button--primary" href="`, href(site.ResumeURL), `" download>Download Resume</a>`)
		}
		w.raw(`<a class="button" href="#contact">Get in touch</a></div>`)
		if len(site.Socials) > 0 {
			w.raw(`<ul class="hero__socials">`)
			for _, s := range site.Socials {
				w.raw(`<li>`)
				outboundLink(w, s.URL, s.Label, "hero__social icon-"+s.Icon)
				w.raw(`</li>`)
			}
			w.raw(`</ul>`)
		}
		w.raw(`</div></section>`)
	})
}

// QuickLinks renders jump cards to the other sections.
func QuickLinks(links []content.QuickLink) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="quicklinks" class="quicklinks" data-animate><div class="container"><div class="quicklinks__grid">`)
		for _, l := range links {
			w.raw(`<a class="quicklink" href="#`, esc(l.ID), `"><span class="quicklink__label">`, esc(l.Label), `</span>`)
			if l.Description != "" {
				w.raw(`<span class="quicklink__desc">`, esc(l.Description), `</span>`)
			}
			w.raw(`</a>`)
		}
		w.raw(`</div></div></section>`)
	})
}

// Skills renders the filterable skill section. category selects the
// active filter; the grid shows only matching skills.
func Skills(categories []string, skills []content.Skill, category string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		if category == "" {
			category = content.AllCategory
		}
		w.raw(`<section id="skills" class="skills" data-animate><div class="container">`)
		sectionHeader(w, 2, "Skills", "Technical Stack", "Tools and technologies I work with.")
		w.raw(`<nav class="skills__filter" aria-label="Filter skills">`)
		for _, cat := range categories {
			active := cat == category
			w.raw(`<a class="`, FilterClass(active), `" href="`, href(CategoryURL(cat)), `" data-skill-filter="`, esc(cat), `" aria-pressed="`, strconv.FormatBool(active), `">`, esc(cat), `</a>`)
		}
		w.raw(`</nav>`)
		w.render(ctx, SkillGrid(content.FilterSkills(skills, category), category))
		w.raw(`</div></section>`)
	})
}

// SkillGrid renders one card per skill in the given order. It is also
// served on its own when the filter swaps the grid in place.
func SkillGrid(skills []content.Skill, category string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<div id="skills-grid" class="skills__grid" data-category="`, esc(category), `">`)
		for _, s := range skills {
			w.raw(`<article class="`, esc(levelClass(s.Level)), `" data-category="`, esc(s.Category), `">`)
			w.raw(`<header class="skill-card__header"><span class="skill-card__name">`, esc(s.Name), `</span>`)
			w.raw(`<span class="skill-card__level">`, esc(string(s.Level)), `</span></header>`)
			if s.Description != "" {
				w.raw(`<p class="skill-card__desc">`, esc(s.Description), `</p>`)
			}
			w.raw(`<span class="skill-card__category">`, esc(s.Category), `</span></article>`)
		}
		w.raw(`</div>`)
	})
}

// ProjectCard renders one project.
func ProjectCard(p content.Project) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<article class="project-card" data-status="`, esc(string(p.Status)), `">`)
		w.raw(`<div class="project-card__bar"><span class="project-card__dots" aria-hidden="true"></span>`)
		if p.Filename != "" {
			w.raw(`<span class="project-card__file">`, esc(p.Filename), `</span>`)
		}
		w.raw(`<span class="badge badge--`, esc(string(p.Status)), `">`, esc(p.Status.Label()), `</span></div>`)
		if p.Image != "" {
			w.raw(`<img class="project-card__image" src="`, href("/images/projects/"+p.Image), `" alt="`, esc(p.Title), `" loading="lazy">`)
		}
		w.raw(`<h3 class="project-card__title">`, esc(p.Title), `</h3>`)
		if p.Description != "" {
			w.raw(`<p class="project-card__desc">`, esc(p.Description), `</p>`)
		}
		if len(p.TechStack) > 0 {
			w.raw(`<ul class="tags">`)
			for _, tech := range p.TechStack {
				w.raw(`<li class="tag">`, esc(tech), `</li>`)
			}
			w.raw(`</ul>`)
		}
		w.raw(`<div class="project-card__links">`)
		if p.GitHubURL != "" {
			outboundLink(w, p.GitHubURL, "Source", "project-card__link")
		}
		if p.LiveURL != "" {
			outboundLink(w, p.LiveURL, "Live demo", "project-card__link")
		}
		w.raw(`</div></article>`)
	})
}

func projectGrid(ctx context.Context, w *writer, projects []content.Project) {
	w.raw(`<div class="projects__grid">`)
	for _, p := range projects {
		w.render(ctx, ProjectCard(p))
	}
	w.raw(`</div>`)
}

// Projects renders the home page project section. When there are more
// projects than fit, it links to the full listing.
func Projects(projects []content.Project) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="projects" class="projects" data-animate><div class="container">`)
		sectionHeader(w, 3, "Projects", "Selected Work", "")
		shown := projects
		if len(shown) > HomeProjectLimit {
			shown = shown[:HomeProjectLimit]
		}
		projectGrid(ctx, w, shown)
		w.raw(`<a class="projects__all" href="/projects/">View all projects &rarr;</a>`)
		w.raw(`</div></section>`)
	})
}

// Blog renders post previews. Placeholders show as coming soon.
func Blog(entries []content.BlogEntry) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="blog" class="blog" data-animate><div class="container">`)
		sectionHeader(w, 4, "Blog", "Writing", "")
		w.raw(`<div class="blog__grid">`)
		for _, b := range entries {
			w.raw(`<article class="blog-card">`)
			if b.Filename != "" {
				w.raw(`<span class="blog-card__file">`, esc(b.Filename), `</span>`)
			}
			w.raw(`<h3 class="blog-card__title">`, esc(b.Title), `</h3>`)
			if b.Excerpt != "" {
				w.raw(`<p class="blog-card__excerpt">`, esc(b.Excerpt), `</p>`)
			}
			w.raw(`<p class="blog-card__meta"><span>`, esc(b.DisplayDate()), `</span>`)
			if b.ReadTime != "" {
				w.raw(` &middot; <span>`, esc(b.ReadTime), `</span>`)
			}
			w.raw(`</p>`)
			switch {
			case b.HasBody():
				w.raw(`<a class="blog-card__link" href="`, href(b.Link), `">Read post &rarr;</a>`)
			case b.Link != "" && b.Link != "#":
				outboundLink(w, b.Link, "Read post", "blog-card__link")
			default:
				w.raw(`<span class="blog-card__soon">Coming soon</span>`)
			}
			w.raw(`</article>`)
		}
		w.raw(`</div></div></section>`)
	})
}

// About renders the biography.
func About(site content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="about" class="about" data-animate><div class="container">`)
		sectionHeader(w, 5, "About", "About Me", "")
		for _, p := range site.About {
			w.raw(`<p class="about__text">`, esc(p), `</p>`)
		}
		if site.Location != "" {
			w.raw(`<p class="about__location">Based in `, esc(site.Location), `</p>`)
		}
		w.raw(`</div></section>`)
	})
}

// Contact renders the contact call to action.
func Contact(site content.Site) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<section id="contact" class="contact" data-animate><div class="container">`)
		sectionHeader(w, 6, "Contact", "Let's talk", "Have a project in mind or just want to say hi?")
		w.raw(`<div class="contact__actions">`)
		if site.Email != "" {
			w.raw(`<a class="button button--primary" href="`, href("mailto:"+site.Email), `">`, esc(site.Email), `</a>`)
		}
		if site.ScheduleURL != "" {
			outboundLink(w, site.ScheduleURL, "Book a call", "button")
		}
		w.raw(`</div></div></section>`)
	})
}
