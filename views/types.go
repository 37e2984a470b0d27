package views

// SiteConfig holds site-wide settings populated from configuration.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // site name, defaults to the profile name
	URL         string // canonical base URL
	Description string
	Author      string
	Sections    []string // home sections to include, in any order
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Page is the per-request frame every full page is rendered in.
type Page struct {
	Site      SiteConfig
	Meta      PageMeta
	CSRFToken string
}

// Home sections in document order. Navigation and footer are always present.
const (
	SectionHero       = "hero"
	SectionQuickLinks = "quicklinks"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionBlog       = "blog"
	SectionAbout      = "about"
	SectionContact    = "contact"
)

// AllSections is the canonical order of the composed home page.
var AllSections = []string{
	SectionHero,
	SectionQuickLinks,
	SectionSkills,
	SectionProjects,
	SectionBlog,
	SectionAbout,
	SectionContact,
}

// OrderedSections keeps the canonical order and drops anything not in
// include. A nil include selects every section.
func OrderedSections(include []string) []string {
	if include == nil {
		return AllSections
	}
	want := make(map[string]struct{}, len(include))
	for _, s := range include {
		want[s] = struct{}{}
	}
	var out []string
	for _, s := range AllSections {
		if _, ok := want[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// sectionSet is OrderedSections as a lookup for anchors that must exist.
func sectionSet(include []string) map[string]bool {
	set := make(map[string]bool, len(AllSections))
	for _, s := range OrderedSections(include) {
		set[s] = true
	}
	return set
}
