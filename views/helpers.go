package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// CategoryURL is the no-script link for a skill filter button.
func CategoryURL(category string) string {
	if category == "" || category == content.AllCategory {
		return "/#skills"
	}
	return "/?category=" + url.QueryEscape(category) + "#skills"
}

// FilterClass returns CSS classes for a skill filter button, with active variant.
func FilterClass(active bool) string {
	if active {
		return "filter-btn filter-btn--active"
	}
	return "filter-btn"
}

func levelClass(l content.SkillLevel) string {
	return "skill-card skill-card--" + strings.ToLower(string(l))
}

func isExternal(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// PersonJsonLD produces a Schema.org Person block for the profile.
func PersonJsonLD(cfg SiteConfig, site content.Site) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     site.Name,
		"url":      BuildURL(cfg.URL),
	}
	if site.Role != "" {
		data["jobTitle"] = site.Role
	}
	var sameAs []string
	for _, s := range site.Socials {
		if isExternal(s.URL) {
			sameAs = append(sameAs, s.URL)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	return marshalJSONLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting block for an entry.
func BlogPostingJsonLD(cfg SiteConfig, entry content.BlogEntry) string {
	postURL := BuildURL(cfg.URL, "blog", entry.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    entry.Title,
		"description": entry.Excerpt,
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if entry.Date != "" {
		data["datePublished"] = entry.Date
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
