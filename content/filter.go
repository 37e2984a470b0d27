package content

// FilterSkills returns the skills whose category equals category exactly,
// in their original order. AllCategory or "" returns every skill.
func FilterSkills(skills []Skill, category string) []Skill {
	if category == "" || category == AllCategory {
		return skills
	}
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// BlogEntry returns the entry with the given slug that has a body.
func (c *Catalog) BlogEntry(slug string) (BlogEntry, bool) {
	for _, b := range c.Blog {
		if b.Slug == slug && b.HasBody() {
			return b, true
		}
	}
	return BlogEntry{}, false
}

// PublishedPosts returns entries that have their own page, in catalog order.
func (c *Catalog) PublishedPosts() []BlogEntry {
	var out []BlogEntry
	for _, b := range c.Blog {
		if b.HasBody() {
			out = append(out, b)
		}
	}
	return out
}

// HasCategory reports whether category is selectable in the skill filter.
func (c *Catalog) HasCategory(category string) bool {
	for _, cat := range c.Site.SkillCategories {
		if cat == category {
			return true
		}
	}
	return false
}
