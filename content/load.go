package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	siteFile     = "site.yaml"
	projectsFile = "projects.yaml"
	skillsFile   = "skills.yaml"
	blogDir      = "blog"
)

// Load reads a content tree from fsys, validates it and returns the catalog.
// site.yaml is required; the project, skill and blog sources may be absent,
// which yields empty lists.
func Load(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	if err := decodeFile(fsys, siteFile, &c.Site, true); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, projectsFile, &c.Projects, false); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, skillsFile, &c.Skills, false); err != nil {
		return nil, err
	}
	blog, err := loadBlog(fsys)
	if err != nil {
		return nil, err
	}
	c.Blog = blog
	if len(c.Site.SkillCategories) == 0 {
		c.Site.SkillCategories = deriveCategories(c.Skills)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeFile(fsys fs.FS, name string, v any, required bool) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return newParseError(name, err)
	}
	return nil
}

// loadBlog parses blog/*.md in file name order. Date-prefixed file names
// therefore list oldest first.
func loadBlog(fsys fs.FS) ([]BlogEntry, error) {
	names, err := fs.Glob(fsys, path.Join(blogDir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	var entries []BlogEntry
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		entry, skip, err := parseBlogEntry(name, data)
		if err != nil {
			return nil, err
		}
		if !skip {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// deriveCategories lists "All" followed by each category in order of first use.
func deriveCategories(skills []Skill) []string {
	cats := []string{AllCategory}
	seen := map[string]struct{}{}
	for _, s := range skills {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		cats = append(cats, s.Category)
	}
	return cats
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
