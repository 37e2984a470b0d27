package content

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSite = "name: Test Person\n"

func TestLoadDefaults(t *testing.T) {
	c, err := Load(DefaultFS())
	require.NoError(t, err)

	assert.Equal(t, "Gaurav Gohil", c.Site.Name)
	assert.Len(t, c.Projects, 3)
	assert.Len(t, c.Skills, 12)
	require.Len(t, c.Blog, 3)

	first := c.Blog[0]
	assert.Equal(t, "getting-started-with-data-science", first.Slug)
	assert.True(t, first.HasBody())
	assert.Equal(t, "/blog/getting-started-with-data-science/", first.Link)
	assert.Equal(t, "Jan 15, 2026", first.DisplayDate())
	assert.Contains(t, first.Body, "<h2 id=\"tools-worth-learning-first\">")

	placeholder := c.Blog[1]
	assert.False(t, placeholder.HasBody())
	assert.Equal(t, "7 min read", placeholder.ReadTime)

	assert.Len(t, c.PublishedPosts(), 1)
}

func TestFilterSkillsByCategory(t *testing.T) {
	c, err := Load(DefaultFS())
	require.NoError(t, err)

	tools := FilterSkills(c.Skills, "Tools")
	require.Len(t, tools, 2)
	assert.Equal(t, "Git & GitHub", tools[0].Name)
	assert.Equal(t, "VS Code", tools[1].Name)

	assert.Equal(t, c.Skills, FilterSkills(c.Skills, AllCategory))
	assert.Equal(t, c.Skills, FilterSkills(c.Skills, ""))
	assert.Empty(t, FilterSkills(c.Skills, "Cooking"))
	assert.Empty(t, FilterSkills(nil, "Tools"))
}

func TestFilterPreservesOrder(t *testing.T) {
	skills := []Skill{
		{ID: 1, Name: "a", Category: "Language"},
		{ID: 2, Name: "b", Category: "Tools"},
		{ID: 3, Name: "c", Category: "Language"},
		{ID: 4, Name: "d", Category: "Tools"},
	}
	got := FilterSkills(skills, "Language")
	assert.Equal(t, []string{"a", "c"}, names(got))
}

func names(skills []Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

func TestLoadOptionalFilesMissing(t *testing.T) {
	c, err := Load(fstest.MapFS{"site.yaml": {Data: []byte(minimalSite)}})
	require.NoError(t, err)
	assert.Empty(t, c.Projects)
	assert.Empty(t, c.Skills)
	assert.Empty(t, c.Blog)
	assert.Equal(t, []string{AllCategory}, c.Site.SkillCategories)
}

func TestLoadMissingSite(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)
}

func TestDeriveCategories(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte(minimalSite)},
		"skills.yaml": {Data: []byte(`
- {id: 1, name: Go, category: Language, level: Proficient}
- {id: 2, name: Git, category: Tools, level: Proficient}
- {id: 3, name: C, category: Language, level: Learning}
`)},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Language", "Tools"}, c.Site.SkillCategories)
	assert.True(t, c.HasCategory("Tools"))
	assert.False(t, c.HasCategory("Backend"))
}

func TestDuplicateProjectIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte(minimalSite)},
		"projects.yaml": {Data: []byte(`
- {id: 1, title: One, status: live}
- {id: 1, title: Two, status: building}
`)},
	}
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "Catalog.Projects", verr.Field)
	assert.Equal(t, "duplicate ID", verr.Message)
}

func TestInvalidStatus(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":     {Data: []byte(minimalSite)},
		"projects.yaml": {Data: []byte("- {id: 1, title: One, status: shipped}\n")},
	}
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, verr.Field, "Status")
}

func TestSkillCannotUseAllCategory(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":   {Data: []byte(minimalSite)},
		"skills.yaml": {Data: []byte("- {id: 1, name: Go, category: All, level: Learning}\n")},
	}
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
}

func TestImageMustBeBareName(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":     {Data: []byte(minimalSite)},
		"projects.yaml": {Data: []byte("- {id: 1, title: One, status: live, image: ../secret.png}\n")},
	}
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "must be a bare file name", verr.Message)
}

func TestParseErrorReportsLine(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("name: ok\nrole: [unterminated\n")},
	}
	_, err := Load(fsys)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "site.yaml", perr.Path)
	assert.Greater(t, perr.Line, 0)
}

func TestUnknownFieldRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("name: ok\nnickname: nope\n")},
	}
	_, err := Load(fsys)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
}

func TestDuplicateBlogSlugs(t *testing.T) {
	post := "---\nid: %d\ntitle: Same Title\n---\nbody\n"
	fsys := fstest.MapFS{
		"site.yaml":   {Data: []byte(minimalSite)},
		"blog/a.md":   {Data: []byte(fmt.Sprintf(post, 1))},
		"blog/b.md":   {Data: []byte(fmt.Sprintf(post, 2))},
		"blog/ignore": {Data: []byte("not markdown")},
	}
	_, err := Load(fsys)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "duplicate Slug", verr.Message)
}

func TestDraftsAreSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte(minimalSite)},
		"blog/a.md": {Data: []byte("---\nid: 1\ntitle: Draft\ndraft: true\n---\nwip\n")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Empty(t, c.Blog)
}

func TestReadTimeEstimate(t *testing.T) {
	assert.Equal(t, "1 min read", readTime("short"))
	long := ""
	for i := 0; i < 450; i++ {
		long += "word "
	}
	assert.Equal(t, "3 min read", readTime(long))
}

func TestProjectStatusLabel(t *testing.T) {
	assert.Equal(t, "Coming Soon", StatusComingSoon.Label())
	assert.Equal(t, "In Progress", StatusBuilding.Label())
	assert.Equal(t, "Live", StatusLive.Label())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "python-pandas-tips-tricks", Slugify("Python Pandas Tips & Tricks"))
	assert.Equal(t, "", Slugify("  !!  "))
}
