package content

import (
	"bytes"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const wordsPerMinute = 200

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

type blogFrontMatter struct {
	ID       int    `yaml:"id"`
	Slug     string `yaml:"slug"`
	Title    string `yaml:"title"`
	Excerpt  string `yaml:"excerpt"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"read_time"`
	Link     string `yaml:"link"`
	Draft    bool   `yaml:"draft"`
}

// parseBlogEntry splits front matter from the Markdown body and renders the
// body to HTML. skip is true for drafts.
func parseBlogEntry(name string, data []byte) (entry BlogEntry, skip bool, err error) {
	var fm blogFrontMatter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return BlogEntry{}, false, newParseError(name, err)
	}
	if fm.Draft {
		return BlogEntry{}, true, nil
	}

	entry = BlogEntry{
		ID:       fm.ID,
		Filename: path.Base(name),
		Slug:     fm.Slug,
		Title:    fm.Title,
		Excerpt:  fm.Excerpt,
		Date:     fm.Date,
		ReadTime: fm.ReadTime,
		Link:     fm.Link,
	}
	if entry.Slug == "" {
		entry.Slug = Slugify(entry.Title)
	}
	if entry.Date != "" {
		// a malformed date is reported by Validate with the field name
		if t, perr := time.Parse("2006-01-02", entry.Date); perr == nil {
			entry.Published = t
		}
	}

	body := bytes.TrimSpace(rest)
	if len(body) == 0 {
		return entry, false, nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return BlogEntry{}, false, fmt.Errorf("render %s: %w", name, err)
	}
	entry.Body = buf.String()
	entry.Link = "/blog/" + entry.Slug + "/"
	if entry.ReadTime == "" {
		entry.ReadTime = readTime(string(body))
	}
	return entry, false, nil
}

func readTime(body string) string {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
