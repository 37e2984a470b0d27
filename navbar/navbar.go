// Package navbar models the scroll-linked navigation bar as pure functions
// of the vertical scroll offset. The server uses the constants and spans to
// emit the data attributes and calc() rules the page ships with. nav.js runs
// the same Visibility and ActiveSection rules in the browser, one scroll
// offset per animation frame, and these functions are what it is tested
// against.
package navbar

import (
	"fmt"
	"strings"
)

const (
	// CompactThreshold is the scroll offset at which the bar is fully compact.
	CompactThreshold = 150.0
	// HideDistance is how far the visitor must scroll down past the
	// threshold before the bar slides away.
	HideDistance = 80.0
	// ViewportOffset is the line a section top must cross to become active.
	ViewportOffset = 150.0
)

// Link is one in-page navigation entry.
type Link struct {
	ID    string
	Label string
}

// DefaultLinks are the sections the bar links to.
var DefaultLinks = []Link{
	{ID: "projects", Label: "Work"},
	{ID: "blog", Label: "Blog"},
	{ID: "about", Label: "About"},
	{ID: "contact", Label: "Contact"},
}

// Progress maps a scroll offset to [0, 1].
func Progress(scrollY float64) float64 {
	return clamp01(scrollY / CompactThreshold)
}

func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// span is a linear interpolation between an expanded and a compact value.
type span struct {
	prop     string
	from, to float64
	unit     string
}

func (s span) at(p float64) float64 { return s.from + (s.to-s.from)*p }

func (s span) calc() string {
	return fmt.Sprintf("calc(%g%s + (%g%s * var(--nav-progress, 0)))", s.from, s.unit, s.to-s.from, s.unit)
}

var spans = []span{
	{prop: "--nav-width", from: 94, to: 72, unit: "%"},
	{prop: "--nav-padding", from: 20, to: 12, unit: "px"},
	{prop: "--nav-height", from: 64, to: 56, unit: "px"},
	{prop: "--nav-blur", from: 16, to: 24, unit: "px"},
	{prop: "--nav-icon", from: 28, to: 26, unit: "px"},
}

// Style is the presentation of the bar at a given progress.
type Style struct {
	Progress float64
	WidthPct float64
	Padding  float64
	Height   float64
	Blur     float64
	IconSize float64
}

// StyleAt interpolates every parameter for progress p (clamped to [0, 1]).
func StyleAt(p float64) Style {
	p = clamp01(p)
	return Style{
		Progress: p,
		WidthPct: spans[0].at(p),
		Padding:  spans[1].at(p),
		Height:   spans[2].at(p),
		Blur:     spans[3].at(p),
		IconSize: spans[4].at(p),
	}
}

// CSS renders the custom properties driven by --nav-progress. The same
// spans back StyleAt, so server and browser agree on every frame.
func CSS() string {
	var b strings.Builder
	b.WriteString(".navbar {\n")
	for _, s := range spans {
		fmt.Fprintf(&b, "  %s: %s;\n", s.prop, s.calc())
	}
	b.WriteString("  width: var(--nav-width);\n")
	b.WriteString("  height: var(--nav-height);\n")
	b.WriteString("  padding: 0 var(--nav-padding);\n")
	b.WriteString("  backdrop-filter: blur(var(--nav-blur));\n")
	b.WriteString("  transition: transform 0.3s ease;\n")
	b.WriteString("}\n")
	b.WriteString(".navbar--hidden { transform: translate(-50%, -150%); }\n")
	b.WriteString(".navbar__icon { width: var(--nav-icon); height: var(--nav-icon); }\n")
	return b.String()
}

// Visibility decides whether the bar is shown, based on scroll direction.
// The zero value starts visible at the top of the page.
type Visibility struct {
	lastY   float64
	anchorY float64
	hidden  bool
}

// Update feeds a new offset and returns whether the bar is visible.
func (v *Visibility) Update(scrollY float64) bool {
	switch {
	case scrollY <= CompactThreshold:
		v.hidden = false
		v.anchorY = scrollY
	case scrollY < v.lastY:
		v.hidden = false
		v.anchorY = scrollY
	case scrollY-v.anchorY >= HideDistance:
		v.hidden = true
	}
	v.lastY = scrollY
	return !v.hidden
}

// Section is a page section's id and its top edge relative to the viewport.
type Section struct {
	ID  string
	Top float64
}

// ActiveSection returns the id of the last section, in document order,
// whose top has crossed offset. It returns "" above the first section.
func ActiveSection(sections []Section, offset float64) string {
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].Top <= offset {
			return sections[i].ID
		}
	}
	return ""
}
