// Package theme holds the visitor's light/dark display preference.
//
// A Controller resolves the initial theme from persisted storage, falling
// back to the visitor's environment preference and finally to a fixed
// default. The resolved value travels down the render tree on a
// context.Context so components never reach for globals.
package theme

import "strings"

// Theme is one of the two display variants.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when neither storage nor the environment have an opinion.
const Default = Dark

// StorageKey is the single key the controller reads and writes.
const StorageKey = "theme"

// Parse accepts "light" or "dark" in any case, ignoring surrounding
// whitespace and quotes.
func Parse(s string) (Theme, bool) {
	switch strings.ToLower(strings.Trim(s, "\" \t")) {
	case string(Light):
		return Light, true
	case string(Dark):
		return Dark, true
	}
	return "", false
}

// Toggle returns the other variant. Unknown values flip to Light, which
// matches what a dark default would toggle to.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// IsDark reports whether t is the dark variant.
func (t Theme) IsDark() bool { return t == Dark }

func (t Theme) String() string { return string(t) }
