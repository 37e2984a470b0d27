package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates markup and remembers the first write error so
// components can emit sequentially without checking every call.
type writer struct {
	out io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.out, p)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.out)
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{out: out}
		fn(ctx, w)
		return w.err
	})
}

// esc escapes text and attribute values.
func esc(s string) string { return templ.EscapeString(s) }

// href sanitizes a URL for an href or src attribute.
func href(s string) string { return templ.EscapeString(string(templ.URL(s))) }
