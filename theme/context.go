package theme

import "context"

type ctxKey struct{}

// WithContext returns a copy of ctx carrying t.
func WithContext(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the theme stored in ctx, or Default.
func FromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(ctxKey{}).(Theme); ok {
		return t
	}
	return Default
}
