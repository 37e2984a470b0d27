package theme

// Storage is a best-effort key-value store for the persisted choice.
// Get returns "" with a nil error when nothing is stored.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Preference answers whether the environment prefers a dark color scheme.
// ok is false when the environment gave no answer.
type Preference interface {
	PrefersDark() (dark bool, ok bool)
}

// PreferenceFunc adapts a plain function to Preference.
type PreferenceFunc func() (bool, bool)

func (f PreferenceFunc) PrefersDark() (bool, bool) { return f() }

// Controller owns the theme for one visitor scope (one request on the
// server). It is not safe for concurrent use.
type Controller struct {
	storage   Storage
	pref      Preference
	fallback  Theme
	current   Theme
	resolved  bool
	listeners []func(Theme)
}

// Option configures a Controller.
type Option func(*Controller)

// WithFallback sets the theme used when storage and preference are both
// silent. Invalid values are ignored.
func WithFallback(t Theme) Option {
	return func(c *Controller) {
		if p, ok := Parse(string(t)); ok {
			c.fallback = p
		}
	}
}

// WithListener registers fn to run after every toggle.
func WithListener(fn func(Theme)) Option {
	return func(c *Controller) { c.Subscribe(fn) }
}

// NewController builds a controller. Either dependency may be nil.
func NewController(storage Storage, pref Preference, opts ...Option) *Controller {
	c := &Controller{storage: storage, pref: pref, fallback: Default}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the theme, resolving it on first call.
func (c *Controller) Current() Theme {
	if !c.resolved {
		c.current = c.resolve()
		c.resolved = true
	}
	return c.current
}

// Toggle flips the theme, persists the new value and notifies listeners.
func (c *Controller) Toggle() Theme {
	next := c.Current().Toggle()
	c.current = next
	if c.storage != nil {
		// persistence is best effort; the next load falls back to detection
		_ = c.storage.Set(StorageKey, next.String())
	}
	for _, fn := range c.listeners {
		fn(next)
	}
	return next
}

// Subscribe adds a listener called with the new theme after each toggle.
func (c *Controller) Subscribe(fn func(Theme)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

func (c *Controller) resolve() Theme {
	if c.storage != nil {
		if v, err := c.storage.Get(StorageKey); err == nil {
			if t, ok := Parse(v); ok {
				return t
			}
		}
	}
	if c.pref != nil {
		if dark, ok := c.pref.PrefersDark(); ok {
			if dark {
				return Dark
			}
			return Light
		}
	}
	return c.fallback
}
