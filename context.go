package normalizer

// UnknownMarkPolicy controls denormalization of a marked value whose marker has no registered module
type UnknownMarkPolicy string

const (
	//UnknownMarkThrow fails with UnresolvedMarkerError
	UnknownMarkThrow = UnknownMarkPolicy("throw")
	//UnknownMarkIgnore returns the unwrapped value as is
	UnknownMarkIgnore = UnknownMarkPolicy("ignore")
	//UnknownMarkIgnoreRaw returns the marked input as is
	UnknownMarkIgnoreRaw = UnknownMarkPolicy("ignore_raw")
	//UnknownMarkFallback selects a module by predicate using the unwrapped value
	UnknownMarkFallback = UnknownMarkPolicy("fallback")
)

const (
	//DefaultMarkProperty default marked record property holding the marker
	DefaultMarkProperty = "__mark__"
	//DefaultValueProperty default marked record property holding the converted value
	DefaultValueProperty = "__value__"
)

// IsValid returns true for a known policy
func (p UnknownMarkPolicy) IsValid() bool {
	switch p {
	case UnknownMarkThrow, UnknownMarkIgnore, UnknownMarkIgnoreRaw, UnknownMarkFallback:
		return true
	}
	return false
}

// Context represents conversion settings of a top-level call, shared unchanged with all nested calls.
// A context used for conversion is bound to the registry snapshot taken when the top-level call started.
type Context struct {
	Marker        bool
	MarkProperty  string
	ValueProperty string
	UnknownMark   UnknownMarkPolicy

	engine   *Normalizer
	registry *registry
}

// DefaultContext returns default conversion context
func DefaultContext() Context {
	return Context{
		MarkProperty:  DefaultMarkProperty,
		ValueProperty: DefaultValueProperty,
		UnknownMark:   UnknownMarkThrow,
	}
}

// Option represents context option
type Option func(c *Context)

// WithMarker enables or disables marked records
func WithMarker(enabled bool) Option {
	return func(c *Context) {
		c.Marker = enabled
	}
}

// WithMarkProperty sets property name holding a marker
func WithMarkProperty(name string) Option {
	return func(c *Context) {
		c.MarkProperty = name
	}
}

// WithValueProperty sets property name holding a converted value
func WithValueProperty(name string) Option {
	return func(c *Context) {
		c.ValueProperty = name
	}
}

// WithUnknownMark sets unknown marker policy
func WithUnknownMark(policy UnknownMarkPolicy) Option {
	return func(c *Context) {
		c.UnknownMark = policy
	}
}

// WithContext replaces all settings with the supplied context
func WithContext(ctx *Context) Option {
	return func(c *Context) {
		if ctx != nil {
			*c = *ctx
		}
	}
}

func resolveContext(defaults Context, opts []Option) *Context {
	result := defaults
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&result)
	}
	result.engine, result.registry = nil, nil
	return &result
}
