package normalizer

import (
	"fmt"
	"reflect"
	"sync"
)

type (
	// Normalizer converts values with registered modules
	Normalizer struct {
		mux      sync.RWMutex
		registry *registry
		defaults Context
	}

	// EngineOption represents normalizer option
	EngineOption func(n *Normalizer)
)

// WithModules registers modules with the supplied priority, preserving their order
func WithModules(priority int, modules ...Module) EngineOption {
	return func(n *Normalizer) {
		for _, module := range modules {
			n.Register(module, priority)
		}
	}
}

// WithDefaults applies context options over the engine defaults
func WithDefaults(opts ...Option) EngineOption {
	return func(n *Normalizer) {
		n.defaults = *resolveContext(n.defaults, opts)
	}
}

// WithConfig sets engine defaults from config
func WithConfig(config *Config) EngineOption {
	return func(n *Normalizer) {
		if config != nil {
			n.defaults = config.Context()
		}
	}
}

// New creates a normalizer with modules registered at priority 0
func New(modules ...Module) *Normalizer {
	return NewWith(WithModules(0, modules...))
}

// NewWithPriorities creates a normalizer registering each priority's modules in order
func NewWithPriorities(modules map[int][]Module) *Normalizer {
	var opts []EngineOption
	for priority, group := range modules {
		opts = append(opts, WithModules(priority, group...))
	}
	return NewWith(opts...)
}

// NewWith creates a normalizer with engine options
func NewWith(opts ...EngineOption) *Normalizer {
	ret := &Normalizer{registry: &registry{}, defaults: DefaultContext()}
	for _, opt := range opts {
		if opt != nil {
			opt(ret)
		}
	}
	return ret
}

// Register appends a module to the priority bucket
func (n *Normalizer) Register(module Module, priority int) *Normalizer {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.registry = n.registry.with(module, priority)
	return n
}

// Modules returns registered modules by priority
func (n *Normalizer) Modules() map[int][]Module {
	return n.snapshot().modules()
}

// Priorities returns registered priorities, highest first
func (n *Normalizer) Priorities() []int {
	return n.snapshot().priorities()
}

// Context returns a context resolved from the engine defaults and the supplied options
func (n *Normalizer) Context(opts ...Option) *Context {
	return resolveContext(n.defaults, opts)
}

// bind returns ctx bound to the engine registry snapshot, an unbound context is copied
func (n *Normalizer) bind(ctx *Context) *Context {
	if ctx == nil {
		ctx = n.Context()
	}
	if ctx.engine == n && ctx.registry != nil {
		return ctx
	}
	bound := *ctx
	bound.engine, bound.registry = n, n.snapshot()
	return &bound
}

func (n *Normalizer) snapshot() *registry {
	n.mux.RLock()
	defer n.mux.RUnlock()
	return n.registry
}

// Normalize converts data into its plain representation
func (n *Normalizer) Normalize(data interface{}, opts ...Option) (interface{}, error) {
	return n.NormalizeContext(data, n.Context(opts...))
}

// NormalizeContext converts data with an already resolved context, used for nested values;
// nested calls share the registry snapshot of the top-level call
func (n *Normalizer) NormalizeContext(data interface{}, ctx *Context) (interface{}, error) {
	ctx = n.bind(ctx)
	module := ctx.registry.matchNormalization(data, ctx, n)
	if module == nil {
		return data, nil
	}
	debugf("normalizing %T with %v", data, moduleName(module))
	value, err := module.Normalize(data, ctx, n)
	if err != nil {
		return nil, err
	}
	if ctx.Marker {
		return ctx.mark(module.Marker(), value), nil
	}
	return value, nil
}

// Denormalize converts plain data back into its rich representation
func (n *Normalizer) Denormalize(data interface{}, opts ...Option) (interface{}, error) {
	return n.DenormalizeContext(data, n.Context(opts...))
}

// DenormalizeContext converts plain data with an already resolved context, used for nested values
func (n *Normalizer) DenormalizeContext(data interface{}, ctx *Context) (interface{}, error) {
	ctx = n.bind(ctx)
	registry := ctx.registry
	value := data
	var module Module
	if ctx.Marker {
		if marker, unwrapped, ok := ctx.unmark(data); ok {
			value = unwrapped
			name, isString := markerName(marker)
			if isString {
				module = registry.lookup(name)
			}
			if module == nil {
				debugf("unresolved marker %v, policy: %v", marker, ctx.UnknownMark)
				switch ctx.UnknownMark {
				case UnknownMarkIgnoreRaw:
					return data, nil
				case UnknownMarkIgnore:
					return value, nil
				case UnknownMarkFallback:
				default:
					return nil, &UnresolvedMarkerError{Marker: fmt.Sprint(marker)}
				}
			}
		}
	}
	if module == nil {
		module = registry.matchDenormalization(value, ctx, n)
	}
	if module == nil {
		return value, nil
	}
	debugf("denormalizing %T with %v", value, moduleName(module))
	return module.Denormalize(value, ctx, n)
}

func markerName(marker interface{}) (string, bool) {
	if name, ok := marker.(string); ok {
		return name, true
	}
	if rValue := reflect.ValueOf(marker); rValue.Kind() == reflect.String {
		return rValue.String(), true
	}
	return "", false
}

func moduleName(module Module) string {
	if marker := module.Marker(); marker != "" {
		return marker
	}
	return fmt.Sprintf("%T", module)
}
