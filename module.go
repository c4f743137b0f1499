package normalizer

// Module converts a family of values between their rich and plain shapes.
//
// Predicates must not mutate data. Normalize and Denormalize may call back into
// the supplied Normalizer for nested values, forwarding ctx unchanged.
type Module interface {
	//Marker returns module marker, empty when the module has none
	Marker() string

	SupportsNormalization(data interface{}, ctx *Context, n *Normalizer) bool

	SupportsDenormalization(data interface{}, ctx *Context, n *Normalizer) bool

	Normalize(data interface{}, ctx *Context, n *Normalizer) (interface{}, error)

	Denormalize(data interface{}, ctx *Context, n *Normalizer) (interface{}, error)
}

// Base holds a module marker, meant to be embedded in module implementations
type Base struct {
	Name string
}

// Marker returns module marker
func (b *Base) Marker() string {
	return b.Name
}

// NewBase creates a module base with the supplied marker
func NewBase(marker string) Base {
	return Base{Name: marker}
}
