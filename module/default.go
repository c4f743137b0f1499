package module

import "github.com/viant/normalizer"

const (
	// CollectionPriority priority of ArrayModule and ObjectModule in the default normalizer
	CollectionPriority = -100
	// DatePriority priority of DateModule in the default normalizer
	DatePriority = -50
)

// New creates a normalizer with array and object modules at priority -100 and
// date module at -50, followed by the supplied options
func New(opts ...normalizer.EngineOption) *normalizer.Normalizer {
	defaults := []normalizer.EngineOption{
		normalizer.WithModules(CollectionPriority, NewArrayModule(), NewObjectModule()),
		normalizer.WithModules(DatePriority, NewDateModule()),
	}
	return normalizer.NewWith(append(defaults, opts...)...)
}
