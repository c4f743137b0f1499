package normalizer

import "sort"

type (
	bucket struct {
		priority int
		modules  []Module
	}

	//registry is an immutable snapshot, buckets ordered by descending priority
	registry struct {
		buckets []*bucket
	}
)

// with returns a new snapshot with the module appended to the priority bucket
func (r *registry) with(module Module, priority int) *registry {
	result := &registry{buckets: make([]*bucket, 0, len(r.buckets)+1)}
	appended := false
	for _, b := range r.buckets {
		if b.priority == priority {
			modules := make([]Module, len(b.modules), len(b.modules)+1)
			copy(modules, b.modules)
			b = &bucket{priority: priority, modules: append(modules, module)}
			appended = true
		}
		result.buckets = append(result.buckets, b)
	}
	if !appended {
		result.buckets = append(result.buckets, &bucket{priority: priority, modules: []Module{module}})
		sort.SliceStable(result.buckets, func(i, j int) bool {
			return result.buckets[i].priority > result.buckets[j].priority
		})
	}
	return result
}

func (r *registry) matchNormalization(data interface{}, ctx *Context, n *Normalizer) Module {
	for _, b := range r.buckets {
		for _, module := range b.modules {
			if module.SupportsNormalization(data, ctx, n) {
				return module
			}
		}
	}
	return nil
}

func (r *registry) matchDenormalization(data interface{}, ctx *Context, n *Normalizer) Module {
	for _, b := range r.buckets {
		for _, module := range b.modules {
			if module.SupportsDenormalization(data, ctx, n) {
				return module
			}
		}
	}
	return nil
}

// lookup returns the first module with matching marker
func (r *registry) lookup(marker string) Module {
	for _, b := range r.buckets {
		for _, module := range b.modules {
			if module.Marker() == marker {
				return module
			}
		}
	}
	return nil
}

func (r *registry) modules() map[int][]Module {
	result := make(map[int][]Module, len(r.buckets))
	for _, b := range r.buckets {
		modules := make([]Module, len(b.modules))
		copy(modules, b.modules)
		result[b.priority] = modules
	}
	return result
}

func (r *registry) priorities() []int {
	result := make([]int, 0, len(r.buckets))
	for _, b := range r.buckets {
		result = append(result, b.priority)
	}
	return result
}
