// Package normalizer converts arbitrary Go values into a plain representation
// (nil, bool, numbers, string, []interface{}, map[string]interface{}) suitable for
// JSON, YAML or CBOR encoding, and reverses that conversion.
//
// A Normalizer owns a priority-bucketed registry of modules. For every value it
// scans buckets from the highest priority down, modules in registration order,
// and delegates to the first module whose predicate accepts the value. Values
// no module accepts pass through unchanged.
//
// With the marker option enabled each converted value is wrapped in a two-field
// record naming the producing module, so that denormalization can route by the
// marker instead of re-testing predicates:
//
//	{"__mark__": "DateModule", "__value__": "2024-03-01T10:00:00.000Z"}
//
// Cyclic values are not detected; normalizing one recurses until the stack is exhausted.
package normalizer
