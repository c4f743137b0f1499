// Package conv assigns plain values (as produced by decoding JSON, YAML or CBOR)
// to typed Go destinations. It coerces primitives, parses time text, and fills
// structs from string keyed maps using a configurable field naming function.
package conv
