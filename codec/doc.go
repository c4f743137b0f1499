// Package codec composes normalization with plain data encodings.
//
// Encode normalizes a rich value and marshals the plain result, Decode unmarshals
// plain data and denormalizes it:
//
//	n := module.New()
//	data, err := codec.Encode(n, codec.JSON{}, value, normalizer.WithMarker(true))
//	...
//	value, err := codec.Decode(n, codec.JSON{}, data, normalizer.WithMarker(true))
package codec
