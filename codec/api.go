package codec

import (
	"fmt"

	"github.com/viant/normalizer"
)

// Encode normalizes value and marshals the plain result
func Encode(n *normalizer.Normalizer, c Codec, value interface{}, opts ...normalizer.Option) ([]byte, error) {
	plain, err := n.Normalize(value, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %T: %w", value, err)
	}
	data, err := c.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %v: %w", c.ContentType(), err)
	}
	return data, nil
}

// Decode unmarshals data and denormalizes the plain result
func Decode(n *normalizer.Normalizer, c Codec, data []byte, opts ...normalizer.Option) (interface{}, error) {
	plain, err := c.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %v: %w", c.ContentType(), err)
	}
	return n.Denormalize(plain, opts...)
}
