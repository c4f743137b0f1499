package codec

import (
	"fmt"
	"strings"
)

// Codec marshals plain values
type Codec interface {
	ContentType() string
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte) (interface{}, error)
}

// Lookup returns codec for a format name, content type or file extension
func Lookup(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json", JSONContentType:
		return JSON{}, nil
	case "yaml", "yml", YAMLContentType:
		return YAML{}, nil
	case "cbor", CBORContentType:
		return CBOR{}, nil
	}
	return nil, fmt.Errorf("unsupported codec: %v", name)
}
