package codec

import (
	"gopkg.in/yaml.v3"
)

// YAMLContentType YAML content type
const YAMLContentType = "application/yaml"

// YAML encodes plain values as YAML
type YAML struct{}

func (c YAML) ContentType() string {
	return YAMLContentType
}

func (c YAML) Marshal(value interface{}) ([]byte, error) {
	return yaml.Marshal(value)
}

func (c YAML) Unmarshal(data []byte) (interface{}, error) {
	var ret interface{}
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
