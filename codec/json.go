package codec

import (
	"github.com/goccy/go-json"
)

// JSONContentType JSON content type
const JSONContentType = "application/json"

// JSON encodes plain values as JSON, numbers decode as float64
type JSON struct {
	Indent string
}

func (c JSON) ContentType() string {
	return JSONContentType
}

func (c JSON) Marshal(value interface{}) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(value, "", c.Indent)
	}
	return json.Marshal(value)
}

func (c JSON) Unmarshal(data []byte) (interface{}, error) {
	var ret interface{}
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
