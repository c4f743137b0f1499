package module

import (
	"fmt"
	"reflect"

	"github.com/viant/normalizer"
	"github.com/viant/normalizer/visitor"
)

// ObjectMarker default ObjectModule marker
const ObjectMarker = "ObjectModule"

// ObjectModule converts maps value by value, keys are rendered as strings
type ObjectModule struct {
	normalizer.Base
}

// NewObjectModule creates object module
func NewObjectModule(opts ...Option) *ObjectModule {
	options := newOptions(ObjectMarker, opts)
	return &ObjectModule{Base: normalizer.NewBase(options.marker)}
}

func (m *ObjectModule) SupportsNormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	return isMap(data)
}

func (m *ObjectModule) SupportsDenormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	return isMap(data)
}

func (m *ObjectModule) Normalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	return m.convert(data, func(value interface{}) (interface{}, error) {
		return n.NormalizeContext(value, ctx)
	})
}

func (m *ObjectModule) Denormalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	return m.convert(data, func(value interface{}) (interface{}, error) {
		return n.DenormalizeContext(value, ctx)
	})
}

func (m *ObjectModule) convert(data interface{}, fn func(value interface{}) (interface{}, error)) (interface{}, error) {
	if isNil(data) {
		return nil, nil
	}
	visit, err := visitor.MapVisitorOf(data)
	if err != nil {
		return nil, err
	}
	result := make(map[string]interface{}, visitor.Len(data))
	err = visit(func(key string, value interface{}) (bool, error) {
		converted, err := fn(value)
		if err != nil {
			return false, fmt.Errorf("failed to convert key %q: %w", key, err)
		}
		result[key] = converted
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func isMap(data interface{}) bool {
	switch data.(type) {
	case map[string]interface{}:
		return true
	case nil:
		return false
	}
	return reflect.TypeOf(data).Kind() == reflect.Map
}
