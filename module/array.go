package module

import (
	"fmt"
	"reflect"

	"github.com/viant/normalizer"
	"github.com/viant/normalizer/visitor"
)

// ArrayMarker default ArrayModule marker
const ArrayMarker = "ArrayModule"

// ArrayModule converts slices and arrays element by element
type ArrayModule struct {
	normalizer.Base
}

// NewArrayModule creates array module
func NewArrayModule(opts ...Option) *ArrayModule {
	options := newOptions(ArrayMarker, opts)
	return &ArrayModule{Base: normalizer.NewBase(options.marker)}
}

// SupportsNormalization returns true for slices and arrays other than []byte
func (m *ArrayModule) SupportsNormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	return isSequence(data)
}

// SupportsDenormalization returns true for slices and arrays other than []byte
func (m *ArrayModule) SupportsDenormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	return isSequence(data)
}

func (m *ArrayModule) Normalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	return m.convert(data, func(item interface{}) (interface{}, error) {
		return n.NormalizeContext(item, ctx)
	})
}

func (m *ArrayModule) Denormalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	return m.convert(data, func(item interface{}) (interface{}, error) {
		return n.DenormalizeContext(item, ctx)
	})
}

func (m *ArrayModule) convert(data interface{}, fn func(item interface{}) (interface{}, error)) (interface{}, error) {
	if isNil(data) {
		return nil, nil
	}
	visit, err := visitor.SliceVisitorOf(data)
	if err != nil {
		return nil, err
	}
	result := make([]interface{}, 0, visitor.Len(data))
	err = visit(func(index int, item interface{}) (bool, error) {
		converted, err := fn(item)
		if err != nil {
			return false, fmt.Errorf("failed to convert item [%d]: %w", index, err)
		}
		result = append(result, converted)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func isSequence(data interface{}) bool {
	switch data.(type) {
	case []interface{}:
		return true
	case []byte, nil:
		return false
	}
	rType := reflect.TypeOf(data)
	switch rType.Kind() {
	case reflect.Slice, reflect.Array:
		return rType.Elem().Kind() != reflect.Uint8
	}
	return false
}

func isNil(data interface{}) bool {
	if data == nil {
		return true
	}
	rValue := reflect.ValueOf(data)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Map, reflect.Ptr:
		return rValue.IsNil()
	}
	return false
}
