package normalizer

import (
	"math"
	"reflect"
)

// mark wraps a converted value into a marked record
func (c *Context) mark(marker string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		c.MarkProperty:  marker,
		c.ValueProperty: value,
	}
}

// unmark extracts a marker and the wrapped value; ok is false unless data is a string keyed map with a truthy marker
func (c *Context) unmark(data interface{}) (marker interface{}, value interface{}, ok bool) {
	switch actual := data.(type) {
	case map[string]interface{}:
		if marker = actual[c.MarkProperty]; !isTruthy(marker) {
			return nil, nil, false
		}
		return marker, actual[c.ValueProperty], true
	case map[string]string:
		if marker = actual[c.MarkProperty]; !isTruthy(marker) {
			return nil, nil, false
		}
		return marker, actual[c.ValueProperty], true
	case nil:
		return nil, nil, false
	}
	rValue := reflect.ValueOf(data)
	if rValue.Kind() != reflect.Map || rValue.Type().Key().Kind() != reflect.String {
		return nil, nil, false
	}
	keyType := rValue.Type().Key()
	markValue := rValue.MapIndex(reflect.ValueOf(c.MarkProperty).Convert(keyType))
	if !markValue.IsValid() || !isTruthy(markValue.Interface()) {
		return nil, nil, false
	}
	if item := rValue.MapIndex(reflect.ValueOf(c.ValueProperty).Convert(keyType)); item.IsValid() {
		value = item.Interface()
	}
	return markValue.Interface(), value, true
}

// isTruthy treats nil, false, "", zero and NaN numbers as absent markers
func isTruthy(value interface{}) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case string:
		return actual != ""
	case bool:
		return actual
	case int:
		return actual != 0
	case int64:
		return actual != 0
	case uint64:
		return actual != 0
	case float64:
		return actual != 0 && !math.IsNaN(actual)
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rValue.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rValue.Len() > 0
	case reflect.Bool:
		return rValue.Bool()
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rValue.IsNil()
	}
	return true
}
