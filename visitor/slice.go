package visitor

import (
	"fmt"
	"reflect"
)

// SliceVisitorOf creates a visitor for any slice or array value
func SliceVisitorOf(value interface{}) (Visitor[int, interface{}], error) {
	switch actual := value.(type) {
	case []interface{}:
		return TypedSliceVisitorOf[interface{}](actual), nil
	case []string:
		return TypedSliceVisitorOf[string](actual), nil
	case []int:
		return TypedSliceVisitorOf[int](actual), nil
	case []float64:
		return TypedSliceVisitorOf[float64](actual), nil
	case []bool:
		return TypedSliceVisitorOf[bool](actual), nil
	case []map[string]interface{}:
		return TypedSliceVisitorOf[map[string]interface{}](actual), nil
	}
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice or array, got %T", value)
	}
	visitor := &AnySliceVisitor{data: val}
	return visitor.Visit, nil
}

// TypedSliceVisitorOf returns visitor for a typed slice
func TypedSliceVisitorOf[E any](slice []E) Visitor[int, interface{}] {
	return func(f func(key int, element interface{}) (bool, error)) error {
		for i, e := range slice {
			continueVisit, err := f(i, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// AnySliceVisitor visits slices and arrays of any type via reflection.
type AnySliceVisitor struct {
	data reflect.Value
}

// Visit iterates over elements, the key is the element index.
func (v *AnySliceVisitor) Visit(f func(key int, element interface{}) (bool, error)) error {
	for i := 0; i < v.data.Len(); i++ {
		continueVisit, err := f(i, v.data.Index(i).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// Len returns slice or array length, -1 for other values
func Len(value interface{}) int {
	if actual, ok := value.([]interface{}); ok {
		return len(actual)
	}
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return val.Len()
	}
	return -1
}
