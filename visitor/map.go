package visitor

import (
	"fmt"
	"reflect"
)

// MapVisitorOf creates a visitor for any map, keys are rendered as strings
func MapVisitorOf(value interface{}) (Visitor[string, interface{}], error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return TypedMapVisitorOf[interface{}](actual), nil
	case map[string]string:
		return TypedMapVisitorOf[string](actual), nil
	case map[string]int:
		return TypedMapVisitorOf[int](actual), nil
	case map[string]bool:
		return TypedMapVisitorOf[bool](actual), nil
	}
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	visitor := &AnyMapVisitor{data: val}
	return visitor.Visit, nil
}

// TypedMapVisitorOf returns visitor for a string keyed map
func TypedMapVisitorOf[V any](aMap map[string]V) Visitor[string, interface{}] {
	return func(f func(key string, element interface{}) (bool, error)) error {
		for k, e := range aMap {
			continueVisit, err := f(k, e)
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

// AnyMapVisitor visits maps of any type via reflection
type AnyMapVisitor struct {
	data reflect.Value
}

// Visit iterates over the map and calls f for each entry.
func (v *AnyMapVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	iter := v.data.MapRange()
	for iter.Next() {
		continueVisit, err := f(KeyString(iter.Key()), iter.Value().Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

// KeyString renders map key as string
func KeyString(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	if key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
		if key.Kind() == reflect.String {
			return key.String()
		}
	}
	return fmt.Sprintf("%v", key.Interface())
}
