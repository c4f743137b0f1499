package visitor

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

var structCache = NewSyncMap[reflect.Type, []*xunsafe.Field]()

// StructVisitor visits exported struct fields, the key is the Go field name.
type StructVisitor struct {
	value  interface{}
	ptr    unsafe.Pointer
	fields []*xunsafe.Field
}

// StructVisitorOf creates a StructVisitor from any struct or pointer to struct value.
func StructVisitorOf(value interface{}) (Visitor[string, interface{}], error) {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		return nil, fmt.Errorf("expected struct or pointer to struct, got nil")
	}
	var structType reflect.Type
	switch valueType.Kind() {
	case reflect.Ptr:
		structType = valueType.Elem()
		if structType.Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
		}
		if reflect.ValueOf(value).IsNil() {
			return nil, fmt.Errorf("expected non nil %T", value)
		}
	case reflect.Struct:
		structType = valueType
		rPointer := reflect.New(structType)
		rPointer.Elem().Set(reflect.ValueOf(value))
		value = rPointer.Interface()
	default:
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	visitor := &StructVisitor{
		value:  value,
		ptr:    xunsafe.AsPointer(value),
		fields: Fields(structType),
	}
	return visitor.Visit, nil
}

// Fields returns cached exported fields of a struct type
func Fields(structType reflect.Type) []*xunsafe.Field {
	return structCache.GetOrCompute(structType, func() []*xunsafe.Field {
		fields := make([]*xunsafe.Field, 0, structType.NumField())
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if field.PkgPath != "" {
				continue
			}
			fields = append(fields, xunsafe.NewField(field))
		}
		return fields
	})
}

// Visit iterates over exported fields, calling the provided function with each field name and value.
func (w *StructVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	for _, xField := range w.fields {
		continueVisit, err := f(xField.Name, xField.Value(w.ptr))
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
