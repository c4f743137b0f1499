package module

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/normalizer"
	"github.com/viant/normalizer/conv"
	"github.com/viant/normalizer/visitor"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
)

type structField struct {
	name      string
	omitEmpty bool
}

// StructModule converts structs of one type to maps keyed by json/format tag names.
// Denormalization is marker addressed unless struct detection is enabled.
type StructModule struct {
	normalizer.Base
	rType     reflect.Type
	isPtr     bool
	detect    bool
	fields    map[string]*structField
	byName    map[string]bool
	nested    *visitor.SyncMap[reflect.Type, map[string]string]
	converter *conv.Converter
}

// NewStructModule creates struct module for the prototype type, the marker defaults to the type name
func NewStructModule(prototype interface{}, opts ...Option) (*StructModule, error) {
	rType := reflect.TypeOf(prototype)
	if rType == nil {
		return nil, fmt.Errorf("struct prototype was nil")
	}
	isPtr := rType.Kind() == reflect.Ptr
	if isPtr {
		rType = rType.Elem()
	}
	if rType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct prototype, got %T", prototype)
	}
	options := newOptions(rType.Name(), opts)
	ret := &StructModule{
		Base:   normalizer.NewBase(options.marker),
		rType:  rType,
		isPtr:  isPtr,
		detect: options.detect,
		byName: make(map[string]bool),
		nested: visitor.NewSyncMap[reflect.Type, map[string]string](),
	}
	fields, err := resolveFields(rType, options.caseFormat)
	if err != nil {
		return nil, err
	}
	ret.fields = fields
	for _, field := range fields {
		ret.byName[field.name] = true
	}
	convOptions := conv.DefaultOptions()
	convOptions.CaseSensitive = true
	convOptions.FieldNamer = ret.fieldName
	ret.converter = conv.NewConverter(convOptions)
	return ret, nil
}

// resolveFields resolves exported field names keyed by Go field name
func resolveFields(rType reflect.Type, caseFormat text.CaseFormat) (map[string]*structField, error) {
	result := make(map[string]*structField, rType.NumField())
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		resolved, err := resolveField(field, caseFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid %v.%v tag: %w", rType.Name(), field.Name, err)
		}
		if resolved != nil {
			result[field.Name] = resolved
		}
	}
	return result, nil
}

// resolveField returns nil for ignored fields; explicit json name wins over format tag name and case format
func resolveField(field reflect.StructField, caseFormat text.CaseFormat) (*structField, error) {
	ret := &structField{}
	jsonTag := field.Tag.Get("json")
	jsonName := ""
	if jsonTag != "" {
		parts := strings.Split(jsonTag, ",")
		if jsonName = parts[0]; jsonName == "-" {
			return nil, nil
		}
		for _, part := range parts[1:] {
			if part == "omitempty" {
				ret.omitEmpty = true
			}
		}
	}
	tag, err := format.Parse(field.Tag)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		if tag.Ignore {
			return nil, nil
		}
		ret.omitEmpty = ret.omitEmpty || tag.Omitempty
		if tag.CaseFormat != "" && tag.CaseFormat != "-" {
			caseFormat = text.CaseFormat(tag.CaseFormat)
		}
	}
	switch {
	case jsonName != "":
		ret.name = jsonName
	case tag != nil && tag.Name != "":
		ret.name = tag.Name
	default:
		ret.name = formatName(field.Name, caseFormat)
	}
	return ret, nil
}

func formatName(name string, caseFormat text.CaseFormat) string {
	if caseFormat == "" || caseFormat == text.CaseFormatUndefined {
		return name
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, caseFormat)
}

// fieldName names fields of the module type with the module settings. Struct types nested in it
// without a module of their own pass through normalization as is, so they use encoding/json names.
func (m *StructModule) fieldName(owner reflect.Type, field reflect.StructField) (string, error) {
	if owner != m.rType {
		names := m.nested.GetOrCompute(owner, func() map[string]string {
			return jsonNames(owner)
		})
		return names[field.Name], nil
	}
	if resolved, ok := m.fields[field.Name]; ok {
		return resolved.name, nil
	}
	return "", nil
}

// jsonNames returns json tag names keyed by Go field name, falling back to the Go field name
func jsonNames(rType reflect.Type) map[string]string {
	result := make(map[string]string, rType.NumField())
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}
		result[field.Name] = name
	}
	return result
}

// Type returns struct type
func (m *StructModule) Type() reflect.Type {
	return m.rType
}

func (m *StructModule) SupportsNormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	if data == nil {
		return false
	}
	rType := reflect.TypeOf(data)
	if rType == m.rType {
		return true
	}
	return rType.Kind() == reflect.Ptr && rType.Elem() == m.rType && !reflect.ValueOf(data).IsNil()
}

// SupportsDenormalization returns true, when detection is enabled, for non empty maps whose keys all match struct fields
func (m *StructModule) SupportsDenormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	if !m.detect {
		return false
	}
	aMap, ok := data.(map[string]interface{})
	if !ok || len(aMap) == 0 {
		return false
	}
	for key := range aMap {
		if !m.byName[key] {
			return false
		}
	}
	return true
}

func (m *StructModule) Normalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	visit, err := visitor.StructVisitorOf(data)
	if err != nil {
		return nil, err
	}
	result := make(map[string]interface{}, len(m.fields))
	err = visit(func(key string, value interface{}) (bool, error) {
		field, ok := m.fields[key]
		if !ok {
			return true, nil
		}
		if field.omitEmpty && isEmpty(value) {
			return true, nil
		}
		converted, err := n.NormalizeContext(value, ctx)
		if err != nil {
			return false, fmt.Errorf("failed to convert %v.%v: %w", m.rType.Name(), key, err)
		}
		result[field.name] = converted
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *StructModule) Denormalize(data interface{}, ctx *normalizer.Context, n *normalizer.Normalizer) (interface{}, error) {
	aMap, ok := data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected map[string]interface{} for %v, got %T", m.rType.Name(), data)
	}
	values := make(map[string]interface{}, len(aMap))
	for key, value := range aMap {
		converted, err := n.DenormalizeContext(value, ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %v.%v: %w", m.rType.Name(), key, err)
		}
		values[key] = converted
	}
	ptr := reflect.New(m.rType)
	if err := m.converter.Convert(values, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("failed to build %v: %w", m.rType.Name(), err)
	}
	if m.isPtr {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return rValue.Len() == 0
	}
	return rValue.IsZero()
}
