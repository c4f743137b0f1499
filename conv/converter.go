package conv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	ftime "github.com/viant/tagly/format/time"
)

// DefaultTimeLayout is the layout tried first when parsing time text
const DefaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var timeType = reflect.TypeOf(time.Time{})

// FieldNamer returns the plain key for a field of the owner struct type, empty to skip the field
type FieldNamer func(owner reflect.Type, field reflect.StructField) (string, error)

// Options contains configuration for the converter
type Options struct {
	// TimeLayout specifies the layout for time parsing
	TimeLayout string
	// CaseSensitive controls whether struct field keys match case sensitively
	CaseSensitive bool
	// FieldNamer resolves field keys, defaults to the Go field name
	FieldNamer FieldNamer
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		TimeLayout: DefaultTimeLayout,
		FieldNamer: func(_ reflect.Type, field reflect.StructField) (string, error) { return field.Name, nil },
	}
}

// Converter assigns plain values to typed destinations
type Converter struct {
	options Options
}

// NewConverter creates a converter with the provided options
func NewConverter(options Options) *Converter {
	if options.FieldNamer == nil {
		options.FieldNamer = DefaultOptions().FieldNamer
	}
	return &Converter{options: options}
}

// Convert assigns src to the value pointed by dest
func (c *Converter) Convert(src interface{}, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return errors.New("destination must be a non nil pointer")
	}
	return c.assign(destValue.Elem(), src)
}

func (c *Converter) assign(dest reflect.Value, src interface{}) error {
	if src == nil {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	srcValue := reflect.ValueOf(src)
	destType := dest.Type()
	if srcValue.Type().AssignableTo(destType) {
		dest.Set(srcValue)
		return nil
	}
	switch destType.Kind() {
	case reflect.Ptr:
		elem := reflect.New(destType.Elem())
		if err := c.assign(elem.Elem(), src); err != nil {
			return err
		}
		dest.Set(elem)
		return nil
	case reflect.Interface:
		if srcValue.Type().Implements(destType) {
			dest.Set(srcValue)
			return nil
		}
	case reflect.String:
		text, err := toString(srcValue)
		if err != nil {
			return err
		}
		dest.SetString(text)
		return nil
	case reflect.Bool:
		flag, err := toBool(srcValue)
		if err != nil {
			return err
		}
		dest.SetBool(flag)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if destType == reflect.TypeOf(time.Duration(0)) && srcValue.Kind() == reflect.String {
			duration, err := time.ParseDuration(srcValue.String())
			if err != nil {
				return err
			}
			dest.SetInt(int64(duration))
			return nil
		}
		number, err := toInt(srcValue)
		if err != nil {
			return err
		}
		if dest.OverflowInt(number) {
			return fmt.Errorf("value %v overflows %v", number, destType)
		}
		dest.SetInt(number)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		number, err := toUint(srcValue)
		if err != nil {
			return err
		}
		if dest.OverflowUint(number) {
			return fmt.Errorf("value %v overflows %v", number, destType)
		}
		dest.SetUint(number)
		return nil
	case reflect.Float32, reflect.Float64:
		number, err := toFloat(srcValue)
		if err != nil {
			return err
		}
		dest.SetFloat(number)
		return nil
	case reflect.Slice:
		return c.assignSlice(dest, srcValue)
	case reflect.Map:
		return c.assignMap(dest, srcValue)
	case reflect.Struct:
		if destType == timeType {
			ts, err := c.toTime(srcValue)
			if err != nil {
				return err
			}
			dest.Set(reflect.ValueOf(ts))
			return nil
		}
		return c.assignStruct(dest, srcValue)
	}
	if srcValue.Type().ConvertibleTo(destType) {
		dest.Set(srcValue.Convert(destType))
		return nil
	}
	return fmt.Errorf("unsupported conversion: %v to %v", srcValue.Type(), destType)
}

func toString(srcValue reflect.Value) (string, error) {
	switch srcValue.Kind() {
	case reflect.String:
		return srcValue.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(srcValue.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(srcValue.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(srcValue.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 64), nil
	case reflect.Slice:
		if srcValue.Type().Elem().Kind() == reflect.Uint8 {
			return string(srcValue.Bytes()), nil
		}
	}
	return "", fmt.Errorf("cannot convert %v to string", srcValue.Type())
}

func toBool(srcValue reflect.Value) (bool, error) {
	switch srcValue.Kind() {
	case reflect.Bool:
		return srcValue.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return srcValue.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return srcValue.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return srcValue.Float() != 0, nil
	case reflect.String:
		result, err := strconv.ParseBool(srcValue.String())
		if err != nil {
			if f, fErr := strconv.ParseFloat(srcValue.String(), 64); fErr == nil {
				return f != 0, nil
			}
			return false, err
		}
		return result, nil
	}
	return false, fmt.Errorf("cannot convert %v to bool", srcValue.Type())
}

func toInt(srcValue reflect.Value) (int64, error) {
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return srcValue.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(srcValue.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int64(srcValue.Float()), nil
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		text := srcValue.String()
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			return int64(f), err
		}
		return strconv.ParseInt(text, 0, 64)
	}
	return 0, fmt.Errorf("cannot convert %v to int", srcValue.Type())
}

func toUint(srcValue reflect.Value) (uint64, error) {
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v := srcValue.Int(); v < 0 {
			return 0, fmt.Errorf("cannot convert negative value %d to unsigned int", v)
		}
		return uint64(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return srcValue.Uint(), nil
	case reflect.Float32, reflect.Float64:
		if v := srcValue.Float(); v < 0 {
			return 0, fmt.Errorf("cannot convert negative value %f to unsigned int", v)
		}
		return uint64(srcValue.Float()), nil
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		text := srcValue.String()
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err == nil && f < 0 {
				return 0, fmt.Errorf("cannot convert negative value %f to unsigned int", f)
			}
			return uint64(f), err
		}
		return strconv.ParseUint(text, 0, 64)
	}
	return 0, fmt.Errorf("cannot convert %v to uint", srcValue.Type())
}

func toFloat(srcValue reflect.Value) (float64, error) {
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(srcValue.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return srcValue.Float(), nil
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return strconv.ParseFloat(srcValue.String(), 64)
	}
	return 0, fmt.Errorf("cannot convert %v to float", srcValue.Type())
}

func (c *Converter) toTime(srcValue reflect.Value) (time.Time, error) {
	switch srcValue.Kind() {
	case reflect.String:
		return ParseTime(c.options.TimeLayout, srcValue.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return unixTime(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return unixTime(int64(srcValue.Uint())), nil
	case reflect.Float32, reflect.Float64:
		seconds := int64(srcValue.Float())
		nanos := int64((srcValue.Float() - float64(seconds)) * 1e9)
		return time.Unix(seconds, nanos).UTC(), nil
	case reflect.Ptr:
		if !srcValue.IsNil() {
			return c.toTime(srcValue.Elem())
		}
	}
	return time.Time{}, fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
}

// unixTime treats very large values as nanoseconds
func unixTime(value int64) time.Time {
	if value > 1e10 || value < -1e10 {
		return time.Unix(0, value).UTC()
	}
	return time.Unix(value, 0).UTC()
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	"2006/1/2 15:04:05",
	"2006/1/2",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

// ParseTime parses time text with the supplied layout, falling back to common layouts;
// layout may use ISO date format tokens (YYYY-MM-DD) or Go reference layout
func ParseTime(layout, value string) (time.Time, error) {
	if layout != "" {
		if strings.Contains(layout, "YY") {
			layout = ftime.DateFormatToTimeLayout(layout)
		}
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	for _, candidate := range timeLayouts {
		if ts, err := time.ParseInLocation(candidate, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time string '%s'", value)
}

func (c *Converter) assignSlice(dest reflect.Value, srcValue reflect.Value) error {
	destType := dest.Type()
	if destType.Elem().Kind() == reflect.Uint8 && srcValue.Kind() == reflect.String {
		dest.SetBytes([]byte(srcValue.String()))
		return nil
	}
	if srcValue.Kind() != reflect.Slice && srcValue.Kind() != reflect.Array {
		return fmt.Errorf("cannot convert %v to %v", srcValue.Type(), destType)
	}
	length := srcValue.Len()
	result := reflect.MakeSlice(destType, length, length)
	for i := 0; i < length; i++ {
		if err := c.assign(result.Index(i), srcValue.Index(i).Interface()); err != nil {
			return fmt.Errorf("error converting slice element %d: %w", i, err)
		}
	}
	dest.Set(result)
	return nil
}

func (c *Converter) assignMap(dest reflect.Value, srcValue reflect.Value) error {
	destType := dest.Type()
	if srcValue.Kind() != reflect.Map {
		return fmt.Errorf("cannot convert %v to map", srcValue.Type())
	}
	result := reflect.MakeMapWithSize(destType, srcValue.Len())
	iter := srcValue.MapRange()
	for iter.Next() {
		key := reflect.New(destType.Key()).Elem()
		if err := c.assign(key, iter.Key().Interface()); err != nil {
			return fmt.Errorf("error converting map key: %w", err)
		}
		value := reflect.New(destType.Elem()).Elem()
		if err := c.assign(value, iter.Value().Interface()); err != nil {
			return fmt.Errorf("error converting map value %v: %w", iter.Key().Interface(), err)
		}
		result.SetMapIndex(key, value)
	}
	dest.Set(result)
	return nil
}

func (c *Converter) assignStruct(dest reflect.Value, srcValue reflect.Value) error {
	if srcValue.Kind() != reflect.Map || srcValue.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("cannot convert %v to struct %v", srcValue.Type(), dest.Type())
	}
	values := make(map[string]reflect.Value, srcValue.Len())
	iter := srcValue.MapRange()
	for iter.Next() {
		values[c.key(iter.Key().String())] = iter.Value()
	}
	destType := dest.Type()
	for i := 0; i < destType.NumField(); i++ {
		field := destType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, err := c.options.FieldNamer(destType, field)
		if err != nil {
			return fmt.Errorf("error naming field %s: %w", field.Name, err)
		}
		if name == "" {
			continue
		}
		value, ok := values[c.key(name)]
		if !ok {
			continue
		}
		if err := c.assign(dest.Field(i), value.Interface()); err != nil {
			return fmt.Errorf("error converting field %s: %w", field.Name, err)
		}
	}
	return nil
}

func (c *Converter) key(name string) string {
	if c.options.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}
