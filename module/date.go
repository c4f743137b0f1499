package module

import (
	"fmt"
	"time"

	"github.com/viant/normalizer"
	"github.com/viant/normalizer/conv"
)

const (
	// DateMarker default DateModule marker
	DateMarker = "DateModule"
	// ISOLayout ISO-8601 UTC layout with millisecond precision
	ISOLayout = "2006-01-02T15:04:05.000Z"
)

// DateModule converts time.Time to timestamp text and parses it back.
//
// Normalized text is UTC with millisecond precision, so sub-millisecond digits are dropped and
// the reverse conversion yields t.UTC().Truncate(time.Millisecond). Years outside 0000-9999 format
// to text the reverse predicate rejects.
//
// Any string accepted by the configured layout or by conv.ParseTime is denormalized: RFC 3339 with
// or without a colon in the offset, "2006-01-02 15:04:05", "2006-01-02", "2006-01", "2006",
// "2006/1/2", month first "1/2/2006", "January 2, 2006", "Jan 2, 2006", "2 Jan 2006",
// "Mon Jan 2 2006" and the time package RFC layouts. Text without a zone is read as UTC.
type DateModule struct {
	normalizer.Base
	layout string
}

// NewDateModule creates date module
func NewDateModule(opts ...Option) *DateModule {
	options := newOptions(DateMarker, opts)
	ret := &DateModule{Base: normalizer.NewBase(options.marker), layout: options.timeLayout}
	if ret.layout == "" {
		ret.layout = ISOLayout
	}
	return ret
}

// Layout returns formatting layout
func (m *DateModule) Layout() string {
	return m.layout
}

func (m *DateModule) SupportsNormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	switch actual := data.(type) {
	case time.Time:
		return true
	case *time.Time:
		return actual != nil
	}
	return false
}

// SupportsDenormalization returns true for any string parseable as time
func (m *DateModule) SupportsDenormalization(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) bool {
	text, ok := data.(string)
	if !ok || text == "" {
		return false
	}
	_, err := m.parse(text)
	return err == nil
}

// Normalize formats time in UTC
func (m *DateModule) Normalize(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) (interface{}, error) {
	switch actual := data.(type) {
	case time.Time:
		return actual.UTC().Format(m.layout), nil
	case *time.Time:
		if actual != nil {
			return actual.UTC().Format(m.layout), nil
		}
	}
	return nil, fmt.Errorf("expected time.Time, got %T", data)
}

func (m *DateModule) Denormalize(data interface{}, _ *normalizer.Context, _ *normalizer.Normalizer) (interface{}, error) {
	text, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected time string, got %T", data)
	}
	ts, err := m.parse(text)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (m *DateModule) parse(text string) (time.Time, error) {
	return conv.ParseTime(m.layout, text)
}
