package module

import (
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
)

type options struct {
	marker     string
	timeLayout string
	caseFormat text.CaseFormat
	detect     bool
}

// Option represents module option
type Option func(o *options)

func newOptions(marker string, opts []Option) *options {
	ret := &options{marker: marker}
	for _, opt := range opts {
		if opt != nil {
			opt(ret)
		}
	}
	return ret
}

// WithMarker overrides module marker
func WithMarker(marker string) Option {
	return func(o *options) {
		o.marker = marker
	}
}

// WithTimeLayout sets Go time layout used by DateModule
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		o.timeLayout = layout
	}
}

// WithDateFormat sets ISO date format (i.e. YYYY-MM-DD hh:mm:ss) used by DateModule
func WithDateFormat(dateFormat string) Option {
	return func(o *options) {
		o.timeLayout = ftime.DateFormatToTimeLayout(dateFormat)
	}
}

// WithCaseFormat sets case format of StructModule keys derived from Go field names
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.caseFormat = caseFormat
	}
}

// WithStructDetection enables StructModule denormalization of maps whose keys all match struct fields
func WithStructDetection(enabled bool) Option {
	return func(o *options) {
		o.detect = enabled
	}
}
