package module

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/normalizer"
)

func TestNew(t *testing.T) {
	n := New()
	modules := n.Modules()
	assert.Equal(t, []int{DatePriority, CollectionPriority}, n.Priorities())
	require.Len(t, modules[CollectionPriority], 2)
	assert.IsType(t, &ArrayModule{}, modules[CollectionPriority][0])
	assert.IsType(t, &ObjectModule{}, modules[CollectionPriority][1])
	require.Len(t, modules[DatePriority], 1)
	assert.IsType(t, &DateModule{}, modules[DatePriority][0])

	assert.NotSame(t, n, New(), "each call creates a new normalizer")
}

func TestRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 11, 12, 345000000, time.UTC)
	var testCases = []struct {
		description string
		value       interface{}
		plain       interface{}
	}{
		{
			description: "date",
			value:       ts,
			plain:       "2024-03-01T10:11:12.345Z",
		},
		{
			description: "nested structure",
			value: map[string]interface{}{
				"list":  []interface{}{1.5, "text", ts, nil},
				"empty": []interface{}{},
				"nested": map[string]interface{}{
					"at":   ts,
					"flag": true,
				},
			},
			plain: map[string]interface{}{
				"list":  []interface{}{1.5, "text", "2024-03-01T10:11:12.345Z", nil},
				"empty": []interface{}{},
				"nested": map[string]interface{}{
					"at":   "2024-03-01T10:11:12.345Z",
					"flag": true,
				},
			},
		},
		{
			description: "scalar",
			value:       int64(7),
			plain:       int64(7),
		},
	}

	n := New()
	for _, testCase := range testCases {
		plain, err := n.Normalize(testCase.value)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.plain, plain, testCase.description)
		actual, err := n.Denormalize(plain)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.value, actual, testCase.description)
	}
}

func TestRoundTrip_Marker(t *testing.T) {
	n := New()
	ts := time.Date(2021, 12, 31, 23, 59, 59, 999000000, time.UTC)

	marked, err := n.Normalize(ts, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"__mark__": "DateModule", "__value__": "2021-12-31T23:59:59.999Z"}, marked)

	actual, err := n.Denormalize(marked, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, ts, actual)

	nested := map[string]interface{}{"items": []interface{}{ts, "2021-01-01"}}
	plain, err := n.Normalize(nested, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"__mark__": "ObjectModule",
		"__value__": map[string]interface{}{
			"items": map[string]interface{}{
				"__mark__": "ArrayModule",
				"__value__": []interface{}{
					map[string]interface{}{"__mark__": "DateModule", "__value__": "2021-12-31T23:59:59.999Z"},
					"2021-01-01",
				},
			},
		},
	}, plain)

	actual, err = n.Denormalize(plain, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"items": []interface{}{ts, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, actual, "unmarked date-like strings are still matched by the date predicate")
}

func TestRoundTrip_CustomMarkerProperties(t *testing.T) {
	n := New()
	ts := time.Date(2020, 2, 29, 12, 0, 0, 1000000, time.UTC)
	opts := []normalizer.Option{
		normalizer.WithMarker(true),
		normalizer.WithMarkProperty("$type"),
		normalizer.WithValueProperty("$payload"),
	}
	marked, err := n.Normalize(ts, opts...)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"$type": "DateModule", "$payload": "2020-02-29T12:00:00.001Z"}, marked)

	actual, err := n.Denormalize(marked, opts...)
	require.NoError(t, err)
	assert.Equal(t, ts, actual)
}

func TestDenormalize_UnknownMark(t *testing.T) {
	n := New()
	input := map[string]interface{}{"__mark__": "UnknownModule", "__value__": "2022-06-01T08:30:00.000Z"}

	var testCases = []struct {
		description string
		policy      normalizer.UnknownMarkPolicy
		expect      interface{}
		expectErr   bool
	}{
		{description: "throw", policy: normalizer.UnknownMarkThrow, expectErr: true},
		{description: "ignore_raw", policy: normalizer.UnknownMarkIgnoreRaw, expect: input},
		{description: "ignore", policy: normalizer.UnknownMarkIgnore, expect: "2022-06-01T08:30:00.000Z"},
		{description: "fallback", policy: normalizer.UnknownMarkFallback, expect: time.Date(2022, 6, 1, 8, 30, 0, 0, time.UTC)},
	}
	for _, testCase := range testCases {
		actual, err := n.Denormalize(input, normalizer.WithMarker(true), normalizer.WithUnknownMark(testCase.policy))
		if testCase.expectErr {
			assert.ErrorIs(t, err, normalizer.ErrUnresolvedMarker, testCase.description)
			assert.Contains(t, err.Error(), `"UnknownModule"`, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestDenormalize_EmptyMarker(t *testing.T) {
	n := New()
	input := map[string]interface{}{"__mark__": "", "__value__": "2022-06-01T08:30:00.000Z"}
	actual, err := n.Denormalize(input, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"__mark__": "", "__value__": time.Date(2022, 6, 1, 8, 30, 0, 0, time.UTC)}, actual,
		"empty marker is treated as absent, the record is denormalized as a plain map")
}

func TestDenormalize_CustomMarker(t *testing.T) {
	n := normalizer.New(NewDateModule(WithMarker("time")), NewArrayModule(WithMarker("list")))
	ts := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	marked, err := n.Normalize([]interface{}{ts}, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"__mark__":  "list",
		"__value__": []interface{}{map[string]interface{}{"__mark__": "time", "__value__": "2019-01-01T00:00:00.000Z"}},
	}, marked)
	actual, err := n.Denormalize(marked, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{ts}, actual)
}
