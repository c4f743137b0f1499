package module

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/normalizer"
	"github.com/viant/tagly/format/text"
)

type Address struct {
	City string `json:"city"`
	Zip  string `json:"zip,omitempty"`
}

type Person struct {
	ID        int `json:"id"`
	FirstName string
	Nick      string    `format:"name=nickname,omitempty=true"`
	Secret    string    `json:"-"`
	Hidden    string    `format:"ignore=true"`
	Born      time.Time `json:"born"`
	Home      Address   `json:"home"`
	Tags      []string  `json:"tags"`
	internal  int
}

func newPersonEngine(t *testing.T, opts ...Option) *normalizer.Normalizer {
	person, err := NewStructModule(Person{}, opts...)
	require.NoError(t, err)
	address, err := NewStructModule(Address{})
	require.NoError(t, err)
	return New(normalizer.WithModules(0, person, address))
}

func TestNewStructModule(t *testing.T) {
	var testCases = []struct {
		description string
		prototype   interface{}
		opts        []Option
		expectErr   bool
		expectMark  string
	}{
		{description: "struct", prototype: Address{}, expectMark: "Address"},
		{description: "pointer", prototype: &Address{}, expectMark: "Address"},
		{description: "custom marker", prototype: Address{}, opts: []Option{WithMarker("addr")}, expectMark: "addr"},
		{description: "nil", prototype: nil, expectErr: true},
		{description: "non struct", prototype: 42, expectErr: true},
		{description: "invalid tag", prototype: struct {
			A int `format:"bogus=1"`
		}{}, expectErr: true},
	}
	for _, testCase := range testCases {
		module, err := NewStructModule(testCase.prototype, testCase.opts...)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectMark, module.Marker(), testCase.description)
		assert.Equal(t, "Address", module.Type().Name(), testCase.description)
	}
}

func TestStructModule_Normalize(t *testing.T) {
	born := time.Date(1990, 5, 17, 10, 30, 0, 0, time.UTC)
	person := Person{ID: 7, FirstName: "Ann", Secret: "s", Hidden: "h", Born: born, Home: Address{City: "Paris"}, Tags: []string{"a"}, internal: 3}

	var testCases = []struct {
		description string
		opts        []Option
		value       interface{}
		expect      interface{}
	}{
		{
			description: "tag names",
			value:       person,
			expect: map[string]interface{}{
				"id":        7,
				"FirstName": "Ann",
				"born":      "1990-05-17T10:30:00.000Z",
				"home":      map[string]interface{}{"city": "Paris"},
				"tags":      []interface{}{"a"},
			},
		},
		{
			description: "pointer",
			value:       &Address{City: "Rome", Zip: "00100"},
			expect:      map[string]interface{}{"city": "Rome", "zip": "00100"},
		},
		{
			description: "case format",
			opts:        []Option{WithCaseFormat(text.CaseFormatLowerCamel)},
			value:       Person{FirstName: "Bob", Nick: "b"},
			expect: map[string]interface{}{
				"id":        0,
				"firstName": "Bob",
				"nickname":  "b",
				"born":      "0001-01-01T00:00:00.000Z",
				"home":      map[string]interface{}{"city": ""},
				"tags":      nil,
			},
		},
	}
	for _, testCase := range testCases {
		n := newPersonEngine(t, testCase.opts...)
		actual, err := n.Normalize(testCase.value)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestStructModule_RoundTrip(t *testing.T) {
	n := newPersonEngine(t)
	born := time.Date(1990, 5, 17, 10, 30, 0, 0, time.UTC)
	person := Person{ID: 7, FirstName: "Ann", Nick: "annie", Secret: "s", Born: born, Home: Address{City: "Paris"}, Tags: []string{"a", "b"}}

	normalized, err := n.Normalize(person, normalizer.WithMarker(true))
	require.NoError(t, err)
	record, ok := normalized.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Person", record[normalizer.DefaultMarkProperty])

	actual, err := n.Denormalize(normalized, normalizer.WithMarker(true))
	require.NoError(t, err)
	expect := person
	expect.Secret = ""
	assert.Equal(t, expect, actual)

	people := []interface{}{person, &Address{City: "Oslo"}}
	normalized, err = n.Normalize(people, normalizer.WithMarker(true))
	require.NoError(t, err)
	actual, err = n.Denormalize(normalized, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{expect, Address{City: "Oslo"}}, actual, "marker addresses value type module")
}

func TestStructModule_Detection(t *testing.T) {
	address, err := NewStructModule(&Address{}, WithStructDetection(true))
	require.NoError(t, err)
	n := New(normalizer.WithModules(0, address))

	var testCases = []struct {
		description string
		value       interface{}
		expect      interface{}
	}{
		{description: "known keys", value: map[string]interface{}{"city": "Paris", "zip": "75001"}, expect: &Address{City: "Paris", Zip: "75001"}},
		{description: "subset of keys", value: map[string]interface{}{"city": "Paris"}, expect: &Address{City: "Paris"}},
		{description: "unknown key", value: map[string]interface{}{"city": "Paris", "street": "Main"}, expect: map[string]interface{}{"city": "Paris", "street": "Main"}},
		{description: "empty map", value: map[string]interface{}{}, expect: map[string]interface{}{}},
		{description: "nested", value: []interface{}{map[string]interface{}{"city": "Lyon"}}, expect: []interface{}{&Address{City: "Lyon"}}},
	}
	for _, testCase := range testCases {
		actual, err := n.Denormalize(testCase.value)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	plain, err := NewStructModule(Address{})
	require.NoError(t, err)
	assert.False(t, plain.SupportsDenormalization(map[string]interface{}{"city": "Paris"}, n.Context(), n), "detection disabled by default")
}

func TestStructModule_DenormalizeError(t *testing.T) {
	n := newPersonEngine(t)
	module, err := NewStructModule(Person{})
	require.NoError(t, err)

	_, err = module.Denormalize("text", n.Context(), n)
	assert.Error(t, err)

	_, err = module.Denormalize(map[string]interface{}{"id": "abc"}, n.Context(), n)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Person")
	}

	_, err = n.Denormalize(map[string]interface{}{normalizer.DefaultMarkProperty: "Person", normalizer.DefaultValueProperty: []interface{}{1}}, normalizer.WithMarker(true))
	assert.Error(t, err)
}

type OrderLine struct {
	SKU  string `json:"sku"`
	Qty  int
	Note string `json:"-"`
}

type Order struct {
	Name  string      `json:"name"`
	Line  OrderLine   `json:"line"`
	Lines []OrderLine `json:"lines"`
	Ref   *OrderLine  `json:"ref"`
}

func TestStructModule_NestedWithoutModule(t *testing.T) {
	order, err := NewStructModule(Order{})
	require.NoError(t, err)
	n := New(normalizer.WithModules(0, order))

	actual, err := n.Denormalize(map[string]interface{}{
		normalizer.DefaultMarkProperty:  "Order",
		normalizer.DefaultValueProperty: map[string]interface{}{"name": "x", "line": map[string]interface{}{"sku": "apple", "Qty": 7.0, "Note": "n"}},
	}, normalizer.WithMarker(true))
	require.NoError(t, err)
	assert.Equal(t, Order{Name: "x", Line: OrderLine{SKU: "apple", Qty: 7}}, actual, "nested fields use their own json names")

	expect := Order{
		Name:  "x",
		Line:  OrderLine{SKU: "apple", Qty: 2},
		Lines: []OrderLine{{SKU: "pear", Qty: 3}},
		Ref:   &OrderLine{SKU: "plum", Qty: 4},
	}
	var testCases = []struct {
		description string
		marker      bool
	}{
		{description: "marker", marker: true},
		{description: "no marker", marker: false},
	}
	for _, testCase := range testCases {
		normalized, err := n.Normalize(expect, normalizer.WithMarker(testCase.marker))
		require.NoError(t, err, testCase.description)
		data, err := json.Marshal(normalized)
		require.NoError(t, err, testCase.description)
		var plain interface{}
		require.NoError(t, json.Unmarshal(data, &plain), testCase.description)
		actual, err := n.Denormalize(plain, normalizer.WithMarker(testCase.marker))
		require.NoError(t, err, testCase.description)
		if testCase.marker {
			assert.Equal(t, expect, actual, testCase.description)
			continue
		}
		assert.IsType(t, map[string]interface{}{}, actual, testCase.description)
	}
}
