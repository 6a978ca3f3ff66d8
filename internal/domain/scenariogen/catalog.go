package scenariogen

import (
	"math"
	"strings"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// EdgeCase pairs a descriptive label with the boundary value it exercises.
type EdgeCase struct {
	Label string
	Value m.PyValue
}

// largeListSize is the element count of the "large" list edge case.
const largeListSize = 100

// edgeCatalog maps each category to its fixed boundary values. Order is part
// of the contract: edge scenarios are emitted in table order, so reordering
// entries changes generated output.
var edgeCatalog = map[m.TypeCategory][]EdgeCase{
	m.CategoryText: {
		{Label: "empty", Value: m.PyStr("")},
		{Label: "very_long", Value: m.PyStr(strings.Repeat("a", 1000))},
		{Label: "special_chars", Value: m.PyStr("!@#$%^&*()")},
		{Label: "numeric", Value: m.PyStr("12345")},
		{Label: "whitespace", Value: m.PyStr("   ")},
	},
	m.CategoryInteger: {
		{Label: "zero", Value: m.PyInt(0)},
		{Label: "negative", Value: m.PyInt(-1)},
		{Label: "large", Value: m.PyInt(1000000)},
		{Label: "min_int", Value: m.PyInt(-2147483648)},
		{Label: "max_int", Value: m.PyInt(2147483647)},
	},
	m.CategoryFloat: {
		{Label: "zero", Value: m.PyFloat(0.0)},
		{Label: "negative", Value: m.PyFloat(-1.0)},
		{Label: "very_small", Value: m.PyFloat(1e-10)},
		{Label: "very_large", Value: m.PyFloat(1e10)},
		{Label: "infinity", Value: m.PyFloat(math.Inf(1))},
	},
	m.CategoryList: {
		{Label: "empty", Value: m.PyList{}},
		{Label: "single", Value: m.PyList{m.PyInt(1)}},
		{Label: "large", Value: rangeList(largeListSize)},
		{Label: "nested", Value: m.PyList{
			m.PyList{m.PyInt(1), m.PyInt(2)},
			m.PyList{m.PyInt(3), m.PyInt(4)},
		}},
	},
	m.CategoryMapping: {
		{Label: "empty", Value: m.PyDict{}},
		{Label: "single", Value: m.PyDict{
			{Key: m.PyStr("key"), Value: m.PyStr("value")},
		}},
		{Label: "nested", Value: m.PyDict{
			{Key: m.PyStr("outer"), Value: m.PyDict{
				{Key: m.PyStr("inner"), Value: m.PyStr("value")},
			}},
		}},
	},
	m.CategorySet: {
		{Label: "empty", Value: m.PySet{}},
		{Label: "single", Value: m.PySet{m.PyInt(1)}},
		{Label: "multiple", Value: m.PySet{m.PyInt(1), m.PyInt(2), m.PyInt(3)}},
	},
	m.CategoryBoolean: {
		{Label: "true", Value: m.PyBool(true)},
		{Label: "false", Value: m.PyBool(false)},
	},
}

// sampleValues holds the representative happy path value per category.
var sampleValues = map[m.TypeCategory]m.PyValue{
	m.CategoryText:    m.PyStr("sample_string"),
	m.CategoryInteger: m.PyInt(42),
	m.CategoryFloat:   m.PyFloat(3.14),
	m.CategoryBoolean: m.PyBool(true),
	m.CategoryList:    m.PyList{m.PyInt(1), m.PyInt(2), m.PyInt(3)},
	m.CategoryMapping: m.PyDict{{Key: m.PyStr("key"), Value: m.PyStr("value")}},
	m.CategorySet:     m.PySet{m.PyInt(1), m.PyInt(2), m.PyInt(3)},
	m.CategoryTuple:   m.PyTuple{m.PyInt(1), m.PyInt(2), m.PyInt(3)},
}

// EdgeCasesFor returns the fixed edge case list for a category. Tuple and
// unknown have no boundary values; boolean is exhausted by its two literals.
func EdgeCasesFor(category m.TypeCategory) []EdgeCase {
	return edgeCatalog[category]
}

// SampleValueFor returns the representative value for a category. Categories
// without a defined sample, unknown included, bind None.
func SampleValueFor(category m.TypeCategory) m.PyValue {
	if value, ok := sampleValues[category]; ok {
		return value
	}

	return m.PyNone{}
}

func rangeList(n int) m.PyList {
	list := make(m.PyList, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, m.PyInt(int64(i)))
	}

	return list
}
