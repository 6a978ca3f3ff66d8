package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PyValue is a Python literal bound into a generated test. Repr must return
// the value exactly as CPython's repr would, since the rendered text is pasted
// into test source verbatim.
type PyValue interface {
	Repr() string
}

// PyNone is the None literal.
type PyNone struct{}

func (PyNone) Repr() string {
	return "None"
}

// PyBool is a boolean literal.
type PyBool bool

func (v PyBool) Repr() string {
	if v {
		return "True"
	}

	return "False"
}

// PyInt is an integer literal.
type PyInt int64

func (v PyInt) Repr() string {
	return strconv.FormatInt(int64(v), 10)
}

// PyFloat is a floating point literal.
type PyFloat float64

func (v PyFloat) Repr() string {
	f := float64(v)

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	// Integral floats keep one decimal place, matching repr(1e10) which
	// prints 10000000000.0 rather than exponent form.
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// PyStr is a string literal.
type PyStr string

func (v PyStr) Repr() string {
	s := string(v)

	// CPython prefers single quotes and switches to double quotes only when
	// the text contains a single quote but no double quote.
	quote := rune('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder

	b.WriteRune(quote)

	for _, r := range s {
		switch {
		case r == quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteRune(quote)

	return b.String()
}

// PyList is a list literal.
type PyList []PyValue

func (v PyList) Repr() string {
	return "[" + joinReprs(v) + "]"
}

// PyTuple is a tuple literal.
type PyTuple []PyValue

func (v PyTuple) Repr() string {
	if len(v) == 1 {
		return "(" + v[0].Repr() + ",)"
	}

	return "(" + joinReprs(v) + ")"
}

// PySet is a set literal. The empty set has no literal form and renders as
// set().
type PySet []PyValue

func (v PySet) Repr() string {
	if len(v) == 0 {
		return "set()"
	}

	return "{" + joinReprs(v) + "}"
}

// PyDictEntry is a single key value pair of a dict literal.
type PyDictEntry struct {
	Key   PyValue
	Value PyValue
}

// PyDict is a dict literal. Entries keep their declared order so rendered
// output is deterministic.
type PyDict []PyDictEntry

func (v PyDict) Repr() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Key.Repr()+": "+e.Value.Repr())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func joinReprs(values []PyValue) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, value.Repr())
	}

	return strings.Join(parts, ", ")
}
