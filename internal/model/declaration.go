// Package model defines the data structures for scenario generation.
package model

// TypeCategory classifies a parameter annotation into one of the semantic
// groups covered by the edge case catalog.
type TypeCategory string

const (
	// CategoryText represents str annotations.
	CategoryText TypeCategory = "text"
	// CategoryInteger represents int annotations.
	CategoryInteger TypeCategory = "integer"
	// CategoryFloat represents float annotations.
	CategoryFloat TypeCategory = "floating-point"
	// CategoryBoolean represents bool annotations.
	CategoryBoolean TypeCategory = "boolean"
	// CategoryList represents list annotations.
	CategoryList TypeCategory = "list"
	// CategoryMapping represents dict annotations.
	CategoryMapping TypeCategory = "mapping"
	// CategorySet represents set annotations.
	CategorySet TypeCategory = "set"
	// CategoryTuple represents tuple annotations.
	CategoryTuple TypeCategory = "tuple"
	// CategoryUnknown represents absent, parametrized or unrecognized
	// annotations. Unknown parameters bind None and have no edge cases.
	CategoryUnknown TypeCategory = "unknown"
)

// Param is a positional parameter of a declaration. For methods the receiver
// parameter is already dropped during extraction.
type Param struct {
	Name       string
	Annotation string // raw annotation text, empty when absent
	Category   TypeCategory
	HasDefault bool
}

// Conditional is an if statement found among the direct children of a
// declaration body. Nested conditionals are out of scope.
type Conditional struct {
	Condition string // condition source text
	Line      int
}

// TryBlock is a try statement found among the direct children of a
// declaration body.
type TryBlock struct {
	ExceptionTypes []string // handler type names in declaration order
	Line           int
}

// Declaration is a callable extracted from a module: a top level function or
// a method of a top level class.
type Declaration struct {
	Name         string
	Class        string // owning class name, empty for functions
	IsAsync      bool
	Params       []Param
	Conditionals []Conditional
	TryBlocks    []TryBlock
	Line         int
}

// IsMethod reports whether the declaration belongs to a class.
func (d Declaration) IsMethod() bool {
	return d.Class != ""
}

// QualifiedName returns Class.Name for methods and Name for functions.
func (d Declaration) QualifiedName() string {
	if d.IsMethod() {
		return d.Class + "." + d.Name
	}

	return d.Name
}
