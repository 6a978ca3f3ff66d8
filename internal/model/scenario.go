package model

import "sort"

// ScenarioKind represents the category of a synthesized scenario.
type ScenarioKind string

const (
	// ScenarioParameter represents happy path scenarios calling the target
	// with one representative value bound.
	ScenarioParameter ScenarioKind = "parameter"
	// ScenarioEdgeCase represents boundary value scenarios taken from the
	// edge case catalog.
	ScenarioEdgeCase ScenarioKind = "edge_case"
	// ScenarioConditional represents scenarios probing a conditional branch.
	ScenarioConditional ScenarioKind = "conditional"
	// ScenarioException represents scenarios asserting declared exception
	// handling.
	ScenarioException ScenarioKind = "exception"
)

// ScenarioKinds lists every kind in display order.
var ScenarioKinds = []ScenarioKind{
	ScenarioParameter,
	ScenarioEdgeCase,
	ScenarioConditional,
	ScenarioException,
}

// ParamBinding binds a single parameter to a concrete value.
type ParamBinding struct {
	Param string
	Value PyValue
}

// Scenario is one synthesized test case. Builders produce the structured
// fields; the emitter resolves the final test name and fills Code. A scenario
// is never mutated after emission.
type Scenario struct {
	ID             string
	Kind           ScenarioKind
	SourceFile     Path // relative path of the analyzed file
	FuncName       string
	Class          string // owning class, empty for functions
	Async          bool
	Name           string // base test function name, deduplicated at render time
	Description    string
	Binding        *ParamBinding // parameter and edge case kinds
	Condition      string        // conditional kind
	ExceptionTypes []string      // exception kind
	Imports        []string      // import statements the rendered test needs
	Code           string        // rendered test source, filled by the emitter
}

// ImportSet accumulates the import statements one generation run needs. It is
// created per run and threaded through the pipeline, never shared globally.
type ImportSet map[string]struct{}

// NewImportSet returns an empty import set.
func NewImportSet() ImportSet {
	return make(ImportSet)
}

// Add records import statements, ignoring duplicates.
func (s ImportSet) Add(stmts ...string) {
	for _, stmt := range stmts {
		s[stmt] = struct{}{}
	}
}

// Sorted returns the accumulated statements in lexicographic order.
func (s ImportSet) Sorted() []string {
	stmts := make([]string, 0, len(s))
	for stmt := range s {
		stmts = append(stmts, stmt)
	}

	sort.Strings(stmts)

	return stmts
}
