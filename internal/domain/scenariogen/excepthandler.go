package scenariogen

import (
	"fmt"
	"strings"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// GenerateExceptionScenario produces the scenario for one try statement found
// among the direct children of the declaration body. The scenario asserts the
// no argument call raises one of the types the block's handlers declare.
// Untyped handlers contribute no types. Every try block in a declaration
// shares the same base name; the emitter disambiguates at render time.
func GenerateExceptionScenario(source m.Source, decl m.Declaration, block m.TryBlock, scenarioID *int) m.Scenario {
	*scenarioID++

	return m.Scenario{
		ID:             fmt.Sprintf("EXC_%d", *scenarioID),
		Kind:           m.ScenarioException,
		SourceFile:     shortPath(source),
		FuncName:       decl.Name,
		Class:          decl.Class,
		Async:          decl.IsAsync,
		Name:           fmt.Sprintf("test_%s_exceptions", decl.Name),
		Description:    fmt.Sprintf("Test exception handling for: %s", strings.Join(block.ExceptionTypes, ", ")),
		ExceptionTypes: block.ExceptionTypes,
		Imports:        scenarioImports(source, decl),
	}
}
