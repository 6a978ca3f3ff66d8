package scenariogen

import (
	"fmt"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// GenerateParameterScenarios produces the happy path and edge case scenarios
// for every parameter of a declaration. Parameters are processed in
// declaration order; each yields one happy path scenario followed by the
// category's full edge case list in catalog order. Parameters of unknown
// category bind None and contribute no edge cases.
func GenerateParameterScenarios(source m.Source, decl m.Declaration, scenarioID *int) []m.Scenario {
	scenarios := make([]m.Scenario, 0, len(decl.Params))

	for _, param := range decl.Params {
		*scenarioID++
		scenarios = append(scenarios, m.Scenario{
			ID:          fmt.Sprintf("PARAM_%d", *scenarioID),
			Kind:        m.ScenarioParameter,
			SourceFile:  shortPath(source),
			FuncName:    decl.Name,
			Class:       decl.Class,
			Async:       decl.IsAsync,
			Name:        fmt.Sprintf("test_%s_with_valid_%s", decl.Name, param.Name),
			Description: fmt.Sprintf("Test %s with valid %s", decl.Name, param.Name),
			Binding:     &m.ParamBinding{Param: param.Name, Value: SampleValueFor(param.Category)},
			Imports:     scenarioImports(source, decl),
		})

		for _, edge := range EdgeCasesFor(param.Category) {
			*scenarioID++
			scenarios = append(scenarios, m.Scenario{
				ID:          fmt.Sprintf("EDGE_%d", *scenarioID),
				Kind:        m.ScenarioEdgeCase,
				SourceFile:  shortPath(source),
				FuncName:    decl.Name,
				Class:       decl.Class,
				Async:       decl.IsAsync,
				Name:        fmt.Sprintf("test_%s_with_%s_%s", decl.Name, edge.Label, param.Name),
				Description: fmt.Sprintf("Test %s with %s %s", decl.Name, edge.Label, param.Name),
				Binding:     &m.ParamBinding{Param: param.Name, Value: edge.Value},
				Imports:     scenarioImports(source, decl),
			})
		}
	}

	return scenarios
}
