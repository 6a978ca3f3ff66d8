// Package domain contains the core scenario generation workflow and logic.
package domain

import (
	"context"

	"github.com/pyscaff/pyscaff/internal/domain/scenariogen"
	m "github.com/pyscaff/pyscaff/internal/model"
)

// Synthesizer defines the interface for scenario synthesis.
type Synthesizer interface {
	Synthesize(ctx context.Context, source m.Source, decls []m.Declaration) []m.Scenario
}

// synthesizer handles pure scenario synthesis logic.
type synthesizer struct{}

// NewSynthesizer creates a new Synthesizer instance.
func NewSynthesizer() Synthesizer {
	return &synthesizer{}
}

// Synthesize produces the scenarios for every declaration of one file. Each
// declaration contributes its parameter scenarios first, then one scenario
// per conditional or try statement in body order. Scenario IDs restart at
// every file so runs over different repositories stay comparable.
func (s *synthesizer) Synthesize(ctx context.Context, source m.Source, decls []m.Declaration) []m.Scenario {
	scenarios := make([]m.Scenario, 0)
	scenarioID := 0

	for _, decl := range decls {
		if ctx.Err() != nil {
			return scenarios
		}

		decl = classifyParams(decl)

		scenarios = append(scenarios, scenariogen.GenerateParameterScenarios(source, decl, &scenarioID)...)
		scenarios = append(scenarios, bodyScenarios(source, decl, &scenarioID)...)
	}

	return scenarios
}

// classifyParams resolves the semantic category of every parameter from its
// annotation text.
func classifyParams(decl m.Declaration) m.Declaration {
	params := make([]m.Param, len(decl.Params))

	for i, param := range decl.Params {
		param.Category = scenariogen.InferCategory(param.Annotation)
		params[i] = param
	}

	decl.Params = params

	return decl
}

// bodyScenarios restores the statement order of the declaration body. The
// extracted conditional and try slices are each ordered by line, so a two
// pointer merge interleaves them back into source order.
func bodyScenarios(source m.Source, decl m.Declaration, scenarioID *int) []m.Scenario {
	scenarios := make([]m.Scenario, 0, len(decl.Conditionals)+len(decl.TryBlocks))

	ci, ti := 0, 0
	for ci < len(decl.Conditionals) || ti < len(decl.TryBlocks) {
		takeConditional := ti >= len(decl.TryBlocks) ||
			(ci < len(decl.Conditionals) && decl.Conditionals[ci].Line <= decl.TryBlocks[ti].Line)

		if takeConditional {
			scenarios = append(scenarios, scenariogen.GenerateConditionalScenario(source, decl, decl.Conditionals[ci], scenarioID))
			ci++
		} else {
			scenarios = append(scenarios, scenariogen.GenerateExceptionScenario(source, decl, decl.TryBlocks[ti], scenarioID))
			ti++
		}
	}

	return scenarios
}

// classesWithRequiredInit lists classes whose __init__ declares parameters
// without defaults. Method scenarios construct instances with no arguments,
// so tests for these classes need manual setup before they can run.
func classesWithRequiredInit(decls []m.Declaration) []string {
	seen := make(map[string]bool)
	classes := make([]string, 0)

	for _, decl := range decls {
		if decl.Name != "__init__" || decl.Class == "" || seen[decl.Class] {
			continue
		}

		for _, param := range decl.Params {
			if !param.HasDefault {
				seen[decl.Class] = true
				classes = append(classes, decl.Class)

				break
			}
		}
	}

	return classes
}
