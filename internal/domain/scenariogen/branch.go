package scenariogen

import (
	"fmt"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// GenerateConditionalScenario produces the scenario for one conditional found
// among the direct children of the declaration body. The scenario calls the
// target with no arguments and asserts it does not raise. Identical condition
// texts yield identical base names; the emitter disambiguates at render time.
func GenerateConditionalScenario(source m.Source, decl m.Declaration, cond m.Conditional, scenarioID *int) m.Scenario {
	*scenarioID++

	return m.Scenario{
		ID:          fmt.Sprintf("COND_%d", *scenarioID),
		Kind:        m.ScenarioConditional,
		SourceFile:  shortPath(source),
		FuncName:    decl.Name,
		Class:       decl.Class,
		Async:       decl.IsAsync,
		Name:        fmt.Sprintf("test_%s_condition_%s", decl.Name, SanitizeCondition(cond.Condition)),
		Description: fmt.Sprintf("Test conditional branch: %s", cond.Condition),
		Condition:   cond.Condition,
		Imports:     scenarioImports(source, decl),
	}
}
