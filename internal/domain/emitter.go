package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pyscaff/pyscaff/internal/adapter"
	m "github.com/pyscaff/pyscaff/internal/model"
)

// Emitter defines the interface for rendering scenarios into pytest source.
type Emitter interface {
	EmitFile(ctx context.Context, file m.Path, scenarios []m.Scenario, imports m.ImportSet) (m.FileBlock, error)
}

// emitter renders scenarios through the formatter gate.
type emitter struct {
	adapter.FormatterAdapter
}

// NewEmitter creates a new Emitter instance.
func NewEmitter(formatter adapter.FormatterAdapter) Emitter {
	return &emitter{FormatterAdapter: formatter}
}

// EmitFile renders the scenarios of one file in generation order. Test names
// are deduplicated within the file, every scenario registers its imports and
// scenarios whose rendered code fails validation are skipped and counted
// instead of aborting the file.
func (e *emitter) EmitFile(ctx context.Context, file m.Path, scenarios []m.Scenario, imports m.ImportSet) (m.FileBlock, error) {
	block := m.FileBlock{
		File:   file,
		Report: m.FileReport{File: file, Counts: make(map[m.ScenarioKind]int)},
	}

	names := make(map[string]int, len(scenarios))

	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return m.FileBlock{}, err
		}

		for _, imp := range scenario.Imports {
			imports.Add(imp)
		}

		name := uniqueName(names, scenario.Name)

		code, err := e.renderFormatted(ctx, scenario, name)
		if err != nil {
			slog.Error("Failed to render scenario", "id", scenario.ID, "test", name, "error", err)
			block.Report.Skipped++

			continue
		}

		block.Scenarios = append(block.Scenarios, m.RenderedScenario{
			ID:          scenario.ID,
			Kind:        scenario.Kind,
			Name:        name,
			Description: scenario.Description,
			Code:        code,
		})
		block.Report.Counts[scenario.Kind]++
	}

	return block, nil
}

func (e *emitter) renderFormatted(ctx context.Context, scenario m.Scenario, name string) (string, error) {
	snippet, err := renderScenario(scenario, name)
	if err != nil {
		return "", err
	}

	return e.Format(ctx, snippet)
}

// uniqueName resolves test name collisions within one file. The first
// occurrence keeps the base name, later ones get an ordinal suffix.
func uniqueName(names map[string]int, base string) string {
	names[base]++
	if names[base] == 1 {
		return base
	}

	return fmt.Sprintf("%s_%d", base, names[base])
}

// renderScenario builds the unformatted source for one scenario. Parameter
// and edge case tests call the target with a single keyword argument and
// assert a non None result. Conditional tests guard the call and report
// unexpected errors through pytest.fail. Exception tests expect the call to
// raise one of the handled types. Methods are invoked on a freshly
// constructed instance; async targets are awaited in call tests.
func renderScenario(scenario m.Scenario, name string) (string, error) {
	setup := ""
	call := scenario.FuncName

	if scenario.Class != "" {
		setup = fmt.Sprintf("    obj = %s()\n", scenario.Class)
		call = "obj." + scenario.FuncName
	}

	def := "def"
	await := ""

	if scenario.Async {
		def = "async def"
		await = "await "
	}

	switch scenario.Kind {
	case m.ScenarioParameter, m.ScenarioEdgeCase:
		if scenario.Binding == nil {
			return "", fmt.Errorf("scenario %s has no parameter binding", scenario.ID)
		}

		return fmt.Sprintf("\n%s %s():\n%s    result = %s%s(%s=%s)\n    assert result is not None\n",
			def, name, setup, await, call, scenario.Binding.Param, scenario.Binding.Value.Repr()), nil
	case m.ScenarioConditional:
		return fmt.Sprintf("\n%s %s():\n%s    # Test the condition: %s\n    try:\n        %s()\n    except Exception as e:\n        pytest.fail(f\"Unexpected error: {e}\")\n",
			def, name, setup, scenario.Condition, call), nil
	case m.ScenarioException:
		return fmt.Sprintf("\n%s %s():\n%s    with pytest.raises((%s)):\n        %s()\n",
			def, name, setup, strings.Join(scenario.ExceptionTypes, ", "), call), nil
	default:
		return "", fmt.Errorf("unsupported scenario kind: %s", scenario.Kind)
	}
}
