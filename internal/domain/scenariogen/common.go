package scenariogen

import (
	"fmt"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// scenarioImports returns the import statements every scenario of a
// declaration needs: pytest, the module import for the called symbol and
// asyncio for async targets. Methods import the owning class, never the
// method itself.
func scenarioImports(source m.Source, decl m.Declaration) []string {
	target := decl.Name
	if decl.IsMethod() {
		target = decl.Class
	}

	imports := []string{
		"import pytest",
		fmt.Sprintf("from %s import %s", source.Module, target),
	}

	if decl.IsAsync {
		imports = append(imports, "import asyncio")
	}

	return imports
}

func shortPath(source m.Source) m.Path {
	if source.Origin == nil {
		return ""
	}

	return source.Origin.ShortPath
}
