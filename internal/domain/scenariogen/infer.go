package scenariogen

import (
	m "github.com/pyscaff/pyscaff/internal/model"
)

// annotationCategories maps exact annotation text to a semantic category.
// Parametrized forms such as List[int] or Optional[str] deliberately stay
// unknown, as does any project defined type.
var annotationCategories = map[string]m.TypeCategory{
	"str":   m.CategoryText,
	"int":   m.CategoryInteger,
	"float": m.CategoryFloat,
	"bool":  m.CategoryBoolean,
	"list":  m.CategoryList,
	"dict":  m.CategoryMapping,
	"set":   m.CategorySet,
	"tuple": m.CategoryTuple,
}

// InferCategory classifies a raw annotation. Absent or unrecognized
// annotations map to unknown; inference never fails.
func InferCategory(annotation string) m.TypeCategory {
	if category, ok := annotationCategories[annotation]; ok {
		return category
	}

	return m.CategoryUnknown
}
