package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// PythonFileAdapter encapsulates Python-specific parsing so the domain layer
// can focus on scenario rules while delegating grammar details to an
// infrastructure component.
type PythonFileAdapter interface {
	// Parse builds a syntax tree for src and extracts the declarations
	// scenarios are generated for: top level functions and the methods of
	// top level classes. Files with syntax errors fail as a whole.
	Parse(ctx context.Context, filename string, src []byte) ([]m.Declaration, error)
}

// nodeKind is the closed set of syntax node kinds extraction dispatches on.
// Kinds outside this set are skipped without inspection.
type nodeKind string

const (
	kindFunctionDef       nodeKind = "function_definition"
	kindClassDef          nodeKind = "class_definition"
	kindDecorated         nodeKind = "decorated_definition"
	kindBlock             nodeKind = "block"
	kindIf                nodeKind = "if_statement"
	kindTry               nodeKind = "try_statement"
	kindExcept            nodeKind = "except_clause"
	kindTuple             nodeKind = "tuple"
	kindIdentifier        nodeKind = "identifier"
	kindTypedParam        nodeKind = "typed_parameter"
	kindDefaultParam      nodeKind = "default_parameter"
	kindTypedDefaultParam nodeKind = "typed_default_parameter"
	kindAsyncKeyword      nodeKind = "async"
)

func kindOf(node *sitter.Node) nodeKind {
	return nodeKind(node.Type())
}

// LocalPythonFileAdapter provides a concrete PythonFileAdapter backed by the
// tree-sitter Python grammar.
type LocalPythonFileAdapter struct{}

// NewLocalPythonFileAdapter constructs a LocalPythonFileAdapter.
func NewLocalPythonFileAdapter() *LocalPythonFileAdapter {
	return &LocalPythonFileAdapter{}
}

// Parse extracts declarations from a Python source file. A fresh parser is
// created per call; tree-sitter parsers are not safe for concurrent use.
func (a *LocalPythonFileAdapter) Parse(ctx context.Context, filename string, src []byte) ([]m.Declaration, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax errors in %s", filename)
	}

	return extractDeclarations(root, src), nil
}

func extractDeclarations(root *sitter.Node, src []byte) []m.Declaration {
	decls := make([]m.Declaration, 0)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		switch kindOf(child) {
		case kindFunctionDef:
			decls = append(decls, extractFunction(child, src, ""))
		case kindClassDef:
			decls = append(decls, extractMethods(child, src)...)
		case kindDecorated:
			inner := child.ChildByFieldName("definition")
			if inner == nil {
				continue
			}

			switch kindOf(inner) {
			case kindFunctionDef:
				decls = append(decls, extractFunction(inner, src, ""))
			case kindClassDef:
				decls = append(decls, extractMethods(inner, src)...)
			}
		}
	}

	return decls
}

// extractMethods returns one declaration per method of a top level class.
// Nested classes are out of scope.
func extractMethods(classNode *sitter.Node, src []byte) []m.Declaration {
	className := fieldText(classNode, "name", src)

	body := classNode.ChildByFieldName("body")
	if body == nil || className == "" {
		return nil
	}

	methods := make([]m.Declaration, 0)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		switch kindOf(child) {
		case kindFunctionDef:
			methods = append(methods, extractFunction(child, src, className))
		case kindDecorated:
			inner := child.ChildByFieldName("definition")
			if inner != nil && kindOf(inner) == kindFunctionDef {
				methods = append(methods, extractFunction(inner, src, className))
			}
		}
	}

	return methods
}

func extractFunction(node *sitter.Node, src []byte, class string) m.Declaration {
	decl := m.Declaration{
		Name:    fieldText(node, "name", src),
		Class:   class,
		IsAsync: isAsyncDef(node),
		Line:    int(node.StartPoint().Row) + 1,
	}

	decl.Params = extractParams(node.ChildByFieldName("parameters"), src, class != "")

	if body := node.ChildByFieldName("body"); body != nil {
		decl.Conditionals, decl.TryBlocks = extractBody(body, src)
	}

	return decl
}

// isAsyncDef reports whether the definition carries the async keyword. The
// keyword is an anonymous token preceding def, so unnamed children are
// scanned.
func isAsyncDef(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if kindOf(node.Child(i)) == kindAsyncKeyword {
			return true
		}
	}

	return false
}

// extractParams collects positional parameters. Splat parameters and the
// bare positional/keyword separators are not scenario inputs. For methods
// the leading receiver parameter is dropped.
func extractParams(params *sitter.Node, src []byte, isMethod bool) []m.Param {
	if params == nil {
		return nil
	}

	extracted := make([]m.Param, 0, params.NamedChildCount())

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)

		switch kindOf(child) {
		case kindIdentifier:
			extracted = append(extracted, m.Param{Name: nodeText(child, src)})
		case kindTypedParam:
			// The parameter name is the first named child; typed splats are
			// skipped with the other splat forms.
			name := child.NamedChild(0)
			if name == nil || kindOf(name) != kindIdentifier {
				continue
			}

			extracted = append(extracted, m.Param{
				Name:       nodeText(name, src),
				Annotation: fieldText(child, "type", src),
			})
		case kindDefaultParam:
			extracted = append(extracted, m.Param{
				Name:       fieldText(child, "name", src),
				HasDefault: true,
			})
		case kindTypedDefaultParam:
			extracted = append(extracted, m.Param{
				Name:       fieldText(child, "name", src),
				Annotation: fieldText(child, "type", src),
				HasDefault: true,
			})
		}
	}

	if isMethod && len(extracted) > 0 {
		extracted = extracted[1:]
	}

	return extracted
}

// extractBody scans the direct children of a declaration body. Nested
// statements are deliberately not descended into.
func extractBody(body *sitter.Node, src []byte) ([]m.Conditional, []m.TryBlock) {
	var conditionals []m.Conditional

	var tryBlocks []m.TryBlock

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		switch kindOf(child) {
		case kindIf:
			cond := child.ChildByFieldName("condition")
			if cond == nil {
				continue
			}

			conditionals = append(conditionals, m.Conditional{
				Condition: nodeText(cond, src),
				Line:      int(child.StartPoint().Row) + 1,
			})
		case kindTry:
			tryBlocks = append(tryBlocks, extractTryBlock(child, src))
		}
	}

	return conditionals, tryBlocks
}

func extractTryBlock(node *sitter.Node, src []byte) m.TryBlock {
	block := m.TryBlock{Line: int(node.StartPoint().Row) + 1}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		clause := node.NamedChild(i)
		if kindOf(clause) != kindExcept {
			continue
		}

		block.ExceptionTypes = append(block.ExceptionTypes, handlerTypes(clause, src)...)
	}

	return block
}

// handlerTypes returns the exception type names one handler matches. Untyped
// handlers match nothing; tuple specs contribute each member.
func handlerTypes(clause *sitter.Node, src []byte) []string {
	if clause.NamedChildCount() == 0 {
		return nil
	}

	// The named children are the optional type expression, an optional
	// alias, then the handler block.
	spec := clause.NamedChild(0)
	if kindOf(spec) == kindBlock {
		return nil
	}

	if kindOf(spec) == kindTuple {
		names := make([]string, 0, spec.NamedChildCount())
		for i := 0; i < int(spec.NamedChildCount()); i++ {
			names = append(names, nodeText(spec.NamedChild(i), src))
		}

		return names
	}

	return []string{nodeText(spec, src)}
}

func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}

	return node.Content(src)
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	return nodeText(node.ChildByFieldName(field), src)
}
