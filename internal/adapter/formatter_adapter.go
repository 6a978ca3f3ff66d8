package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// FormatterAdapter canonicalizes rendered test snippets before they reach the
// artifact. Implementations must reject syntactically invalid input; a
// rejected snippet is dropped from the output by the caller.
type FormatterAdapter interface {
	Format(ctx context.Context, snippet string) (string, error)
}

// LocalFormatterAdapter validates snippets against the tree-sitter Python
// grammar and normalizes their whitespace.
type LocalFormatterAdapter struct{}

// NewLocalFormatterAdapter constructs a LocalFormatterAdapter.
func NewLocalFormatterAdapter() *LocalFormatterAdapter {
	return &LocalFormatterAdapter{}
}

// Format returns the canonical form of a snippet: no leading or trailing
// blank lines, no trailing whitespace on any line, exactly one trailing
// newline. Invalid Python fails with an error and no output.
func (a *LocalFormatterAdapter) Format(ctx context.Context, snippet string) (string, error) {
	if err := validateSnippet(ctx, snippet); err != nil {
		return "", err
	}

	formatted := normalizeSnippet(snippet)

	if formatted != snippet && slog.Default().Enabled(ctx, slog.LevelDebug) {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(snippet),
			B:        difflib.SplitLines(formatted),
			FromFile: "rendered",
			ToFile:   "formatted",
			Context:  3,
		})
		if err == nil {
			slog.Debug("normalized snippet", "diff", diff)
		}
	}

	return formatted, nil
}

func validateSnippet(ctx context.Context, snippet string) error {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(snippet))
	if err != nil {
		return fmt.Errorf("failed to parse snippet: %w", err)
	}

	defer tree.Close()

	if tree.RootNode().HasError() {
		return fmt.Errorf("invalid python snippet")
	}

	return nil
}

func normalizeSnippet(snippet string) string {
	lines := strings.Split(snippet, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}

	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}

	if start == end {
		return ""
	}

	return strings.Join(lines[start:end], "\n") + "\n"
}
