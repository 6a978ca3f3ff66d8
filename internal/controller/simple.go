package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "github.com/pyscaff/pyscaff/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEstimation prints the per file scenario counts or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, estimations []FileEstimation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(estimations))

	return nil
}

func renderEstimationTable(estimations []FileEstimation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(scenarioTableHeader("Tests"))
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(scenarioTableAlignment())

	totals := make(map[m.ScenarioKind]int)
	totalDecls := 0
	totalScenarios := 0
	tested := 0

	for _, estimation := range estimations {
		hasTest := "no"
		if estimation.HasTest {
			hasTest = "yes"
			tested++
		}

		table.Append(scenarioTableRow(string(estimation.Path), estimation.Declarations, estimation.Counts, hasTest))

		totalDecls += estimation.Declarations
		totalScenarios += estimation.Total()

		for kind, count := range estimation.Counts {
			totals[kind] += count
		}
	}

	table.SetFooter(scenarioTableFooter(len(estimations), totalDecls, totals, totalScenarios, strconv.Itoa(tested)))
	table.Render()

	return tableBuffer.String()
}

// DisplayDiscoveryInfo shows the repository being analyzed.
func (s *SimpleUI) DisplayDiscoveryInfo(ctx context.Context, root m.Path, files int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Analyzing repository: %s\n", root)
	s.printf("Found %d Python file(s)\n", files)
}

// DisplayFileWarning reports a file that could not be analyzed.
func (s *SimpleUI) DisplayFileWarning(ctx context.Context, path m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("Warning: Could not analyze %s: %v\n", path, err)
}

// DisplayScenarioWarning reports scenarios dropped by the formatter gate.
func (s *SimpleUI) DisplayScenarioWarning(ctx context.Context, path m.Path, skipped int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Warning: skipped %d scenario(s) in %s, see log for details\n", skipped, path)
}

// DisplaySetupWarning reports a class whose constructor needs arguments.
func (s *SimpleUI) DisplaySetupWarning(ctx context.Context, class string, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Warning: %s (%s) requires constructor arguments, generated setups need manual edits\n", class, path)
}

// DisplayRunSummary prints the outcome of a generation run.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, summary m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(summary))
	s.printf("\nFound %d files with test scenarios\n", len(summary.Files))
	s.printf("Generated tests written to: %s\n", summary.Artifact)

	if skipped := summary.TotalSkipped(); skipped > 0 {
		s.printf("Skipped %d invalid scenario(s), see log for details\n", skipped)
	}

	return nil
}

func renderSummaryTable(summary m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(scenarioTableHeader("Skipped"))
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(scenarioTableAlignment())

	totalDecls := 0

	for _, file := range summary.Files {
		table.Append(scenarioTableRow(string(file.File), file.Declarations, file.Counts, strconv.Itoa(file.Skipped)))

		totalDecls += file.Declarations
	}

	table.SetFooter(scenarioTableFooter(
		len(summary.Files),
		totalDecls,
		summary.CountsByKind(),
		summary.TotalScenarios(),
		strconv.Itoa(summary.TotalSkipped()),
	))
	table.Render()

	return tableBuffer.String()
}

// scenarioTableHeader builds the shared column layout of the estimation and
// summary tables. The last column differs between the two.
func scenarioTableHeader(lastColumn string) []string {
	header := []string{"Path", "Decls"}

	for _, kind := range m.ScenarioKinds {
		header = append(header, string(kind))
	}

	return append(header, "Total", lastColumn)
}

func scenarioTableAlignment() []int {
	alignment := []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER}

	for range m.ScenarioKinds {
		alignment = append(alignment, tablewriter.ALIGN_CENTER)
	}

	return append(alignment, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER)
}

func scenarioTableRow(path string, decls int, counts map[m.ScenarioKind]int, lastColumn string) []string {
	row := []string{path, strconv.Itoa(decls)}

	total := 0

	for _, kind := range m.ScenarioKinds {
		row = append(row, strconv.Itoa(counts[kind]))
		total += counts[kind]
	}

	return append(row, strconv.Itoa(total), lastColumn)
}

func scenarioTableFooter(files int, decls int, totals map[m.ScenarioKind]int, scenarios int, lastColumn string) []string {
	footer := []string{fmt.Sprintf("Total Files %d", files), strconv.Itoa(decls)}

	for _, kind := range m.ScenarioKinds {
		footer = append(footer, strconv.Itoa(totals[kind]))
	}

	return append(footer, strconv.Itoa(scenarios), lastColumn)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
