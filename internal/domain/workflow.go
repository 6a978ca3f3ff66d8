package domain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pyscaff/pyscaff/internal/adapter"
	"github.com/pyscaff/pyscaff/internal/controller"
	m "github.com/pyscaff/pyscaff/internal/model"
	"github.com/pyscaff/pyscaff/pkg"
)

// GenerateArgs contains the arguments for a generation run.
type GenerateArgs struct {
	Root    m.Path
	Output  m.Path
	Reports m.Path
	Exclude []string
	Verbose bool
}

// EstimateArgs contains the arguments for scenario estimation.
type EstimateArgs struct {
	Root    m.Path
	Exclude []string
	Threads int
}

// ViewArgs contains the arguments for viewing saved run summaries.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the interface for the scenario generation workflows.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	adapter.PythonFileAdapter
	controller.UI
	Synthesizer
	Emitter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	pythonAdapter adapter.PythonFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	synthesizer Synthesizer,
	emitter Emitter,
) Workflow {
	return &workflow{
		ReportStore:       reportStore,
		SourceFSAdapter:   fsAdapter,
		PythonFileAdapter: pythonAdapter,
		UI:                ui,
		Synthesizer:       synthesizer,
		Emitter:           emitter,
	}
}

// Generate runs the full scaffold pipeline: discover Python sources, parse
// and synthesize scenarios per file, render them through the formatter gate
// and assemble the aggregated artifact. Files that fail analysis are skipped
// with a warning; the run fails only on filesystem or artifact errors.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	if _, err := w.FileInfo(args.Root); err != nil {
		return fmt.Errorf("root path error: %w", err)
	}

	if err := w.Start(ctx, controller.WithGenerateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	sources, err := w.discoverSources(args.Root, args.Exclude)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}

	w.DisplayDiscoveryInfo(ctx, args.Root, len(sources))

	spillDir, err := w.CreateTempDir("pyscaff-*")
	if err != nil {
		return fmt.Errorf("create spill dir: %w", err)
	}

	defer func() {
		if err := w.RemoveAll(spillDir); err != nil {
			slog.Error("Failed to remove spill dir", "path", spillDir, "error", err)
		}
	}()

	spill, err := pkg.NewFileSpill[m.FileBlock](string(spillDir))
	if err != nil {
		return fmt.Errorf("create spill: %w", err)
	}

	defer func() {
		_ = spill.Close()
	}()

	imports := m.NewImportSet()
	reports := make([]m.FileReport, 0, len(sources))

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		block, ok := w.processSource(ctx, source, imports)
		if !ok {
			continue
		}

		if err := spill.Append(block); err != nil {
			return fmt.Errorf("spill block for %s: %w", block.File, err)
		}

		reports = append(reports, block.Report)
	}

	if err := w.writeArtifact(args.Output, args.Verbose, imports, spill); err != nil {
		return err
	}

	now := time.Now().UTC()
	summary := m.RunSummary{
		ID:        now.Format("20060102-150405"),
		Root:      args.Root,
		Artifact:  args.Output,
		CreatedAt: now,
		Files:     reports,
	}

	if args.Reports != "" {
		if err := w.SaveSummary(args.Reports, summary); err != nil {
			return fmt.Errorf("save summary: %w", err)
		}
	}

	if err := w.DisplayRunSummary(ctx, summary); err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

// processSource analyzes one file end to end. Analysis failures are warnings:
// the file is reported and the run continues with the remaining sources.
func (w *workflow) processSource(ctx context.Context, source m.Source, imports m.ImportSet) (m.FileBlock, bool) {
	slog.Debug("Processing source", "path", source.Origin.FullPath)

	content, err := w.ReadFile(source.Origin.FullPath)
	if err != nil {
		w.warnFile(ctx, source, err)
		return m.FileBlock{}, false
	}

	decls, err := w.Parse(ctx, string(source.Origin.FullPath), content)
	if err != nil {
		w.warnFile(ctx, source, err)
		return m.FileBlock{}, false
	}

	for _, class := range classesWithRequiredInit(decls) {
		slog.Warn("Constructor requires arguments", "class", class, "path", source.Origin.ShortPath)
		w.DisplaySetupWarning(ctx, class, source.Origin.ShortPath)
	}

	scenarios := w.Synthesize(ctx, source, decls)

	block, err := w.EmitFile(ctx, source.Origin.ShortPath, scenarios, imports)
	if err != nil {
		w.warnFile(ctx, source, err)
		return m.FileBlock{}, false
	}

	block.Report.Hash = source.Origin.Hash
	block.Report.Declarations = len(decls)

	if block.Report.Skipped > 0 {
		w.DisplayScenarioWarning(ctx, source.Origin.ShortPath, block.Report.Skipped)
	}

	return block, true
}

func (w *workflow) warnFile(ctx context.Context, source m.Source, err error) {
	slog.Error("Failed to analyze source", "path", source.Origin.FullPath, "error", err)
	w.DisplayFileWarning(ctx, source.Origin.ShortPath, err)
}

// writeArtifact assembles the aggregated test file: the sorted import
// preamble, a blank separator, then the per file blocks in discovery order.
// Blocks are streamed from the spill so the full artifact is never held in
// memory.
func (w *workflow) writeArtifact(output m.Path, verbose bool, imports m.ImportSet, spill pkg.FileSpill[m.FileBlock]) error {
	var preamble bytes.Buffer

	for _, statement := range imports.Sorted() {
		preamble.WriteString(statement)
		preamble.WriteByte('\n')
	}

	preamble.WriteString("\n\n")

	if err := w.WriteFile(output, preamble.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	return spill.Range(func(_ uint64, block m.FileBlock) error {
		var section bytes.Buffer

		fmt.Fprintf(&section, "# Tests for %s\n", block.File)

		for _, scenario := range block.Scenarios {
			if verbose {
				section.WriteString("# " + scenario.Description + "\n")
			}

			section.WriteString(scenario.Code)
			section.WriteByte('\n')
		}

		if err := w.AppendFile(output, section.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		return nil
	})
}

// Estimate counts the scenarios each file under root would produce and
// displays them without writing anything. Files are analyzed concurrently.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if _, err := w.FileInfo(args.Root); err != nil {
		return fmt.Errorf("root path error: %w", err)
	}

	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	estimations, err := w.collectEstimations(ctx, args)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to estimate scenarios", "error", err)

		return fmt.Errorf("estimate scenarios: %w", err)
	}

	if err := w.DisplayEstimation(ctx, estimations, nil); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display estimation", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) collectEstimations(ctx context.Context, args EstimateArgs) ([]controller.FileEstimation, error) {
	sources, err := w.discoverSources(args.Root, args.Exclude)
	if err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	var mu sync.Mutex

	estimations := make([]controller.FileEstimation, 0, len(sources))

	for _, source := range sources {
		source := source
		group.Go(func() error {
			estimation, ok := w.estimateSource(groupCtx, source)
			if !ok {
				return groupCtx.Err()
			}

			mu.Lock()
			estimations = append(estimations, estimation)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(estimations, func(i, j int) bool {
		return estimations[i].Path < estimations[j].Path
	})

	return estimations, nil
}

// estimateSource analyzes one file for the estimation table. Analysis
// failures warn and drop the file rather than aborting the whole listing.
func (w *workflow) estimateSource(ctx context.Context, source m.Source) (controller.FileEstimation, bool) {
	if ctx.Err() != nil {
		return controller.FileEstimation{}, false
	}

	content, err := w.ReadFile(source.Origin.FullPath)
	if err != nil {
		w.warnFile(ctx, source, err)
		return controller.FileEstimation{}, false
	}

	decls, err := w.Parse(ctx, string(source.Origin.FullPath), content)
	if err != nil {
		w.warnFile(ctx, source, err)
		return controller.FileEstimation{}, false
	}

	scenarios := w.Synthesize(ctx, source, decls)

	testFile, err := w.DetectTestFile(source.Origin.FullPath)
	if err != nil {
		slog.Warn("Failed to detect companion test file", "path", source.Origin.FullPath, "error", err)
	}

	return controller.FileEstimation{
		Path:         source.Origin.ShortPath,
		HasTest:      testFile != "",
		Declarations: len(decls),
		Counts:       countByKind(scenarios),
	}, true
}

func countByKind(scenarios []m.Scenario) map[m.ScenarioKind]int {
	counts := make(map[m.ScenarioKind]int)

	for _, scenario := range scenarios {
		counts[scenario.Kind]++
	}

	return counts
}

// View loads the latest saved run summary and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	summary, err := w.LoadLatest(args.Reports)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := w.DisplayRunSummary(ctx, summary); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// discoverSources walks root for Python sources, skipping test files and
// exclude pattern matches. Results are ordered by relative path so artifact
// layout does not depend on walk order.
func (w *workflow) discoverSources(root m.Path, exclude []string) ([]m.Source, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	sources := make([]m.Source, 0)

	walkErr := w.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !isSourceCandidate(path) {
			return nil
		}

		rel, err := w.RelPath(root, m.Path(path))
		if err != nil {
			return err
		}

		if matchesAny(patterns, string(rel)) {
			slog.Debug("Excluded source", "path", rel)
			return nil
		}

		hash, err := w.HashFile(m.Path(path))
		if err != nil {
			return fmt.Errorf("hash error for %s: %w", path, err)
		}

		sources = append(sources, m.Source{
			Origin: &m.SourceFile{ShortPath: rel, FullPath: m.Path(path), Hash: hash},
			Module: moduleName(rel),
		})

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.ShortPath < sources[j].Origin.ShortPath
	})

	return sources, nil
}

// isSourceCandidate accepts .py files that are not pytest files themselves.
func isSourceCandidate(path string) bool {
	if filepath.Ext(path) != ".py" {
		return false
	}

	return !strings.HasPrefix(filepath.Base(path), "test_")
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(path) {
			return true
		}
	}

	return false
}

// moduleName converts a relative source path into the dotted module path used
// in generated import statements.
func moduleName(rel m.Path) string {
	slashed := filepath.ToSlash(string(rel))
	trimmed := strings.TrimSuffix(slashed, ".py")

	return strings.ReplaceAll(trimmed, "/", ".")
}
