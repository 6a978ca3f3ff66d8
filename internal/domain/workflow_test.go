package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pyscaff/pyscaff/internal/adapter"
	"github.com/pyscaff/pyscaff/internal/controller"
	m "github.com/pyscaff/pyscaff/internal/model"
)

func newTestWorkflow(ui controller.UI) Workflow {
	return NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalPythonFileAdapter(),
		adapter.NewLocalReportStore(),
		ui,
		NewSynthesizer(),
		NewEmitter(adapter.NewLocalFormatterAdapter()),
	)
}

func TestWorkflow_Generate(t *testing.T) {
	t.Run("writes aggregated artifact", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int, b: int):\n    return a + b\n")

		output := filepath.Join(t.TempDir(), "generated_tests.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)})
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		content := readFileString(t, output)

		wantPrefix := "from calc import add\n" +
			"import pytest\n" +
			"\n\n" +
			"# Tests for calc.py\n" +
			"def test_add_with_valid_a():\n" +
			"    result = add(a=42)\n" +
			"    assert result is not None\n" +
			"\n" +
			"def test_add_with_zero_a():\n" +
			"    result = add(a=0)\n" +
			"    assert result is not None\n" +
			"\n"
		if !strings.HasPrefix(content, wantPrefix) {
			t.Errorf("unexpected artifact start:\n%s", content)
		}

		if got := strings.Count(content, "def test_"); got != 12 {
			t.Errorf("expected 12 tests for two int params, got %d", got)
		}

		if ui.mode != controller.ModeGenerate {
			t.Errorf("expected generate mode, got %v", ui.mode)
		}
		if ui.summary.TotalScenarios() != 12 {
			t.Errorf("expected 12 scenarios in summary, got %d", ui.summary.TotalScenarios())
		}
		if len(ui.summary.Files) != 1 || ui.summary.Files[0].File != "calc.py" {
			t.Errorf("unexpected summary files: %+v", ui.summary.Files)
		}
		if ui.summary.Files[0].Declarations != 1 {
			t.Errorf("expected 1 declaration, got %d", ui.summary.Files[0].Declarations)
		}
		if ui.summary.Files[0].Hash == "" {
			t.Errorf("expected file hash to be recorded")
		}
		if ui.discoveryFiles != 1 || ui.discoveryRoot != m.Path(root) {
			t.Errorf("expected discovery info for 1 file under %s, got %d under %s", root, ui.discoveryFiles, ui.discoveryRoot)
		}
		if !ui.started || !ui.waited || !ui.closed {
			t.Errorf("expected UI lifecycle start/wait/close, got %v/%v/%v", ui.started, ui.waited, ui.closed)
		}
	})

	t.Run("verbose includes descriptions", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def double(n: int):\n    return n * 2\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		args := GenerateArgs{Root: m.Path(root), Output: m.Path(output), Verbose: true}
		if err := wf.Generate(context.Background(), args); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		content := readFileString(t, output)
		if !strings.Contains(content, "# Test double with valid n\ndef test_double_with_valid_n():\n") {
			t.Errorf("expected description comment before test, got:\n%s", content)
		}
	})

	t.Run("skips unparseable files and continues", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "broken.py"), "def broken(:\n")
		writeFile(t, filepath.Join(root, "good.py"), "def greet(name: str):\n    return name\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)})
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		content := readFileString(t, output)
		if strings.Contains(content, "# Tests for broken.py") {
			t.Errorf("expected broken.py to be dropped from the artifact")
		}
		if !strings.Contains(content, "# Tests for good.py") {
			t.Errorf("expected good.py block in the artifact")
		}

		if len(ui.fileWarnings) != 1 || ui.fileWarnings[0] != "broken.py" {
			t.Errorf("expected one warning for broken.py, got %v", ui.fileWarnings)
		}
		if len(ui.summary.Files) != 1 {
			t.Errorf("expected only good.py in summary, got %d files", len(ui.summary.Files))
		}
	})

	t.Run("empty file yields header only block", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "empty.py"), "")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		if err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)}); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		if content := readFileString(t, output); content != "\n\n# Tests for empty.py\n" {
			t.Errorf("unexpected artifact for empty file: %q", content)
		}
	})

	t.Run("excludes files matching patterns", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")
		writeFile(t, filepath.Join(root, "vendor", "util.py"), "def helper(x: int):\n    return x\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		args := GenerateArgs{Root: m.Path(root), Output: m.Path(output), Exclude: []string{"vendor/.*"}}
		if err := wf.Generate(context.Background(), args); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		content := readFileString(t, output)
		if strings.Contains(content, "util") {
			t.Errorf("expected vendor/util.py to be excluded")
		}
		if !strings.Contains(content, "# Tests for calc.py") {
			t.Errorf("expected calc.py block in the artifact")
		}
	})

	t.Run("invalid exclude pattern returns error", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		args := GenerateArgs{Root: m.Path(root), Output: m.Path(filepath.Join(t.TempDir(), "out.py")), Exclude: []string{"["}}
		err := wf.Generate(context.Background(), args)
		if err == nil || !strings.Contains(err.Error(), "invalid exclude pattern") {
			t.Fatalf("expected exclude pattern error, got %v", err)
		}
	})

	t.Run("skips pytest files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")
		writeFile(t, filepath.Join(root, "test_calc.py"), "def test_add():\n    pass\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		if err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)}); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		if content := readFileString(t, output); strings.Contains(content, "# Tests for test_calc.py") {
			t.Errorf("expected pytest file to be skipped as a source")
		}
	})

	t.Run("nonexistent root returns error", func(t *testing.T) {
		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		args := GenerateArgs{
			Root:   m.Path(filepath.Join(t.TempDir(), "no_such_dir")),
			Output: m.Path(filepath.Join(t.TempDir(), "out.py")),
		}

		err := wf.Generate(context.Background(), args)
		if err == nil || !strings.Contains(err.Error(), "root path error") {
			t.Fatalf("expected root path error, got %v", err)
		}
	})

	t.Run("saves summary when reports dir is set", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")

		reports := filepath.Join(t.TempDir(), "reports")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		args := GenerateArgs{
			Root:    m.Path(root),
			Output:  m.Path(filepath.Join(t.TempDir(), "out.py")),
			Reports: m.Path(reports),
		}
		if err := wf.Generate(context.Background(), args); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		entries, err := os.ReadDir(reports)
		if err != nil {
			t.Fatalf("read reports dir: %v", err)
		}
		if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "run-") {
			t.Fatalf("expected one run summary file, got %v", entries)
		}
	})

	t.Run("counts skipped scenarios and warns", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "guard.py"),
			"def check(x):\n    if x > 10:\n        return True\n    return False\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		if err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)}); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		// The condition contains a comparison operator, so the sanitized test
		// name is invalid Python and the scenario is dropped at the formatter
		// gate. The unannotated parameter still emits its None binding test.
		if ui.summary.TotalSkipped() != 1 {
			t.Errorf("expected 1 skipped scenario, got %d", ui.summary.TotalSkipped())
		}
		if ui.summary.TotalScenarios() != 1 {
			t.Errorf("expected 1 emitted scenario, got %d", ui.summary.TotalScenarios())
		}
		if ui.scenarioWarnings["guard.py"] != 1 {
			t.Errorf("expected scenario warning for guard.py, got %v", ui.scenarioWarnings)
		}

		content := readFileString(t, output)
		if !strings.Contains(content, "# Tests for guard.py") {
			t.Errorf("expected header for guard.py")
		}
		if !strings.Contains(content, "result = check(x=None)") {
			t.Errorf("expected None binding for the unannotated parameter, got:\n%s", content)
		}
		if strings.Contains(content, "test_check_condition") {
			t.Errorf("expected the conditional scenario to be dropped, got:\n%s", content)
		}

		if !strings.Contains(content, "from guard import check") {
			t.Errorf("expected import preamble to include the file's imports")
		}
	})

	t.Run("warns about constructors with required arguments", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "widget.py"),
			"class Widget:\n    def __init__(self, name: str):\n        self.name = name\n\n    def render(self):\n        return self.name\n")

		output := filepath.Join(t.TempDir(), "out.py")
		ui := newCaptureUI()

		wf := newTestWorkflow(ui)
		if err := wf.Generate(context.Background(), GenerateArgs{Root: m.Path(root), Output: m.Path(output)}); err != nil {
			t.Fatalf("Generate error: %v", err)
		}

		if len(ui.setupWarnings) != 1 || ui.setupWarnings[0] != "Widget" {
			t.Errorf("expected setup warning for Widget, got %v", ui.setupWarnings)
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		args := GenerateArgs{Root: m.Path(root), Output: m.Path(filepath.Join(t.TempDir(), "out.py"))}
		if err := wf.Generate(ctx, args); err == nil {
			t.Fatalf("expected error from cancelled context")
		}
	})
}

func TestWorkflow_Estimate(t *testing.T) {
	t.Run("counts scenarios per file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int, b: int):\n    return a + b\n")
		writeFile(t, filepath.Join(root, "test_calc.py"), "def test_add():\n    pass\n")

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		if err := wf.Estimate(context.Background(), EstimateArgs{Root: m.Path(root), Threads: 2}); err != nil {
			t.Fatalf("Estimate error: %v", err)
		}

		if ui.mode != controller.ModeEstimate {
			t.Errorf("expected estimate mode, got %v", ui.mode)
		}
		if len(ui.estimations) != 1 {
			t.Fatalf("expected one estimation, got %d", len(ui.estimations))
		}

		estimation := ui.estimations[0]
		if estimation.Path != "calc.py" {
			t.Errorf("expected calc.py, got %s", estimation.Path)
		}
		if !estimation.HasTest {
			t.Errorf("expected companion test file to be detected")
		}
		if estimation.Declarations != 1 {
			t.Errorf("expected 1 declaration, got %d", estimation.Declarations)
		}
		if estimation.Counts[m.ScenarioParameter] != 2 || estimation.Counts[m.ScenarioEdgeCase] != 10 {
			t.Errorf("unexpected counts: %v", estimation.Counts)
		}
		if estimation.Total() != 12 {
			t.Errorf("expected 12 total scenarios, got %d", estimation.Total())
		}
	})

	t.Run("results are sorted by path", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "zeta.py"), "def z(a: int):\n    return a\n")
		writeFile(t, filepath.Join(root, "alpha.py"), "def a(x: int):\n    return x\n")

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		if err := wf.Estimate(context.Background(), EstimateArgs{Root: m.Path(root), Threads: 4}); err != nil {
			t.Fatalf("Estimate error: %v", err)
		}

		if len(ui.estimations) != 2 {
			t.Fatalf("expected two estimations, got %d", len(ui.estimations))
		}
		if ui.estimations[0].Path != "alpha.py" || ui.estimations[1].Path != "zeta.py" {
			t.Errorf("expected sorted estimations, got %s then %s", ui.estimations[0].Path, ui.estimations[1].Path)
		}
	})

	t.Run("drops unparseable files with a warning", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "broken.py"), "def broken(:\n")
		writeFile(t, filepath.Join(root, "good.py"), "def greet(name: str):\n    return name\n")

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		if err := wf.Estimate(context.Background(), EstimateArgs{Root: m.Path(root), Threads: 1}); err != nil {
			t.Fatalf("Estimate error: %v", err)
		}

		if len(ui.estimations) != 1 || ui.estimations[0].Path != "good.py" {
			t.Errorf("expected only good.py, got %v", ui.estimations)
		}
		if len(ui.fileWarnings) != 1 {
			t.Errorf("expected one file warning, got %v", ui.fileWarnings)
		}
	})

	t.Run("zero threads normalizes to one", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "calc.py"), "def add(a: int):\n    return a\n")

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		if err := wf.Estimate(context.Background(), EstimateArgs{Root: m.Path(root)}); err != nil {
			t.Fatalf("Estimate error: %v", err)
		}
		if len(ui.estimations) != 1 {
			t.Errorf("expected one estimation, got %d", len(ui.estimations))
		}
	})

	t.Run("nonexistent root returns error", func(t *testing.T) {
		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		err := wf.Estimate(context.Background(), EstimateArgs{Root: m.Path(filepath.Join(t.TempDir(), "missing"))})
		if err == nil || !strings.Contains(err.Error(), "root path error") {
			t.Fatalf("expected root path error, got %v", err)
		}
	})
}

func TestWorkflow_View(t *testing.T) {
	t.Run("displays the latest saved summary", func(t *testing.T) {
		reports := t.TempDir()
		store := adapter.NewLocalReportStore()

		older := m.RunSummary{ID: "20260101-000000", Root: "/repo", CreatedAt: time.Now().UTC()}
		newer := m.RunSummary{ID: "20260102-000000", Root: "/repo", CreatedAt: time.Now().UTC()}
		if err := store.SaveSummary(m.Path(reports), older); err != nil {
			t.Fatalf("save older summary: %v", err)
		}
		if err := store.SaveSummary(m.Path(reports), newer); err != nil {
			t.Fatalf("save newer summary: %v", err)
		}

		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		if err := wf.View(context.Background(), ViewArgs{Reports: m.Path(reports)}); err != nil {
			t.Fatalf("View error: %v", err)
		}

		if ui.mode != controller.ModeView {
			t.Errorf("expected view mode, got %v", ui.mode)
		}
		if ui.summary.ID != "20260102-000000" {
			t.Errorf("expected latest summary, got %s", ui.summary.ID)
		}
	})

	t.Run("empty reports dir returns error", func(t *testing.T) {
		ui := newCaptureUI()
		wf := newTestWorkflow(ui)

		err := wf.View(context.Background(), ViewArgs{Reports: m.Path(t.TempDir())})
		if err == nil || !strings.Contains(err.Error(), "load summary") {
			t.Fatalf("expected load summary error, got %v", err)
		}
	})
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"calc.py", "calc"},
		{"pkg/util.py", "pkg.util"},
		{"pkg/__init__.py", "pkg.__init__"},
		{"a/b/c.py", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := moduleName(m.Path(tt.rel)); got != tt.want {
				t.Errorf("moduleName(%s) = %s, want %s", tt.rel, got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func readFileString(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	return string(content)
}

// captureUI records every UI call so workflow tests can assert on the
// interaction without a terminal. Estimation analysis runs concurrently, so
// every field write happens under the mutex.
type captureUI struct {
	mu               sync.Mutex
	started          bool
	closed           bool
	waited           bool
	mode             controller.StartMode
	estimations      []controller.FileEstimation
	summary          m.RunSummary
	discoveryRoot    m.Path
	discoveryFiles   int
	fileWarnings     []m.Path
	scenarioWarnings map[m.Path]int
	setupWarnings    []string
}

func newCaptureUI() *captureUI {
	return &captureUI{scenarioWarnings: make(map[m.Path]int)}
}

func (u *captureUI) Start(_ context.Context, options ...controller.StartOption) error {
	cfg := &controller.StartConfig{}
	for _, option := range options {
		option(cfg)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.started = true
	u.mode = cfg.Mode()

	return nil
}

func (u *captureUI) Close(_ context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
}

func (u *captureUI) Wait(_ context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.waited = true
}

func (u *captureUI) DisplayEstimation(_ context.Context, estimations []controller.FileEstimation, err error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.estimations = estimations

	return err
}

func (u *captureUI) DisplayDiscoveryInfo(_ context.Context, root m.Path, files int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.discoveryRoot = root
	u.discoveryFiles = files
}

func (u *captureUI) DisplayFileWarning(_ context.Context, path m.Path, _ error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fileWarnings = append(u.fileWarnings, path)
}

func (u *captureUI) DisplayScenarioWarning(_ context.Context, path m.Path, skipped int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.scenarioWarnings[path] += skipped
}

func (u *captureUI) DisplaySetupWarning(_ context.Context, class string, _ m.Path) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setupWarnings = append(u.setupWarnings, class)
}

func (u *captureUI) DisplayRunSummary(_ context.Context, summary m.RunSummary) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.summary = summary

	return nil
}
