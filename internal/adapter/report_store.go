package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// ReportStore persists run summaries so previous generation runs can be
// reviewed without regenerating anything.
type ReportStore interface {
	SaveSummary(dir m.Path, summary m.RunSummary) error
	LoadLatest(dir m.Path) (m.RunSummary, error)
}

// LocalReportStore stores one YAML file per run inside the reports directory.
// Run IDs are timestamp derived, so the lexicographically last file is the
// most recent run.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveSummary writes the summary to <dir>/run-<id>.yaml, creating the
// directory when needed.
func (s *LocalReportStore) SaveSummary(dir m.Path, summary m.RunSummary) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	path := filepath.Join(string(dir), summaryFileName(summary.ID))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}

	return nil
}

// LoadLatest reads the most recent run summary from the reports directory.
func (s *LocalReportStore) LoadLatest(dir m.Path) (m.RunSummary, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to read reports directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "run-") || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		names = append(names, name)
	}

	if len(names) == 0 {
		return m.RunSummary{}, fmt.Errorf("no run summaries in %s", dir)
	}

	sort.Strings(names)

	path := filepath.Join(string(dir), names[len(names)-1])

	data, err := os.ReadFile(path)
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to read summary %s: %w", path, err)
	}

	var summary m.RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to unmarshal summary %s: %w", path, err)
	}

	return summary, nil
}

func summaryFileName(id string) string {
	return "run-" + id + ".yaml"
}
