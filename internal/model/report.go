package model

import "time"

// FileReport holds the generation outcome for a single analyzed file.
type FileReport struct {
	File         Path                 `yaml:"file"`
	Hash         string               `yaml:"hash,omitempty"`
	Declarations int                  `yaml:"declarations"`
	Counts       map[ScenarioKind]int `yaml:"counts"`
	Skipped      int                  `yaml:"skipped,omitempty"`
}

// Scenarios returns the number of scenarios emitted for the file.
func (r FileReport) Scenarios() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}

	return total
}

// RunSummary is the persisted record of one generation run.
type RunSummary struct {
	ID        string       `yaml:"id"`
	Root      Path         `yaml:"root"`
	Artifact  Path         `yaml:"artifact"`
	CreatedAt time.Time    `yaml:"created_at"`
	Files     []FileReport `yaml:"files"`
}

// TotalScenarios returns the number of scenarios emitted across all files.
func (s RunSummary) TotalScenarios() int {
	total := 0
	for _, file := range s.Files {
		total += file.Scenarios()
	}

	return total
}

// TotalSkipped returns the number of scenarios dropped across all files.
func (s RunSummary) TotalSkipped() int {
	total := 0
	for _, file := range s.Files {
		total += file.Skipped
	}

	return total
}

// CountsByKind aggregates per kind scenario counts across all files.
func (s RunSummary) CountsByKind() map[ScenarioKind]int {
	counts := make(map[ScenarioKind]int)

	for _, file := range s.Files {
		for kind, n := range file.Counts {
			counts[kind] += n
		}
	}

	return counts
}
