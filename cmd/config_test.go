package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "pyscaff", configBaseName)
	assert.Equal(t, "pyscaff.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "reports", reportsFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "verbose", verboseFlagName)
	assert.Equal(t, "parallel", listParallelFlagName)
	assert.Equal(t, "interactive", interactiveFlagName)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "generate.verbose", verboseConfigKey)
	assert.Equal(t, "list.parallel", listParallelConfigKey)
	assert.Equal(t, "generated_tests.py", defaultArtifactPath)
	assert.Equal(t, ".pyscaff-reports", defaultReportsDir)
	assert.Equal(t, false, defaultVerbose)
	assert.Equal(t, 1, defaultListParallel)
	assert.Equal(t, "PYSCAFF", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{name: "debug", value: "debug", want: slog.LevelDebug},
		{name: "info", value: "Info", want: slog.LevelInfo},
		{name: "warn", value: "warn", want: slog.LevelWarn},
		{name: "warning alias", value: "WARNING", want: slog.LevelWarn},
		{name: "error", value: "error", want: slog.LevelError},
		{name: "numeric", value: "-4", want: slog.LevelDebug},
		{name: "empty falls back", value: "", want: slog.LevelInfo},
		{name: "garbage falls back", value: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}
