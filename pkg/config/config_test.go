package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/config"
	"github.com/fyerfyer/gatesim/pkg/report"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gatesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, algorithm.DefaultMaxInputs, cfg.MaxInputs)
	assert.Equal(t, config.EvaluatorRecursive, cfg.Evaluator)
	assert.Equal(t, report.StyleBordered, cfg.Table.Style)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: DEBUG
max_inputs: 8
evaluator: levelized
table:
  style: plain
  input_prefix: In
  output_prefix: Out
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxInputs)
	assert.Equal(t, config.EvaluatorLevelized, cfg.Evaluator)
	assert.Equal(t, report.Options{Style: "plain", InputPrefix: "In", OutputPrefix: "Out"}, cfg.RenderOptions())

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, utils.DebugLevel, logger.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"max inputs": "max_inputs: 40\n",
		"evaluator":  "evaluator: magic\n",
		"style":      "table:\n  style: fancy\n",
		"log level":  "log_level: loud\n",
		"prefix":     "table:\n  input_prefix: \"in put\"\n",
		"not yaml":   "max_inputs: [1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewGeneratorUsesConfiguredEvaluator(t *testing.T) {
	c, err := utils.ParseBench(strings.NewReader("INPUT(a)\nb = NOT(a)\n"), "inv", utils.NewDiscardLogger())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Evaluator = config.EvaluatorLevelized
	cfg.MaxInputs = 3

	generator := cfg.NewGenerator(c, utils.NewDiscardLogger())
	assert.Equal(t, 3, generator.MaxInputs)
	assert.IsType(t, &algorithm.Simulator{}, generator.Evaluator)

	table, err := generator.Generate()
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
