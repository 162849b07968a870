package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
)

const halfAdder = `INPUT(a)
INPUT(b) = 1
OUTPUT(sum)
OUTPUT(carry)
sum = XOR(a, b)
carry = AND(a, b)
`

func writeNetlist(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "half_adder.bench")
	require.NoError(t, os.WriteFile(path, []byte(halfAdder), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "gatesim", root.Use)

	names := make([]string, 0)
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"table", "eval", "stats"})
}

func TestTableCommand(t *testing.T) {
	vectors := filepath.Join(t.TempDir(), "vectors.txt")
	out, err := run(t, "table", "--style", "plain", "--evaluator", "levelized", "-o", vectors, writeNetlist(t))
	require.NoError(t, err)
	assert.Equal(t,
		"a\tb\tsum\tcarry\n"+
			"0\t0\t0\t0\n"+
			"0\t1\t1\t0\n"+
			"1\t0\t1\t0\n"+
			"1\t1\t0\t1\n",
		out)

	data, err := os.ReadFile(vectors)
	require.NoError(t, err)
	assert.Contains(t, string(data), "11 01\n")
}

func TestTableCommandRespectsMaxInputs(t *testing.T) {
	_, err := run(t, "table", "--max-inputs", "1", writeNetlist(t))
	assert.ErrorIs(t, err, algorithm.ErrTooManyInputs)
}

func TestTableCommandConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "gatesim.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("table:\n  style: plain\n  output_prefix: Y\n"), 0o644))

	out, err := run(t, "--config", cfg, "table", writeNetlist(t))
	require.NoError(t, err)
	assert.Contains(t, out, "a\tb\tY1\tY2\n")
}

func TestEvalCommand(t *testing.T) {
	path := writeNetlist(t)

	out, err := run(t, "eval", path, "11")
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = 1\nsum = 0\ncarry = 1\n", out)

	// initial values from the netlist
	out, err = run(t, "eval", path)
	require.NoError(t, err)
	assert.Equal(t, "a = 0\nb = 1\nsum = 1\ncarry = 0\n", out)

	_, err = run(t, "eval", path, "1x")
	assert.Error(t, err)

	_, err = run(t, "eval", path, "101")
	assert.ErrorIs(t, err, algorithm.ErrAssignmentLength)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", writeNetlist(t))
	require.NoError(t, err)
	assert.Equal(t,
		"Circuit: half_adder\n"+
			"Inputs: 2\n"+
			"Gates: 2\n"+
			"Branches: 2\n"+
			"Connections: 4\n"+
			"Levels: 1\n"+
			"Sinks: sum carry\n"+
			"Fan-out points: B1<a> B2<b>\n"+
			"Cone sum: a b\n"+
			"Cone carry: a b\n"+
			"Indicator: sum = 1\n",
		out)
}

func TestMissingNetlist(t *testing.T) {
	_, err := run(t, "stats", filepath.Join(t.TempDir(), "missing.bench"))
	assert.Error(t, err)

	_, err = run(t, "table", "--style", "fancy", writeNetlist(t))
	assert.Error(t, err)
}
