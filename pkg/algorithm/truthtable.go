package algorithm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

// DefaultMaxInputs bounds the 2^n enumeration of a truth table
const DefaultMaxInputs = 16

var (
	// ErrTooManyInputs is returned when a circuit has more sources than the generator accepts
	ErrTooManyInputs = errors.New("too many inputs for a truth table")

	// ErrAssignmentLength is returned when an assignment does not match the number of sources
	ErrAssignmentLength = errors.New("assignment length does not match inputs")
)

// TruthTable holds one row per source assignment: the input bits followed by
// the sink gate outputs.
type TruthTable struct {
	InputLabels  []string
	OutputLabels []string
	Sinks        []*circuit.Gate
	Rows         [][]circuit.Signal
}

// NumInputs returns the number of input columns
func (tt *TruthTable) NumInputs() int {
	return len(tt.InputLabels)
}

// NumOutputs returns the number of output columns
func (tt *TruthTable) NumOutputs() int {
	return len(tt.OutputLabels)
}

// Inputs returns the input part of a row
func (tt *TruthTable) Inputs(row int) []circuit.Signal {
	return tt.Rows[row][:tt.NumInputs()]
}

// Outputs returns the output part of a row
func (tt *TruthTable) Outputs(row int) []circuit.Signal {
	return tt.Rows[row][tt.NumInputs():]
}

// Lookup returns the outputs recorded for an assignment
func (tt *TruthTable) Lookup(assignment []circuit.Signal) ([]circuit.Signal, bool) {
	if len(assignment) != tt.NumInputs() {
		return nil, false
	}
	index := 0
	for _, bit := range assignment {
		index = index<<1 | bit.Bit()
	}
	if index >= len(tt.Rows) {
		return nil, false
	}
	return tt.Outputs(index), true
}

// String renders the table as plain whitespace separated columns
func (tt *TruthTable) String() string {
	var builder strings.Builder
	builder.WriteString(strings.Join(append(append([]string{}, tt.InputLabels...), tt.OutputLabels...), " "))
	builder.WriteString("\n")
	for _, row := range tt.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		builder.WriteString(strings.Join(cells, " "))
		builder.WriteString("\n")
	}
	return builder.String()
}

// Stats contains statistics about the last generation
type Stats struct {
	Rows        int           // Rows produced
	Evaluations int           // Full circuit evaluations performed
	TotalTime   time.Duration // Total generation time
}

// TruthTableGenerator enumerates every source assignment of a circuit
type TruthTableGenerator struct {
	Circuit   *circuit.Circuit
	Logger    *utils.Logger
	Evaluator Evaluator
	MaxInputs int
	Stats     Stats
}

// NewTruthTableGenerator creates a generator using the recursive evaluator
func NewTruthTableGenerator(c *circuit.Circuit, logger *utils.Logger) *TruthTableGenerator {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &TruthTableGenerator{
		Circuit:   c,
		Logger:    logger,
		Evaluator: Recursive{Circuit: c},
		MaxInputs: DefaultMaxInputs,
	}
}

// Combinations returns all 2^n assignments of n bits in counting order, the
// first position being the most significant bit.
func Combinations(n int) [][]circuit.Signal {
	total := 1 << n
	combos := make([][]circuit.Signal, total)
	for i := 0; i < total; i++ {
		combo := make([]circuit.Signal, n)
		for j := 0; j < n; j++ {
			combo[j] = circuit.FromBit((i >> (n - 1 - j)) & 1)
		}
		combos[i] = combo
	}
	return combos
}

// Generate builds the truth table over all sources. Source values are
// restored and the circuit re-evaluated afterwards.
func (g *TruthTableGenerator) Generate() (*TruthTable, error) {
	startTime := time.Now()
	g.Stats = Stats{}
	c := g.Circuit

	n := len(c.Sources)
	if n > g.MaxInputs {
		return nil, fmt.Errorf("%w: %d sources, limit %d", ErrTooManyInputs, n, g.MaxInputs)
	}

	// structure is fixed during generation, so sinks are found once
	sinks := c.SinkGates()
	table := &TruthTable{
		InputLabels:  make([]string, n),
		OutputLabels: make([]string, len(sinks)),
		Sinks:        sinks,
		Rows:         make([][]circuit.Signal, 0, 1<<n),
	}
	for i, s := range c.Sources {
		table.InputLabels[i] = s.Name
	}
	for i, sink := range sinks {
		table.OutputLabels[i] = sink.Name
	}

	g.Logger.Info("Generating truth table for %s: %d inputs, %d outputs", c.Name, n, len(sinks))
	g.Logger.Indent()
	defer g.Logger.Outdent()

	saved := c.GetInputs()
	defer func() {
		c.SetInputs(saved)
		g.Evaluator.EvaluateAll()
	}()

	for _, combo := range Combinations(n) {
		c.SetInputs(combo)
		g.Evaluator.EvaluateAll()
		g.Stats.Evaluations++

		row := make([]circuit.Signal, 0, n+len(sinks))
		row = append(row, combo...)
		for _, sink := range sinks {
			row = append(row, sink.Output)
		}
		table.Rows = append(table.Rows, row)
		g.Logger.Table("%v -> %v", combo, row[n:])
	}

	g.Stats.Rows = len(table.Rows)
	g.Stats.TotalTime = time.Since(startTime)
	g.Logger.Debug("Truth table complete: %d rows in %v", g.Stats.Rows, g.Stats.TotalTime)
	return table, nil
}

// EvaluateAssignment applies one assignment to the sources, evaluates the
// circuit and returns the sink outputs. The assignment stays applied.
func (g *TruthTableGenerator) EvaluateAssignment(assignment []circuit.Signal) ([]circuit.Signal, error) {
	c := g.Circuit
	if len(assignment) != len(c.Sources) {
		return nil, fmt.Errorf("%w: got %d values for %d inputs", ErrAssignmentLength, len(assignment), len(c.Sources))
	}

	c.SetInputs(assignment)
	g.Evaluator.EvaluateAll()
	g.Stats.Evaluations++

	sinks := c.SinkGates()
	outputs := make([]circuit.Signal, len(sinks))
	for i, sink := range sinks {
		outputs[i] = sink.Output
		g.Logger.Evaluation("%s = %s", sink.Name, sink.Output)
	}
	return outputs, nil
}
