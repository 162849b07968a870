package algorithm_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/circuit/circuittest"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

func TestSimulatorMatchesRecursive(t *testing.T) {
	c := createAndOrCircuit(t)
	sim := algorithm.NewSimulator(c, utils.NewDiscardLogger())

	for _, combo := range algorithm.Combinations(2) {
		c.SetInputs(combo)
		levelized := sim.EvaluateAll()
		recursive := algorithm.Recursive{Circuit: c}.EvaluateAll()
		assert.Equal(t, recursive, levelized, "inputs %v", combo)
	}
}

func TestSimulatorNeedsRefreshAfterEdit(t *testing.T) {
	c := circuit.NewCircuit("refresh")
	s := c.AddSource(circuit.Position{}, circuit.Zero)
	g, err := c.AddGate(circuit.NOT, circuit.Position{X: 100})
	require.NoError(t, err)

	sim := algorithm.NewSimulator(c, utils.NewDiscardLogger())
	assert.Equal(t, sig(0), sim.EvaluateAll(), "unconnected gate")

	_, err = c.Connect(s, g, 0)
	require.NoError(t, err)
	sim.Refresh()
	assert.Equal(t, sig(1), sim.EvaluateAll())
}

func TestGeneratorWithSimulator(t *testing.T) {
	c := createAndOrCircuit(t)
	generator := algorithm.NewTruthTableGenerator(c, utils.NewDiscardLogger())
	generator.Evaluator = algorithm.NewSimulator(c, utils.NewDiscardLogger())

	table, err := generator.Generate()
	require.NoError(t, err)
	assert.Equal(t, sig(1, 0, 0, 1), table.Rows[2])
}

func TestSimulatorAgreesOnRandomCircuits(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("levelized and recursive evaluation agree", prop.ForAll(
		func(inputs []bool, ops []int) bool {
			c := circuittest.Random(inputs, ops)
			sim := algorithm.NewSimulator(c, utils.NewDiscardLogger())
			for _, combo := range algorithm.Combinations(len(c.Sources)) {
				c.SetInputs(combo)
				levelized := sim.EvaluateAll()
				recursive := c.EvaluateAll()
				for i := range recursive {
					if levelized[i] != recursive[i] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.TestingRun(t)
}
