package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

func TestInputCone(t *testing.T) {
	c := circuit.NewCircuit("cone")
	a := c.AddSource(circuit.Position{X: 50, Y: 100}, circuit.Zero)
	b := c.AddSource(circuit.Position{X: 50, Y: 180}, circuit.Zero)
	d := c.AddSource(circuit.Position{X: 50, Y: 260}, circuit.Zero)

	inv, err := c.AddGate(circuit.NOT, circuit.Position{X: 200, Y: 100})
	require.NoError(t, err)
	and, err := c.AddGate(circuit.AND, circuit.Position{X: 350, Y: 100})
	require.NoError(t, err)

	for _, edge := range []struct {
		from circuit.Node
		to   *circuit.Gate
		slot int
	}{
		{a, inv, 0},
		{inv, and, 0},
		{b, and, 1},
	} {
		conn, err := c.Connect(edge.from, edge.to, edge.slot)
		require.NoError(t, err)
		require.NotNil(t, conn)
	}

	bt := algorithm.NewBacktrace(c, utils.NewDiscardLogger())
	assert.Equal(t, []*circuit.Source{a}, bt.InputCone(inv))
	assert.Equal(t, []*circuit.Source{a, b}, bt.InputCone(and))

	cones := bt.SinkCones()
	require.Len(t, cones, 1)
	assert.Equal(t, and, cones[0].Gate)
	assert.Equal(t, []*circuit.Source{d}, bt.Unused())
}

func TestInputConeThroughBranch(t *testing.T) {
	c := createAndOrCircuit(t)
	bt := algorithm.NewBacktrace(c, utils.NewDiscardLogger())

	for _, cone := range bt.SinkCones() {
		assert.Equal(t, c.Sources, cone.Sources, cone.Gate.Name)
	}
	assert.Empty(t, bt.Unused())
}
