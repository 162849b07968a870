package circuit_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/circuit/circuittest"
)

// structurallySound checks the invariants every edit sequence must preserve
func structurallySound(c *circuit.Circuit) bool {
	direct := make(map[circuit.Node]int)
	for _, conn := range c.Connections {
		if conn.To.Inputs[conn.Slot] != conn.From {
			return false
		}
		if conn.From.Kind() != circuit.BranchNode {
			direct[conn.From]++
		}
	}
	for _, n := range direct {
		if n > 1 {
			return false
		}
	}

	for _, b := range c.Branches {
		if b.Origin.Kind() == circuit.BranchNode {
			return false
		}
		if len(c.ConnectionsFrom(b.Origin)) != 0 {
			return false
		}
	}

	occupied := 0
	for _, g := range c.Gates {
		seen := make(map[circuit.Node]bool)
		for _, in := range g.Upstream() {
			if seen[in] || c.DependsOn(in, g) {
				return false
			}
			seen[in] = true
			occupied++
		}
	}
	return occupied == len(c.Connections)
}

func TestEditInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("random edits keep the graph sound", prop.ForAll(
		func(inputs []bool, ops []int) bool {
			return structurallySound(circuittest.Random(inputs, ops))
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.Property("evaluation is idempotent", prop.ForAll(
		func(inputs []bool, ops []int) bool {
			c := circuittest.Random(inputs, ops)
			first := c.EvaluateAll()
			second := c.EvaluateAll()
			for i := range first {
				if first[i] != second[i] || !first[i].IsAssigned() {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.Property("removing a node leaves no reference to it", prop.ForAll(
		func(inputs []bool, ops []int, victim int) bool {
			c := circuittest.Random(inputs, ops)
			if len(c.Gates) == 0 {
				return true
			}
			g := c.Gates[victim%len(c.Gates)]
			c.RemoveGate(g)
			for _, conn := range c.Connections {
				if conn.From == circuit.Node(g) || conn.To == g {
					return false
				}
			}
			for _, other := range c.Gates {
				if other.HasInput(g) {
					return false
				}
			}
			return structurallySound(c)
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.SliceOf(gen.IntRange(0, 10000)),
		gen.IntRange(0, 1000),
	))

	properties.Property("disconnect, branch insertion and source removal keep the graph sound", prop.ForAll(
		func(inputs []bool, ops []int, pick int) bool {
			c := circuittest.Random(inputs, ops)

			if len(c.Connections) > 0 {
				conn := c.Connections[pick%len(c.Connections)]
				c.InsertBranch(conn, conn.From.Position().Offset(30, 0))
				if !structurallySound(c) {
					return false
				}
			}

			if len(c.Gates) > 0 {
				g := c.Gates[pick%len(c.Gates)]
				if _, err := c.Disconnect(g, pick%len(g.Inputs)); err != nil {
					return false
				}
				if !structurallySound(c) {
					return false
				}
			}

			if len(c.Sources) > 0 {
				s := c.Sources[pick%len(c.Sources)]
				c.RemoveSource(s)
				for _, conn := range c.Connections {
					if conn.From == circuit.Node(s) {
						return false
					}
				}
				for _, b := range c.Branches {
					if b.Origin == circuit.Node(s) {
						return false
					}
				}
				if !structurallySound(c) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.SliceOf(gen.IntRange(0, 10000)),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
