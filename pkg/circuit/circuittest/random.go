// Package circuittest provides helpers for tests that need generated circuits.
package circuittest

import (
	"github.com/fyerfyer/gatesim/pkg/circuit"
)

// Edit script op codes, taken from op % opCount
const (
	opDisconnect   = 10
	opInsertBranch = 11
	opRemoveSource = 7
	opCount        = 12
)

// Random replays an edit script. Every op adds a gate, disconnects a slot,
// splits a wire with a branch, removes a source, or tries a connect between
// existing nodes. Rejected edits are expected.
func Random(inputs []bool, ops []int) *circuit.Circuit {
	c := circuit.NewCircuit("random")
	for i, v := range inputs {
		c.AddSource(circuit.Position{X: 50, Y: float64(i) * 80}, circuit.FromBool(v))
	}

	gateTypes := circuit.AllGateTypes()
	for i, op := range ops {
		if op < 0 {
			op = -op
		}
		if len(c.Gates) == 0 || op%3 == 0 {
			c.AddGate(gateTypes[op%len(gateTypes)], circuit.Position{X: float64(100 + i*10)})
			continue
		}

		switch op % opCount {
		case opDisconnect:
			g := c.Gates[(op/7)%len(c.Gates)]
			c.Disconnect(g, (op/11)%len(g.Inputs))
			continue
		case opInsertBranch:
			if len(c.Connections) > 0 {
				conn := c.Connections[(op/7)%len(c.Connections)]
				c.InsertBranch(conn, conn.From.Position().Offset(30, 0))
			}
			continue
		case opRemoveSource:
			// rare, so most scripts keep their inputs
			if op%5 == 0 && len(c.Sources) > 0 {
				c.RemoveSource(c.Sources[(op/7)%len(c.Sources)])
				continue
			}
		}

		origins := make([]circuit.Node, 0, len(c.Sources)+len(c.Gates)+len(c.Branches))
		for _, s := range c.Sources {
			origins = append(origins, s)
		}
		for _, g := range c.Gates {
			origins = append(origins, g)
		}
		for _, b := range c.Branches {
			origins = append(origins, b)
		}
		if len(origins) == 0 {
			continue
		}

		origin := origins[op%len(origins)]
		g := c.Gates[(op/7)%len(c.Gates)]
		slot := (op / 11) % len(g.Inputs)
		c.Connect(origin, g, slot)
	}
	return c
}
