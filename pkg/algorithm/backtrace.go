package algorithm

import (
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

// Cone is the set of sources a gate depends on
type Cone struct {
	Gate    *circuit.Gate
	Sources []*circuit.Source
}

// Backtrace walks the circuit upstream from gates to the sources driving them
type Backtrace struct {
	Circuit *circuit.Circuit
	Logger  *utils.Logger
}

// NewBacktrace creates a new Backtrace for c
func NewBacktrace(c *circuit.Circuit, logger *utils.Logger) *Backtrace {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &Backtrace{
		Circuit: c,
		Logger:  logger,
	}
}

// InputCone returns the sources reachable upstream of g, in circuit order.
// Empty slots are skipped, so a partially wired gate only reports what it
// is actually connected to.
func (b *Backtrace) InputCone(g *circuit.Gate) []*circuit.Source {
	visited := make(map[circuit.Node]bool)
	stack := []circuit.Node{g}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, n.Upstream()...)
	}

	sources := make([]*circuit.Source, 0)
	for _, s := range b.Circuit.Sources {
		if visited[s] {
			sources = append(sources, s)
		}
	}
	b.Logger.Evaluation("cone of %s: %d sources", g.Name, len(sources))
	return sources
}

// SinkCones returns the input cone of every sink gate
func (b *Backtrace) SinkCones() []Cone {
	sinks := b.Circuit.SinkGates()
	cones := make([]Cone, len(sinks))
	for i, sink := range sinks {
		cones[i] = Cone{Gate: sink, Sources: b.InputCone(sink)}
	}
	return cones
}

// Unused returns the sources no sink depends on
func (b *Backtrace) Unused() []*circuit.Source {
	used := make(map[*circuit.Source]bool)
	for _, cone := range b.SinkCones() {
		for _, s := range cone.Sources {
			used[s] = true
		}
	}

	unused := make([]*circuit.Source, 0)
	for _, s := range b.Circuit.Sources {
		if !used[s] {
			unused = append(unused, s)
		}
	}
	return unused
}
