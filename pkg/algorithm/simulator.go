package algorithm

import (
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

// Evaluator recomputes every gate output of a circuit from its current
// source values and returns the outputs in circuit gate order.
type Evaluator interface {
	EvaluateAll() []circuit.Signal
}

// Recursive evaluates each gate on demand, re-reading shared inputs once per
// consumer. It is the reference evaluator.
type Recursive struct {
	Circuit *circuit.Circuit
}

// EvaluateAll delegates to the circuit's own demand-driven evaluation
func (r Recursive) EvaluateAll() []circuit.Signal {
	return r.Circuit.EvaluateAll()
}

// Simulator evaluates gates once per pass in level order, so every node is
// computed a single time even under heavy fan-out. It caches the topology and
// must be refreshed after any structural change.
type Simulator struct {
	Circuit  *circuit.Circuit
	Topology *circuit.Topology
	Logger   *utils.Logger
	values   map[circuit.Node]circuit.Signal
}

// NewSimulator creates a levelized simulator for the circuit
func NewSimulator(c *circuit.Circuit, logger *utils.Logger) *Simulator {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	s := &Simulator{
		Circuit:  c,
		Topology: circuit.NewTopology(c),
		Logger:   logger,
	}
	s.Refresh()
	return s
}

// Refresh re-analyzes the circuit structure
func (s *Simulator) Refresh() {
	s.Topology.Analyze()
	s.Logger.Circuit("levelized %d gates over %d levels", len(s.Topology.Order), s.Topology.MaxLevel)
}

// EvaluateAll runs one levelized pass and updates the cached gate outputs
func (s *Simulator) EvaluateAll() []circuit.Signal {
	s.values = make(map[circuit.Node]circuit.Signal, len(s.Topology.Order))

	for _, gate := range s.Topology.Order {
		upstream := gate.Upstream()
		if len(upstream) == 0 {
			gate.Output = circuit.Zero
		} else {
			inputs := make([]circuit.Signal, len(upstream))
			for i, in := range upstream {
				inputs[i] = s.valueOf(in)
			}
			gate.Output = gate.Type.Apply(inputs)
		}
		s.values[gate] = gate.Output
		s.Logger.Evaluation("level %d %s = %s", s.Topology.LevelMap[gate], gate.Name, gate.Output)
	}

	return s.Circuit.Outputs()
}

func (s *Simulator) valueOf(n circuit.Node) circuit.Signal {
	switch n.Kind() {
	case circuit.SourceNode:
		return n.Evaluate()
	case circuit.BranchNode:
		return s.valueOf(n.Upstream()[0])
	default:
		// level order guarantees the gate was computed earlier in this pass
		if v, ok := s.values[n]; ok {
			return v
		}
		return n.Evaluate()
	}
}
