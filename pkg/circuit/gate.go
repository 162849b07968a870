package circuit

import (
	"fmt"
	"strings"
)

// GateType represents the type of logic gate
type GateType int

const (
	AND GateType = iota
	OR
	NOT
	NAND
	NOR
	XOR
	XNOR
)

// String returns a string representation of the gate type
func (gt GateType) String() string {
	switch gt {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case NAND:
		return "NAND"
	case NOR:
		return "NOR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true for the closed set of supported gate types
func (gt GateType) IsValid() bool {
	return gt >= AND && gt <= XNOR
}

// Arity returns the number of input slots of the gate type
func (gt GateType) Arity() int {
	if gt == NOT {
		return 1
	}
	return 2
}

// IsInverting returns true for gates drawn with a negation bubble
func (gt GateType) IsInverting() bool {
	switch gt {
	case NOT, NAND, NOR, XNOR:
		return true
	default:
		return false
	}
}

// ParseGateType converts a gate type name into a GateType
func ParseGateType(name string) (GateType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "AND":
		return AND, nil
	case "OR":
		return OR, nil
	case "NOT", "INV":
		return NOT, nil
	case "NAND":
		return NAND, nil
	case "NOR":
		return NOR, nil
	case "XOR":
		return XOR, nil
	case "XNOR":
		return XNOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGateType, name)
	}
}

// AllGateTypes lists every supported gate type in declaration order
func AllGateTypes() []GateType {
	return []GateType{AND, OR, NOT, NAND, NOR, XOR, XNOR}
}

// Gate represents a logic gate in the circuit
type Gate struct {
	ID     int      // Unique identifier
	Name   string   // Name of the gate
	Type   GateType // Type of the gate
	Pos    Position // Canvas position
	Inputs []Node   // Input slots, nil when unconnected
	Output Signal   // Last computed output, X until first evaluation
}

// NewGate creates a new gate with empty input slots
func NewGate(id int, name string, gateType GateType, pos Position) *Gate {
	return &Gate{
		ID:     id,
		Name:   name,
		Type:   gateType,
		Pos:    pos,
		Inputs: make([]Node, gateType.Arity()),
		Output: X,
	}
}

func (g *Gate) NodeID() int         { return g.ID }
func (g *Gate) Kind() NodeKind      { return GateNode }
func (g *Gate) Label() string       { return g.Name }
func (g *Gate) Position() Position  { return g.Pos }
func (g *Gate) MoveTo(pos Position) { g.Pos = pos }

// Upstream returns the connected inputs in slot order, skipping empty slots
func (g *Gate) Upstream() []Node {
	connected := make([]Node, 0, len(g.Inputs))
	for _, in := range g.Inputs {
		if in != nil {
			connected = append(connected, in)
		}
	}
	return connected
}

// HasInput returns true if n occupies any slot of the gate
func (g *Gate) HasInput(n Node) bool {
	for _, in := range g.Inputs {
		if in != nil && in == n {
			return true
		}
	}
	return false
}

// SlotOf returns the slot index holding n, or -1
func (g *Gate) SlotOf(n Node) int {
	for i, in := range g.Inputs {
		if in != nil && in == n {
			return i
		}
	}
	return -1
}

// ConnectedInputs returns the number of occupied slots
func (g *Gate) ConnectedInputs() int {
	count := 0
	for _, in := range g.Inputs {
		if in != nil {
			count++
		}
	}
	return count
}

// String returns a string representation of the gate
func (g *Gate) String() string {
	return fmt.Sprintf("%s(%s)", g.Name, g.Type.String())
}

// Evaluate recomputes the gate output from its connected inputs and caches it.
// A gate with no connected input outputs Zero.
func (g *Gate) Evaluate() Signal {
	upstream := g.Upstream()
	if len(upstream) == 0 {
		g.Output = Zero
		return g.Output
	}

	values := make([]Signal, len(upstream))
	for i, in := range upstream {
		values[i] = in.Evaluate()
	}

	g.Output = g.Type.Apply(values)
	return g.Output
}

// Apply computes the gate function over the given input values.
// It panics for a gate type without a truth function.
func (gt GateType) Apply(values []Signal) Signal {
	switch gt {
	case AND:
		return evaluateAND(values)
	case OR:
		return evaluateOR(values)
	case NOT:
		return evaluateNOT(values)
	case NAND:
		return evaluateAND(values).Not()
	case NOR:
		return evaluateOR(values).Not()
	case XOR:
		return evaluateXOR(values)
	case XNOR:
		return evaluateXOR(values).Not()
	default:
		panic(fmt.Sprintf("circuit: %v: %d", ErrUnknownGateType, int(gt)))
	}
}

func evaluateAND(values []Signal) Signal {
	for _, v := range values {
		if v != One {
			return Zero
		}
	}
	return One
}

func evaluateOR(values []Signal) Signal {
	for _, v := range values {
		if v == One {
			return One
		}
	}
	return Zero
}

func evaluateNOT(values []Signal) Signal {
	if len(values) == 0 || values[0] != One {
		return One
	}
	return Zero
}

// evaluateXOR reduces by parity, so it generalizes past two inputs
func evaluateXOR(values []Signal) Signal {
	parity := 0
	for _, v := range values {
		parity ^= v.Bit()
	}
	return FromBit(parity)
}
