package circuit

import "fmt"

// Position is the canvas location of a node. The circuit never interprets it.
type Position struct {
	X, Y float64
}

// Offset returns the position moved by dx, dy
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// NodeKind discriminates the node variants of a circuit
type NodeKind int

const (
	SourceNode NodeKind = iota
	GateNode
	BranchNode
)

// String returns a string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case SourceNode:
		return "source"
	case GateNode:
		return "gate"
	case BranchNode:
		return "branch"
	default:
		return "unknown"
	}
}

// Node is anything that can drive a gate input
type Node interface {
	NodeID() int
	Kind() NodeKind
	Label() string
	Position() Position
	MoveTo(pos Position)
	// Upstream returns the nodes this node reads from, in slot order
	Upstream() []Node
	Evaluate() Signal
}

// Source is a user-controlled boolean input
type Source struct {
	ID    int      // Unique identifier
	Name  string   // Name of the input
	Pos   Position // Canvas position
	Value Signal   // Current value (Zero or One)
}

// NewSource creates a new source with the given value
func NewSource(id int, name string, pos Position, value Signal) *Source {
	if !value.IsAssigned() {
		value = Zero
	}
	return &Source{
		ID:    id,
		Name:  name,
		Pos:   pos,
		Value: value,
	}
}

func (s *Source) NodeID() int         { return s.ID }
func (s *Source) Kind() NodeKind      { return SourceNode }
func (s *Source) Label() string       { return s.Name }
func (s *Source) Position() Position  { return s.Pos }
func (s *Source) MoveTo(pos Position) { s.Pos = pos }
func (s *Source) Upstream() []Node    { return nil }

// Evaluate returns the stored value
func (s *Source) Evaluate() Signal {
	return s.Value
}

// Toggle flips the source between 0 and 1
func (s *Source) Toggle() {
	if s.Value == One {
		s.Value = Zero
	} else {
		s.Value = One
	}
}

// String returns a string representation of the source
func (s *Source) String() string {
	return fmt.Sprintf("%s=%s", s.Name, s.Value)
}

// Branch is a fan-out point forwarding one upstream node to several consumers.
// The upstream is always a Source or a Gate.
type Branch struct {
	ID     int
	Name   string
	Pos    Position
	Origin Node
}

// NewBranch creates a new branch tapping origin
func NewBranch(id int, name string, pos Position, origin Node) *Branch {
	return &Branch{
		ID:     id,
		Name:   name,
		Pos:    pos,
		Origin: origin,
	}
}

func (b *Branch) NodeID() int         { return b.ID }
func (b *Branch) Kind() NodeKind      { return BranchNode }
func (b *Branch) Label() string       { return b.Name }
func (b *Branch) Position() Position  { return b.Pos }
func (b *Branch) MoveTo(pos Position) { b.Pos = pos }
func (b *Branch) Upstream() []Node    { return []Node{b.Origin} }

// Evaluate forwards the origin's value
func (b *Branch) Evaluate() Signal {
	return b.Origin.Evaluate()
}

// String returns a string representation of the branch
func (b *Branch) String() string {
	return fmt.Sprintf("%s<%s>", b.Name, b.Origin.Label())
}
