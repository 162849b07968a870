package circuit

import (
	"fmt"
	"strings"
)

// Connection is a directed edge from an origin node into one input slot of a gate
type Connection struct {
	From Node  // Source, Gate or Branch
	To   *Gate // Destination gate
	Slot int   // Input slot of To holding From
}

// String returns a string representation of the connection
func (conn *Connection) String() string {
	return fmt.Sprintf("%s -> %s[%d]", conn.From.Label(), conn.To.Name, conn.Slot)
}

// Circuit owns every node and connection of a combinational circuit.
// It is not safe for concurrent use.
type Circuit struct {
	Name        string
	Sources     []*Source
	Gates       []*Gate
	Branches    []*Branch
	Connections []*Connection

	nodes     map[int]Node
	nextID    int
	sourceSeq int
	gateSeq   int
	branchSeq int
}

// NewCircuit creates a new empty circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:        name,
		Sources:     make([]*Source, 0),
		Gates:       make([]*Gate, 0),
		Branches:    make([]*Branch, 0),
		Connections: make([]*Connection, 0),
		nodes:       make(map[int]Node),
		nextID:      1,
	}
}

func (c *Circuit) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}

// AddSource appends a new input with the given value
func (c *Circuit) AddSource(pos Position, value Signal) *Source {
	c.sourceSeq++
	s := NewSource(c.allocID(), fmt.Sprintf("In%d", c.sourceSeq), pos, value)
	c.Sources = append(c.Sources, s)
	c.nodes[s.ID] = s
	return s
}

// AddGate appends a new gate with empty input slots
func (c *Circuit) AddGate(gateType GateType, pos Position) (*Gate, error) {
	if !gateType.IsValid() {
		return nil, fmt.Errorf("add gate: %w: %d", ErrUnknownGateType, int(gateType))
	}
	c.gateSeq++
	g := NewGate(c.allocID(), fmt.Sprintf("G%d", c.gateSeq), gateType, pos)
	c.Gates = append(c.Gates, g)
	c.nodes[g.ID] = g
	return g, nil
}

func (c *Circuit) addBranch(pos Position, origin Node) *Branch {
	c.branchSeq++
	b := NewBranch(c.allocID(), fmt.Sprintf("B%d", c.branchSeq), pos, origin)
	c.Branches = append(c.Branches, b)
	c.nodes[b.ID] = b
	return b
}

// Node returns the node with the given ID, or nil
func (c *Circuit) Node(id int) Node {
	return c.nodes[id]
}

// Owns returns true if n is a live node of this circuit. Nil nodes,
// including typed nil pointers, are never owned.
func (c *Circuit) Owns(n Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case *Source:
		if v == nil {
			return false
		}
	case *Gate:
		if v == nil {
			return false
		}
	case *Branch:
		if v == nil {
			return false
		}
	}
	owned, ok := c.nodes[n.NodeID()]
	return ok && owned == n
}

// GetSource returns a source by name
func (c *Circuit) GetSource(name string) *Source {
	for _, s := range c.Sources {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// GetGate returns a gate by name
func (c *Circuit) GetGate(name string) *Gate {
	for _, g := range c.Gates {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// BranchOf returns the branch tapping origin, or nil
func (c *Circuit) BranchOf(origin Node) *Branch {
	for _, b := range c.Branches {
		if b.Origin == origin {
			return b
		}
	}
	return nil
}

// ConnectionsFrom returns every connection whose origin is n
func (c *Circuit) ConnectionsFrom(n Node) []*Connection {
	result := make([]*Connection, 0)
	for _, conn := range c.Connections {
		if conn.From == n {
			result = append(result, conn)
		}
	}
	return result
}

// ConnectionAt returns the connection feeding the given gate slot, or nil
func (c *Circuit) ConnectionAt(g *Gate, slot int) *Connection {
	for _, conn := range c.Connections {
		if conn.To == g && conn.Slot == slot {
			return conn
		}
	}
	return nil
}

// ToggleSource flips a source between 0 and 1
func (c *Circuit) ToggleSource(s *Source) {
	if s != nil {
		s.Toggle()
	}
}

// SetInputs writes values into the sources in order. Extra values are ignored.
func (c *Circuit) SetInputs(values []Signal) {
	for i, s := range c.Sources {
		if i >= len(values) {
			break
		}
		s.Value = FromBool(values[i] == One)
	}
}

// GetInputs returns the current source values in order
func (c *Circuit) GetInputs() []Signal {
	values := make([]Signal, len(c.Sources))
	for i, s := range c.Sources {
		values[i] = s.Value
	}
	return values
}

// RemoveSource removes a source and everything wired from it.
// It returns false if the source is not part of the circuit.
func (c *Circuit) RemoveSource(s *Source) bool {
	if s == nil || !c.Owns(s) {
		return false
	}
	c.detach(s)
	c.Sources = removeItem(c.Sources, s)
	delete(c.nodes, s.ID)
	return true
}

// RemoveGate removes a gate together with its incoming and outgoing connections.
// It returns false if the gate is not part of the circuit.
func (c *Circuit) RemoveGate(g *Gate) bool {
	if g == nil || !c.Owns(g) {
		return false
	}
	c.detach(g)

	kept := make([]*Connection, 0, len(c.Connections))
	for _, conn := range c.Connections {
		if conn.To != g {
			kept = append(kept, conn)
		}
	}
	c.Connections = kept
	for i := range g.Inputs {
		g.Inputs[i] = nil
	}

	c.Gates = removeItem(c.Gates, g)
	delete(c.nodes, g.ID)
	return true
}

// detach drops every connection originating at n, including those leaving
// a branch of n, and removes that branch.
func (c *Circuit) detach(n Node) {
	if b := c.BranchOf(n); b != nil {
		c.dropConnectionsFrom(b)
		c.Branches = removeItem(c.Branches, b)
		delete(c.nodes, b.ID)
	}
	c.dropConnectionsFrom(n)
}

func (c *Circuit) dropConnectionsFrom(n Node) {
	kept := make([]*Connection, 0, len(c.Connections))
	for _, conn := range c.Connections {
		if conn.From == n {
			conn.To.Inputs[conn.Slot] = nil
			continue
		}
		kept = append(kept, conn)
	}
	c.Connections = kept
}

// MoveNode updates the canvas position of a node
func (c *Circuit) MoveNode(n Node, pos Position) {
	if c.Owns(n) {
		n.MoveTo(pos)
	}
}

// Reset clears the circuit and adds n inputs at 0 stacked on the left edge
func (c *Circuit) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.Sources = make([]*Source, 0, n)
	c.Gates = make([]*Gate, 0)
	c.Branches = make([]*Branch, 0)
	c.Connections = make([]*Connection, 0)
	c.nodes = make(map[int]Node)
	c.nextID = 1
	c.sourceSeq, c.gateSeq, c.branchSeq = 0, 0, 0

	for i := 0; i < n; i++ {
		c.AddSource(Position{X: 50, Y: 100 + float64(i)*80}, Zero)
	}
}

// EvaluateAll recomputes every gate output from the current source values
// and returns them in gate order.
func (c *Circuit) EvaluateAll() []Signal {
	outputs := make([]Signal, len(c.Gates))
	for i, g := range c.Gates {
		outputs[i] = g.Evaluate()
	}
	return outputs
}

// Outputs returns the cached gate outputs in gate order without evaluating
func (c *Circuit) Outputs() []Signal {
	outputs := make([]Signal, len(c.Gates))
	for i, g := range c.Gates {
		outputs[i] = g.Output
	}
	return outputs
}

// Indicator returns the rightmost gate, which drives the output indicator
func (c *Circuit) Indicator() *Gate {
	var rightmost *Gate
	for _, g := range c.Gates {
		if rightmost == nil || g.Pos.X > rightmost.Pos.X {
			rightmost = g
		}
	}
	return rightmost
}

// String returns a string representation of the circuit state
func (c *Circuit) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", c.Name))

	builder.WriteString("Inputs: ")
	for _, s := range c.Sources {
		builder.WriteString(fmt.Sprintf("%s ", s))
	}

	builder.WriteString("\nGates: ")
	for _, g := range c.Gates {
		builder.WriteString(fmt.Sprintf("%s=%s ", g, g.Output))
	}

	builder.WriteString("\nBranches: ")
	for _, b := range c.Branches {
		builder.WriteString(fmt.Sprintf("%s ", b))
	}

	builder.WriteString("\nConnections: ")
	for _, conn := range c.Connections {
		builder.WriteString(fmt.Sprintf("%s; ", conn))
	}

	return builder.String()
}

func removeItem[T comparable](items []T, item T) []T {
	for i, it := range items {
		if it == item {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
