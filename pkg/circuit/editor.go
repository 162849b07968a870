package circuit

import "fmt"

// branchOffset places an automatically created branch to the right of its origin
var branchOffset = Position{X: 30, Y: 0}

// Connect wires origin into the given slot of gate.
//
// A Source or Gate drives at most one gate directly: once a second consumer
// attaches, a Branch is inserted after the origin and every consumer is
// rewired through it. Connect returns nil without changing anything when the
// slot is occupied, when origin already feeds gate, when the edge would close
// a cycle, or when either node does not belong to the circuit. Only an
// out-of-range slot is reported as an error.
func (c *Circuit) Connect(origin Node, gate *Gate, slot int) (*Connection, error) {
	if gate == nil {
		return nil, nil
	}
	if slot < 0 || slot >= len(gate.Inputs) {
		return nil, fmt.Errorf("connect %s: %w: %d (arity %d)", gate.Name, ErrInvalidSlot, slot, len(gate.Inputs))
	}
	if !c.Owns(origin) || !c.Owns(gate) {
		return nil, nil
	}
	if gate.Inputs[slot] != nil || gate.HasInput(origin) {
		return nil, nil
	}
	if c.DependsOn(origin, gate) {
		return nil, nil
	}

	finalSource := origin
	needsBranch := false
	if origin.Kind() != BranchNode {
		if b := c.BranchOf(origin); b != nil {
			finalSource = b
		} else if c.feedsOtherGate(origin, gate) {
			needsBranch = true
		}
	}
	if gate.HasInput(finalSource) {
		return nil, nil
	}
	if needsBranch {
		finalSource = c.split(origin, origin.Position().Offset(branchOffset.X, branchOffset.Y))
	}

	return c.link(finalSource, gate, slot), nil
}

// Disconnect clears a gate input slot and drops its connection. A branch left
// with a single consumer is kept. It returns false if the slot was empty.
func (c *Circuit) Disconnect(gate *Gate, slot int) (bool, error) {
	if gate == nil || !c.Owns(gate) {
		return false, nil
	}
	if slot < 0 || slot >= len(gate.Inputs) {
		return false, fmt.Errorf("disconnect %s: %w: %d (arity %d)", gate.Name, ErrInvalidSlot, slot, len(gate.Inputs))
	}
	if gate.Inputs[slot] == nil {
		return false, nil
	}

	gate.Inputs[slot] = nil
	kept := make([]*Connection, 0, len(c.Connections))
	for _, conn := range c.Connections {
		if conn.To == gate && conn.Slot == slot {
			continue
		}
		kept = append(kept, conn)
	}
	c.Connections = kept
	return true, nil
}

// InsertBranch splits an existing wire at pos. It has the same effect as the
// branch Connect creates for a second consumer, and works with a single
// consumer too. Wires already leaving a branch are not split again; nil is
// returned for them and for connections not in the circuit.
func (c *Circuit) InsertBranch(conn *Connection, pos Position) *Branch {
	if conn == nil || !c.hasConnection(conn) {
		return nil
	}
	if conn.From.Kind() == BranchNode {
		return nil
	}
	return c.split(conn.From, pos)
}

// split returns the branch of origin, creating it at pos if needed, and moves
// every connection leaving origin onto the branch.
func (c *Circuit) split(origin Node, pos Position) *Branch {
	b := c.BranchOf(origin)
	if b == nil {
		b = c.addBranch(pos, origin)
	}
	for _, conn := range c.Connections {
		if conn.From == origin {
			conn.From = b
			conn.To.Inputs[conn.Slot] = b
		}
	}
	return b
}

func (c *Circuit) link(from Node, gate *Gate, slot int) *Connection {
	conn := &Connection{From: from, To: gate, Slot: slot}
	gate.Inputs[slot] = from
	c.Connections = append(c.Connections, conn)
	return conn
}

func (c *Circuit) feedsOtherGate(origin Node, gate *Gate) bool {
	for _, conn := range c.Connections {
		if conn.From == origin && conn.To != gate {
			return true
		}
	}
	return false
}

func (c *Circuit) hasConnection(conn *Connection) bool {
	for _, existing := range c.Connections {
		if existing == conn {
			return true
		}
	}
	return false
}
