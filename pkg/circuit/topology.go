package circuit

import (
	"sort"
)

// Topology contains information about the circuit structure
type Topology struct {
	Circuit      *Circuit
	LevelMap     map[*Gate]int // Longest distance, in gates, from the sources
	MaxLevel     int           // Maximum level in the circuit
	Order        []*Gate       // Gates sorted by level, ties in circuit order
	FanoutPoints []*Branch     // Branches with more than one consumer
	Sinks        []*Gate       // Gates not consumed by any other gate
}

// NewTopology creates a new topology analyzer for the given circuit
func NewTopology(c *Circuit) *Topology {
	return &Topology{
		Circuit:  c,
		LevelMap: make(map[*Gate]int),
	}
}

// Analyze performs a complete topological analysis of the circuit.
// It must be repeated after every structural change.
func (t *Topology) Analyze() {
	t.ComputeLevels()
	t.IdentifyFanoutPoints()
	t.Sinks = t.Circuit.SinkGates()
}

// ComputeLevels assigns a level to each gate. Sources are level 0, branches
// take the level of their origin, and a gate sits one level above its
// deepest input.
func (t *Topology) ComputeLevels() {
	t.LevelMap = make(map[*Gate]int, len(t.Circuit.Gates))
	t.MaxLevel = 0

	var levelOf func(n Node) int
	levelOf = func(n Node) int {
		switch n.Kind() {
		case SourceNode:
			return 0
		case BranchNode:
			return levelOf(n.Upstream()[0])
		}

		gate := t.Circuit.gateByID(n.NodeID())
		if level, ok := t.LevelMap[gate]; ok {
			return level
		}
		maxInputLevel := 0
		for _, in := range gate.Upstream() {
			if level := levelOf(in); level > maxInputLevel {
				maxInputLevel = level
			}
		}
		t.LevelMap[gate] = maxInputLevel + 1
		return maxInputLevel + 1
	}

	for _, gate := range t.Circuit.Gates {
		if level := levelOf(gate); level > t.MaxLevel {
			t.MaxLevel = level
		}
	}

	t.Order = make([]*Gate, len(t.Circuit.Gates))
	copy(t.Order, t.Circuit.Gates)
	sort.SliceStable(t.Order, func(i, j int) bool {
		return t.LevelMap[t.Order[i]] < t.LevelMap[t.Order[j]]
	})
}

// IdentifyFanoutPoints collects the branches currently feeding more than one gate
func (t *Topology) IdentifyFanoutPoints() {
	t.FanoutPoints = make([]*Branch, 0)
	for _, b := range t.Circuit.Branches {
		if len(t.Circuit.ConnectionsFrom(b)) > 1 {
			t.FanoutPoints = append(t.FanoutPoints, b)
		}
	}
}

// SinkGates returns, in circuit order, the gates whose output no other gate
// consumes, either directly or through a branch.
func (c *Circuit) SinkGates() []*Gate {
	sinks := make([]*Gate, 0)
	for _, g := range c.Gates {
		if !c.isConsumed(g) {
			sinks = append(sinks, g)
		}
	}
	return sinks
}

func (c *Circuit) isConsumed(g *Gate) bool {
	branch := c.BranchOf(g)
	for _, other := range c.Gates {
		if other == g {
			continue
		}
		if other.HasInput(g) || (branch != nil && other.HasInput(branch)) {
			return true
		}
	}
	return false
}

// DependsOn returns true if n is target or reads from target through any
// chain of connections.
func (c *Circuit) DependsOn(n Node, target Node) bool {
	return c.FindPathBetween(target, n) != nil
}

// FindPathBetween finds a signal path from start down to end, returned in
// signal flow order, or nil if end does not depend on start.
func (c *Circuit) FindPathBetween(start, end Node) []Node {
	// BFS walks upstream from end, so paths are built back to front
	visited := make(map[Node]bool)
	queue := [][]Node{{end}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		current := path[0]
		if current == start {
			return path
		}

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, in := range current.Upstream() {
			if !visited[in] {
				newPath := make([]Node, 0, len(path)+1)
				newPath = append(newPath, in)
				newPath = append(newPath, path...)
				queue = append(queue, newPath)
			}
		}
	}

	return nil
}

func (c *Circuit) gateByID(id int) *Gate {
	for _, g := range c.Gates {
		if g.ID == id {
			return g
		}
	}
	return nil
}
