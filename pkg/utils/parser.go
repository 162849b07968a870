package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fyerfyer/gatesim/pkg/circuit"
)

// ErrNetlist is wrapped by every netlist syntax or wiring error
var ErrNetlist = errors.New("invalid netlist")

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)(?:\s*=\s*([01]))?$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	gateRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// Layout of loaded circuits on the canvas
const (
	layoutLeft    = 50.0
	layoutTop     = 100.0
	layoutRowStep = 80.0
	layoutColStep = 150.0
)

type gateDecl struct {
	line   int
	name   string
	gate   *circuit.Gate
	inputs []string
}

// ParseBenchFile reads a BENCH netlist and builds the circuit it describes
func ParseBenchFile(filename string, logger *Logger) (*circuit.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return ParseBench(file, name, logger)
}

// ParseBench builds a circuit from BENCH text. Wiring goes through
// Circuit.Connect, so every signal used by more than one gate ends up behind
// a branch exactly as if it had been wired by hand. OUTPUT lines are checked
// but do not change anything: sink gates are the circuit outputs.
func ParseBench(r io.Reader, name string, logger *Logger) (*circuit.Circuit, error) {
	if logger == nil {
		logger = DefaultLogger
	}

	c := circuit.NewCircuit(name)
	signals := make(map[string]circuit.Node)
	decls := make([]*gateDecl, 0)
	outputs := make(map[string]int)

	// First pass: declare inputs and gates
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if matches := inputRegex.FindStringSubmatch(line); matches != nil {
			signal := matches[1]
			if _, exists := signals[signal]; exists {
				return nil, fmt.Errorf("line %d: %w: %s declared twice", lineNo, ErrNetlist, signal)
			}
			value := circuit.Zero
			if matches[2] == "1" {
				value = circuit.One
			}
			s := c.AddSource(circuit.Position{X: layoutLeft, Y: layoutTop + float64(len(c.Sources))*layoutRowStep}, value)
			s.Name = signal
			signals[signal] = s
			continue
		}

		if matches := outputRegex.FindStringSubmatch(line); matches != nil {
			outputs[matches[1]] = lineNo
			continue
		}

		if matches := gateRegex.FindStringSubmatch(line); matches != nil {
			signal := matches[1]
			if _, exists := signals[signal]; exists {
				return nil, fmt.Errorf("line %d: %w: %s declared twice", lineNo, ErrNetlist, signal)
			}
			gateType, err := circuit.ParseGateType(matches[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrNetlist, err)
			}

			inputs := strings.Split(matches[3], ",")
			for i := range inputs {
				inputs[i] = strings.TrimSpace(inputs[i])
			}
			if len(inputs) != gateType.Arity() {
				return nil, fmt.Errorf("line %d: %w: %s takes %d inputs, got %d",
					lineNo, ErrNetlist, gateType, gateType.Arity(), len(inputs))
			}

			g, err := c.AddGate(gateType, circuit.Position{})
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			g.Name = signal
			signals[signal] = g
			decls = append(decls, &gateDecl{line: lineNo, name: signal, gate: g, inputs: inputs})
			continue
		}

		return nil, fmt.Errorf("line %d: %w: cannot parse %q", lineNo, ErrNetlist, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading netlist: %w", err)
	}

	for signal, line := range outputs {
		if _, exists := signals[signal]; !exists {
			return nil, fmt.Errorf("line %d: %w: unknown output %s", line, ErrNetlist, signal)
		}
	}

	// Second pass: wire gate inputs in declaration order
	for _, decl := range decls {
		for slot, inputName := range decl.inputs {
			origin, exists := signals[inputName]
			if !exists {
				return nil, fmt.Errorf("line %d: %w: unknown signal %s", decl.line, ErrNetlist, inputName)
			}

			conn, err := c.Connect(origin, decl.gate, slot)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", decl.line, err)
			}
			if conn == nil {
				return nil, fmt.Errorf("line %d: %w: %s cannot feed %s (duplicate input or cycle)",
					decl.line, ErrNetlist, inputName, decl.name)
			}
			logger.Editor("%s", conn)
		}
	}

	layout(c)
	logger.Circuit("loaded %s: %d inputs, %d gates, %d branches",
		c.Name, len(c.Sources), len(c.Gates), len(c.Branches))
	return c, nil
}

// layout places gates in columns by level and branches next to their origin
func layout(c *circuit.Circuit) {
	topo := circuit.NewTopology(c)
	topo.ComputeLevels()

	rows := make(map[int]int)
	for _, g := range c.Gates {
		level := topo.LevelMap[g]
		c.MoveNode(g, circuit.Position{
			X: layoutLeft + float64(level)*layoutColStep,
			Y: layoutTop + float64(rows[level])*layoutRowStep,
		})
		rows[level]++
	}
	for _, b := range c.Branches {
		c.MoveNode(b, b.Origin.Position().Offset(30, 0))
	}
}
