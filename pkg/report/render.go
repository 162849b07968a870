// Package report renders truth tables for terminals and files.
package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/circuit"
)

// Table styles
const (
	StylePlain    = "plain"
	StyleBordered = "bordered"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)

	highStyle = cellStyle.
			Foreground(lipgloss.Color("#2ECC71")).
			Bold(true)

	lowStyle = cellStyle.
			Foreground(lipgloss.Color("#E74C3C"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Options controls how a truth table is rendered
type Options struct {
	Style        string // StylePlain or StyleBordered
	InputPrefix  string // When set, input columns are named InputPrefix1..n
	OutputPrefix string // When set, output columns are named OutputPrefix1..m
}

// Headers returns the column labels of a table under the given options
func Headers(tt *algorithm.TruthTable, opts Options) []string {
	headers := make([]string, 0, tt.NumInputs()+tt.NumOutputs())
	headers = append(headers, labels(tt.InputLabels, opts.InputPrefix)...)
	headers = append(headers, labels(tt.OutputLabels, opts.OutputPrefix)...)
	return headers
}

func labels(names []string, prefix string) []string {
	if prefix == "" {
		return names
	}
	out := make([]string, len(names))
	for i := range names {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

// Render formats a truth table, input columns first, then output columns
func Render(tt *algorithm.TruthTable, opts Options) string {
	headers := Headers(tt, opts)
	rows := make([][]string, len(tt.Rows))
	for i, row := range tt.Rows {
		rows[i] = cells(row)
	}

	if opts.Style != StyleBordered {
		var builder strings.Builder
		builder.WriteString(strings.Join(headers, "\t"))
		builder.WriteString("\n")
		for _, row := range rows {
			builder.WriteString(strings.Join(row, "\t"))
			builder.WriteString("\n")
		}
		return builder.String()
	}

	inputs := tt.NumInputs()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < inputs:
				return cellStyle
			case tt.Rows[row][col] == circuit.One:
				return highStyle
			default:
				return lowStyle
			}
		})

	return t.String() + "\n"
}

func cells(row []circuit.Signal) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.String()
	}
	return out
}

// WriteVectors writes the table to a file, one assignment per line with its outputs
func WriteVectors(filename string, tt *algorithm.TruthTable) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "# Truth table generated by gatesim\n")
	fmt.Fprintf(writer, "# Inputs: %s\n", strings.Join(tt.InputLabels, " "))
	fmt.Fprintf(writer, "# Outputs: %s\n", strings.Join(tt.OutputLabels, " "))

	for i := range tt.Rows {
		fmt.Fprintf(writer, "%s %s\n",
			strings.Join(cells(tt.Inputs(i)), ""),
			strings.Join(cells(tt.Outputs(i)), ""))
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
