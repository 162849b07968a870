package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/config"
	"github.com/fyerfyer/gatesim/pkg/report"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string

	style     string
	maxInputs int
	evaluator string
	output    string

	cfg    *config.Config
	logger *utils.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "gatesim",
		Short:         "Combinational logic circuit simulator",
		Long:          `gatesim loads BENCH netlists, evaluates them and prints their truth tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (error, warning, info, debug, trace)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file (default: stderr)")

	tableCmd := &cobra.Command{
		Use:   "table <netlist>",
		Short: "Print the truth table of a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runTable(cmd, args[0])
		},
	}
	tableCmd.Flags().StringVar(&opts.style, "style", "", "Table style (plain, bordered)")
	tableCmd.Flags().IntVar(&opts.maxInputs, "max-inputs", 0, "Refuse circuits with more inputs than this")
	tableCmd.Flags().StringVar(&opts.evaluator, "evaluator", "", "Evaluator (recursive, levelized)")
	tableCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also write the table as vectors to this file")

	evalCmd := &cobra.Command{
		Use:   "eval <netlist> [bits]",
		Short: "Evaluate a circuit for one input assignment",
		Long:  `Evaluate a circuit and print every sink output. Bits are given in input order, e.g. 101; without them the netlist's initial values are used.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits := ""
			if len(args) == 2 {
				bits = args[1]
			}
			return opts.runEval(cmd, args[0], bits)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats <netlist>",
		Short: "Show the structure of a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runStats(cmd, args[0])
		},
	}

	rootCmd.AddCommand(tableCmd, evalCmd, statsCmd)
	return rootCmd
}

// setup loads the config and applies flag overrides
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("style") {
		cfg.Table.Style = o.style
	}
	if flags.Changed("max-inputs") {
		cfg.MaxInputs = o.maxInputs
	}
	if flags.Changed("evaluator") {
		cfg.Evaluator = o.evaluator
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	if cfg.LogFile == "" {
		logger.SetOutput(cmd.ErrOrStderr())
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}

func (o *options) load(path string) (*circuit.Circuit, error) {
	o.logger.Info("Parsing circuit from %s", path)
	c, err := utils.ParseBenchFile(path, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse circuit: %w", err)
	}
	return c, nil
}

func (o *options) runTable(cmd *cobra.Command, path string) error {
	c, err := o.load(path)
	if err != nil {
		return err
	}

	generator := o.cfg.NewGenerator(c, o.logger)
	table, err := generator.Generate()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(table, o.cfg.RenderOptions()))

	if o.output != "" {
		o.logger.Info("Writing %d rows to %s", len(table.Rows), o.output)
		if err := report.WriteVectors(o.output, table); err != nil {
			return err
		}
	}
	o.logger.Debug("%d evaluations in %v", generator.Stats.Evaluations, generator.Stats.TotalTime)
	return nil
}

func (o *options) runEval(cmd *cobra.Command, path, bits string) error {
	c, err := o.load(path)
	if err != nil {
		return err
	}

	assignment := c.GetInputs()
	if bits != "" {
		assignment, err = parseBits(bits)
		if err != nil {
			return err
		}
	}

	generator := o.cfg.NewGenerator(c, o.logger)
	outputs, err := generator.EvaluateAssignment(assignment)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, s := range c.Sources {
		fmt.Fprintf(out, "%s = %s\n", s.Name, assignment[i])
	}
	for i, sink := range c.SinkGates() {
		fmt.Fprintf(out, "%s = %s\n", sink.Name, outputs[i])
	}
	return nil
}

func (o *options) runStats(cmd *cobra.Command, path string) error {
	c, err := o.load(path)
	if err != nil {
		return err
	}

	topo := circuit.NewTopology(c)
	topo.Analyze()
	c.EvaluateAll()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Circuit: %s\n", c.Name)
	fmt.Fprintf(out, "Inputs: %d\n", len(c.Sources))
	fmt.Fprintf(out, "Gates: %d\n", len(c.Gates))
	fmt.Fprintf(out, "Branches: %d\n", len(c.Branches))
	fmt.Fprintf(out, "Connections: %d\n", len(c.Connections))
	fmt.Fprintf(out, "Levels: %d\n", topo.MaxLevel)
	fmt.Fprintf(out, "Sinks: %s\n", gateNames(topo.Sinks))

	fanout := make([]string, len(topo.FanoutPoints))
	for i, b := range topo.FanoutPoints {
		fanout[i] = b.String()
	}
	fmt.Fprintf(out, "Fan-out points: %s\n", strings.Join(fanout, " "))

	bt := algorithm.NewBacktrace(c, o.logger)
	for _, cone := range bt.SinkCones() {
		fmt.Fprintf(out, "Cone %s: %s\n", cone.Gate.Name, sourceNames(cone.Sources))
	}
	if unused := bt.Unused(); len(unused) > 0 {
		fmt.Fprintf(out, "Unused inputs: %s\n", sourceNames(unused))
	}

	if indicator := c.Indicator(); indicator != nil {
		fmt.Fprintf(out, "Indicator: %s = %s\n", indicator.Name, indicator.Output)
	}
	return nil
}

func parseBits(bits string) ([]circuit.Signal, error) {
	values := make([]circuit.Signal, 0, len(bits))
	for _, r := range bits {
		switch r {
		case '0':
			values = append(values, circuit.Zero)
		case '1':
			values = append(values, circuit.One)
		default:
			return nil, fmt.Errorf("invalid bit %q in %s", r, bits)
		}
	}
	return values, nil
}

func gateNames(gates []*circuit.Gate) string {
	names := make([]string, len(gates))
	for i, g := range gates {
		names[i] = g.Name
	}
	return strings.Join(names, " ")
}

func sourceNames(sources []*circuit.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return strings.Join(names, " ")
}
