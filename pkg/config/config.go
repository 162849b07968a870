// Package config loads gatesim settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fyerfyer/gatesim/pkg/algorithm"
	"github.com/fyerfyer/gatesim/pkg/circuit"
	"github.com/fyerfyer/gatesim/pkg/report"
	"github.com/fyerfyer/gatesim/pkg/utils"
)

// Evaluator names
const (
	EvaluatorRecursive = "recursive"
	EvaluatorLevelized = "levelized"
)

var validate = validator.New()

// TableConfig controls truth table rendering
type TableConfig struct {
	Style        string `yaml:"style" validate:"oneof=plain bordered"`
	InputPrefix  string `yaml:"input_prefix" validate:"omitempty,alphanum,max=8"`
	OutputPrefix string `yaml:"output_prefix" validate:"omitempty,alphanum,max=8"`
}

// Config holds every gatesim setting
type Config struct {
	LogLevel  string      `yaml:"log_level" validate:"oneof=error warn warning info debug trace"`
	LogFile   string      `yaml:"log_file"`
	MaxInputs int         `yaml:"max_inputs" validate:"min=1,max=24"`
	Evaluator string      `yaml:"evaluator" validate:"oneof=recursive levelized"`
	Table     TableConfig `yaml:"table"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		MaxInputs: algorithm.DefaultMaxInputs,
		Evaluator: EvaluatorRecursive,
		Table: TableConfig{
			Style: report.StyleBordered,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			messages := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				messages = append(messages, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return errors.New(strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}

// NewLogger builds the logger described by the config
func (c *Config) NewLogger() (*utils.Logger, error) {
	level, err := utils.ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if c.LogFile != "" {
		return utils.NewFileLogger(level, c.LogFile)
	}
	return utils.NewLogger(level), nil
}

// NewGenerator builds a truth table generator for c using the configured evaluator
func (c *Config) NewGenerator(circ *circuit.Circuit, logger *utils.Logger) *algorithm.TruthTableGenerator {
	generator := algorithm.NewTruthTableGenerator(circ, logger)
	generator.MaxInputs = c.MaxInputs
	if c.Evaluator == EvaluatorLevelized {
		generator.Evaluator = algorithm.NewSimulator(circ, logger)
	}
	return generator
}

// RenderOptions returns the table rendering options
func (c *Config) RenderOptions() report.Options {
	return report.Options{
		Style:        c.Table.Style,
		InputPrefix:  c.Table.InputPrefix,
		OutputPrefix: c.Table.OutputPrefix,
	}
}
