// Package config loads the YAML experiment matrix used to drive
// batches of benchmark runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RyanNg1403/cipher-benchmark-results/runner"
)

// Experiment describes one benchmark invocation.
type Experiment struct {
	Name               string  `yaml:"name"`
	Model              string  `yaml:"model"`
	Scenario           string  `yaml:"scenario"`
	N                  int     `yaml:"n"`
	Temperature        float64 `yaml:"temperature"`
	NumProcessEvaluate int     `yaml:"num_process_evaluate"`
	Timeout            int     `yaml:"timeout"`
	Evaluate           *bool   `yaml:"evaluate"`
	UseMemory          bool    `yaml:"use_memory"`
	UseCache           bool    `yaml:"use_cache"`
	ContinueExisting   bool    `yaml:"continue_existing"`
}

// Config is the top-level experiment file.
type Config struct {
	RunnerCommand []string     `yaml:"runner_command"`
	OutputDir     string       `yaml:"output_dir"`
	Experiments   []Experiment `yaml:"experiments"`
}

// Load reads and validates an experiment file, filling defaults for
// omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.RunnerCommand) == 0 {
		c.RunnerCommand = runner.DefaultBenchCommand
	}

	if c.OutputDir == "" {
		c.OutputDir = "output"
	}

	for i := range c.Experiments {
		e := &c.Experiments[i]

		if e.Scenario == "" {
			e.Scenario = "codegeneration"
		}

		if e.N == 0 {
			e.N = 1
		}

		if e.Temperature == 0 {
			e.Temperature = 0.2
		}
	}
}

func (c *Config) validate() error {
	if len(c.Experiments) == 0 {
		return fmt.Errorf("no experiments defined")
	}

	for i, e := range c.Experiments {
		if e.Model == "" {
			return fmt.Errorf("experiment %d (%s): model is required",
				i, e.Name)
		}

		if e.N < 1 {
			return fmt.Errorf("experiment %d (%s): n must be >= 1",
				i, e.Name)
		}
	}

	return nil
}

// Bench converts an experiment into the runner's config. Evaluate
// defaults to true; a benchmark run without evaluation produces no
// file this tool can analyze.
func (e Experiment) Bench() runner.BenchConfig {
	evaluate := true
	if e.Evaluate != nil {
		evaluate = *e.Evaluate
	}

	return runner.BenchConfig{
		Model:              e.Model,
		Scenario:           e.Scenario,
		N:                  e.N,
		Temperature:        e.Temperature,
		NumProcessEvaluate: e.NumProcessEvaluate,
		Timeout:            e.Timeout,
		Evaluate:           evaluate,
		UseMemory:          e.UseMemory,
		UseCache:           e.UseCache,
		ContinueExisting:   e.ContinueExisting,
	}
}
