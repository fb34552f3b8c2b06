// Package runner drives the external LiveCodeBench CLI and the
// Cipher memory-building script as subprocesses.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultBenchCommand invokes the LiveCodeBench runner module.
var DefaultBenchCommand = []string{"python3", "-m", "lcb_runner.runner.main"}

// DefaultMemoryCommand invokes the Cipher memory-building script.
var DefaultMemoryCommand = []string{"python3", "build_memory.py"}

// BenchConfig holds the flags passed through to the benchmark runner
// for one evaluation run.
type BenchConfig struct {
	Model              string
	Scenario           string
	N                  int
	Temperature        float64
	NumProcessEvaluate int
	Timeout            int
	Evaluate           bool
	UseMemory          bool
	UseCache           bool
	ContinueExisting   bool
}

// Args renders the config as the external runner's underscore-style
// argv. Boolean flags are presence-only, matching argparse
// store_true semantics.
func (c BenchConfig) Args() []string {
	args := []string{
		"--model", c.Model,
		"--scenario", c.Scenario,
		"--n", strconv.Itoa(c.N),
		"--temperature", formatTemperature(c.Temperature),
	}

	if c.NumProcessEvaluate > 0 {
		args = append(args, "--num_process_evaluate",
			strconv.Itoa(c.NumProcessEvaluate))
	}

	if c.Timeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(c.Timeout))
	}

	if c.Evaluate {
		args = append(args, "--evaluate")
	}

	if c.UseMemory {
		args = append(args, "--use_memory")
	}

	if c.UseCache {
		args = append(args, "--use_cache")
	}

	if c.ContinueExisting {
		args = append(args, "--continue_existing")
	}

	return args
}

// MemoryConfig holds the flags for the memory-building script.
type MemoryConfig struct {
	InputFile      string
	Model          string
	EmbeddingModel string
	CollectionName string
}

// Args renders the config as the memory builder's argv.
func (c MemoryConfig) Args() []string {
	return []string{
		"--input_file", c.InputFile,
		"--model", c.Model,
		"--embedding_model", c.EmbeddingModel,
		"--collection_name", c.CollectionName,
	}
}

// OutputPath returns where the runner writes the evaluation file for
// the given run: <dir>/<Model>/Scenario.<scenario>_<n>_<temp>_eval_all.json.
func OutputPath(dir string, c BenchConfig) string {
	name := fmt.Sprintf("Scenario.%s_%d_%s_eval_all.json",
		c.Scenario, c.N, formatTemperature(c.Temperature))

	return filepath.Join(dir, c.Model, name)
}

// RequireEnv fails when any of the named environment variables is
// unset or empty. The runner itself reads them; checking up front
// turns a mid-run API failure into an immediate one.
func RequireEnv(keys ...string) error {
	for _, key := range keys {
		if os.Getenv(key) == "" {
			return fmt.Errorf("environment variable %s is not set", key)
		}
	}

	return nil
}

// Runner launches external commands and reports their outcome.
type Runner struct {
	Command []string
	Env     []string
	Logger  *slog.Logger
}

// New creates a Runner for the given command line. Env is appended to
// the inherited environment.
func New(command, env []string, logger *slog.Logger) (*Runner, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty runner command")
	}

	return &Runner{
		Command: command,
		Env:     env,
		Logger:  logger.With(slog.String("binary", command[0])),
	}, nil
}

// RunBenchmark executes one evaluation run and returns the path of
// the evaluation file the runner is expected to have written under
// outputDir.
func (r *Runner) RunBenchmark(
	ctx context.Context,
	cfg BenchConfig,
	outputDir string,
) (string, error) {
	if cfg.Model == "" {
		return "", fmt.Errorf("model is required")
	}

	if cfg.Scenario == "" {
		return "", fmt.Errorf("scenario is required")
	}

	r.Logger.Info("starting benchmark run",
		slog.String("model", cfg.Model),
		slog.String("scenario", cfg.Scenario),
		slog.Int("n", cfg.N),
		slog.Float64("temperature", cfg.Temperature),
		slog.Bool("use_memory", cfg.UseMemory),
	)

	start := time.Now()

	if err := r.run(ctx, cfg.Args()); err != nil {
		return "", fmt.Errorf("benchmark run: %w", err)
	}

	r.Logger.Info("benchmark run finished",
		slog.Duration("wall_time", time.Since(start)),
	)

	evalPath := OutputPath(outputDir, cfg)

	if _, err := os.Stat(evalPath); err != nil {
		return "", fmt.Errorf(
			"runner finished but evaluation file is missing at %s: %w",
			evalPath, err,
		)
	}

	return evalPath, nil
}

// BuildMemory executes the memory-building script.
func (r *Runner) BuildMemory(ctx context.Context, cfg MemoryConfig) error {
	if cfg.InputFile == "" {
		return fmt.Errorf("input file is required")
	}

	r.Logger.Info("building memory collection",
		slog.String("input_file", cfg.InputFile),
		slog.String("collection", cfg.CollectionName),
	)

	if err := r.run(ctx, cfg.Args()); err != nil {
		return fmt.Errorf("build memory: %w", err)
	}

	r.Logger.Info("memory collection built",
		slog.String("collection", cfg.CollectionName),
	)

	return nil
}

// run streams the subprocess output to stderr so the external tool's
// progress stays visible during long runs.
func (r *Runner) run(ctx context.Context, args []string) error {
	argv := make([]string, 0, len(r.Command)-1+len(args))
	argv = append(argv, r.Command[1:]...)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, r.Command[0], argv...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", r.Command[0], err)
	}

	return nil
}

// formatTemperature matches the runner's Python str() rendering, so
// resolved file names line up with what the runner actually writes.
func formatTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
