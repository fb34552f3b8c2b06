// Package main provides the CLI entry point for cipherbench, a tool
// that drives LiveCodeBench evaluations with and without the Cipher
// memory layer and reports on the outcome.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanNg1403/cipher-benchmark-results/config"
	"github.com/RyanNg1403/cipher-benchmark-results/runner"
)

const geminiKeyEnv = "GEMINI_API_KEY"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "cipherbench",
		Short: "Benchmark an LLM memory layer on LiveCodeBench",
		Long: `Cipherbench runs the external LiveCodeBench harness with and
without the Cipher memory layer, then compares the evaluation output:
accuracy, improvements, regressions, and execution-time deltas, with
charts and text summaries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newMemoryCmd(logger))
	root.AddCommand(newAnalyzeCmd(logger))
	root.AddCommand(newReportCmd(logger))
	root.AddCommand(newHistoryCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		model              string
		scenario           string
		n                  int
		temperature        float64
		numProcessEvaluate int
		timeout            int
		evaluate           bool
		useMemory          bool
		useCache           bool
		continueExisting   bool
		outputDir          string
		runnerCmd          []string
		configPath         string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run benchmark evaluations through the external harness",
		Long: `Invoke the LiveCodeBench runner for one model, or for a batch of
experiments described in a YAML config, and report where the
evaluation files were written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if configPath != "" {
				return runBatch(ctx, logger, configPath)
			}

			bench := runner.BenchConfig{
				Model:              model,
				Scenario:           scenario,
				N:                  n,
				Temperature:        temperature,
				NumProcessEvaluate: numProcessEvaluate,
				Timeout:            timeout,
				Evaluate:           evaluate,
				UseMemory:          useMemory,
				UseCache:           useCache,
				ContinueExisting:   continueExisting,
			}

			return runOne(ctx, logger, runnerCmd, bench, outputDir)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&model, "model", "gpt-5-nano",
		"Model name passed to the benchmark runner")
	flags.StringVar(&scenario, "scenario", "codegeneration",
		"Benchmark scenario")
	flags.IntVar(&n, "n", 1,
		"Number of samples per problem")
	flags.Float64Var(&temperature, "temperature", 0.2,
		"Sampling temperature")
	flags.IntVar(&numProcessEvaluate, "num-process-evaluate", 12,
		"Parallel evaluation processes")
	flags.IntVar(&timeout, "timeout", 90,
		"Per-problem evaluation timeout in seconds")
	flags.BoolVar(&evaluate, "evaluate", true,
		"Evaluate generated code after sampling")
	flags.BoolVar(&useMemory, "use-memory", false,
		"Enable the Cipher memory layer for this run")
	flags.BoolVar(&useCache, "use-cache", false,
		"Reuse cached generations")
	flags.BoolVar(&continueExisting, "continue-existing", false,
		"Continue a partially finished run")
	flags.StringVar(&outputDir, "output-dir", "output",
		"Directory where the runner writes evaluation files")
	flags.StringSliceVar(&runnerCmd, "runner-cmd",
		runner.DefaultBenchCommand,
		"Command used to invoke the benchmark runner")
	flags.StringVar(&configPath, "config", "",
		"YAML experiment file (overrides the single-run flags)")

	return cmd
}

func runOne(
	ctx context.Context,
	logger *slog.Logger,
	command []string,
	bench runner.BenchConfig,
	outputDir string,
) error {
	// The memory layer embeds problems through the Gemini API; fail
	// before a long run rather than partway through it.
	if bench.UseMemory {
		if err := runner.RequireEnv(geminiKeyEnv); err != nil {
			return err
		}
	}

	r, err := runner.New(command, nil, logger)
	if err != nil {
		return err
	}

	evalPath, err := r.RunBenchmark(ctx, bench, outputDir)
	if err != nil {
		return fmt.Errorf("run %s: %w", bench.Model, err)
	}

	fmt.Println(evalPath)

	return nil
}

func runBatch(
	ctx context.Context,
	logger *slog.Logger,
	configPath string,
) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting experiment batch",
		slog.String("config", configPath),
		slog.Int("experiments", len(cfg.Experiments)),
	)

	for _, exp := range cfg.Experiments {
		if err := runOne(
			ctx, logger, cfg.RunnerCommand, exp.Bench(), cfg.OutputDir,
		); err != nil {
			return fmt.Errorf("experiment %s: %w", exp.Name, err)
		}
	}

	logger.InfoContext(ctx, "experiment batch complete")

	return nil
}

func newMemoryCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage the Cipher memory layer",
	}

	cmd.AddCommand(newMemoryBuildCmd(logger))

	return cmd
}

func newMemoryBuildCmd(logger *slog.Logger) *cobra.Command {
	var (
		inputFile      string
		model          string
		embeddingModel string
		collectionName string
		memoryCmd      []string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a memory collection from prior benchmark output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runner.RequireEnv(geminiKeyEnv); err != nil {
				return err
			}

			r, err := runner.New(memoryCmd, nil, logger)
			if err != nil {
				return err
			}

			return r.BuildMemory(cmd.Context(), runner.MemoryConfig{
				InputFile:      inputFile,
				Model:          model,
				EmbeddingModel: embeddingModel,
				CollectionName: collectionName,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputFile, "input-file", "",
		"Benchmark output file to build memories from")
	flags.StringVar(&model, "model", "gemini-2.5-flash",
		"Model used to distill memories")
	flags.StringVar(&embeddingModel, "embedding-model",
		"gemini-embedding-001", "Embedding model for the collection")
	flags.StringVar(&collectionName, "collection-name",
		"livecodebench", "Vector collection name")
	flags.StringSliceVar(&memoryCmd, "memory-cmd",
		runner.DefaultMemoryCommand,
		"Command used to invoke the memory builder")

	return cmd
}
