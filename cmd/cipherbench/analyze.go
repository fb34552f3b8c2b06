package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
	"github.com/RyanNg1403/cipher-benchmark-results/chart"
	"github.com/RyanNg1403/cipher-benchmark-results/report"
	"github.com/RyanNg1403/cipher-benchmark-results/results"
	"github.com/RyanNg1403/cipher-benchmark-results/store"
)

const defaultHistoryDB = ".cipherbench/history.db"

type analyzeConfig struct {
	baselinePath  string
	memoryPath    string
	plotsDir      string
	prefix        string
	labelBaseline string
	labelMemory   string
	dbPath        string
	noArchive     bool
	passK         int
}

func newAnalyzeCmd(logger *slog.Logger) *cobra.Command {
	var cfg analyzeConfig

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare two evaluation files and render charts",
		Long: `Load a baseline and a memory-enabled evaluation file, pair them
by question, and write PNG charts plus text summaries for accuracy,
improvements, regressions, and execution time.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runAnalyze(logger, cfg)
		},
	}

	addComparisonFlags(cmd, &cfg)

	flags := cmd.Flags()
	flags.StringVar(&cfg.plotsDir, "plots-dir", "plots",
		"Directory for charts and text summaries")
	flags.StringVar(&cfg.prefix, "prefix", "gpt5",
		"Filename prefix for charts and summaries")
	flags.StringVar(&cfg.dbPath, "db", defaultHistoryDB,
		"Path of the run-history database")
	flags.BoolVar(&cfg.noArchive, "no-archive", false,
		"Skip recording the summary in the history database")
	flags.IntVar(&cfg.passK, "k", 1,
		"k for the pass@k estimate (needs graded lists in the input)")

	return cmd
}

func addComparisonFlags(cmd *cobra.Command, cfg *analyzeConfig) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.baselinePath, "baseline",
		"data/gpt5_no_memory.json",
		"Evaluation file of the run without memory")
	flags.StringVar(&cfg.memoryPath, "memory",
		"data/gpt5_with_memory.json",
		"Evaluation file of the run with memory")
	flags.StringVar(&cfg.labelBaseline, "label-baseline",
		report.DefaultLabels.Baseline, "Display name of the baseline run")
	flags.StringVar(&cfg.labelMemory, "label-memory",
		report.DefaultLabels.Memory, "Display name of the memory run")
}

func runAnalyze(logger *slog.Logger, cfg analyzeConfig) error {
	summary, memRecords, err := loadAndSummarize(logger, cfg)
	if err != nil {
		return err
	}

	labels := report.Labels{
		Baseline: cfg.labelBaseline,
		Memory:   cfg.labelMemory,
	}

	chartLabels := chart.Labels{
		Baseline: cfg.labelBaseline,
		Memory:   cfg.labelMemory,
	}

	logger.Info("writing charts",
		slog.String("dir", cfg.plotsDir),
		slog.String("prefix", cfg.prefix),
	)

	if err := chart.WriteAll(
		cfg.plotsDir, cfg.prefix, summary, chartLabels,
	); err != nil {
		return fmt.Errorf("write charts: %w", err)
	}

	if err := report.WriteSummaries(
		cfg.plotsDir, cfg.prefix, summary, labels,
	); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}

	if err := report.Generate(os.Stdout, summary, labels); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if cfg.passK > 1 {
		if mean, ok := analysis.MeanPassAtK(memRecords, cfg.passK); ok {
			logger.Info("pass@k estimate for memory run",
				slog.Int("k", cfg.passK),
				slog.Float64("pass_at_k", mean),
			)
		} else {
			logger.Warn("no graded lists present, pass@k unavailable",
				slog.Int("k", cfg.passK),
			)
		}
	}

	if !cfg.noArchive {
		// Archiving is a convenience; a failure here must not void
		// the analysis that already happened.
		if err := archiveSummary(cfg, summary); err != nil {
			logger.Warn("failed to archive summary",
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func loadAndSummarize(
	logger *slog.Logger,
	cfg analyzeConfig,
) (analysis.Summary, []results.Record, error) {
	baseline, err := results.Load(cfg.baselinePath)
	if err != nil {
		return analysis.Summary{}, nil,
			fmt.Errorf("load baseline: %w", err)
	}

	memory, err := results.Load(cfg.memoryPath)
	if err != nil {
		return analysis.Summary{}, nil,
			fmt.Errorf("load memory run: %w", err)
	}

	logger.Info("loaded evaluation files",
		slog.Int("baseline_questions", len(baseline)),
		slog.Int("memory_questions", len(memory)),
	)

	pairs, skipped := results.MatchByQuestion(logger, baseline, memory)

	return analysis.Summarize(pairs, skipped), memory, nil
}

func archiveSummary(cfg analyzeConfig, summary analysis.Summary) error {
	s, err := store.Open(cfg.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Save(cfg.baselinePath, cfg.memoryPath, summary)

	return err
}

func newReportCmd(logger *slog.Logger) *cobra.Command {
	var (
		cfg        analyzeConfig
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the comparison report without writing charts",
		RunE: func(_ *cobra.Command, _ []string) error {
			summary, _, err := loadAndSummarize(logger, cfg)
			if err != nil {
				return err
			}

			if outputJSON {
				return report.GenerateJSON(os.Stdout, summary)
			}

			return report.Generate(os.Stdout, summary, report.Labels{
				Baseline: cfg.labelBaseline,
				Memory:   cfg.labelMemory,
			})
		},
	}

	addComparisonFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&outputJSON, "json", false,
		"Output the summary as JSON instead of markdown")

	return cmd
}

func newHistoryCmd(_ *slog.Logger) *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived comparison summaries",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.List(limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("no archived summaries")

				return nil
			}

			fmt.Println("| ID | Date | Baseline | Memory " +
				"| Accuracy | Improved | Regressed |")
			fmt.Println("|----|------|----------|--------" +
				"|----------|----------|-----------|")

			for _, e := range entries {
				fmt.Printf("| %d | %s | %s | %s | %d/%d -> %d/%d "+
					"| %d | %d |\n",
					e.ID, e.CreatedAt.Format("2006-01-02 15:04"),
					e.BaselinePath, e.MemoryPath,
					e.BaselineCorrect, e.Questions,
					e.MemoryCorrect, e.Questions,
					e.Improved, e.Regressed,
				)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dbPath, "db", defaultHistoryDB,
		"Path of the run-history database")
	flags.IntVar(&limit, "limit", 20,
		"Maximum number of entries to list")

	return cmd
}
