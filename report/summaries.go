package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

// WriteSummaries writes the per-topic plain-text summaries next to
// the charts, one file each for improvements, regressions, execution
// time, and correct answers.
func WriteSummaries(
	dir, prefix string,
	s analysis.Summary,
	labels Labels,
) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create summary dir %s: %w", dir, err)
	}

	files := map[string]string{
		prefix + "_improvement_summary.txt":    improvementSummary(s),
		prefix + "_regression_summary.txt":     regressionSummary(s),
		prefix + "_execution_time_summary.txt": executionTimeSummary(s, labels),
		prefix + "_correct_answers_summary.txt": correctAnswersSummary(
			s, labels),
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write summary %s: %w", path, err)
		}
	}

	return nil
}

func header(title string) string {
	return title + "\n" + strings.Repeat("=", 50) + "\n\n"
}

func improvementSummary(s analysis.Summary) string {
	var b strings.Builder

	b.WriteString(header("IMPROVEMENT ANALYSIS (Wrong -> Right)"))
	fmt.Fprintf(&b, "Overall: %d/%d questions (%.1f%%)\n\n",
		s.Overall.Improved, s.Overall.Questions,
		s.Overall.ImprovementRate())
	b.WriteString("By Difficulty:\n")

	for _, g := range s.ByDifficulty {
		fmt.Fprintf(&b, "  %s: %d/%d (%.1f%%)\n",
			g.Difficulty, g.Improved, g.Questions, g.ImprovementRate())
	}

	return b.String()
}

func regressionSummary(s analysis.Summary) string {
	var b strings.Builder

	b.WriteString(header("REGRESSION ANALYSIS (Right -> Wrong)"))
	fmt.Fprintf(&b, "Overall: %d/%d questions (%.1f%%)\n\n",
		s.Overall.Regressed, s.Overall.Questions,
		s.Overall.RegressionRate())
	b.WriteString("By Difficulty:\n")

	for _, g := range s.ByDifficulty {
		fmt.Fprintf(&b, "  %s: %d/%d (%.1f%%)\n",
			g.Difficulty, g.Regressed, g.Questions, g.RegressionRate())
	}

	return b.String()
}

func executionTimeSummary(s analysis.Summary, labels Labels) string {
	var b strings.Builder

	b.WriteString(header("EXECUTION TIME ANALYSIS"))
	b.WriteString("Overall Average:\n")
	fmt.Fprintf(&b, "  %s: %.4f seconds\n",
		labels.Baseline, s.Overall.BaselineMeanTime)
	fmt.Fprintf(&b, "  %s: %.4f seconds\n",
		labels.Memory, s.Overall.MemoryMeanTime)
	fmt.Fprintf(&b, "  Change: %+.1f%%\n\n", s.Overall.TimeChangePct())
	b.WriteString("By Difficulty:\n")

	for _, g := range s.ByDifficulty {
		fmt.Fprintf(&b, "  %s:\n", g.Difficulty)
		fmt.Fprintf(&b, "    %s: %.4fs\n",
			labels.Baseline, g.BaselineMeanTime)
		fmt.Fprintf(&b, "    %s: %.4fs\n",
			labels.Memory, g.MemoryMeanTime)
		fmt.Fprintf(&b, "    Change: %+.1f%%\n\n", g.TimeChangePct())
	}

	return b.String()
}

func correctAnswersSummary(s analysis.Summary, labels Labels) string {
	var b strings.Builder

	b.WriteString(header("CORRECT ANSWERS ANALYSIS"))
	b.WriteString("Overall Accuracy:\n")
	fmt.Fprintf(&b, "  %s: %d/%d (%.1f%%)\n",
		labels.Baseline, s.Overall.BaselineCorrect,
		s.Overall.Questions, s.Overall.BaselineAccuracy())
	fmt.Fprintf(&b, "  %s: %d/%d (%.1f%%)\n",
		labels.Memory, s.Overall.MemoryCorrect,
		s.Overall.Questions, s.Overall.MemoryAccuracy())
	fmt.Fprintf(&b, "  Change: %+.1f pp\n\n", s.Overall.AccuracyChange())
	b.WriteString("By Difficulty:\n")

	for _, g := range s.ByDifficulty {
		fmt.Fprintf(&b, "  %s:\n", g.Difficulty)
		fmt.Fprintf(&b, "    %s: %d/%d (%.1f%%)\n",
			labels.Baseline, g.BaselineCorrect, g.Questions,
			g.BaselineAccuracy())
		fmt.Fprintf(&b, "    %s: %d/%d (%.1f%%)\n",
			labels.Memory, g.MemoryCorrect, g.Questions,
			g.MemoryAccuracy())
		fmt.Fprintf(&b, "    Change: %+.1f pp\n\n", g.AccuracyChange())
	}

	return b.String()
}
