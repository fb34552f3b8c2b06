// Package report formats benchmark comparisons into markdown tables
// and plain-text summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

// Labels names the two runs being compared in rendered output.
type Labels struct {
	Baseline string
	Memory   string
}

// DefaultLabels matches the published experiment write-up.
var DefaultLabels = Labels{
	Baseline: "Without Cipher",
	Memory:   "With Cipher",
}

// Generate writes a markdown comparison report for the summary.
func Generate(w io.Writer, s analysis.Summary, labels Labels) error {
	if s.Overall.Questions == 0 {
		return fmt.Errorf("no paired results to report")
	}

	o := s.Overall

	fmt.Fprintln(w, "## Benchmark Comparison")
	fmt.Fprintln(w)

	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d unpaired question(s).\n\n", s.Skipped)
	}

	fmt.Fprintf(w, "| Metric | %s | %s | Change |\n",
		labels.Baseline, labels.Memory)
	fmt.Fprintln(w, "|--------|------|------|--------|")
	fmt.Fprintf(w,
		"| Accuracy | %d/%d (%.1f%%) | %d/%d (%.1f%%) | %+.1f pp |\n",
		o.BaselineCorrect, o.Questions, o.BaselineAccuracy(),
		o.MemoryCorrect, o.Questions, o.MemoryAccuracy(),
		o.AccuracyChange(),
	)
	fmt.Fprintf(w, "| Improved (wrong to right) | - | %d/%d | %.1f%% |\n",
		o.Improved, o.Questions, o.ImprovementRate())
	fmt.Fprintf(w, "| Regressed (right to wrong) | - | %d/%d | %.1f%% |\n",
		o.Regressed, o.Questions, o.RegressionRate())

	if o.TimedQuestions > 0 {
		fmt.Fprintf(w, "| Mean execution time | %s | %s | %+.1f%% |\n",
			formatSeconds(o.BaselineMeanTime),
			formatSeconds(o.MemoryMeanTime),
			o.TimeChangePct(),
		)
	}

	fmt.Fprintln(w)

	// Per-difficulty breakdown.
	fmt.Fprintf(w, "| Difficulty | Questions | %s | %s "+
		"| Improved | Regressed |\n", labels.Baseline, labels.Memory)
	fmt.Fprintln(w, "|------------|-----------|------|------"+
		"|----------|-----------|")

	for _, g := range s.ByDifficulty {
		fmt.Fprintf(w, "| %s | %d | %d (%.1f%%) | %d (%.1f%%) "+
			"| %d (%.1f%%) | %d (%.1f%%) |\n",
			g.Difficulty, g.Questions,
			g.BaselineCorrect, g.BaselineAccuracy(),
			g.MemoryCorrect, g.MemoryAccuracy(),
			g.Improved, g.ImprovementRate(),
			g.Regressed, g.RegressionRate(),
		)
	}

	if hasTimedGroup(s) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "| Difficulty | %s | %s | Change |\n",
			labels.Baseline, labels.Memory)
		fmt.Fprintln(w, "|------------|------|------|--------|")

		for _, g := range s.ByDifficulty {
			if g.TimedQuestions == 0 {
				continue
			}

			fmt.Fprintf(w, "| %s | %s | %s | %+.1f%% |\n",
				g.Difficulty,
				formatSeconds(g.BaselineMeanTime),
				formatSeconds(g.MemoryMeanTime),
				g.TimeChangePct(),
			)
		}
	}

	return nil
}

// GenerateJSON writes the summary as indented JSON to w.
func GenerateJSON(w io.Writer, s analysis.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(summaryJSON(s))
}

func hasTimedGroup(s analysis.Summary) bool {
	for _, g := range s.ByDifficulty {
		if g.TimedQuestions > 0 {
			return true
		}
	}

	return false
}

func formatSeconds(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.0fms", s*1000)
	}

	formatted := fmt.Sprintf("%.3f", s)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + "s"
}

type groupJSON struct {
	Difficulty       string  `json:"difficulty"`
	Questions        int     `json:"questions"`
	BaselineCorrect  int     `json:"baseline_correct"`
	MemoryCorrect    int     `json:"memory_correct"`
	Improved         int     `json:"improved"`
	Regressed        int     `json:"regressed"`
	BaselineAccuracy float64 `json:"baseline_accuracy_pct"`
	MemoryAccuracy   float64 `json:"memory_accuracy_pct"`
	TimedQuestions   int     `json:"timed_questions"`
	BaselineMeanTime float64 `json:"baseline_mean_time_s"`
	MemoryMeanTime   float64 `json:"memory_mean_time_s"`
}

func toGroupJSON(g analysis.Group) groupJSON {
	return groupJSON{
		Difficulty:       g.Difficulty,
		Questions:        g.Questions,
		BaselineCorrect:  g.BaselineCorrect,
		MemoryCorrect:    g.MemoryCorrect,
		Improved:         g.Improved,
		Regressed:        g.Regressed,
		BaselineAccuracy: g.BaselineAccuracy(),
		MemoryAccuracy:   g.MemoryAccuracy(),
		TimedQuestions:   g.TimedQuestions,
		BaselineMeanTime: g.BaselineMeanTime,
		MemoryMeanTime:   g.MemoryMeanTime,
	}
}

func summaryJSON(s analysis.Summary) map[string]any {
	groups := make([]groupJSON, 0, len(s.ByDifficulty))
	for _, g := range s.ByDifficulty {
		groups = append(groups, toGroupJSON(g))
	}

	return map[string]any{
		"overall":       toGroupJSON(s.Overall),
		"by_difficulty": groups,
		"skipped":       s.Skipped,
	}
}
