package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

func sampleSummary() analysis.Summary {
	return analysis.Summary{
		Overall: analysis.Group{
			Difficulty:       "all",
			Questions:        1055,
			BaselineCorrect:  614,
			MemoryCorrect:    693,
			Improved:         120,
			Regressed:        41,
			TimedQuestions:   900,
			BaselineMeanTime: 0.31,
			MemoryMeanTime:   0.28,
		},
		ByDifficulty: []analysis.Group{
			{
				Difficulty:       "easy",
				Questions:        400,
				BaselineCorrect:  350,
				MemoryCorrect:    370,
				Improved:         25,
				Regressed:        5,
				TimedQuestions:   380,
				BaselineMeanTime: 0.12,
				MemoryMeanTime:   0.11,
			},
			{
				Difficulty:      "hard",
				Questions:       255,
				BaselineCorrect: 44,
				MemoryCorrect:   63,
				Improved:        30,
				Regressed:       11,
			},
		},
		Skipped: 2,
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, sampleSummary(), DefaultLabels); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"Benchmark Comparison",
		"Without Cipher",
		"With Cipher",
		"614/1055 (58.2%)",
		"693/1055 (65.7%)",
		"+7.5 pp",
		"Skipped 2 unpaired question(s).",
		"| easy | 400 |",
		"| hard | 255 |",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, analysis.Summary{}, DefaultLabels); err == nil {
		t.Error("expected error for empty summary")
	}
}

func TestGenerateSkipsUntimedGroups(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, sampleSummary(), DefaultLabels); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// The hard group has no timing data, so the time table must not
	// list it.
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "hard") &&
			strings.Contains(line, "ms") {
			t.Errorf("untimed group appeared in time table: %s", line)
		}
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateJSON(&buf, sampleSummary()); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var parsed struct {
		Overall struct {
			Questions        int     `json:"questions"`
			BaselineAccuracy float64 `json:"baseline_accuracy_pct"`
		} `json:"overall"`
		ByDifficulty []struct {
			Difficulty string `json:"difficulty"`
		} `json:"by_difficulty"`
		Skipped int `json:"skipped"`
	}

	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if parsed.Overall.Questions != 1055 {
		t.Errorf("questions = %d, want 1055", parsed.Overall.Questions)
	}
	if len(parsed.ByDifficulty) != 2 {
		t.Errorf("groups = %d, want 2", len(parsed.ByDifficulty))
	}
	if parsed.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", parsed.Skipped)
	}
}

func TestWriteSummaries(t *testing.T) {
	dir := t.TempDir()

	err := WriteSummaries(dir, "gpt5", sampleSummary(), DefaultLabels)
	if err != nil {
		t.Fatalf("WriteSummaries failed: %v", err)
	}

	checks := map[string][]string{
		"gpt5_improvement_summary.txt": {
			"IMPROVEMENT ANALYSIS",
			"Overall: 120/1055 questions (11.4%)",
			"easy: 25/400",
		},
		"gpt5_regression_summary.txt": {
			"REGRESSION ANALYSIS",
			"Overall: 41/1055 questions (3.9%)",
		},
		"gpt5_execution_time_summary.txt": {
			"EXECUTION TIME ANALYSIS",
			"Without Cipher: 0.3100 seconds",
			"With Cipher: 0.2800 seconds",
		},
		"gpt5_correct_answers_summary.txt": {
			"CORRECT ANSWERS ANALYSIS",
			"Without Cipher: 614/1055 (58.2%)",
			"With Cipher: 693/1055 (65.7%)",
			"Change: +7.5 pp",
		},
	}

	for name, fragments := range checks {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}

		for _, want := range fragments {
			if !strings.Contains(string(data), want) {
				t.Errorf("%s missing %q", name, want)
			}
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0.042, "42ms"},
		{0.5, "500ms"},
		{1.0, "1s"},
		{1.5, "1.5s"},
		{2.345, "2.345s"},
	}

	for _, tt := range tests {
		got := formatSeconds(tt.input)
		if got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q",
				tt.input, got, tt.want)
		}
	}
}
