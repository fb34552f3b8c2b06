package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

var testLabels = Labels{Baseline: "Without Cipher", Memory: "With Cipher"}

func sampleSummary() analysis.Summary {
	return analysis.Summary{
		Overall: analysis.Group{
			Difficulty:       "all",
			Questions:        100,
			BaselineCorrect:  60,
			MemoryCorrect:    70,
			Improved:         15,
			Regressed:        5,
			TimedQuestions:   90,
			BaselineMeanTime: 0.3,
			MemoryMeanTime:   0.25,
		},
		ByDifficulty: []analysis.Group{
			{
				Difficulty:       "easy",
				Questions:        50,
				BaselineCorrect:  40,
				MemoryCorrect:    45,
				Improved:         6,
				Regressed:        1,
				TimedQuestions:   48,
				BaselineMeanTime: 0.1,
				MemoryMeanTime:   0.09,
			},
			{
				Difficulty:       "hard",
				Questions:        50,
				BaselineCorrect:  20,
				MemoryCorrect:    25,
				Improved:         9,
				Regressed:        4,
				TimedQuestions:   42,
				BaselineMeanTime: 0.5,
				MemoryMeanTime:   0.41,
			},
		},
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()

	if err := WriteAll(dir, "gpt5", sampleSummary(), testLabels); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	for _, name := range []string{
		"gpt5_correct_answers_analysis.png",
		"gpt5_improvement_analysis.png",
		"gpt5_regression_analysis.png",
		"gpt5_execution_time_analysis.png",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing chart %s: %v", name, err)

			continue
		}

		if info.Size() == 0 {
			t.Errorf("chart %s is empty", name)
		}
	}
}

func TestWriteAllEmptySummary(t *testing.T) {
	err := WriteAll(t.TempDir(), "gpt5", analysis.Summary{}, testLabels)
	if err == nil {
		t.Error("expected error for empty summary")
	}
}

func TestWriteAllCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")

	if err := WriteAll(dir, "gpt5", sampleSummary(), testLabels); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("plots dir was not created: %v", err)
	}
}
