package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBenchConfigArgs(t *testing.T) {
	cfg := BenchConfig{
		Model:              "gpt-5-nano",
		Scenario:           "codegeneration",
		N:                  1,
		Temperature:        0.2,
		NumProcessEvaluate: 12,
		Timeout:            90,
		Evaluate:           true,
		UseMemory:          true,
		UseCache:           true,
		ContinueExisting:   true,
	}

	args := cfg.Args()

	want := []string{
		"--model", "gpt-5-nano",
		"--scenario", "codegeneration",
		"--n", "1",
		"--temperature", "0.2",
		"--num_process_evaluate", "12",
		"--timeout", "90",
		"--evaluate",
		"--use_memory",
		"--use_cache",
		"--continue_existing",
	}

	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBenchConfigArgsOmitsDisabledFlags(t *testing.T) {
	cfg := BenchConfig{
		Model:       "gpt-5-nano",
		Scenario:    "codegeneration",
		N:           1,
		Temperature: 0.2,
	}

	args := cfg.Args()

	for _, flag := range []string{
		"--evaluate", "--use_memory", "--use_cache",
		"--continue_existing", "--num_process_evaluate", "--timeout",
	} {
		if slices.Contains(args, flag) {
			t.Errorf("args should not contain %s: %v", flag, args)
		}
	}
}

func TestMemoryConfigArgs(t *testing.T) {
	cfg := MemoryConfig{
		InputFile:      "data/gpt5_no_memory.json",
		Model:          "gemini-2.5-flash",
		EmbeddingModel: "gemini-embedding-001",
		CollectionName: "livecodebench",
	}

	want := []string{
		"--input_file", "data/gpt5_no_memory.json",
		"--model", "gemini-2.5-flash",
		"--embedding_model", "gemini-embedding-001",
		"--collection_name", "livecodebench",
	}

	if got := cfg.Args(); !slices.Equal(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := BenchConfig{
		Model:       "GPT-5-Nano",
		Scenario:    "codegeneration",
		N:           1,
		Temperature: 0.2,
	}

	got := OutputPath("output", cfg)
	want := filepath.Join("output", "GPT-5-Nano",
		"Scenario.codegeneration_1_0.2_eval_all.json")

	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0.2, "0.2"},
		{0.0, "0.0"},
		{1.0, "1.0"},
		{0.95, "0.95"},
	}

	for _, tt := range tests {
		got := formatTemperature(tt.input)
		if got != tt.want {
			t.Errorf("formatTemperature(%v) = %q, want %q",
				tt.input, got, tt.want)
		}
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("CIPHERBENCH_TEST_KEY", "set")

	if err := RequireEnv("CIPHERBENCH_TEST_KEY"); err != nil {
		t.Errorf("unexpected error for set variable: %v", err)
	}

	if err := RequireEnv("CIPHERBENCH_TEST_MISSING"); err == nil {
		t.Error("expected error for unset variable")
	}
}

func TestNewEmptyCommand(t *testing.T) {
	if _, err := New(nil, nil, discardLogger()); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestRunBenchmarkMissingOutput(t *testing.T) {
	r, err := New([]string{"true"}, nil, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cfg := BenchConfig{
		Model:       "gpt-5-nano",
		Scenario:    "codegeneration",
		N:           1,
		Temperature: 0.2,
	}

	_, err = r.RunBenchmark(context.Background(), cfg, t.TempDir())
	if err == nil {
		t.Error("expected error when the evaluation file is missing")
	}
}

func TestRunBenchmarkFindsOutput(t *testing.T) {
	dir := t.TempDir()

	cfg := BenchConfig{
		Model:       "gpt-5-nano",
		Scenario:    "codegeneration",
		N:           1,
		Temperature: 0.2,
	}

	evalPath := OutputPath(dir, cfg)
	if err := os.MkdirAll(filepath.Dir(evalPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(evalPath, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write eval file: %v", err)
	}

	r, err := New([]string{"true"}, nil, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.RunBenchmark(context.Background(), cfg, dir)
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}
	if got != evalPath {
		t.Errorf("path = %q, want %q", got, evalPath)
	}
}

func TestRunBenchmarkValidates(t *testing.T) {
	r, err := New([]string{"true"}, nil, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := r.RunBenchmark(
		context.Background(), BenchConfig{Scenario: "codegeneration"}, ".",
	); err == nil {
		t.Error("expected error for missing model")
	}

	if _, err := r.RunBenchmark(
		context.Background(), BenchConfig{Model: "gpt-5-nano"}, ".",
	); err == nil {
		t.Error("expected error for missing scenario")
	}
}
