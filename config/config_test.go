package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "experiments.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
output_dir: results
experiments:
  - name: baseline
    model: gpt-5-nano
    use_cache: true
  - name: with-memory
    model: gpt-5-nano
    n: 3
    temperature: 0.7
    use_memory: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "results" {
		t.Errorf("output_dir = %q, want results", cfg.OutputDir)
	}
	if len(cfg.RunnerCommand) == 0 {
		t.Error("expected default runner command")
	}
	if len(cfg.Experiments) != 2 {
		t.Fatalf("experiments = %d, want 2", len(cfg.Experiments))
	}

	// Defaults for the first experiment.
	first := cfg.Experiments[0]
	if first.Scenario != "codegeneration" {
		t.Errorf("scenario = %q, want codegeneration", first.Scenario)
	}
	if first.N != 1 {
		t.Errorf("n = %d, want 1", first.N)
	}
	if first.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", first.Temperature)
	}

	second := cfg.Experiments[1]
	if second.N != 3 {
		t.Errorf("n = %d, want 3", second.N)
	}
	if second.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", second.Temperature)
	}
	if !second.UseMemory {
		t.Error("use_memory should be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "experiments: [unclosed")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadNoExperiments(t *testing.T) {
	path := writeConfig(t, "output_dir: out\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for empty experiment list")
	}
}

func TestLoadMissingModel(t *testing.T) {
	path := writeConfig(t, `
experiments:
  - name: broken
    scenario: codegeneration
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for experiment without model")
	}
}

func TestExperimentBench(t *testing.T) {
	exp := Experiment{
		Model:       "gpt-5-nano",
		Scenario:    "codegeneration",
		N:           1,
		Temperature: 0.2,
		UseMemory:   true,
	}

	bench := exp.Bench()

	if !bench.Evaluate {
		t.Error("evaluate should default to true")
	}
	if !bench.UseMemory {
		t.Error("use_memory should carry over")
	}

	off := false
	exp.Evaluate = &off

	if exp.Bench().Evaluate {
		t.Error("explicit evaluate: false should be honored")
	}
}
