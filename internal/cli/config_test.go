package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

const configYAML = `pipeline:
  data:
    raw_dir: "data/raw"
    processed_dir: "data/processed"
  team:
    name: "Montana"
    school: "montana"
    file_prefix: "um"
  sources:
    schedule_base_url: "https://www.sports-reference.com"
    kenpom_base_url: "https://kenpom.com"
  retry:
    max_attempts: 2
    initial_delay_ms: 100
    max_delay_ms: 1000
    backoff_multiplier: 2.0
    timeout_sec: 10
  logging:
    level: "debug"
`

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Pipeline.Retry.MaxAttempts != 2 {
		t.Errorf("max attempts = %d, want 2", cfg.Pipeline.Retry.MaxAttempts)
	}
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Pipeline.Team.Name != "Montana" {
		t.Errorf("team name = %q, want Montana", cfg.Pipeline.Team.Name)
	}
}

func TestLoadConfig_PicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigPath), []byte(configYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Pipeline.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Pipeline.Logging.Level)
	}
}
