package mambo

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 6000
cluster:
  expected_nodes: 3
training:
  mode: "async"
  max_steps: 500
  check_every: 25
data:
  path: "./train.csv"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 6000 || cfg.Cluster.ExpectedNodes != 3 {
		t.Fatalf("parsed %+v", cfg)
	}
	if cfg.Training.Mode != "async" || cfg.Training.MaxSteps != 500 || cfg.Training.CheckEvery != 25 {
		t.Fatalf("training config %+v", cfg.Training)
	}
	// Defaults fill what the file leaves out.
	if cfg.Training.BatchSize != 32 || cfg.Training.LeakCoef != 1 {
		t.Fatalf("defaults not applied: %+v", cfg.Training)
	}
	if got := monitorBackoff(cfg); got != 2*time.Second {
		t.Fatalf("monitor backoff = %v", got)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := writeConfig(t, `
cluster:
  expected_nodes: 0
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("accepted zero expected nodes")
	}

	path = writeConfig(t, `
cluster:
  expected_nodes: 2
training:
  mode: "federated"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("accepted an unknown training mode")
	}
}
