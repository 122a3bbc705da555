package config

import (
    "os"
    "path/filepath"
    "testing"
)

func TestLoadDefaults(t *testing.T) {
    t.Setenv("VRPREPORT_CONFIG", "")
    cfg, err := Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.ListenAddr != ":8080" {
        t.Fatalf("bad default addr: %s", cfg.ListenAddr)
    }
    if cfg.Data.ResultsPath != "fcvrp_results_ILS.json" || cfg.Data.SolutionsDir != "Solutions_ILS" {
        t.Fatalf("bad data defaults: %+v", cfg.Data)
    }
    if cfg.WebhookMaxAttempts != 10 || cfg.AuthMode != "dev" {
        t.Fatalf("bad defaults: %+v", cfg)
    }
}

func TestLoadYAMLFile(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "cfg.yaml")
    body := `
listenAddr: ":9090"
data:
  resultsPath: out/results.json
  bestKnownPath: out/best.json
rateRps: 25
rateBurst: 50
`
    if err := os.WriteFile(path, []byte(body), 0644); err != nil {
        t.Fatalf("write: %v", err)
    }
    t.Setenv("VRPREPORT_CONFIG", path)
    cfg, err := Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.ListenAddr != ":9090" || cfg.Data.ResultsPath != "out/results.json" {
        t.Fatalf("yaml not applied: %+v", cfg)
    }
    if cfg.RateRPS != 25 || cfg.RateBurst != 50 {
        t.Fatalf("rate config not applied: %+v", cfg)
    }
    // untouched fields keep defaults
    if cfg.Data.VisualizationsDir != "Visualizations" {
        t.Fatalf("default lost on partial yaml: %+v", cfg.Data)
    }
}

func TestEnvOverridesYAML(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "cfg.yaml")
    if err := os.WriteFile(path, []byte(`listenAddr: ":9090"`), 0644); err != nil {
        t.Fatalf("write: %v", err)
    }
    t.Setenv("VRPREPORT_CONFIG", path)
    t.Setenv("PORT", "7070")
    t.Setenv("RESULTS_PATH", "/data/results.json")
    t.Setenv("WEBHOOK_MAX_ATTEMPTS", "3")
    cfg, err := Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.ListenAddr != ":7070" {
        t.Fatalf("PORT must win over yaml: %s", cfg.ListenAddr)
    }
    if cfg.Data.ResultsPath != "/data/results.json" {
        t.Fatalf("env path not applied: %s", cfg.Data.ResultsPath)
    }
    if cfg.WebhookMaxAttempts != 3 {
        t.Fatalf("env attempts not applied: %d", cfg.WebhookMaxAttempts)
    }
}

func TestLoadMalformedYAMLFails(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "cfg.yaml")
    if err := os.WriteFile(path, []byte("listenAddr: [broken"), 0644); err != nil {
        t.Fatalf("write: %v", err)
    }
    t.Setenv("VRPREPORT_CONFIG", path)
    if _, err := Load(); err == nil {
        t.Fatalf("expected parse error")
    }
}
