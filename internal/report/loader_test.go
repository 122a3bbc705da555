package report

import (
    "errors"
    "os"
    "path/filepath"
    "testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
    t.Helper()
    path := filepath.Join(dir, name)
    if err := os.WriteFile(path, []byte(content), 0644); err != nil {
        t.Fatalf("write %s: %v", name, err)
    }
    return path
}

func testLoader(t *testing.T) (*Loader, string) {
    t.Helper()
    dir := t.TempDir()
    results := `{"inst1.txt":{"cost":100,"solving_time_seconds":120,"timestamp":"2025-01-01T00:00:00Z","solution_file":"inst1.sol","visualization_file":"inst1.png"}}`
    best := `{"inst1.txt":90}`
    validation := `[{"instance":"out/runs/inst1.txt","valid":true}]`
    return &Loader{
        ResultsPath:    writeFile(t, dir, "results.json", results),
        BestKnownPath:  writeFile(t, dir, "best_known.json", best),
        ValidationPath: writeFile(t, dir, "validation.json", validation),
    }, dir
}

func TestLoadAllSources(t *testing.T) {
    l, _ := testLoader(t)
    snap, err := l.Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if len(snap.Results) != 1 || len(snap.BestKnown) != 1 {
        t.Fatalf("unexpected sizes: results=%d best=%d", len(snap.Results), len(snap.BestKnown))
    }
    r := snap.Results["inst1.txt"]
    if r.Cost != 100 || r.SolvingTimeSeconds != 120 || r.SolutionFile != "inst1.sol" {
        t.Fatalf("bad result record: %+v", r)
    }
    if snap.BestKnown["inst1.txt"] != 90 {
        t.Fatalf("bad best known: %v", snap.BestKnown)
    }
    if len(snap.Warnings) != 0 {
        t.Fatalf("unexpected warnings: %v", snap.Warnings)
    }
}

func TestLoadNormalizesValidationKeys(t *testing.T) {
    l, _ := testLoader(t)
    snap, err := l.Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    rec, ok := snap.Validation["inst1.txt"]
    if !ok {
        t.Fatalf("validation key not reduced to base name: %v", snap.Validation)
    }
    if !rec.Valid {
        t.Fatalf("expected valid record, got %+v", rec)
    }
}

func TestLoadMissingValidationIsWarning(t *testing.T) {
    l, dir := testLoader(t)
    l.ValidationPath = filepath.Join(dir, "nope.json")
    snap, err := l.Load()
    if err != nil {
        t.Fatalf("missing validation must not fail the load: %v", err)
    }
    if len(snap.Validation) != 0 {
        t.Fatalf("expected empty validation map, got %v", snap.Validation)
    }
    if len(snap.Warnings) == 0 {
        t.Fatalf("expected a warning for missing validation source")
    }
}

func TestLoadMissingResultsFails(t *testing.T) {
    l, dir := testLoader(t)
    l.ResultsPath = filepath.Join(dir, "nope.json")
    _, err := l.Load()
    var le *LoadError
    if !errors.As(err, &le) {
        t.Fatalf("expected LoadError, got %v", err)
    }
    if le.Source != "results" {
        t.Fatalf("wrong source: %s", le.Source)
    }
}

func TestLoadMalformedBestKnownFails(t *testing.T) {
    l, dir := testLoader(t)
    l.BestKnownPath = writeFile(t, dir, "bad.json", `{"inst1.txt": "not a number"`)
    _, err := l.Load()
    var le *LoadError
    if !errors.As(err, &le) {
        t.Fatalf("expected LoadError, got %v", err)
    }
    if le.Source != "best_known" {
        t.Fatalf("wrong source: %s", le.Source)
    }
}

func TestLoadMalformedValidationFails(t *testing.T) {
    l, dir := testLoader(t)
    l.ValidationPath = writeFile(t, dir, "badval.json", `{"not":"a list"}`)
    _, err := l.Load()
    var le *LoadError
    if !errors.As(err, &le) {
        t.Fatalf("present-but-malformed validation must fail, got %v", err)
    }
}
