package report

import (
    "errors"
    "testing"

    "vrpreport/internal/model"
)

func testSnapshot() *Snapshot {
    return &Snapshot{
        Results: map[string]model.InstanceResult{
            "good.txt": {Cost: 90, SolvingTimeSeconds: 120, Timestamp: "2025-01-01T00:00:00Z", SolutionFile: "good.sol", VisualizationFile: "good.png"},
            "nobest.txt": {Cost: 50, SolvingTimeSeconds: 30},
            "bad.txt":    {Cost: 10, SolvingTimeSeconds: 10},
        },
        BestKnown: map[string]float64{"good.txt": 100, "bad.txt": 5},
        Validation: map[string]model.ValidationRecord{
            "bad.txt": {Instance: "runs/bad.txt", Valid: false},
        },
    }
}

func TestDetailNotFound(t *testing.T) {
    _, err := Detail("missing.txt", testSnapshot())
    if !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestDetailInvalidSolution(t *testing.T) {
    _, err := Detail("bad.txt", testSnapshot())
    var inv *InvalidSolutionError
    if !errors.As(err, &inv) {
        t.Fatalf("expected InvalidSolutionError, got %v", err)
    }
    if inv.Instance != "bad.txt" {
        t.Fatalf("marker must carry the instance name, got %q", inv.Instance)
    }
}

func TestDetailBetter(t *testing.T) {
    d, err := Detail("good.txt", testSnapshot())
    if err != nil {
        t.Fatalf("detail: %v", err)
    }
    if d.Performance != model.StatusBetter || d.Delta != 10 {
        t.Fatalf("bad performance: %+v", d)
    }
    if d.BestKnown == nil || *d.BestKnown != 100 {
        t.Fatalf("bad best known: %+v", d.BestKnown)
    }
    if d.TimeMinutes != 2.0 || d.SolutionFile != "good.sol" || d.VisualizationFile != "good.png" {
        t.Fatalf("bad projection: %+v", d)
    }
}

func TestDetailNoBestKnown(t *testing.T) {
    d, err := Detail("nobest.txt", testSnapshot())
    if err != nil {
        t.Fatalf("detail: %v", err)
    }
    if d.Performance != model.StatusUnavailable {
        t.Fatalf("expected Unavailable, got %s", d.Performance)
    }
    if d.BestKnown != nil {
        t.Fatalf("best known must be absent: %+v", d.BestKnown)
    }
    if d.Delta != 0 {
        t.Fatalf("delta must be zero when not comparable")
    }
}
