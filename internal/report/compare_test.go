package report

import (
    "reflect"
    "testing"

    "vrpreport/internal/model"
)

func TestCompareWorse(t *testing.T) {
    valid := map[string]model.InstanceResult{
        "inst1": {Cost: 100, SolvingTimeSeconds: 120},
    }
    stats, details := Compare(valid, map[string]float64{"inst1": 90})
    if stats.Worse != 1 || stats.Better != 0 || stats.Equal != 0 {
        t.Fatalf("bad counts: %+v", stats)
    }
    if stats.ComparedInstances != 1 || stats.TotalDegradation != 10 {
        t.Fatalf("bad accumulation: %+v", stats)
    }
    if len(details) != 1 {
        t.Fatalf("expected 1 detail, got %d", len(details))
    }
    d := details[0]
    if d.Status != model.StatusWorse || d.Difference != 10 || d.TimeMinutes != 2.0 {
        t.Fatalf("bad detail: %+v", d)
    }
}

func TestCompareEqual(t *testing.T) {
    valid := map[string]model.InstanceResult{
        "inst1": {Cost: 100, SolvingTimeSeconds: 120},
    }
    stats, details := Compare(valid, map[string]float64{"inst1": 100})
    if stats.Equal != 1 || details[0].Difference != 0 {
        t.Fatalf("expected equal with zero difference: %+v %+v", stats, details)
    }
}

func TestCompareBetterAccumulatesImprovement(t *testing.T) {
    valid := map[string]model.InstanceResult{
        "a": {Cost: 80, SolvingTimeSeconds: 60},
        "b": {Cost: 95, SolvingTimeSeconds: 30},
    }
    best := map[string]float64{"a": 100, "b": 100}
    stats, details := Compare(valid, best)
    if stats.Better != 2 || stats.TotalImprovement != 25 {
        t.Fatalf("bad improvement accumulation: %+v", stats)
    }
    var sum float64
    for _, d := range details {
        if d.Status == model.StatusBetter {
            sum += d.Difference
        }
    }
    if sum != stats.TotalImprovement {
        t.Fatalf("per-instance improvements %v != total %v", sum, stats.TotalImprovement)
    }
}

func TestCompareSkipsUnknownInstances(t *testing.T) {
    valid := map[string]model.InstanceResult{
        "inst1": {Cost: 100},
        "inst2": {Cost: 50}, // no best-known entry
    }
    stats, details := Compare(valid, map[string]float64{"inst1": 100})
    if stats.ComparedInstances != 1 || len(details) != 1 {
        t.Fatalf("inst2 must be skipped entirely: %+v", stats)
    }
    if stats.TotalInstances != 2 {
        t.Fatalf("total must still count all valid instances: %+v", stats)
    }
    if stats.Better+stats.Equal+stats.Worse != stats.ComparedInstances {
        t.Fatalf("counts must sum to compared: %+v", stats)
    }
}

func TestCompareEmpty(t *testing.T) {
    stats, details := Compare(map[string]model.InstanceResult{}, map[string]float64{})
    if stats != (model.AggregateStats{}) {
        t.Fatalf("expected zero stats, got %+v", stats)
    }
    if len(details) != 0 {
        t.Fatalf("expected empty details")
    }
}

func TestCompareIdempotent(t *testing.T) {
    valid := map[string]model.InstanceResult{
        "a": {Cost: 80, SolvingTimeSeconds: 61},
        "b": {Cost: 120, SolvingTimeSeconds: 45},
        "c": {Cost: 100, SolvingTimeSeconds: 0},
    }
    best := map[string]float64{"a": 100, "b": 100, "c": 100}
    stats1, details1 := Compare(valid, best)
    stats2, details2 := Compare(valid, best)
    if stats1 != stats2 {
        t.Fatalf("stats differ between runs: %+v vs %+v", stats1, stats2)
    }
    if !reflect.DeepEqual(details1, details2) {
        t.Fatalf("details differ between runs")
    }
    if stats1.ComparedInstances != len(details1) {
        t.Fatalf("comparedInstances %d != len(details) %d", stats1.ComparedInstances, len(details1))
    }
}

func TestAggregateStatsDerived(t *testing.T) {
    s := model.AggregateStats{Better: 1, Equal: 1, Worse: 2, ComparedInstances: 4, TotalImprovement: 5, TotalDegradation: 8}
    if s.BetterPct() != 25 || s.EqualPct() != 25 || s.WorsePct() != 50 {
        t.Fatalf("bad percentages: %v %v %v", s.BetterPct(), s.EqualPct(), s.WorsePct())
    }
    if avg, ok := s.AvgImprovement(); !ok || avg != 5 {
        t.Fatalf("bad avg improvement: %v %v", avg, ok)
    }
    if avg, ok := s.AvgDegradation(); !ok || avg != 4 {
        t.Fatalf("bad avg degradation: %v %v", avg, ok)
    }

    var zero model.AggregateStats
    if zero.BetterPct() != 0 {
        t.Fatalf("zero compared must yield zero pct")
    }
    if _, ok := zero.AvgImprovement(); ok {
        t.Fatalf("no better instances must report no average")
    }
    if _, ok := zero.AvgDegradation(); ok {
        t.Fatalf("no worse instances must report no average")
    }
}

func TestMinutesFromSeconds(t *testing.T) {
    cases := []struct {
        sec  float64
        want float64
    }{
        {120, 2.0},
        {90, 1.5},
        {100, 1.67},
        {0, 0},
    }
    for _, c := range cases {
        if got := MinutesFromSeconds(c.sec); got != c.want {
            t.Fatalf("MinutesFromSeconds(%v) = %v, want %v", c.sec, got, c.want)
        }
    }
}
