package report

import (
    "math"
    "sort"

    "vrpreport/internal/model"
)

// Compare walks the valid instances and scores each one that has a
// best-known reference cost. Instances absent from bestKnown are skipped
// entirely and counted nowhere. Zero comparable instances is a legitimate
// empty state, not an error.
//
// Details are returned in instance-name order; any presentation sort is
// layered on top by the caller.
func Compare(valid map[string]model.InstanceResult, bestKnown map[string]float64) (model.AggregateStats, []model.ComparisonResult) {
    stats := model.AggregateStats{TotalInstances: len(valid)}
    details := []model.ComparisonResult{}

    names := make([]string, 0, len(valid))
    for name := range valid {
        names = append(names, name)
    }
    sort.Strings(names)

    for _, name := range names {
        best, ok := bestKnown[name]
        if !ok {
            continue
        }
        data := valid[name]
        stats.ComparedInstances++

        var status model.Status
        var diff float64
        switch {
        case data.Cost < best:
            stats.Better++
            diff = best - data.Cost
            stats.TotalImprovement += diff
            status = model.StatusBetter
        case data.Cost == best:
            stats.Equal++
            status = model.StatusEqual
        default:
            stats.Worse++
            diff = data.Cost - best
            stats.TotalDegradation += diff
            status = model.StatusWorse
        }

        details = append(details, model.ComparisonResult{
            Instance:    name,
            MyCost:      data.Cost,
            BestKnown:   best,
            Status:      status,
            Difference:  diff,
            TimeMinutes: MinutesFromSeconds(data.SolvingTimeSeconds),
        })
    }
    return stats, details
}

// MinutesFromSeconds converts a solve time to minutes, rounded to two
// decimal places.
func MinutesFromSeconds(seconds float64) float64 {
    return math.Round(seconds/60*100) / 100
}
