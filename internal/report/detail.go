package report

import (
    "errors"
    "fmt"

    "vrpreport/internal/model"
)

// ErrNotFound is returned when a requested instance is not in the loaded
// results.
var ErrNotFound = errors.New("instance not found")

// InvalidSolutionError marks an instance whose solution failed validation.
// No cost or performance fields are meaningful for it; callers must
// short-circuit presentation instead of comparing.
type InvalidSolutionError struct {
    Instance string
}

func (e *InvalidSolutionError) Error() string {
    return fmt.Sprintf("invalid solution for instance %s", e.Instance)
}

// Detail projects a single instance out of the snapshot. It applies the
// same validity rule as Classify to the one name, then folds in the
// best-known reference when present. The solution and visualization file
// references are returned as-is; reading them is the caller's concern.
func Detail(name string, snap *Snapshot) (model.InstanceDetail, error) {
    data, ok := snap.Results[name]
    if !ok {
        return model.InstanceDetail{}, ErrNotFound
    }
    if rec, ok := snap.Validation[name]; ok && !rec.Valid {
        return model.InstanceDetail{}, &InvalidSolutionError{Instance: name}
    }

    d := model.InstanceDetail{
        Instance:          name,
        Cost:              data.Cost,
        TimeMinutes:       MinutesFromSeconds(data.SolvingTimeSeconds),
        Performance:       model.StatusUnavailable,
        Timestamp:         data.Timestamp,
        SolutionFile:      data.SolutionFile,
        VisualizationFile: data.VisualizationFile,
    }
    if best, ok := snap.BestKnown[name]; ok {
        d.BestKnown = &best
        switch {
        case data.Cost < best:
            d.Performance = model.StatusBetter
            d.Delta = best - data.Cost
        case data.Cost == best:
            d.Performance = model.StatusEqual
        default:
            d.Performance = model.StatusWorse
            d.Delta = data.Cost - best
        }
    }
    return d, nil
}
