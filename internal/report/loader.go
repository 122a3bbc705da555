// Package report implements the FCVRP result aggregation and comparison
// engine: loading solver output, classifying solutions by validity, and
// comparing costs against the best-known reference table.
package report

import (
    "encoding/json"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "time"

    "vrpreport/internal/model"
)

// Loader reads the three external data sources. Results and best-known
// are mandatory; the validation report is optional.
type Loader struct {
    ResultsPath    string
    BestKnownPath  string
    ValidationPath string
}

// Snapshot is one immutable load of all sources. Consumers never mutate
// it; a refresh produces a fresh Snapshot.
type Snapshot struct {
    Results    map[string]model.InstanceResult
    BestKnown  map[string]float64
    Validation map[string]model.ValidationRecord
    LoadedAt   time.Time
    Warnings   []string
}

// LoadError marks a mandatory source as missing or malformed. It is fatal
// to the session and is never retried by the loader.
type LoadError struct {
    Source string
    Err    error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Source, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads all sources once. A missing or unparsable mandatory source
// returns a *LoadError; a missing validation source yields an empty
// validation map plus a warning on the snapshot.
func (l *Loader) Load() (*Snapshot, error) {
    snap := &Snapshot{LoadedAt: time.Now().UTC()}

    if err := readJSONFile(l.ResultsPath, &snap.Results); err != nil {
        return nil, &LoadError{Source: "results", Err: err}
    }
    if err := readJSONFile(l.BestKnownPath, &snap.BestKnown); err != nil {
        return nil, &LoadError{Source: "best_known", Err: err}
    }

    var records []model.ValidationRecord
    err := readJSONFile(l.ValidationPath, &records)
    switch {
    case err == nil:
        snap.Validation = keyValidationRecords(records)
    case errors.Is(err, fs.ErrNotExist):
        snap.Validation = map[string]model.ValidationRecord{}
        snap.Warnings = append(snap.Warnings, "validation report not found; all solutions assumed valid")
    default:
        return nil, &LoadError{Source: "validation", Err: err}
    }
    if snap.Results == nil {
        snap.Results = map[string]model.InstanceResult{}
    }
    if snap.BestKnown == nil {
        snap.BestKnown = map[string]float64{}
    }
    return snap, nil
}

func readJSONFile(path string, v any) error {
    b, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    return json.Unmarshal(b, v)
}

// keyValidationRecords converts the ordered validator output into a map
// keyed by the instance's base filename, matching the keying of the
// results and best-known sources. Two instances sharing a filename in
// different directories collide; last entry wins (known limitation of the
// validator's path-based output).
func keyValidationRecords(records []model.ValidationRecord) map[string]model.ValidationRecord {
    out := make(map[string]model.ValidationRecord, len(records))
    for _, rec := range records {
        out[filepath.Base(rec.Instance)] = rec
    }
    return out
}
