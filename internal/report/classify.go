package report

import "vrpreport/internal/model"

// Classify partitions results into valid and invalid sets using the
// validation report. An instance with no validation record is assumed
// valid; changing that default would silently shift historical statistics.
func Classify(results map[string]model.InstanceResult, validation map[string]model.ValidationRecord) (valid, invalid map[string]model.InstanceResult) {
    valid = make(map[string]model.InstanceResult, len(results))
    invalid = map[string]model.InstanceResult{}
    for name, data := range results {
        if rec, ok := validation[name]; ok && !rec.Valid {
            invalid[name] = data
            continue
        }
        valid[name] = data
    }
    return valid, invalid
}
