package model

// Core domain types for FCVRP result reporting.

// InstanceResult is one solver run for a single problem instance, as
// produced by the external solver. Immutable once loaded.
type InstanceResult struct {
    Cost               float64 `json:"cost"`
    SolvingTimeSeconds float64 `json:"solving_time_seconds"`
    Timestamp          string  `json:"timestamp"`
    SolutionFile       string  `json:"solution_file"`
    VisualizationFile  string  `json:"visualization_file"`
}

// ValidationRecord reports whether an external validator accepted the
// solution for an instance. Instances with no record are assumed valid.
type ValidationRecord struct {
    Instance string `json:"instance"`
    Valid    bool   `json:"valid"`
}

// Status classifies a solver cost against the best-known reference.
type Status string

const (
    StatusBetter      Status = "Better"
    StatusEqual       Status = "Equal"
    StatusWorse       Status = "Worse"
    StatusUnavailable Status = "Unavailable" // no best-known reference
)

// ComparisonResult is the per-instance comparison row. Difference is the
// magnitude of the gap, never negative.
type ComparisonResult struct {
    Instance    string  `json:"instance"`
    MyCost      float64 `json:"myCost"`
    BestKnown   float64 `json:"bestKnown"`
    Status      Status  `json:"status"`
    Difference  float64 `json:"difference"`
    TimeMinutes float64 `json:"timeMinutes"`
}

// AggregateStats summarizes a comparison run over the valid instances.
type AggregateStats struct {
    TotalInstances    int     `json:"totalInstances"`
    Better            int     `json:"better"`
    Equal             int     `json:"equal"`
    Worse             int     `json:"worse"`
    TotalImprovement  float64 `json:"totalImprovement"`
    TotalDegradation  float64 `json:"totalDegradation"`
    ComparedInstances int     `json:"comparedInstances"`
}

// BetterPct returns the share of compared instances beating the best known.
func (s AggregateStats) BetterPct() float64 { return s.pct(s.Better) }

// EqualPct returns the share of compared instances matching the best known.
func (s AggregateStats) EqualPct() float64 { return s.pct(s.Equal) }

// WorsePct returns the share of compared instances above the best known.
func (s AggregateStats) WorsePct() float64 { return s.pct(s.Worse) }

func (s AggregateStats) pct(n int) float64 {
    if s.ComparedInstances == 0 {
        return 0
    }
    return float64(n) / float64(s.ComparedInstances) * 100
}

// AvgImprovement reports the mean improvement over Better instances.
// ok is false when no instance was better.
func (s AggregateStats) AvgImprovement() (float64, bool) {
    if s.Better == 0 {
        return 0, false
    }
    return s.TotalImprovement / float64(s.Better), true
}

// AvgDegradation reports the mean degradation over Worse instances.
// ok is false when no instance was worse.
func (s AggregateStats) AvgDegradation() (float64, bool) {
    if s.Worse == 0 {
        return 0, false
    }
    return s.TotalDegradation / float64(s.Worse), true
}

// InstanceDetail is the single-instance projection served to the
// presentation layer. BestKnown is nil when the instance has no reference
// cost; Performance is Unavailable in that case and Delta is meaningless.
type InstanceDetail struct {
    Instance          string   `json:"instance"`
    Cost              float64  `json:"cost"`
    TimeMinutes       float64  `json:"timeMinutes"`
    BestKnown         *float64 `json:"bestKnown,omitempty"`
    Performance       Status   `json:"performance"`
    Delta             float64  `json:"delta"`
    Timestamp         string   `json:"timestamp"`
    SolutionFile      string   `json:"solutionFile"`
    VisualizationFile string   `json:"visualizationFile"`
}

// SubscriptionRequest registers a webhook for refresh notifications.
type SubscriptionRequest struct {
    URL    string   `json:"url"`
    Events []string `json:"events"`
    Secret string   `json:"secret"`
}

// Subscription is a registered webhook target.
type Subscription struct {
    ID     string   `json:"id"`
    URL    string   `json:"url"`
    Events []string `json:"events"`
    Secret string   `json:"secret,omitempty"`
}
