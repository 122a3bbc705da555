package api

import (
    "encoding/json"
    "errors"
    "net/http"
    "os"
    "sort"
    "strings"

    "vrpreport/internal/metrics"
    "vrpreport/internal/model"
    "vrpreport/internal/report"
)

// snapshotFor resolves the caller's session snapshot, writing a problem
// response on load failure. A LoadError is fatal to the session and is
// not retried here.
func (s *Server) snapshotFor(w http.ResponseWriter, r *http.Request) (*report.Snapshot, bool) {
    pr := s.getPrincipal(r)
    snap, err := s.Store.Snapshot(r.Context(), pr.Session)
    if err != nil {
        writeProblem(w, http.StatusServiceUnavailable, "Load failed", err.Error(), r.URL.Path)
        return nil, false
    }
    return snap, true
}

// SummaryHandler handles GET /v1/summary
func (s *Server) SummaryHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    snap, ok := s.snapshotFor(w, r)
    if !ok {
        return
    }
    valid, invalid := report.Classify(snap.Results, snap.Validation)
    stats, _ := report.Compare(valid, snap.BestKnown)
    metrics.ComparedInstances.Set(float64(stats.ComparedInstances))

    total := len(snap.Results)
    pct := func(n int) float64 {
        if total == 0 {
            return 0
        }
        return float64(n) / float64(total) * 100
    }
    var avgSolveMin float64
    if total > 0 {
        var sum float64
        for _, d := range snap.Results {
            sum += d.SolvingTimeSeconds
        }
        avgSolveMin = report.MinutesFromSeconds(sum / float64(total))
    }

    comparison := map[string]any{
        "stats":     stats,
        "betterPct": stats.BetterPct(),
        "equalPct":  stats.EqualPct(),
        "worsePct":  stats.WorsePct(),
    }
    if avg, ok := stats.AvgImprovement(); ok {
        comparison["avgImprovement"] = avg
    }
    if avg, ok := stats.AvgDegradation(); ok {
        comparison["avgDegradation"] = avg
    }

    writeJSON(w, http.StatusOK, map[string]any{
        "totalInstances":      total,
        "validInstances":      len(valid),
        "validPct":            pct(len(valid)),
        "invalidInstances":    len(invalid),
        "invalidPct":          pct(len(invalid)),
        "avgSolveTimeMinutes": avgSolveMin,
        "comparison":          comparison,
        "loadedAt":            snap.LoadedAt,
        "warnings":            snap.Warnings,
    })
}

// ResultsHandler handles GET /v1/results with status filter and sort
// selection. Sorting and filtering are presentation concerns; the engine
// returns details in name order.
func (s *Server) ResultsHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    snap, ok := s.snapshotFor(w, r)
    if !ok {
        return
    }
    valid, _ := report.Classify(snap.Results, snap.Validation)
    stats, details := report.Compare(valid, snap.BestKnown)

    if status := r.URL.Query().Get("status"); status != "" && status != "All" {
        filtered := details[:0]
        for _, d := range details {
            if string(d.Status) == status {
                filtered = append(filtered, d)
            }
        }
        details = filtered
    }
    sortBy := r.URL.Query().Get("sort")
    order := r.URL.Query().Get("order")
    if err := sortDetails(details, sortBy, order); err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid sort", err.Error(), r.URL.Path)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "items": details})
}

// instance-name order is ascending by default; difference defaults to
// descending so the largest gaps surface first.
func sortDetails(details []model.ComparisonResult, sortBy, order string) error {
    if sortBy == "" {
        sortBy = "instance"
    }
    var less func(a, b model.ComparisonResult) bool
    switch sortBy {
    case "instance":
        less = func(a, b model.ComparisonResult) bool { return a.Instance < b.Instance }
    case "myCost":
        less = func(a, b model.ComparisonResult) bool { return a.MyCost < b.MyCost }
    case "bestKnown":
        less = func(a, b model.ComparisonResult) bool { return a.BestKnown < b.BestKnown }
    case "status":
        less = func(a, b model.ComparisonResult) bool { return a.Status < b.Status }
    case "difference":
        less = func(a, b model.ComparisonResult) bool { return a.Difference < b.Difference }
        if order == "" {
            order = "desc"
        }
    case "timeMinutes":
        less = func(a, b model.ComparisonResult) bool { return a.TimeMinutes < b.TimeMinutes }
    default:
        return errors.New("unknown sort field: " + sortBy)
    }
    switch order {
    case "", "asc":
    case "desc":
        inner := less
        less = func(a, b model.ComparisonResult) bool { return inner(b, a) }
    default:
        return errors.New("order must be asc or desc")
    }
    sort.SliceStable(details, func(i, j int) bool { return less(details[i], details[j]) })
    return nil
}

// InstancesHandler handles GET /v1/instances (the instance picker list).
func (s *Server) InstancesHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    snap, ok := s.snapshotFor(w, r)
    if !ok {
        return
    }
    valid, invalid := report.Classify(snap.Results, snap.Validation)
    q := r.URL.Query()
    showValid := q.Get("valid") != "false"
    showInvalid := q.Get("invalid") != "false"

    type item struct {
        Instance string `json:"instance"`
        Valid    bool   `json:"valid"`
    }
    items := []item{}
    if showValid {
        for name := range valid {
            items = append(items, item{Instance: name, Valid: true})
        }
    }
    if showInvalid {
        for name := range invalid {
            items = append(items, item{Instance: name, Valid: false})
        }
    }
    sort.Slice(items, func(i, j int) bool { return items[i].Instance < items[j].Instance })
    writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// InstanceByNameHandler handles GET /v1/instances/{name} and the
// /solution and /visualization subresources.
func (s *Server) InstanceByNameHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    rest := strings.TrimPrefix(r.URL.Path, "/v1/instances/")
    if rest == r.URL.Path || rest == "" {
        writeProblem(w, http.StatusNotFound, "Not Found", "missing instance name", r.URL.Path)
        return
    }
    name := rest
    sub := ""
    if i := strings.LastIndex(rest, "/"); i >= 0 {
        name, sub = rest[:i], rest[i+1:]
    }
    snap, ok := s.snapshotFor(w, r)
    if !ok {
        return
    }
    detail, err := report.Detail(name, snap)
    var invalidErr *report.InvalidSolutionError
    switch {
    case errors.Is(err, report.ErrNotFound):
        writeProblem(w, http.StatusNotFound, "Instance not found", name, r.URL.Path)
        return
    case errors.As(err, &invalidErr):
        // No cost or performance fields exist for an invalid solution;
        // the consumer must short-circuit instead of comparing.
        writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
            "instance":        invalidErr.Instance,
            "invalidSolution": true,
        })
        return
    case err != nil:
        writeProblem(w, http.StatusInternalServerError, "Detail failed", err.Error(), r.URL.Path)
        return
    }
    switch sub {
    case "":
        writeJSON(w, http.StatusOK, detail)
    case "solution":
        s.serveSolutionFile(w, r, detail)
    case "visualization":
        s.serveVisualizationFile(w, r, detail)
    default:
        writeProblem(w, http.StatusNotFound, "Not Found", "unknown subresource "+sub, r.URL.Path)
    }
}

// File reads live here, not in the engine: the core only hands back the
// reference strings. A missing file fails this field alone, never the
// detail view.
func (s *Server) serveSolutionFile(w http.ResponseWriter, r *http.Request, d model.InstanceDetail) {
    path, ok := refPath(s.Cfg.Data.SolutionsDir, d.SolutionFile)
    if !ok {
        writeProblem(w, http.StatusNotFound, "Solution file unavailable", d.SolutionFile, r.URL.Path)
        return
    }
    b, err := os.ReadFile(path)
    if err != nil {
        writeProblem(w, http.StatusNotFound, "Solution file unavailable", err.Error(), r.URL.Path)
        return
    }
    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(b)
}

func (s *Server) serveVisualizationFile(w http.ResponseWriter, r *http.Request, d model.InstanceDetail) {
    path, ok := refPath(s.Cfg.Data.VisualizationsDir, d.VisualizationFile)
    if !ok {
        writeProblem(w, http.StatusNotFound, "Visualization unavailable", d.VisualizationFile, r.URL.Path)
        return
    }
    if _, err := os.Stat(path); err != nil {
        writeProblem(w, http.StatusNotFound, "Visualization unavailable", err.Error(), r.URL.Path)
        return
    }
    http.ServeFile(w, r, path)
}

// RefreshHandler handles POST /v1/refresh: the explicit re-load of the
// session's snapshot. Publishes data.refreshed to streams and webhooks.
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    pr := s.getPrincipal(r)
    if !pr.IsAdmin() {
        writeProblem(w, http.StatusForbidden, "Forbidden", "admin required", r.URL.Path)
        return
    }
    snap, err := s.Store.Refresh(r.Context(), pr.Session)
    if err != nil {
        writeProblem(w, http.StatusServiceUnavailable, "Load failed", err.Error(), r.URL.Path)
        return
    }
    valid, _ := report.Classify(snap.Results, snap.Validation)
    stats, _ := report.Compare(valid, snap.BestKnown)
    metrics.ComparedInstances.Set(float64(stats.ComparedInstances))

    evtData := map[string]any{
        "session":           pr.Session,
        "loadedAt":          snap.LoadedAt,
        "totalInstances":    len(snap.Results),
        "comparedInstances": stats.ComparedInstances,
    }
    s.Broker.Publish(Event{Type: "data.refreshed", Data: evtData})
    s.Pub.Emit(r.Context(), "data.refreshed", map[string]any{"stats": stats, "loadedAt": snap.LoadedAt})

    writeJSON(w, http.StatusOK, map[string]any{"loadedAt": snap.LoadedAt, "stats": stats, "warnings": snap.Warnings})
}

// SubscriptionsHandler handles POST/GET /v1/subscriptions
func (s *Server) SubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
    pr := s.getPrincipal(r)
    if !pr.IsAdmin() {
        writeProblem(w, http.StatusForbidden, "Forbidden", "admin required", r.URL.Path)
        return
    }
    switch r.Method {
    case http.MethodPost:
        var req model.SubscriptionRequest
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
            return
        }
        if req.URL == "" || len(req.Events) == 0 {
            writeProblem(w, http.StatusBadRequest, "Invalid subscription", "url and events required", r.URL.Path)
            return
        }
        sub := s.Queue.CreateSubscription(req)
        sub.Secret = ""
        writeJSON(w, http.StatusCreated, sub)
    case http.MethodGet:
        writeJSON(w, http.StatusOK, map[string]any{"items": s.Queue.ListSubscriptions()})
    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

// SubscriptionByIDHandler handles DELETE /v1/subscriptions/{id}
func (s *Server) SubscriptionByIDHandler(w http.ResponseWriter, r *http.Request) {
    pr := s.getPrincipal(r)
    if !pr.IsAdmin() {
        writeProblem(w, http.StatusForbidden, "Forbidden", "admin required", r.URL.Path)
        return
    }
    id := strings.TrimPrefix(r.URL.Path, "/v1/subscriptions/")
    if id == "" || r.Method != http.MethodDelete {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if err := s.Queue.DeleteSubscription(id); err != nil {
        writeProblem(w, http.StatusNotFound, "Subscription not found", id, r.URL.Path)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyHandler reports readiness: the mandatory sources must be present.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
    for _, p := range []string{s.Cfg.Data.ResultsPath, s.Cfg.Data.BestKnownPath} {
        if _, err := os.Stat(p); err != nil {
            writeProblem(w, http.StatusServiceUnavailable, "Not ready", err.Error(), r.URL.Path)
            return
        }
    }
    writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
