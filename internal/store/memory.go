package store

import (
    "context"
    "sort"
    "sync"
    "time"

    "vrpreport/internal/metrics"
    "vrpreport/internal/report"
)

// Memory holds one snapshot per session, guarded by a single mutex.
// Sessions never share derived state; each holds its own load.
type Memory struct {
    mu     sync.Mutex
    loader *report.Loader
    snaps  map[string]*report.Snapshot // sessionId -> snapshot
}

func NewMemory(loader *report.Loader) *Memory {
    return &Memory{loader: loader, snaps: map[string]*report.Snapshot{}}
}

func (m *Memory) Snapshot(ctx context.Context, sessionID string) (*report.Snapshot, error) {
    m.mu.Lock()
    if snap, ok := m.snaps[sessionID]; ok {
        m.mu.Unlock()
        return snap, nil
    }
    m.mu.Unlock()
    return m.Refresh(ctx, sessionID)
}

func (m *Memory) Refresh(_ context.Context, sessionID string) (*report.Snapshot, error) {
    // Load outside the lock; a failed load leaves any previous snapshot
    // in place untouched.
    start := time.Now()
    snap, err := m.loader.Load()
    metrics.LoadDuration.Observe(time.Since(start).Seconds())
    if err != nil {
        metrics.Loads.WithLabelValues("error").Inc()
        return nil, err
    }
    if len(snap.Warnings) > 0 {
        metrics.Loads.WithLabelValues("missing_validation").Inc()
    } else {
        metrics.Loads.WithLabelValues("ok").Inc()
    }
    m.mu.Lock()
    m.snaps[sessionID] = snap
    m.mu.Unlock()
    return snap, nil
}

func (m *Memory) Drop(_ context.Context, sessionID string) {
    m.mu.Lock()
    delete(m.snaps, sessionID)
    m.mu.Unlock()
}

func (m *Memory) Sessions(_ context.Context) []string {
    m.mu.Lock()
    defer m.mu.Unlock()
    ids := make([]string, 0, len(m.snaps))
    for id := range m.snaps {
        ids = append(ids, id)
    }
    sort.Strings(ids)
    return ids
}
