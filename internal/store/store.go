package store

import (
    "context"

    "vrpreport/internal/report"
)

// Store caches loaded snapshots per session. The load happens at most
// once per session; Refresh is the only way to re-read the sources.
type Store interface {
    // Snapshot returns the session's cached snapshot, loading it on
    // first use.
    Snapshot(ctx context.Context, sessionID string) (*report.Snapshot, error)
    // Refresh discards the session's cached snapshot and loads a fresh
    // one.
    Refresh(ctx context.Context, sessionID string) (*report.Snapshot, error)
    // Drop forgets the session's snapshot without loading a new one.
    Drop(ctx context.Context, sessionID string)
    // Sessions lists session ids that currently hold a snapshot.
    Sessions(ctx context.Context) []string
}
