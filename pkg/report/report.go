// Package report renders a self-contained HTML gallery of snapshot
// outcomes, either from in-memory step results or by scanning a store
// directory after the fact.
package report

import (
	"time"

	"github.com/devicelab-dev/flowshot/pkg/core"
	"github.com/devicelab-dev/flowshot/pkg/snapshot"
)

// Entry is one row of the gallery.
type Entry struct {
	Name     string
	Status   core.SnapshotStatus
	Duration time.Duration

	// Artifact paths, empty when absent.
	Reference string
	Actual    string
	Diff      string
}

// FromResults converts executed step results into report entries.
func FromResults(results []core.StepResult) []Entry {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entry := Entry{
			Name:     r.ResolvedName,
			Status:   r.SnapshotStatus(),
			Duration: r.Duration,
		}
		if r.Snapshot != nil {
			entry.Reference = r.Snapshot.ReferencePath
			entry.Actual = r.Snapshot.ActualPath
			entry.Diff = r.Snapshot.DiffPath
		}
		entries = append(entries, entry)
	}
	return entries
}

// FromStore scans a snapshot directory and synthesizes entries from the
// files on disk: a reference with a lingering fail file reports as a
// mismatch, anything else as matched.
func FromStore(dir string) ([]Entry, error) {
	store := snapshot.NewStore(dir)
	names, err := store.Names()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry := Entry{
			Name:      name,
			Status:    core.SnapshotMatched,
			Reference: store.ReferencePath(name),
		}
		if store.HasFail(name) {
			entry.Status = core.SnapshotMismatch
			entry.Actual = store.FailPath(name)
			entry.Diff = store.DiffPath(name)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
