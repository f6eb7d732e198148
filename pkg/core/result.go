// Package core provides the execution model types for flowshot.
package core

import (
	"time"
)

// SnapshotResult captures the outcome of one snapshot capture call
type SnapshotResult struct {
	// Status
	Status SnapshotStatus `json:"status"`

	// Artifact paths (set according to status)
	ReferencePath string `json:"referencePath,omitempty"` // Stored baseline PNG
	ActualPath    string `json:"actualPath,omitempty"`    // Last mismatching render ({name}.fail.png)
	DiffPath      string `json:"diffPath,omitempty"`      // Visual diff, only when generation succeeded

	// PNGData holds the actually rendered bytes. Always non-nil on mismatch.
	PNGData []byte `json:"-"`
}

// StepResult captures the complete outcome of executing a single step
type StepResult struct {
	// Identity
	StepName     string `json:"stepName"`     // Name as declared (may be empty)
	ResolvedName string `json:"resolvedName"` // After tester/name/index/config-label resolution
	Index        int    `json:"index"`        // 0-based position in the executed sequence

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Execution context
	AssertionCount int    `json:"assertionCount"`
	ConfigLabel    string `json:"configLabel,omitempty"` // Set only for matrix runs

	// Snapshot outcome. Nil when the run used custom or disabled capture.
	Snapshot *SnapshotResult `json:"snapshot,omitempty"`
}

// SnapshotStatus returns the step's snapshot status, or SnapshotSkipped
// when the run recorded no snapshot result at all.
func (r StepResult) SnapshotStatus() SnapshotStatus {
	if r.Snapshot == nil {
		return SnapshotSkipped
	}
	return r.Snapshot.Status
}

// RunResult captures the complete outcome of executing a flow tester
type RunResult struct {
	// Identity
	Name string `json:"name"` // Tester name (may be empty)

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Results in execution order (configuration-then-step order for matrix runs)
	Steps []StepResult `json:"steps"`

	// Summary (computed)
	TotalSteps       int `json:"totalSteps"`
	MatchedSteps     int `json:"matchedSteps"`
	NewReferences    int `json:"newReferences"`
	MismatchedSteps  int `json:"mismatchedSteps"`
	SkippedSteps     int `json:"skippedSteps"`
	UnavailableSteps int `json:"unavailableSteps"`
}

// ComputeSummary calculates snapshot counts from the Steps slice
func (r *RunResult) ComputeSummary() {
	r.TotalSteps = len(r.Steps)
	r.MatchedSteps = 0
	r.NewReferences = 0
	r.MismatchedSteps = 0
	r.SkippedSteps = 0
	r.UnavailableSteps = 0

	for _, step := range r.Steps {
		switch step.SnapshotStatus() {
		case SnapshotMatched:
			r.MatchedSteps++
		case SnapshotNewReference:
			r.NewReferences++
		case SnapshotMismatch:
			r.MismatchedSteps++
		case SnapshotSkipped:
			r.SkippedSteps++
		case SnapshotUnavailable:
			r.UnavailableSteps++
		}
	}
}

// Success returns true if no step's snapshot should be reported as failed
func (r *RunResult) Success() bool {
	for _, step := range r.Steps {
		if step.SnapshotStatus().IsFailure() {
			return false
		}
	}
	return true
}
