// Package flow holds the immutable value types a tester executes: steps,
// assertions, and matrix configurations.
package flow

import (
	"context"
)

// Action mutates the model for one step. Actions run on the single
// orchestration thread, never concurrently with another step or phase.
type Action[M any] func(model M)

// AsyncAction is the suspending variant of Action. It is awaited in place
// of the synchronous action by asynchronous runs; the orchestration loop
// is the only suspension point.
type AsyncAction[M any] func(ctx context.Context, model M)

// Assertion checks the model after a step's action and snapshot capture.
// The body reports failures through whatever mechanism the caller closed
// over (typically *testing.T); it never returns or panics a verdict.
type Assertion[M any] struct {
	Label string        // Diagnostic only
	Body  func(model M) // Reports failures externally
}

// Assert builds an assertion with a diagnostic label.
func Assert[M any](label string, body func(model M)) Assertion[M] {
	return Assertion[M]{Label: label, Body: body}
}

// Step is an immutable description of one unit of work. Steps never
// mutate after creation; the With* methods return modified copies.
type Step[M any] struct {
	Name            string         // Empty means auto-name from execution index
	Action          Action[M]      // Synchronous action
	AsyncAction     AsyncAction[M] // Optional; preferred by asynchronous runs
	Assertions      []Assertion[M] // Run in declared order
	SnapshotEnabled bool           // Default true; false always yields a skipped snapshot
}

// NewStep builds a step with snapshotting enabled.
func NewStep[M any](name string, action Action[M], assertions ...Assertion[M]) Step[M] {
	return Step[M]{
		Name:            name,
		Action:          action,
		Assertions:      assertions,
		SnapshotEnabled: true,
	}
}

// NewAsyncStep builds a step whose action suspends.
func NewAsyncStep[M any](name string, action AsyncAction[M], assertions ...Assertion[M]) Step[M] {
	return Step[M]{
		Name:            name,
		AsyncAction:     action,
		Assertions:      assertions,
		SnapshotEnabled: true,
	}
}

// WithoutSnapshot returns a copy of the step with capture opted out.
func (s Step[M]) WithoutSnapshot() Step[M] {
	s.SnapshotEnabled = false
	return s
}

// WithAssertions returns a copy of the step with the assertions appended.
func (s Step[M]) WithAssertions(assertions ...Assertion[M]) Step[M] {
	merged := make([]Assertion[M], 0, len(s.Assertions)+len(assertions))
	merged = append(merged, s.Assertions...)
	merged = append(merged, assertions...)
	s.Assertions = merged
	return s
}
