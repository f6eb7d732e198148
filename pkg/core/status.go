package core

// SnapshotStatus represents the outcome of a single snapshot capture
type SnapshotStatus int

const (
	SnapshotMatched      SnapshotStatus = iota // Render matches the stored reference
	SnapshotNewReference                       // No reference existed (or record mode); baseline written
	SnapshotMismatch                           // Render differs from the reference beyond tolerance
	SnapshotSkipped                            // Capture disabled for this step
	SnapshotUnavailable                        // Rendering produced no pixels on this platform
)

// String returns the string representation of SnapshotStatus
func (s SnapshotStatus) String() string {
	switch s {
	case SnapshotMatched:
		return "matched"
	case SnapshotNewReference:
		return "new-reference"
	case SnapshotMismatch:
		return "mismatch"
	case SnapshotSkipped:
		return "skipped"
	case SnapshotUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// IsFailure returns true if a test runner should report this capture as failed.
// Mismatches and unavailable renders fail; a fresh baseline passes by design.
func (s SnapshotStatus) IsFailure() bool {
	return s == SnapshotMismatch || s == SnapshotUnavailable
}

// WritesReference returns true if this status implies the reference file
// on disk was (re)written by the capture.
func (s SnapshotStatus) WritesReference() bool {
	return s == SnapshotNewReference
}
