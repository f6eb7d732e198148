package flow

import (
	"context"
	"testing"
)

type cartModel struct {
	items int
}

func TestNewStep_Defaults(t *testing.T) {
	step := NewStep("add-item", func(m *cartModel) { m.items++ })

	if step.Name != "add-item" {
		t.Errorf("Name = %q, want add-item", step.Name)
	}
	if !step.SnapshotEnabled {
		t.Error("SnapshotEnabled = false, want true by default")
	}
	if step.AsyncAction != nil {
		t.Error("AsyncAction set on synchronous step")
	}
	if len(step.Assertions) != 0 {
		t.Errorf("Assertions = %d, want 0", len(step.Assertions))
	}
}

func TestNewAsyncStep(t *testing.T) {
	ran := false
	step := NewAsyncStep("load", func(_ context.Context, m *cartModel) { ran = true })

	if step.Action != nil {
		t.Error("Action set on async step")
	}
	if !step.SnapshotEnabled {
		t.Error("SnapshotEnabled = false, want true by default")
	}
	step.AsyncAction(context.Background(), &cartModel{})
	if !ran {
		t.Error("async action did not run")
	}
}

func TestStep_WithoutSnapshot(t *testing.T) {
	original := NewStep("s", func(*cartModel) {})
	quiet := original.WithoutSnapshot()

	if quiet.SnapshotEnabled {
		t.Error("WithoutSnapshot() kept SnapshotEnabled")
	}
	// Steps are values; the original must be untouched
	if !original.SnapshotEnabled {
		t.Error("WithoutSnapshot() mutated the original step")
	}
}

func TestStep_WithAssertions(t *testing.T) {
	original := NewStep("s", func(*cartModel) {},
		Assert("one item", func(m *cartModel) {}))
	extended := original.WithAssertions(
		Assert("still one", func(m *cartModel) {}),
		Assert("labels kept", func(m *cartModel) {}))

	if len(extended.Assertions) != 3 {
		t.Errorf("extended assertions = %d, want 3", len(extended.Assertions))
	}
	if len(original.Assertions) != 1 {
		t.Errorf("original assertions = %d, want 1 (must not be mutated)", len(original.Assertions))
	}
	if extended.Assertions[2].Label != "labels kept" {
		t.Errorf("assertion order lost: %q", extended.Assertions[2].Label)
	}
}
