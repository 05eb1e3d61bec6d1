package rewind

import (
	"errors"
	"testing"
)

// Grouping Tests

func TestTimeMachineGrouping(t *testing.T) {
	tm := New(&counter{})

	tm.BeginGroup("shift twice")
	tm.Execute(&translate{by: 2})
	tm.Execute(&translate{by: 3})
	tm.EndGroup()

	if tm.State().value != 5 {
		t.Fatalf("value = %d, want 5", tm.State().value)
	}
	if tm.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 entry for the whole group", tm.Len())
	}

	// Single undo reverts both commands.
	tm.Undo()
	if tm.State().value != 0 {
		t.Errorf("value = %d, want 0 after one undo", tm.State().value)
	}
	if tm.CanUndo() {
		t.Error("history should be empty after undoing the group")
	}
}

func TestTimeMachineGroupingNested(t *testing.T) {
	tm := New(&counter{})

	tm.BeginGroup("outer")
	tm.BeginGroup("inner") // ignored
	tm.Execute(&translate{by: 1})
	tm.EndGroup()

	info, ok := tm.Peek()
	if !ok {
		t.Fatal("no entry recorded")
	}
	if info.Description != "outer" {
		t.Errorf("Description = %q, want %q", info.Description, "outer")
	}
	if tm.IsGrouping() {
		t.Error("group should be closed after EndGroup")
	}
}

func TestTimeMachineCancelGroup(t *testing.T) {
	tm := New(&counter{})

	tm.BeginGroup("abandoned")
	tm.Execute(&translate{by: 7})
	tm.CancelGroup()

	// The command already ran; only its record is discarded.
	if tm.State().value != 7 {
		t.Errorf("value = %d, want 7", tm.State().value)
	}
	if tm.CanUndo() {
		t.Error("cancelled group should record nothing")
	}
}

func TestTimeMachineEmptyGroup(t *testing.T) {
	tm := New(&counter{})

	tm.BeginGroup("empty")
	tm.EndGroup()

	if tm.Len() != 0 {
		t.Errorf("Len() = %d, want 0; empty groups record nothing", tm.Len())
	}
}

func TestTimeMachineUndoIgnoresOpenGroup(t *testing.T) {
	tm := New(&counter{})
	tm.Execute(&translate{by: 1})

	tm.BeginGroup("open")
	tm.Execute(&translate{by: 2})

	// Undo sees committed history only; the open group's records are not
	// reachable until EndGroup.
	if !tm.Undo() {
		t.Fatal("committed entry should still be undoable")
	}
	if tm.State().value != 2 {
		t.Errorf("value = %d, want 2", tm.State().value)
	}

	tm.EndGroup()
	tm.Undo()
	if tm.State().value != 0 {
		t.Errorf("value = %d, want 0 after undoing the group", tm.State().value)
	}
}

func TestTimeMachineGroupScope(t *testing.T) {
	tm := New(&counter{})

	func() {
		defer tm.GroupScope("scoped").End()
		tm.Execute(&translate{by: 1})
		tm.Execute(&translate{by: 2})
	}()

	if tm.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tm.Len())
	}

	// End is idempotent.
	scope := tm.GroupScope("again")
	tm.Execute(&translate{by: 4})
	scope.End()
	scope.End()

	if tm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tm.Len())
	}
}

func TestTimeMachineGroupScopeCancel(t *testing.T) {
	tm := New(&counter{})

	scope := tm.GroupScope("cancelled")
	tm.Execute(&translate{by: 3})
	scope.Cancel()

	if tm.CanUndo() {
		t.Error("cancelled scope should record nothing")
	}
	if tm.State().value != 3 {
		t.Errorf("value = %d, want 3", tm.State().value)
	}
}

func TestTimeMachineTransaction(t *testing.T) {
	tm := New(&counter{})

	err := tm.Transaction("shift both ways", func() error {
		tm.Execute(&translate{by: 10})
		tm.Execute(&translate{by: -4})
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	if tm.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tm.Len())
	}

	tm.Undo()
	if tm.State().value != 0 {
		t.Errorf("value = %d, want 0", tm.State().value)
	}
}

func TestTimeMachineTransactionError(t *testing.T) {
	tm := New(&counter{})
	boom := errors.New("boom")

	err := tm.Transaction("failing", func() error {
		tm.Execute(&translate{by: 5})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	// The group was cancelled: the effect stays, the record does not.
	if tm.State().value != 5 {
		t.Errorf("value = %d, want 5", tm.State().value)
	}
	if tm.CanUndo() {
		t.Error("failed transaction should record nothing")
	}
}

func TestTimeMachineExecuteGrouped(t *testing.T) {
	tm := New(&counter{})

	tm.ExecuteGrouped("none")
	if tm.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for zero commands", tm.Len())
	}

	tm.ExecuteGrouped("single", &translate{by: 1})
	if info, _ := tm.Peek(); info.Description != "translate +1" {
		t.Errorf("single command should be recorded as itself, got %q", info.Description)
	}

	tm.ExecuteGrouped("pair", &translate{by: 2}, &translate{by: 4})
	if tm.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tm.Len())
	}
	if info, _ := tm.Peek(); info.Description != "pair" {
		t.Errorf("Description = %q, want %q", info.Description, "pair")
	}

	tm.Undo()
	if tm.State().value != 1 {
		t.Errorf("value = %d, want 1 after undoing the pair", tm.State().value)
	}
}

// Checkpoint Tests

func TestTimeMachineCheckpoint(t *testing.T) {
	tm := New(&counter{})
	tm.Execute(&translate{by: 1})
	tm.Execute(&translate{by: 2})

	cp := tm.Checkpoint()

	tm.Execute(&translate{by: 4})
	tm.Execute(&translate{by: 8})

	if !tm.UndoTo(cp) {
		t.Fatal("UndoTo returned false for a reachable checkpoint")
	}
	if tm.State().value != 3 {
		t.Errorf("value = %d, want 3", tm.State().value)
	}
	if tm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tm.Len())
	}
}

func TestTimeMachineCheckpointUnreachable(t *testing.T) {
	tm := New(&counter{})
	tm.Execute(&translate{by: 1})
	tm.Execute(&translate{by: 2})

	cp := tm.Checkpoint()
	tm.Clear()

	if tm.UndoTo(cp) {
		t.Error("UndoTo should report false once the checkpoint's entries are gone")
	}
}

func TestTimeMachineCheckpointAtCurrentDepth(t *testing.T) {
	tm := New(&counter{})
	tm.Execute(&translate{by: 1})

	cp := tm.Checkpoint()

	if !tm.UndoTo(cp) {
		t.Error("UndoTo at the current depth should succeed without undoing")
	}
	if tm.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tm.Len())
	}
}
