package siemesh

import (
	"errors"
	"testing"
)

// fakeCommand counts applications so the tests can watch the history drive
// it, without touching mesh state.
type fakeCommand struct {
	applied int
	doErr   error
	undoErr error
}

func (c *fakeCommand) Do(m *Mesh) error {
	if c.doErr != nil {
		return c.doErr
	}
	c.applied++
	return nil
}

func (c *fakeCommand) Undo(m *Mesh) error {
	if c.undoErr != nil {
		return c.undoErr
	}
	c.applied--
	return nil
}

// guardedCommand refuses execution or undo through the optional guards.
type guardedCommand struct {
	fakeCommand
	execOK bool
	undoOK bool
}

func (c *guardedCommand) CanExecute(m *Mesh) bool { return c.execOK }
func (c *guardedCommand) CanUndo(m *Mesh) bool    { return c.undoOK }

func TestHistoryExecuteUndoRedo(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()
	cmd := &fakeCommand{}

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history claims undo/redo")
	}
	if err := h.Execute(cmd, m); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cmd.applied != 1 || !h.CanUndo() || h.CanRedo() {
		t.Fatalf("after execute: applied=%d canUndo=%v canRedo=%v", cmd.applied, h.CanUndo(), h.CanRedo())
	}

	if err := h.Undo(m); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if cmd.applied != 0 || h.CanUndo() || !h.CanRedo() {
		t.Fatalf("after undo: applied=%d canUndo=%v canRedo=%v", cmd.applied, h.CanUndo(), h.CanRedo())
	}

	if err := h.Redo(m); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if cmd.applied != 1 || !h.CanUndo() || h.CanRedo() {
		t.Fatalf("after redo: applied=%d canUndo=%v canRedo=%v", cmd.applied, h.CanUndo(), h.CanRedo())
	}
}

func TestHistoryEmptyUndoRedo(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()
	if err := h.Undo(m); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty history = %v, want ErrNothingToUndo", err)
	}
	if err := h.Redo(m); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty history = %v, want ErrNothingToRedo", err)
	}
}

func TestHistoryDiscardsRedoTail(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()
	first, second, third := &fakeCommand{}, &fakeCommand{}, &fakeCommand{}

	h.Execute(first, m)
	h.Execute(second, m)
	h.Undo(m)

	// executing now must discard the redo entry for second
	if err := h.Execute(third, m); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if h.CanRedo() {
		t.Error("redo still available after executing a new command")
	}
	if err := h.Redo(m); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo = %v, want ErrNothingToRedo", err)
	}
	if second.applied != 0 {
		t.Errorf("discarded command applied = %d, want 0", second.applied)
	}
}

func TestHistoryBoundedSize(t *testing.T) {
	h := NewHistory(3)
	m := NewMesh()

	cmds := make([]*fakeCommand, 5)
	for i := range cmds {
		cmds[i] = &fakeCommand{}
		if err := h.Execute(cmds[i], m); err != nil {
			t.Fatalf("Execute %d: %v", i, err)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("history length = %d, want 3", h.Len())
	}

	// undo can only reach back to the oldest surviving entry
	undone := 0
	for h.CanUndo() {
		if err := h.Undo(m); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		undone++
	}
	if undone != 3 {
		t.Errorf("undo reached %d entries, want 3", undone)
	}
	if cmds[0].applied != 1 || cmds[1].applied != 1 {
		t.Error("evicted commands were undone")
	}
}

func TestHistoryGuards(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()

	refused := &guardedCommand{execOK: false, undoOK: true}
	if err := h.Execute(refused, m); !errors.Is(err, ErrCannotExecute) {
		t.Errorf("Execute with failing guard = %v, want ErrCannotExecute", err)
	}
	if refused.applied != 0 || h.Len() != 0 {
		t.Error("refused command still ran or was recorded")
	}

	stuck := &guardedCommand{execOK: true, undoOK: false}
	h.Execute(stuck, m)
	if err := h.Undo(m); !errors.Is(err, ErrCannotUndo) {
		t.Errorf("Undo with failing guard = %v, want ErrCannotUndo", err)
	}
	if !h.CanUndo() {
		t.Error("failed undo moved the cursor")
	}
}

func TestHistoryErrorLeavesStackUnmodified(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()
	boom := errors.New("boom")

	h.Execute(&fakeCommand{}, m)
	if err := h.Execute(&fakeCommand{doErr: boom}, m); !errors.Is(err, boom) {
		t.Fatalf("Execute = %v, want boom", err)
	}
	if h.Len() != 1 {
		t.Errorf("failed command was recorded, length = %d", h.Len())
	}

	failing := &fakeCommand{undoErr: boom}
	h.Execute(failing, m)
	if err := h.Undo(m); !errors.Is(err, boom) {
		t.Fatalf("Undo = %v, want boom", err)
	}
	if !h.CanUndo() {
		t.Error("failed undo moved the cursor")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(0)
	m := NewMesh()
	h.Execute(&fakeCommand{}, m)
	h.Execute(&fakeCommand{}, m)

	h.Clear()
	if h.Len() != 0 || h.CanUndo() || h.CanRedo() {
		t.Error("Clear did not reset the history")
	}
}
