package siemesh

import "errors"

// Command is one reversible mesh edit. Do applies it, Undo reverses it
// exactly. A command may additionally implement Executable or Undoable;
// missing guards default to true, like a nil transition guard.
type Command interface {
	Do(m *Mesh) error
	Undo(m *Mesh) error
}

// Executable is the optional pre-execute guard.
type Executable interface {
	CanExecute(m *Mesh) bool
}

// Undoable is the optional pre-undo guard.
type Undoable interface {
	CanUndo(m *Mesh) bool
}

var (
	ErrCannotExecute = errors.New("command cannot execute")
	ErrCannotUndo    = errors.New("command cannot undo")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

func commandCanExecute(c Command, m *Mesh) bool {
	if g, ok := c.(Executable); ok {
		return g.CanExecute(m)
	}
	return true
}

func commandCanUndo(c Command, m *Mesh) bool {
	if g, ok := c.(Undoable); ok {
		return g.CanUndo(m)
	}
	return true
}

// DefaultHistoryLimit bounds the stack when NewHistory is given no positive
// limit.
const DefaultHistoryLimit = 100

// History is a bounded, linear undo/redo stack. Executing a new command
// after an undo discards every redo entry; there is no branching. The
// history never inspects a command beyond the Command contract.
type History struct {
	commands []Command
	cursor   int // number of currently-applied commands
	limit    int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Execute runs the command and records it. A guard refusal or an error from
// Do leaves the history untouched. The mesh itself is only as consistent as
// the failing command left it, which is why topology commands snapshot
// before touching anything.
func (h *History) Execute(c Command, m *Mesh) error {
	if !commandCanExecute(c, m) {
		return ErrCannotExecute
	}
	if err := c.Do(m); err != nil {
		return err
	}

	// drop the redo tail, then append
	h.commands = append(h.commands[:h.cursor], c)
	h.cursor++

	if len(h.commands) > h.limit {
		// evict the oldest entry; its edit becomes permanent
		h.commands = h.commands[1:]
		h.cursor--
	}
	return nil
}

func (h *History) Undo(m *Mesh) error {
	if h.cursor == 0 {
		return ErrNothingToUndo
	}
	c := h.commands[h.cursor-1]
	if !commandCanUndo(c, m) {
		return ErrCannotUndo
	}
	if err := c.Undo(m); err != nil {
		return err
	}
	h.cursor--
	return nil
}

func (h *History) Redo(m *Mesh) error {
	if h.cursor >= len(h.commands) {
		return ErrNothingToRedo
	}
	c := h.commands[h.cursor]
	if !commandCanExecute(c, m) {
		return ErrCannotExecute
	}
	if err := c.Do(m); err != nil {
		return err
	}
	h.cursor++
	return nil
}

func (h *History) CanUndo() bool {
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.commands)
}

// Len reports how many commands the stack currently holds (undone entries
// included until they are discarded).
func (h *History) Len() int {
	return len(h.commands)
}

func (h *History) Clear() {
	h.commands = nil
	h.cursor = 0
}
