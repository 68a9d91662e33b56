// Package history provides bounded linear undo/redo over whole-project
// snapshots. Snapshot granularity trades memory for simplicity: restoring
// a state is a pointer swap, and a failed edit can never leave history
// half-recorded because failed edits are simply not pushed.
package history

import (
	"errors"
	"sync"

	"github.com/forgecut/forgecut/internal/timeline"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no explicit capacity is
// given. The bound is a resource limit, not a promise of unlimited
// history.
const DefaultMaxEntries = 100

// History holds the undo and redo stacks. Entries are deep snapshots; the
// caller must never mutate a snapshot after pushing it.
type History struct {
	mu sync.Mutex

	undoStack []*timeline.Project
	redoStack []*timeline.Project

	maxEntries int
}

// New creates a history bounded to maxEntries snapshots.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records the pre-edit snapshot after a successful edit and clears
// the redo stack: history is linear, a new edit invalidates redo. At
// capacity the oldest snapshot is evicted first.
func (h *History) Push(snapshot *timeline.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, snapshot)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent snapshot, pushing current onto the redo
// stack, and returns the popped state. Returns ErrNothingToUndo with
// state untouched when the stack is empty.
func (h *History) Undo(current *timeline.Project) (*timeline.Project, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	restored := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return restored, nil
}

// Redo is symmetric to Undo.
func (h *History) Redo(current *timeline.Project) (*timeline.Project, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	restored := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return restored, nil
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// MaxEntries returns the configured capacity.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// Clear drops both stacks. Called when a different project is loaded.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
