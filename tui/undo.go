// ABOUTME: Undo/redo stack manager for request editing
// ABOUTME: Manages request history with maximum stack size limit

package tui

// RequestState captures a snapshot of the request input for undo/redo
type RequestState struct {
	Text   string
	Cursor int
}

// UndoManager manages undo/redo stacks with maximum size limit
type UndoManager struct {
	undoStack []RequestState
	redoStack []RequestState
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		undoStack: []RequestState{},
		redoStack: []RequestState{},
		maxSize:   maxSize,
	}
}

// Push saves a new state to the undo stack
// Clears the redo stack (you can't redo after a new edit)
func (um *UndoManager) Push(state RequestState) {
	um.undoStack = pushBounded(um.undoStack, state, um.maxSize)
	um.redoStack = []RequestState{}
}

// Undo restores the previous state
// Returns the state and true if undo was successful, or zero value and false if nothing to undo
func (um *UndoManager) Undo(current RequestState) (RequestState, bool) {
	if len(um.undoStack) == 0 {
		return RequestState{}, false
	}

	um.redoStack = pushBounded(um.redoStack, current, um.maxSize)

	state := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]

	return state, true
}

// Redo restores the next state
// Returns the state and true if redo was successful, or zero value and false if nothing to redo
func (um *UndoManager) Redo(current RequestState) (RequestState, bool) {
	if len(um.redoStack) == 0 {
		return RequestState{}, false
	}

	um.undoStack = pushBounded(um.undoStack, current, um.maxSize)

	state := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]

	return state, true
}

// UndoSize returns the number of items in the undo stack
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

// Clear clears both stacks
func (um *UndoManager) Clear() {
	um.undoStack = []RequestState{}
	um.redoStack = []RequestState{}
}

// pushBounded appends and drops the oldest entry when over maxSize
func pushBounded(stack []RequestState, state RequestState, maxSize int) []RequestState {
	stack = append(stack, state)
	if len(stack) > maxSize {
		stack = stack[1:]
	}

	return stack
}
