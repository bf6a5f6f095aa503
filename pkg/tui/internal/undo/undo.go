// ABOUTME: Bounded undo/redo history of editor snapshots
// ABOUTME: Undo and Redo trade the caller's current state for the stored one

package undo

// Stack keeps the states an editor can return to.
type Stack[S any] struct {
	undo []S
	redo []S
	max  int
}

// New returns a Stack remembering at most maxSize states.
func New[S any](maxSize int) *Stack[S] {
	maxSize = max(maxSize, 1)
	return &Stack[S]{undo: make([]S, 0, maxSize), max: maxSize}
}

// Push records state as the one to return to on the next Undo and forgets
// any redo history.
func (s *Stack[S]) Push(state S) {
	if len(s.undo) == s.max {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:s.max-1]
	}
	s.undo = append(s.undo, state)
	s.redo = s.redo[:0]
}

// Undo returns the last pushed state and keeps current for Redo.
func (s *Stack[S]) Undo(current S) (S, bool) {
	if len(s.undo) == 0 {
		var zero S
		return zero, false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current)
	return prev, true
}

// Redo returns the state replaced by the last Undo and keeps current for
// Undo.
func (s *Stack[S]) Redo(current S) (S, bool) {
	if len(s.redo) == 0 {
		var zero S
		return zero, false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current)
	return next, true
}

// CanUndo reports whether Undo has a state to return.
func (s *Stack[S]) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether Redo has a state to return.
func (s *Stack[S]) CanRedo() bool {
	return len(s.redo) > 0
}

// Clear forgets all history.
func (s *Stack[S]) Clear() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}
