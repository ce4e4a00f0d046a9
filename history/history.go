// Package history keeps the undo/redo timeline of edits made to a portrait.
package history

import "github.com/raushankrgupta/glow-studio/models"

// Stack is an append-only list of snapshots with a cursor. Appending after an undo
// drops every snapshot past the cursor. The zero value is an empty stack.
type Stack struct {
	entries []models.EditSnapshot
	index   int
}

// New returns an empty stack
func New() *Stack {
	return &Stack{}
}

// Reset clears the timeline
func (s *Stack) Reset() {
	s.entries = nil
	s.index = 0
}

// Start replaces the timeline with a single snapshot
func (s *Stack) Start(snap models.EditSnapshot) {
	s.entries = []models.EditSnapshot{snap}
	s.index = 0
}

// Append truncates any redo branch and pushes snap as the new current snapshot
func (s *Stack) Append(snap models.EditSnapshot) {
	cur := s.Index()
	if cur < len(s.entries)-1 {
		s.entries = s.entries[:cur+1:cur+1]
	}
	s.entries = append(s.entries, snap)
	s.index = len(s.entries) - 1
}

// Undo moves the cursor back one step. At index 0 or below it is a no-op.
func (s *Stack) Undo() (models.EditSnapshot, bool) {
	if s.Index() <= 0 {
		return s.Current(), false
	}
	s.index--
	return s.entries[s.index], true
}

// Redo moves the cursor forward one step. At the last index it is a no-op.
func (s *Stack) Redo() (models.EditSnapshot, bool) {
	if s.Index() >= len(s.entries)-1 {
		return s.Current(), false
	}
	s.index++
	return s.entries[s.index], true
}

// Current returns the snapshot at the cursor, or the zero snapshot for an empty stack
func (s *Stack) Current() models.EditSnapshot {
	i := s.Index()
	if i < 0 {
		return models.EditSnapshot{}
	}
	return s.entries[i]
}

// Index is the cursor position, -1 when empty
func (s *Stack) Index() int {
	if len(s.entries) == 0 {
		return -1
	}
	return s.index
}

func (s *Stack) Len() int { return len(s.entries) }

func (s *Stack) CanUndo() bool { return s.Index() > 0 }

func (s *Stack) CanRedo() bool { return s.Index() < len(s.entries)-1 }
