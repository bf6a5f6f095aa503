// ABOUTME: Single-line editor behind text prompts and selection filters
// ABOUTME: Emacs-style key map over textbuf with a kill ring and an undo history

package form

import (
	"strings"
	"unicode/utf8"

	"github.com/mauromedda/pi-prompt/pkg/tui/internal/killring"
	"github.com/mauromedda/pi-prompt/pkg/tui/internal/undo"
	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/textbuf"
	"github.com/mauromedda/pi-prompt/pkg/tui/theme"
)

const undoDepth = 100

type editAction int

const (
	actionNone editAction = iota
	actionInsert
	actionKill
	actionYank
)

// editor is a line of text with a cursor.
type editor struct {
	buf   *textbuf.Buffer
	kills *killring.Ring
	hist  *undo.Stack[textbuf.State]

	last      editAction
	yankStart int
}

func newEditor(text string) *editor {
	return &editor{
		buf:   textbuf.New(text),
		kills: killring.New(killring.DefaultSize),
		hist:  undo.New[textbuf.State](undoDepth),
	}
}

// String returns the text.
func (e *editor) String() string {
	return e.buf.String()
}

// Empty reports whether there is no text.
func (e *editor) Empty() bool {
	return e.buf.Len() == 0
}

// Reset empties the editor and forgets its undo history. The kill ring is
// kept.
func (e *editor) Reset() {
	e.buf.Reset()
	e.hist.Clear()
	e.last = actionNone
}

// handle applies k and reports whether it was an editing key that did
// something.
func (e *editor) handle(k key.Key) bool {
	last := e.last
	e.last = actionNone

	switch {
	case k.IsPrintable():
		if last != actionInsert {
			e.hist.Push(e.buf.Snapshot())
		}
		e.buf.Insert(k.Rune)
		e.last = actionInsert
		return true

	case k.Type == key.KeyBackspace && k.Alt, k.IsCtrl('w'):
		return e.kill(e.buf.BackspaceWord, true, last == actionKill)
	case k.IsAlt('d'):
		return e.kill(e.buf.DeleteWord, false, last == actionKill)
	case k.IsCtrl('u'):
		return e.kill(e.buf.DeleteToStart, true, last == actionKill)
	case k.IsCtrl('k'):
		return e.kill(e.buf.DeleteToEnd, false, last == actionKill)

	case k.Type == key.KeyBackspace, k.IsCtrl('h'):
		return e.edit(e.buf.Backspace)
	case k.Type == key.KeyDelete, k.IsCtrl('d'):
		return e.edit(e.buf.Delete)

	case k.IsCtrl('y'):
		return e.yank()
	case k.IsAlt('y'):
		return last == actionYank && e.yankPop()

	case k.IsCtrl('z') && k.Shift, k.IsAlt('z'):
		return e.redo()
	case k.IsCtrl('z'), k.IsCtrl('_'):
		return e.undo()

	case k.Type == key.KeyLeft && (k.Ctrl || k.Alt), k.IsAlt('b'):
		return e.move(e.buf.MoveToPreviousWord, e.buf.IsStart())
	case k.Type == key.KeyRight && (k.Ctrl || k.Alt), k.IsAlt('f'):
		return e.move(e.buf.MoveToNextWord, e.buf.IsEnd())
	case k.Type == key.KeyLeft, k.IsCtrl('b'):
		return e.move(e.buf.MoveBackward, e.buf.IsStart())
	case k.Type == key.KeyRight, k.IsCtrl('f'):
		return e.move(e.buf.MoveForward, e.buf.IsEnd())
	case k.Type == key.KeyHome, k.IsCtrl('a'):
		return e.move(e.buf.MoveToStart, e.buf.IsStart())
	case k.Type == key.KeyEnd, k.IsCtrl('e'):
		return e.move(e.buf.MoveToEnd, e.buf.IsEnd())
	}
	return false
}

func (e *editor) move(fn func(), atLimit bool) bool {
	if atLimit {
		return false
	}
	fn()
	return true
}

func (e *editor) edit(fn func() bool) bool {
	before := e.buf.Snapshot()
	if !fn() {
		return false
	}
	e.hist.Push(before)
	return true
}

func (e *editor) kill(cut func() string, backward, merge bool) bool {
	before := e.buf.Snapshot()
	text := cut()
	if text == "" {
		return false
	}
	e.hist.Push(before)
	e.kills.Kill(text, backward, merge)
	e.last = actionKill
	return true
}

func (e *editor) yank() bool {
	text, ok := e.kills.Yank()
	if !ok {
		return false
	}
	e.hist.Push(e.buf.Snapshot())
	e.yankStart = e.buf.Cursor()
	e.buf.InsertString(text)
	e.last = actionYank
	return true
}

// yankPop replaces the text inserted by the previous yank with the older
// kill ring entry.
func (e *editor) yankPop() bool {
	text, ok := e.kills.YankPop()
	if !ok {
		return false
	}
	for e.buf.Cursor() > e.yankStart {
		e.buf.Backspace()
	}
	e.buf.InsertString(text)
	e.last = actionYank
	return true
}

func (e *editor) undo() bool {
	prev, ok := e.hist.Undo(e.buf.Snapshot())
	if !ok {
		return false
	}
	e.buf.Restore(prev)
	return true
}

func (e *editor) redo() bool {
	next, ok := e.hist.Redo(e.buf.Snapshot())
	if !ok {
		return false
	}
	e.buf.Restore(next)
	return true
}

// render writes the text with the cursor pushed at the editing position.
// A non-nil mask replaces every rune with the mask string.
func (e *editor) render(f *frame, color theme.Color, mask *string) {
	before, after := e.buf.ToBackwardString(), e.buf.ToForwardString()
	if mask != nil {
		before = strings.Repeat(*mask, utf8.RuneCountInString(before))
		after = strings.Repeat(*mask, utf8.RuneCountInString(after))
	}
	f.Write(before, color)
	f.PushCursor()
	f.Write(after, color)
}
