// Package app ties the buffer, the scope tracker, the renderer, and the
// input loop together into the editor application.
package app

import (
	"fmt"
	"os"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
	"outpad/internal/region"
)

// Editor is the document model behind the view: one buffer, one
// selection, and the active-scope tracker fed from selection and focus
// changes.
type Editor struct {
	buf     *buffer.Buffer
	sel     cursor.Selection
	tracker *region.Tracker

	focused  bool
	scopeAll bool
	path     string
	dirty    bool
}

// NewEditor creates an editor over the given buffer.
func NewEditor(buf *buffer.Buffer) *Editor {
	return &Editor{
		buf:     buf,
		sel:     cursor.NewCursor(0),
		tracker: region.NewTracker(buf),
		focused: true,
	}
}

// LoadFile creates an editor over the contents of a file, keeping its
// line ending convention.
func LoadFile(path string) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	text := string(data)
	buf := buffer.NewBufferFromString(text, buffer.WithLineEnding(buffer.DetectLineEnding(text)))

	ed := NewEditor(buf)
	ed.path = path
	return ed, nil
}

// Save writes the buffer back to its file.
func (e *Editor) Save() error {
	if e.path == "" {
		return fmt.Errorf("no file name")
	}
	if err := os.WriteFile(e.path, []byte(e.buf.Text()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.dirty = false
	return nil
}

// SaveAs writes the buffer to a new file and adopts the name.
func (e *Editor) SaveAs(path string) error {
	e.path = path
	return e.Save()
}

// Buffer returns the underlying buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Selection returns the current selection.
func (e *Editor) Selection() cursor.Selection { return e.sel }

// Tracker returns the active-scope tracker.
func (e *Editor) Tracker() *region.Tracker { return e.tracker }

// Path returns the file the editor is bound to, if any.
func (e *Editor) Path() string { return e.path }

// SetPath binds the editor to a file name without writing it.
func (e *Editor) SetPath(path string) { e.path = path }

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty }

// Focused reports whether the editor has input focus.
func (e *Editor) Focused() bool { return e.focused }

// SetFocused updates focus and lets the tracker capture the selection on
// focus gain.
func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
	e.updateScope()
}

// ScopeAll reports whether the scope is pinned to the whole document.
func (e *Editor) ScopeAll() bool { return e.scopeAll }

// ToggleScopeAll pins the scope to the whole document or releases it back
// to selection tracking.
func (e *Editor) ToggleScopeAll() {
	e.scopeAll = !e.scopeAll
	if e.scopeAll {
		e.tracker.Set(e.buf, cursor.NewSelection(0, e.buf.Len()))
		return
	}
	e.updateScope()
}

// SetSelection moves the selection and feeds the tracker.
func (e *Editor) SetSelection(sel cursor.Selection) {
	e.sel = sel.Clamp(e.buf.Len())
	e.updateScope()
}

func (e *Editor) updateScope() {
	if e.scopeAll {
		return
	}
	e.tracker.Update(e.buf, e.sel, e.focused)
}

// SelectAll selects the whole buffer.
func (e *Editor) SelectAll() {
	e.SetSelection(cursor.NewSelection(0, e.buf.Len()))
}

// MoveLeft moves one grapheme left, or collapses the selection.
func (e *Editor) MoveLeft(extend bool) {
	if !extend && !e.sel.IsEmpty() {
		e.SetSelection(e.sel.CollapseToStart())
		return
	}
	target := e.buf.PrevGrapheme(e.sel.Head)
	e.move(target, extend)
}

// MoveRight moves one grapheme right, or collapses the selection.
func (e *Editor) MoveRight(extend bool) {
	if !extend && !e.sel.IsEmpty() {
		e.SetSelection(e.sel.CollapseToEnd())
		return
	}
	target := e.buf.NextGrapheme(e.sel.Head)
	e.move(target, extend)
}

// MoveUp moves the cursor one line up, keeping the column when possible.
func (e *Editor) MoveUp(extend bool) {
	pt := e.buf.OffsetToPoint(e.sel.Head)
	if pt.Line == 0 {
		e.move(0, extend)
		return
	}
	e.move(e.buf.PointToOffset(buffer.Point{Line: pt.Line - 1, Column: pt.Column}), extend)
}

// MoveDown moves the cursor one line down, keeping the column when
// possible.
func (e *Editor) MoveDown(extend bool) {
	pt := e.buf.OffsetToPoint(e.sel.Head)
	if pt.Line >= e.buf.LineCount()-1 {
		e.move(e.buf.Len(), extend)
		return
	}
	e.move(e.buf.PointToOffset(buffer.Point{Line: pt.Line + 1, Column: pt.Column}), extend)
}

// MoveLineStart moves to the start of the cursor's line.
func (e *Editor) MoveLineStart(extend bool) {
	pt := e.buf.OffsetToPoint(e.sel.Head)
	e.move(e.buf.LineStartOffset(pt.Line), extend)
}

// MoveLineEnd moves to the end of the cursor's line.
func (e *Editor) MoveLineEnd(extend bool) {
	pt := e.buf.OffsetToPoint(e.sel.Head)
	e.move(e.buf.LineEndOffset(pt.Line), extend)
}

// MoveDoc moves to the start or end of the document.
func (e *Editor) MoveDoc(end, extend bool) {
	if end {
		e.move(e.buf.Len(), extend)
		return
	}
	e.move(0, extend)
}

// Click places the cursor at an offset, extending when requested.
func (e *Editor) Click(off buffer.ByteOffset, extend bool) {
	e.move(off, extend)
}

func (e *Editor) move(target buffer.ByteOffset, extend bool) {
	if extend {
		e.SetSelection(e.sel.Extend(target))
		return
	}
	e.SetSelection(cursor.NewCursor(target))
}

// InsertText replaces the selection with the given text.
func (e *Editor) InsertText(s string) error {
	end, err := e.buf.Replace(e.sel.Start(), e.sel.End(), s)
	if err != nil {
		return err
	}
	e.afterEdit(cursor.NewCursor(end))
	return nil
}

// InsertNewline inserts a line break in the buffer's convention.
func (e *Editor) InsertNewline() error {
	return e.InsertText("\n")
}

// Backspace deletes the selection, or the grapheme before the cursor.
func (e *Editor) Backspace() error {
	start, end := e.sel.Start(), e.sel.End()
	if e.sel.IsEmpty() {
		if start == 0 {
			return nil
		}
		start = e.buf.PrevGrapheme(start)
	}
	if err := e.buf.Delete(start, end); err != nil {
		return err
	}
	e.afterEdit(cursor.NewCursor(start))
	return nil
}

// DeleteForward deletes the selection, or the grapheme after the cursor.
func (e *Editor) DeleteForward() error {
	start, end := e.sel.Start(), e.sel.End()
	if e.sel.IsEmpty() {
		if end >= e.buf.Len() {
			return nil
		}
		end = e.buf.NextGrapheme(end)
	}
	if err := e.buf.Delete(start, end); err != nil {
		return err
	}
	e.afterEdit(cursor.NewCursor(start))
	return nil
}

// SelectMatch adopts a search result selection without feeding the
// tracker, so a find cycle never redefines its own scope.
func (e *Editor) SelectMatch(sel cursor.Selection) {
	e.sel = sel.Clamp(e.buf.Len())
}

// DocumentChanged tells the tracker the buffer was edited outside the
// editor's own operations (scripts, replace-all).
func (e *Editor) DocumentChanged() {
	e.dirty = true
	e.tracker.DocumentChanged(e.buf)
	e.sel = e.sel.Clamp(e.buf.Len())
}

func (e *Editor) afterEdit(sel cursor.Selection) {
	e.dirty = true
	e.tracker.DocumentChanged(e.buf)
	if e.scopeAll {
		e.tracker.Set(e.buf, cursor.NewSelection(0, e.buf.Len()))
	}
	e.sel = sel.Clamp(e.buf.Len())
}
