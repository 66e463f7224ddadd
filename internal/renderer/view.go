package renderer

import (
	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
	"outpad/internal/region"
	"outpad/internal/renderer/backend"
	"outpad/internal/renderer/core"
	"outpad/internal/renderer/layout"
)

// View renders a buffer into a rectangle of the backend surface. It owns
// the viewport (vertical scroll position and, with word wrap off, the
// horizontal offset) and paints three layers per visual row: the text
// cells, the active-scope tint, and the selection highlight.
type View struct {
	backend backend.Backend
	theme   Theme
	cache   *layout.Cache
	rect    core.ScreenRect

	topLine uint32 // first visible buffer line
	topRow  int    // first visible visual row within topLine
	leftCol int    // horizontal scroll, only used with word wrap off

	wordWrap       bool
	showWhitespace bool
	tabWidth       int
}

// NewView creates a view drawing into the given rectangle.
func NewView(b backend.Backend, theme Theme, rect core.ScreenRect) *View {
	v := &View{
		backend:  b,
		theme:    theme,
		rect:     rect,
		tabWidth: 4,
	}
	v.cache = layout.NewCache(v.layoutOptions(), 1000)
	return v
}

// SetRect moves or resizes the viewport.
func (v *View) SetRect(rect core.ScreenRect) {
	v.rect = rect
	v.syncOptions()
}

// Rect returns the viewport rectangle.
func (v *View) Rect() core.ScreenRect {
	return v.rect
}

// SetTheme replaces the theme.
func (v *View) SetTheme(theme Theme) {
	v.theme = theme
	v.syncOptions()
}

// SetWordWrap toggles soft wrapping at the viewport width.
func (v *View) SetWordWrap(on bool) {
	v.wordWrap = on
	if on {
		v.leftCol = 0
	}
	v.syncOptions()
}

// WordWrap reports whether soft wrapping is on.
func (v *View) WordWrap() bool {
	return v.wordWrap
}

// SetShowWhitespace toggles visible whitespace and line-break glyphs.
func (v *View) SetShowWhitespace(on bool) {
	v.showWhitespace = on
	v.syncOptions()
}

// ShowWhitespace reports whether whitespace glyphs are drawn.
func (v *View) ShowWhitespace() bool {
	return v.showWhitespace
}

// SetTabWidth changes the tab stop distance.
func (v *View) SetTabWidth(w int) {
	if w > 0 {
		v.tabWidth = w
		v.syncOptions()
	}
}

func (v *View) layoutOptions() layout.Options {
	opts := layout.Options{
		TabWidth:        v.tabWidth,
		ShowWhitespace:  v.showWhitespace,
		Style:           v.theme.Text,
		WhitespaceStyle: v.theme.Whitespace,
	}
	if v.wordWrap {
		opts.WrapWidth = v.rect.Width()
	}
	return opts
}

func (v *View) syncOptions() {
	if v.cache == nil {
		return
	}
	if opts := v.layoutOptions(); opts != v.cache.Options() {
		v.cache.SetOptions(opts)
	}
}

// rowAt resolves a (line, visual row) pair against the current layouts,
// rolling over to following lines while row is past the end. Returns
// false once past the last buffer line.
func (v *View) rowAt(buf *buffer.Buffer, rev buffer.Revision, line uint32, row int) (uint32, int, *layout.Line, bool) {
	lineCount := buf.LineCount()
	for line < lineCount {
		lay := v.cache.Get(line, buf.LineText(line), rev)
		if row < lay.RowCount() {
			return line, row, lay, true
		}
		row = 0
		line++
	}
	return 0, 0, nil, false
}

// Render paints the buffer into the viewport. The selection highlight is
// drawn whether or not the view is focused; the cursor only when focused.
// The scope tint is skipped while the tracker covers the whole document.
func (v *View) Render(buf *buffer.Buffer, sel cursor.Selection, tracker *region.Tracker, focused bool) {
	v.syncOptions()

	var scope buffer.Range
	drawScope := tracker != nil && !tracker.EntireDocument()
	if drawScope {
		scope = tracker.Bounds(buf)
	}

	rev := buf.Revision()
	sel = sel.Clamp(buf.Len())
	cursorLine := buf.OffsetToPoint(sel.Head).Line
	cursorX, cursorY := -1, -1

	line, row := v.topLine, v.topRow
	for y := v.rect.Top; y < v.rect.Bottom; y++ {
		l, r, lay, ok := v.rowAt(buf, rev, line, row)
		if !ok {
			v.blankRow(y)
			continue
		}
		line, row = l, r

		v.renderRow(buf, lay, line, row, y, sel, scope, drawScope)

		if focused && line == cursorLine {
			rel := sel.Head - buf.LineStartOffset(line)
			if hr, hc := lay.CellForByte(rel); hr == row {
				if x := v.rect.Left + hc - v.leftCol; x >= v.rect.Left && x < v.rect.Right {
					cursorX, cursorY = x, y
				}
			}
		}

		row++
	}

	if cursorX >= 0 {
		v.backend.ShowCursor(cursorX, cursorY)
	} else {
		v.backend.HideCursor()
	}
}

func (v *View) blankRow(y int) {
	blank := core.Cell{Rune: ' ', Width: 1, Style: v.theme.Text}
	v.backend.Fill(core.ScreenRect{Left: v.rect.Left, Top: y, Right: v.rect.Right, Bottom: y + 1}, blank)
}

// renderRow paints one visual row: text cells, the break glyph, then the
// scope tint and selection backgrounds over them.
func (v *View) renderRow(buf *buffer.Buffer, lay *layout.Line, line uint32, row, y int, sel cursor.Selection, scope buffer.Range, drawScope bool) {
	width := v.rect.Width()
	out := make([]core.Cell, width)
	blank := core.Cell{Rune: ' ', Width: 1, Style: v.theme.Text}
	for i := range out {
		out[i] = blank
	}

	cells := lay.RowCells(row)
	for i, c := range cells {
		if x := i - v.leftCol; x >= 0 && x < width {
			out[x] = c
		}
	}

	// Hard line breaks get a glyph; soft wraps and the final line do not.
	if v.showWhitespace && !lay.SoftWrapped(row) && line < buf.LineCount()-1 {
		g := layout.GlyphLineBreak
		if lay.Width() == 0 {
			g = layout.GlyphParagraph
		}
		if x := len(cells) - v.leftCol; x >= 0 && x < width {
			out[x] = core.Cell{Rune: g, Width: 1, Style: v.theme.Whitespace}
		}
	}

	lineStart := buf.LineStartOffset(line)

	if drawScope {
		if x0, x1, ok := spanCols(lay, row, lineStart, scope); ok {
			v.paintBackground(out, x0, x1, v.theme.Region())
		}
	}
	if !sel.IsEmpty() {
		if x0, x1, ok := spanCols(lay, row, lineStart, sel.Range()); ok {
			v.paintBackground(out, x0, x1, v.theme.Selection)
		}
	}

	for i, c := range out {
		v.backend.SetCell(v.rect.Left+i, y, c)
	}
}

// spanCols maps a buffer range onto the cell columns it covers within one
// visual row. A range continuing past the row extends one cell beyond the
// text so the break position is covered too; a range starting before the
// row covers it from column zero. Single-row ranges cover exactly their
// cells. Columns are line-relative; paintBackground applies the viewport
// shift.
func spanCols(lay *layout.Line, row int, lineStart buffer.ByteOffset, r buffer.Range) (x0, x1 int, ok bool) {
	rs, re := lay.RowByteSpan(row)
	absStart := lineStart + rs
	absEnd := lineStart + re
	rowLen := len(lay.RowCells(row))

	if r.IsEmpty() || r.End <= absStart || r.Start > absEnd {
		return 0, 0, false
	}
	if r.Start == absEnd && lay.SoftWrapped(row) {
		// Starts exactly on the wrap boundary; the next row owns it.
		return 0, 0, false
	}

	if r.Start <= absStart {
		x0 = 0
	} else {
		rr, cc := lay.CellForByte(r.Start - lineStart)
		if rr != row {
			return 0, 0, false
		}
		x0 = cc
	}

	switch {
	case r.End > absEnd:
		x1 = rowLen + 1
	default:
		rr, cc := lay.CellForByte(r.End - lineStart)
		if rr == row {
			x1 = cc
		} else {
			// Ends exactly on the wrap boundary.
			x1 = rowLen
		}
	}

	if x1 <= x0 {
		return 0, 0, false
	}
	return x0, x1, true
}

func (v *View) paintBackground(out []core.Cell, x0, x1 int, bg core.Color) {
	x0 -= v.leftCol
	x1 -= v.leftCol
	if x0 < 0 {
		x0 = 0
	}
	if x1 > len(out) {
		x1 = len(out)
	}
	for i := x0; i < x1; i++ {
		out[i].Style = out[i].Style.WithBackground(bg)
	}
}

// ScrollToSelection scrolls the viewport so the selection head is
// visible, vertically and (with wrap off) horizontally.
func (v *View) ScrollToSelection(buf *buffer.Buffer, sel cursor.Selection) {
	v.syncOptions()

	rev := buf.Revision()
	head := buf.Clamp(sel.Head)
	line := buf.OffsetToPoint(head).Line
	lay := v.cache.Get(line, buf.LineText(line), rev)
	row, col := lay.CellForByte(head - buf.LineStartOffset(line))

	if !v.wordWrap {
		width := v.rect.Width()
		if col < v.leftCol {
			v.leftCol = col
		}
		if width > 0 && col >= v.leftCol+width {
			v.leftCol = col - width + 1
		}
	}

	if line < v.topLine || (line == v.topLine && row < v.topRow) {
		v.topLine, v.topRow = line, row
		return
	}

	// Walk visual rows from the top; if the target is not within a
	// screenful, scroll down so it lands on the last visible row.
	height := v.rect.Height()
	n := 0
	l, r := v.topLine, v.topRow
	for n < height {
		var ok bool
		l, r, _, ok = v.rowAt(buf, rev, l, r)
		if !ok || l > line {
			break
		}
		if l == line && r == row {
			return // already visible
		}
		r++
		n++
	}

	v.topLine, v.topRow = line, row
	for i := 0; i < height-1; i++ {
		if v.topRow > 0 {
			v.topRow--
			continue
		}
		if v.topLine == 0 {
			break
		}
		v.topLine--
		cur := v.cache.Get(v.topLine, buf.LineText(v.topLine), rev)
		v.topRow = cur.RowCount() - 1
	}
}

// Top returns the viewport's first visible line and visual row.
func (v *View) Top() (line uint32, row int) {
	return v.topLine, v.topRow
}

// BufferPos maps a screen position inside the viewport to a buffer
// offset, for mouse clicks. Positions past the end of content map to the
// buffer end.
func (v *View) BufferPos(buf *buffer.Buffer, x, y int) (buffer.ByteOffset, bool) {
	if !v.rect.Contains(x, y) {
		return 0, false
	}
	v.syncOptions()

	rev := buf.Revision()
	line, row := v.topLine, v.topRow
	for sy := v.rect.Top; sy <= y; sy++ {
		l, r, lay, ok := v.rowAt(buf, rev, line, row)
		if !ok {
			return buf.Len(), true
		}
		line, row = l, r
		if sy == y {
			col := x - v.rect.Left + v.leftCol
			return buf.LineStartOffset(line) + lay.ByteForCell(row, col), true
		}
		row++
	}
	return buf.Len(), true
}
