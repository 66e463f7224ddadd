// Package layout provides visual line layout for the renderer: tab
// expansion, wide-rune handling, whitespace glyph substitution, and soft
// wrapping. A Line maps between byte offsets in the source text and visual
// cell positions, which is what the view needs to place cursors, selection
// highlights, and the region overlay.
package layout

import (
	"outpad/internal/renderer/core"
)

// Glyphs drawn in place of invisible characters when whitespace rendering
// is enabled.
const (
	GlyphSpace     = '·' // middle dot for spaces
	GlyphTab       = '→' // rightwards arrow for tabs
	GlyphLineBreak = '↵' // return symbol after hard line breaks
	GlyphParagraph = '¶' // pilcrow on empty lines
)

// Options configures line layout.
type Options struct {
	// TabWidth is the tab stop distance in cells. Defaults to 4.
	TabWidth int
	// WrapWidth soft-wraps rows at the given cell count. 0 disables wrap.
	WrapWidth int
	// ShowWhitespace substitutes visible glyphs for spaces and tabs.
	ShowWhitespace bool
	// Style is the base style for text cells.
	Style core.Style
	// WhitespaceStyle is used for substituted whitespace glyphs.
	WhitespaceStyle core.Style
}

// Line is the computed visual layout of a single buffer line.
type Line struct {
	cells    []core.Cell
	cellByte []int    // byte offset in the source text per cell
	rows     [][2]int // [start, end) cell spans per visual row
	textLen  int
}

// Compute lays out a line of text (without its line ending).
func Compute(text string, opts Options) *Line {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}

	l := &Line{textLen: len(text)}

	for i, r := range text {
		switch {
		case r == '\t':
			pad := opts.TabWidth - len(l.cells)%opts.TabWidth
			head := core.Cell{Rune: ' ', Width: 1, Style: opts.Style}
			if opts.ShowWhitespace {
				head = core.Cell{Rune: GlyphTab, Width: 1, Style: opts.WhitespaceStyle}
			}
			l.append(head, i)
			for k := 1; k < pad; k++ {
				l.append(core.Cell{Rune: ' ', Width: 1, Style: opts.Style}, i)
			}

		case r == ' ' && opts.ShowWhitespace:
			l.append(core.Cell{Rune: GlyphSpace, Width: 1, Style: opts.WhitespaceStyle}, i)

		default:
			w := core.RuneWidth(r)
			if w == 0 {
				// Combining marks render as part of the preceding cell.
				continue
			}
			l.append(core.Cell{Rune: r, Width: w, Style: opts.Style}, i)
			if w == 2 {
				// Continuation cell occupied by the wide rune.
				l.append(core.Cell{Rune: 0, Width: 0, Style: opts.Style}, i)
			}
		}
	}

	l.wrap(opts.WrapWidth)
	return l
}

func (l *Line) append(c core.Cell, byteOff int) {
	l.cells = append(l.cells, c)
	l.cellByte = append(l.cellByte, byteOff)
}

// wrap splits the cells into visual rows. Every line has at least one row.
func (l *Line) wrap(width int) {
	if width <= 0 || len(l.cells) <= width {
		l.rows = [][2]int{{0, len(l.cells)}}
		return
	}

	start := 0
	for len(l.cells)-start > width {
		split := start + width
		// Never split a wide rune from its continuation cell.
		if l.cells[split].Width == 0 && l.cells[split].Rune == 0 {
			split--
		}
		l.rows = append(l.rows, [2]int{start, split})
		start = split
	}
	l.rows = append(l.rows, [2]int{start, len(l.cells)})
}

// Width returns the total visual width of the line in cells.
func (l *Line) Width() int {
	return len(l.cells)
}

// RowCount returns the number of visual rows.
func (l *Line) RowCount() int {
	return len(l.rows)
}

// RowCells returns the cells of the given visual row.
func (l *Line) RowCells(row int) []core.Cell {
	if row < 0 || row >= len(l.rows) {
		return nil
	}
	r := l.rows[row]
	return l.cells[r[0]:r[1]]
}

// RowByteSpan returns the byte span [start, end) of the text shown on the
// given visual row. The last row's span ends at the line's text length.
func (l *Line) RowByteSpan(row int) (start, end int) {
	if row < 0 || row >= len(l.rows) {
		return l.textLen, l.textLen
	}
	r := l.rows[row]
	if r[0] < len(l.cellByte) {
		start = l.cellByte[r[0]]
	} else {
		start = l.textLen
	}
	if row == len(l.rows)-1 {
		end = l.textLen
	} else {
		end = l.cellByte[l.rows[row+1][0]]
	}
	return start, end
}

// CellForByte returns the visual (row, column) of the given byte offset.
// Offsets at or past the end of the line map to the position just after the
// last cell.
func (l *Line) CellForByte(b int) (row, col int) {
	j := len(l.cells)
	for i, off := range l.cellByte {
		if off >= b {
			j = i
			break
		}
	}

	for r, span := range l.rows {
		if j >= span[0] && j < span[1] {
			return r, j - span[0]
		}
	}

	// A byte at a wrap boundary belongs to the start of the following row.
	for r, span := range l.rows {
		if j == span[0] {
			return r, 0
		}
	}

	last := len(l.rows) - 1
	return last, j - l.rows[last][0]
}

// ByteForCell returns the byte offset of the given visual position.
// Positions past the row content map to the row's end byte.
func (l *Line) ByteForCell(row, col int) int {
	if row < 0 {
		return 0
	}
	if row >= len(l.rows) {
		return l.textLen
	}
	span := l.rows[row]
	j := span[0] + col
	if j < span[0] {
		j = span[0]
	}
	if j >= span[1] {
		_, end := l.RowByteSpan(row)
		return end
	}
	return l.cellByte[j]
}

// SoftWrapped returns true if the given row continues onto the next row,
// i.e. it ends in a soft wrap rather than a hard line break.
func (l *Line) SoftWrapped(row int) bool {
	return row < len(l.rows)-1
}
