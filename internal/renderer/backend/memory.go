package backend

import (
	"strings"

	"outpad/internal/renderer/core"
)

// Memory is an in-process Backend backed by a cell grid. Tests render
// into it and inspect the result with RowString and StyleAt.
type Memory struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorShown   bool
	beeps         int
	events        chan Event
}

// NewMemory creates a memory backend with the given dimensions.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.cells = make([][]core.Cell, m.height)
	for y := range m.cells {
		m.cells[y] = make([]core.Cell, m.width)
		for x := range m.cells[y] {
			m.cells[y][x] = core.EmptyCell()
		}
	}
}

func (m *Memory) Init() error { return nil }
func (m *Memory) Fini()       {}

func (m *Memory) Size() (int, int) {
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = cell
	}
}

func (m *Memory) GetCell(x, y int) core.Cell {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return core.EmptyCell()
}

func (m *Memory) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := max(rect.Top, 0); y < rect.Bottom && y < m.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < m.width; x++ {
			m.cells[y][x] = cell
		}
	}
}

func (m *Memory) Clear() {
	m.reset()
}

func (m *Memory) Show() {}

func (m *Memory) ShowCursor(x, y int) {
	m.cursorX, m.cursorY = x, y
	m.cursorShown = true
}

func (m *Memory) HideCursor() {
	m.cursorShown = false
}

func (m *Memory) PollEvent() Event {
	return <-m.events
}

func (m *Memory) PostEvent(event Event) {
	select {
	case m.events <- event:
	default:
	}
}

func (m *Memory) Beep() {
	m.beeps++
}

// RowString returns the runes of a screen row as a string, with trailing
// blanks trimmed. Continuation cells of wide runes are skipped.
func (m *Memory) RowString(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range m.cells[y] {
		if c.Width == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// StyleAt returns the style of the cell at the given position.
func (m *Memory) StyleAt(x, y int) core.Style {
	return m.GetCell(x, y).Style
}

// Cursor returns the hardware cursor position and visibility.
func (m *Memory) Cursor() (x, y int, shown bool) {
	return m.cursorX, m.cursorY, m.cursorShown
}

// Beeps returns how many times the bell rang.
func (m *Memory) Beeps() int {
	return m.beeps
}
