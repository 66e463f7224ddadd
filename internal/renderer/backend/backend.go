// Package backend abstracts the display surface the renderer draws on.
// The terminal implementation wraps tcell; Memory provides an in-process
// cell grid for tests.
package backend

import "outpad/internal/renderer/core"

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	// EventInterrupt asks the event loop to shut down. Posted from signal
	// handlers.
	EventInterrupt
)

// Event is a single input event from the display surface.
type Event struct {
	Type EventType

	// Key event fields.
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields.
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields.
	Width, Height int

	// Focus event fields.
	Focused bool
}

// Key identifies a keyboard key. Printable input arrives as KeyRune with
// the Rune field set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF3

	// Control keys occupy a contiguous block so conversion to and from
	// tcell can be arithmetic.
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask is a bit mask of modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton identifies a mouse button or wheel direction.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend is the drawing and input surface the renderer targets.
type Backend interface {
	// Init prepares the surface. Must be called before any other method.
	Init() error

	// Fini releases the surface and restores terminal state.
	Fini()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetCell writes one cell. Out-of-range positions are ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell reads back one cell. Out-of-range positions return an
	// empty cell.
	GetCell(x, y int) core.Cell

	// Fill paints a rectangle with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear resets the whole surface to the default style.
	Clear()

	// Show flushes buffered changes to the display.
	Show()

	// ShowCursor places the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// PollEvent blocks until the next input event.
	PollEvent() Event

	// PostEvent injects a synthetic event into the queue.
	PostEvent(event Event)

	// Beep rings the terminal bell.
	Beep()
}
