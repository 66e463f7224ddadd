package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"outpad/internal/config"
	"outpad/internal/renderer"
	"outpad/internal/renderer/backend"
	"outpad/internal/renderer/core"
)

// Mode selects which surface receives keystrokes.
type Mode int

const (
	// ModeEdit routes input to the buffer.
	ModeEdit Mode = iota
	// ModeFind routes input to the find prompt.
	ModeFind
	// ModeReplace routes input to the find/with prompt pair.
	ModeReplace
)

// Application runs the interactive editor: it owns the backend, the view,
// the prompt state, and the input loop.
type Application struct {
	cfg     config.Config
	log     *Logger
	backend backend.Backend
	ed      *Editor
	view    *renderer.View
	theme   renderer.Theme

	matchCase bool

	mode        Mode
	promptFind  string
	promptWith  string
	promptField int // 0 = find, 1 = with
	status      string

	termFocus bool
	width     int
	height    int
}

// New assembles the application around an editor.
func New(cfg config.Config, b backend.Backend, ed *Editor, log *Logger) *Application {
	if log == nil {
		log = NullLogger
	}
	theme := cfg.BuildTheme()

	a := &Application{
		cfg:       cfg,
		log:       log.WithComponent("app"),
		backend:   b,
		ed:        ed,
		theme:     theme,
		matchCase: cfg.MatchCase,
		termFocus: true,
	}

	a.view = renderer.NewView(b, theme, core.NewScreenRect(0, 0, 0, 0))
	a.view.SetWordWrap(cfg.WordWrap)
	a.view.SetShowWhitespace(cfg.ShowWhitespace)
	a.view.SetTabWidth(cfg.TabWidth)
	ed.Buffer().SetTabWidth(cfg.TabWidth)
	return a
}

// Editor returns the application's editor.
func (a *Application) Editor() *Editor { return a.ed }

// View returns the application's view, mainly for tests.
func (a *Application) View() *renderer.View { return a.view }

// Run initializes the backend and drives the input loop until quit.
func (a *Application) Run() error {
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.resize(a.backend.Size())
	a.log.Info("editor started, file=%s", a.ed.Path())

	for {
		a.render()
		a.backend.Show()

		ev := a.backend.PollEvent()
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.log.Info("editor quit")
				return nil
			}
			return err
		}
	}
}

func (a *Application) resize(width, height int) {
	a.width, a.height = width, height
	viewHeight := height - 1
	if viewHeight < 0 {
		viewHeight = 0
	}
	a.view.SetRect(core.NewScreenRect(0, 0, width, viewHeight))
}

// HandleEvent processes one input event. It returns ErrQuit on a quit
// request.
func (a *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventInterrupt:
		return ErrQuit

	case backend.EventResize:
		a.resize(ev.Width, ev.Height)
		return nil

	case backend.EventFocus:
		a.termFocus = ev.Focused
		a.syncFocus()
		return nil

	case backend.EventMouse:
		a.handleMouse(ev)
		return nil

	case backend.EventKey:
		if a.mode == ModeEdit {
			return a.handleEditKey(ev)
		}
		return a.handlePromptKey(ev)
	}
	return nil
}

func (a *Application) setMode(m Mode) {
	a.mode = m
	a.syncFocus()
}

// syncFocus derives the editor's focus from the terminal focus and the
// prompt: an open prompt keeps the editor unfocused so the scope survives
// the whole find cycle.
func (a *Application) syncFocus() {
	a.ed.SetFocused(a.termFocus && a.mode == ModeEdit)
}

func (a *Application) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseLeft:
		if off, ok := a.view.BufferPos(a.ed.Buffer(), ev.MouseX, ev.MouseY); ok {
			if a.mode != ModeEdit {
				a.setMode(ModeEdit)
			}
			a.ed.Click(off, ev.Mod.Has(backend.ModShift))
		}
	case backend.MouseWheelUp:
		a.ed.MoveUp(false)
		a.view.ScrollToSelection(a.ed.Buffer(), a.ed.Selection())
	case backend.MouseWheelDown:
		a.ed.MoveDown(false)
		a.view.ScrollToSelection(a.ed.Buffer(), a.ed.Selection())
	}
}

func (a *Application) handleEditKey(ev backend.Event) error {
	extend := ev.Mod.Has(backend.ModShift)

	switch ev.Key {
	case backend.KeyCtrlQ:
		return ErrQuit

	case backend.KeyCtrlS:
		if err := a.ed.Save(); err != nil {
			a.status = err.Error()
			a.log.Error("save failed: %v", err)
		} else {
			a.status = fmt.Sprintf("saved %s", a.ed.Path())
		}

	case backend.KeyCtrlF:
		a.promptField = 0
		a.setMode(ModeFind)

	case backend.KeyCtrlR:
		a.promptField = 0
		a.setMode(ModeReplace)

	case backend.KeyCtrlA:
		a.ed.SelectAll()

	case backend.KeyCtrlE:
		a.ed.ToggleScopeAll()
		if a.ed.ScopeAll() {
			a.status = "scope: entire document"
		} else {
			a.status = "scope: selection"
		}

	case backend.KeyCtrlW:
		a.view.SetShowWhitespace(!a.view.ShowWhitespace())

	case backend.KeyF3:
		a.findNext(extend)

	case backend.KeyUp:
		a.ed.MoveUp(extend)
	case backend.KeyDown:
		a.ed.MoveDown(extend)
	case backend.KeyLeft:
		a.ed.MoveLeft(extend)
	case backend.KeyRight:
		a.ed.MoveRight(extend)
	case backend.KeyHome:
		a.ed.MoveLineStart(extend)
	case backend.KeyEnd:
		a.ed.MoveLineEnd(extend)
	case backend.KeyPageUp:
		for i := 0; i < a.view.Rect().Height(); i++ {
			a.ed.MoveUp(extend)
		}
	case backend.KeyPageDown:
		for i := 0; i < a.view.Rect().Height(); i++ {
			a.ed.MoveDown(extend)
		}

	case backend.KeyEnter:
		return a.edit(a.ed.InsertNewline())
	case backend.KeyTab:
		return a.edit(a.ed.InsertText("\t"))
	case backend.KeyBackspace:
		return a.edit(a.ed.Backspace())
	case backend.KeyDelete:
		return a.edit(a.ed.DeleteForward())

	case backend.KeyRune:
		return a.edit(a.ed.InsertText(string(ev.Rune)))
	}

	a.view.ScrollToSelection(a.ed.Buffer(), a.ed.Selection())
	return nil
}

func (a *Application) edit(err error) error {
	if err != nil {
		a.log.Error("edit failed: %v", err)
		a.status = err.Error()
		return nil
	}
	a.view.ScrollToSelection(a.ed.Buffer(), a.ed.Selection())
	return nil
}

// render paints the view plus the bottom line (prompt or status).
func (a *Application) render() {
	a.view.Render(a.ed.Buffer(), a.ed.Selection(), a.ed.Tracker(), a.ed.Focused())

	y := a.height - 1
	if y < 0 {
		return
	}
	if a.mode == ModeEdit {
		a.drawLine(y, a.statusText(), a.theme.StatusBar)
		return
	}

	text, cursorX := a.promptText()
	a.drawLine(y, text, a.theme.Prompt)
	a.backend.ShowCursor(cursorX, y)
}

func (a *Application) statusText() string {
	name := a.ed.Path()
	if name == "" {
		name = "[untitled]"
	} else {
		name = filepath.Base(name)
	}
	dirty := ""
	if a.ed.Dirty() {
		dirty = "*"
	}

	pt := a.ed.Buffer().OffsetToPoint(a.ed.Selection().Head)
	scope := "sel"
	if a.ed.Tracker().EntireDocument() {
		scope = "all"
	}
	caseFlag := "aa"
	if a.matchCase {
		caseFlag = "Aa"
	}

	s := fmt.Sprintf(" %s%s  %d:%d  [%s] [%s]", name, dirty, pt.Line+1, pt.Column+1, scope, caseFlag)
	if a.status != "" {
		s += "  " + a.status
	}
	return s
}

func (a *Application) promptText() (string, int) {
	if a.mode == ModeFind {
		text := " find: " + a.promptFind
		return text, len([]rune(text))
	}

	find := " find: " + a.promptFind
	with := "  with: " + a.promptWith
	cursorX := len([]rune(find))
	if a.promptField == 1 {
		cursorX = len([]rune(find + with))
	}
	return find + with, cursorX
}

func (a *Application) drawLine(y int, text string, style core.Style) {
	blank := core.Cell{Rune: ' ', Width: 1, Style: style}
	a.backend.Fill(core.ScreenRect{Left: 0, Top: y, Right: a.width, Bottom: y + 1}, blank)

	x := 0
	for _, r := range text {
		if x >= a.width {
			break
		}
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		a.backend.SetCell(x, y, core.Cell{Rune: r, Width: w, Style: style})
		x += w
	}
}
