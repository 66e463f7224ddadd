package app

import (
	"fmt"

	"outpad/internal/renderer/backend"
	"outpad/internal/search"
)

// handlePromptKey routes keys while the find or replace prompt is open.
func (a *Application) handlePromptKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlQ:
		return ErrQuit

	case backend.KeyEscape:
		a.setMode(ModeEdit)

	case backend.KeyTab:
		if a.mode == ModeReplace {
			a.promptField = 1 - a.promptField
		}

	case backend.KeyEnter:
		switch {
		case a.mode == ModeFind:
			a.findNext(ev.Mod.Has(backend.ModShift))
		case a.promptField == 0:
			a.promptField = 1
		default:
			a.replaceStep()
		}

	case backend.KeyF3:
		a.findNext(ev.Mod.Has(backend.ModShift))

	case backend.KeyCtrlL:
		if a.mode == ModeReplace {
			a.replaceAll()
		}

	case backend.KeyCtrlC:
		a.matchCase = !a.matchCase

	case backend.KeyBackspace:
		field := a.activeField()
		runes := []rune(*field)
		if len(runes) > 0 {
			*field = string(runes[:len(runes)-1])
		}

	case backend.KeyRune:
		field := a.activeField()
		*field += string(ev.Rune)
	}
	return nil
}

func (a *Application) activeField() *string {
	if a.mode == ModeReplace && a.promptField == 1 {
		return &a.promptWith
	}
	return &a.promptFind
}

// findNext runs one step of the find cycle and selects the hit.
func (a *Application) findNext(backwards bool) {
	if a.promptFind == "" {
		return
	}

	q := search.Query{
		Pattern:   a.promptFind,
		Backwards: backwards,
		MatchCase: a.matchCase,
	}
	a.runSearch(q)
}

// replaceStep substitutes the current hit and moves to the next one.
func (a *Application) replaceStep() {
	if a.promptFind == "" {
		return
	}

	q := search.Query{
		Pattern:     a.promptFind,
		Replacement: a.promptWith,
		Replace:     true,
		MatchCase:   a.matchCase,
	}
	a.runSearch(q)
}

func (a *Application) runSearch(q search.Query) {
	ed := a.ed
	bounds := ed.Tracker().Bounds(ed.Buffer())

	res, err := search.FindReplace(ed.Buffer(), bounds, ed.Selection(), q)
	if err != nil {
		a.status = err.Error()
		a.log.Warn("search failed: %v", err)
		return
	}

	if res.Replaced {
		ed.DocumentChanged()
	}
	if !res.Found {
		a.status = "no match"
		a.backend.Beep()
		return
	}

	a.status = ""
	ed.SelectMatch(res.Selection)
	a.view.ScrollToSelection(ed.Buffer(), ed.Selection())
}

// replaceAll substitutes every occurrence inside the scope. The screen is
// refreshed between substitutions so long runs stay visibly alive.
func (a *Application) replaceAll() {
	if a.promptFind == "" {
		return
	}

	ed := a.ed
	bounds := ed.Tracker().Bounds(ed.Buffer())

	count := search.ReplaceAll(ed.Buffer(), bounds, a.promptFind, a.promptWith, a.matchCase, func() {
		a.render()
		a.backend.Show()
	})

	if count == 0 {
		a.status = "no match"
		a.backend.Beep()
		return
	}

	ed.DocumentChanged()
	a.view.ScrollToSelection(ed.Buffer(), ed.Selection())
	a.status = fmt.Sprintf("%d replaced", count)
	a.log.Info("replace all: %d occurrences", count)
}
