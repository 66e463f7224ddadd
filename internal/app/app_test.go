package app

import (
	"errors"
	"strings"
	"testing"

	"outpad/internal/config"
	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
	"outpad/internal/renderer/backend"
)

func newTestApp(t *testing.T, text string) (*Application, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory(40, 10)
	ed := NewEditor(buffer.NewBufferFromString(text))
	a := New(config.Default(), mem, ed, NullLogger)
	if err := a.HandleEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 10}); err != nil {
		t.Fatal(err)
	}
	return a, mem
}

func keyEvent(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func runeEvent(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func typeString(t *testing.T, a *Application, s string) {
	t.Helper()
	for _, r := range s {
		if err := a.HandleEvent(runeEvent(r)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTypingInsertsText(t *testing.T) {
	a, _ := newTestApp(t, "")

	typeString(t, a, "hi")
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "there")

	if got := a.Editor().Buffer().Text(); got != "hi\nthere" {
		t.Errorf("expected 'hi\\nthere', got %q", got)
	}
}

func TestQuitKey(t *testing.T) {
	a, _ := newTestApp(t, "")

	err := a.HandleEvent(keyEvent(backend.KeyCtrlQ))
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestInterruptQuits(t *testing.T) {
	a, _ := newTestApp(t, "")

	err := a.HandleEvent(backend.Event{Type: backend.EventInterrupt})
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestFindCycleKeepsScope(t *testing.T) {
	a, _ := newTestApp(t, "foo bar\nfoo baz\nfoo qux")

	// Select the first two lines; that becomes the scope.
	a.Editor().SetSelection(cursor.NewSelection(0, 15))

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlF)); err != nil {
		t.Fatal(err)
	}
	if a.Editor().Focused() {
		t.Error("open prompt should drop editor focus")
	}

	typeString(t, a, "foo")
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}

	// The hit is selected but the scope is unchanged.
	if a.Editor().Selection().Start() != 0 || a.Editor().Selection().End() != 3 {
		t.Errorf("expected first match selected, got %v", a.Editor().Selection())
	}
	b := a.Editor().Tracker().Bounds(a.Editor().Buffer())
	if b.Start != 0 || b.End != 15 {
		t.Errorf("scope should survive the find cycle, got %v", b)
	}

	// Repeated finds wrap inside the scope and never reach line three.
	for i := 0; i < 3; i++ {
		if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
			t.Fatal(err)
		}
		if end := a.Editor().Selection().End(); end > 15 {
			t.Fatalf("match %v escaped the scope", a.Editor().Selection())
		}
	}
}

func TestFindNoMatchBeeps(t *testing.T) {
	a, mem := newTestApp(t, "alpha")

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlF)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "zzz")
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}

	if mem.Beeps() != 1 {
		t.Errorf("expected one beep, got %d", mem.Beeps())
	}
	if a.status != "no match" {
		t.Errorf("expected 'no match' status, got %q", a.status)
	}
}

func TestReplacePrompt(t *testing.T) {
	a, _ := newTestApp(t, "foo bar")

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlR)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "foo")
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "qux")

	// First step selects the hit, second substitutes it.
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	if err := a.HandleEvent(keyEvent(backend.KeyEnter)); err != nil {
		t.Fatal(err)
	}

	if got := a.Editor().Buffer().Text(); got != "qux bar" {
		t.Errorf("expected 'qux bar', got %q", got)
	}
}

func TestReplaceAllScoped(t *testing.T) {
	a, _ := newTestApp(t, "foo bar\nfoo baz\nfoo qux")
	a.Editor().SetSelection(cursor.NewSelection(0, 15))

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlR)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "foo")
	if err := a.HandleEvent(keyEvent(backend.KeyTab)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "X")
	if err := a.HandleEvent(keyEvent(backend.KeyCtrlL)); err != nil {
		t.Fatal(err)
	}

	if got := a.Editor().Buffer().Text(); got != "X bar\nX baz\nfoo qux" {
		t.Errorf("replace all escaped the scope: %q", got)
	}
	if a.status != "2 replaced" {
		t.Errorf("expected count in status, got %q", a.status)
	}
}

func TestEscapeClosesPrompt(t *testing.T) {
	a, _ := newTestApp(t, "alpha beta")

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlF)); err != nil {
		t.Fatal(err)
	}
	if err := a.HandleEvent(keyEvent(backend.KeyEscape)); err != nil {
		t.Fatal(err)
	}

	if a.mode != ModeEdit {
		t.Error("escape should close the prompt")
	}
	if !a.Editor().Focused() {
		t.Error("closing the prompt should restore editor focus")
	}
}

func TestPromptBackspace(t *testing.T) {
	a, _ := newTestApp(t, "")

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlF)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "abc")
	if err := a.HandleEvent(keyEvent(backend.KeyBackspace)); err != nil {
		t.Fatal(err)
	}

	if a.promptFind != "ab" {
		t.Errorf("expected 'ab', got %q", a.promptFind)
	}
}

func TestStatusLineRendered(t *testing.T) {
	a, mem := newTestApp(t, "alpha")

	a.render()

	row := mem.RowString(9)
	if !strings.Contains(row, "[untitled]") {
		t.Errorf("expected file name in status line, got %q", row)
	}
	if !strings.Contains(row, "[all]") {
		t.Errorf("expected scope indicator, got %q", row)
	}
}

func TestPromptRendered(t *testing.T) {
	a, mem := newTestApp(t, "alpha")

	if err := a.HandleEvent(keyEvent(backend.KeyCtrlF)); err != nil {
		t.Fatal(err)
	}
	typeString(t, a, "alp")
	a.render()

	if row := mem.RowString(9); !strings.Contains(row, "find: alp") {
		t.Errorf("expected prompt text, got %q", row)
	}

	x, y, shown := mem.Cursor()
	if !shown || y != 9 {
		t.Errorf("prompt cursor should sit on the prompt line, got (%d,%d,%v)", x, y, shown)
	}
}

func TestFocusEventUpdatesScopeCapture(t *testing.T) {
	a, _ := newTestApp(t, "alpha beta\ngamma")

	// Terminal loses focus; selection changes must not move the scope.
	if err := a.HandleEvent(backend.Event{Type: backend.EventFocus, Focused: false}); err != nil {
		t.Fatal(err)
	}
	a.Editor().SetSelection(cursor.NewSelection(0, 10))
	if !a.Editor().Tracker().EntireDocument() {
		t.Error("unfocused selection must not narrow the scope")
	}

	// Focus returns; the tracker captures the live selection.
	if err := a.HandleEvent(backend.Event{Type: backend.EventFocus, Focused: true}); err != nil {
		t.Fatal(err)
	}
	b := a.Editor().Tracker().Bounds(a.Editor().Buffer())
	if b.Start != 0 || b.End != 10 {
		t.Errorf("focus gain should capture the selection, got %v", b)
	}
}

func TestResizeUpdatesView(t *testing.T) {
	a, _ := newTestApp(t, "alpha")

	if err := a.HandleEvent(backend.Event{Type: backend.EventResize, Width: 20, Height: 5}); err != nil {
		t.Fatal(err)
	}
	r := a.View().Rect()
	if r.Width() != 20 || r.Height() != 4 {
		t.Errorf("expected 20x4 view, got %dx%d", r.Width(), r.Height())
	}
}
