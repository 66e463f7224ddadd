// Package script embeds a Lua interpreter and exposes the editor to it as
// the `pad` API: pad.buf for buffer access and pad.search for scoped
// find/replace. Scripts drive the same code paths as the interactive
// commands, which makes them useful for batch edits.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
	"outpad/internal/region"
)

// State is the editor state a script operates on. Selection points at the
// live selection so searches move it the same way interactive finds do.
type State struct {
	Buffer    *buffer.Buffer
	Tracker   *region.Tracker
	Selection *cursor.Selection

	// MatchCase is the default case sensitivity for searches.
	MatchCase bool

	// Yield, when set, runs between replace-all substitutions.
	Yield func()
}

// Host owns a Lua state with the pad API registered.
type Host struct {
	L     *lua.LState
	state *State
}

// NewHost creates a Lua host bound to the given editor state.
func NewHost(state *State) *Host {
	L := lua.NewState()
	h := &Host{L: L, state: state}

	pad := L.NewTable()
	L.SetField(pad, "buf", newBufferModule(state).table(L))
	L.SetField(pad, "search", newSearchModule(state).table(L))
	L.SetGlobal("pad", pad)

	return h
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.L.Close()
}

// RunFile executes a script file.
func (h *Host) RunFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes a script from a string.
func (h *Host) RunString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}
