package script

import (
	lua "github.com/yuin/gopher-lua"
)

// bufferModule implements pad.buf. Byte offsets are zero-based; line
// numbers are one-based, following Lua convention.
type bufferModule struct {
	state *State
}

func newBufferModule(state *State) *bufferModule {
	return &bufferModule{state: state}
}

func (m *bufferModule) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "text_range", L.NewFunction(m.textRange))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "len", L.NewFunction(m.bufLen))
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "replace", L.NewFunction(m.replace))
	return mod
}

// text() -> string
func (m *bufferModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.state.Buffer.Text()))
	return 1
}

// text_range(start, end) -> string
func (m *bufferModule) textRange(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	L.Push(lua.LString(m.state.Buffer.TextRange(start, end)))
	return 1
}

// line(n) -> string
func (m *bufferModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 || uint32(n) > m.state.Buffer.LineCount() {
		L.RaiseError("line: %d out of range", n)
		return 0
	}
	L.Push(lua.LString(m.state.Buffer.LineText(uint32(n - 1))))
	return 1
}

// line_count() -> number
func (m *bufferModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.state.Buffer.LineCount()))
	return 1
}

// len() -> number
func (m *bufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.state.Buffer.Len()))
	return 1
}

// insert(offset, text)
func (m *bufferModule) insert(L *lua.LState) int {
	off := L.CheckInt(1)
	text := L.CheckString(2)
	if _, err := m.state.Buffer.Insert(off, text); err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	m.documentChanged()
	return 0
}

// delete(start, end)
func (m *bufferModule) delete(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	if err := m.state.Buffer.Delete(start, end); err != nil {
		L.RaiseError("delete: %v", err)
		return 0
	}
	m.documentChanged()
	return 0
}

// replace(start, end, text)
func (m *bufferModule) replace(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	text := L.CheckString(3)
	if _, err := m.state.Buffer.Replace(start, end, text); err != nil {
		L.RaiseError("replace: %v", err)
		return 0
	}
	m.documentChanged()
	return 0
}

func (m *bufferModule) documentChanged() {
	if m.state.Tracker != nil {
		m.state.Tracker.DocumentChanged(m.state.Buffer)
	}
	if m.state.Selection != nil {
		*m.state.Selection = m.state.Selection.Clamp(m.state.Buffer.Len())
	}
}
