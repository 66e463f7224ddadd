package script

import (
	lua "github.com/yuin/gopher-lua"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
	"outpad/internal/search"
)

// searchModule implements pad.search. All operations are bounded by the
// active scope.
type searchModule struct {
	state *State
}

func newSearchModule(state *State) *searchModule {
	return &searchModule{state: state}
}

func (m *searchModule) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "find", L.NewFunction(m.find))
	L.SetField(mod, "replace_all", L.NewFunction(m.replaceAll))
	L.SetField(mod, "region", L.NewFunction(m.region))
	L.SetField(mod, "set_region", L.NewFunction(m.setRegion))
	L.SetField(mod, "entire", L.NewFunction(m.entire))
	return mod
}

func (m *searchModule) bounds() buffer.Range {
	if m.state.Tracker != nil {
		return m.state.Tracker.Bounds(m.state.Buffer)
	}
	return buffer.Range{Start: 0, End: m.state.Buffer.Len()}
}

// find(pattern, [opts]) -> bool
//
// opts: backwards (bool), match_case (bool), replacement (string, makes a
// hit on the current selection substitute before searching on). Moves the
// selection to the match.
func (m *searchModule) find(L *lua.LState) int {
	pattern := L.CheckString(1)

	q := search.Query{
		Pattern:   pattern,
		MatchCase: m.state.MatchCase,
	}
	if L.GetTop() >= 2 {
		opts := L.CheckTable(2)
		if v := L.GetField(opts, "backwards"); v != lua.LNil {
			q.Backwards = lua.LVAsBool(v)
		}
		if v := L.GetField(opts, "match_case"); v != lua.LNil {
			q.MatchCase = lua.LVAsBool(v)
		}
		if v := L.GetField(opts, "replacement"); v != lua.LNil {
			q.Replace = true
			q.Replacement = lua.LVAsString(v)
		}
	}

	sel := cursor.NewCursor(0)
	if m.state.Selection != nil {
		sel = *m.state.Selection
	}

	res, err := search.FindReplace(m.state.Buffer, m.bounds(), sel, q)
	if err != nil {
		L.RaiseError("find: %v", err)
		return 0
	}

	if m.state.Selection != nil {
		*m.state.Selection = res.Selection
	}
	if res.Replaced && m.state.Tracker != nil {
		m.state.Tracker.DocumentChanged(m.state.Buffer)
	}

	L.Push(lua.LBool(res.Found))
	return 1
}

// replace_all(search, replacement, [match_case]) -> count
func (m *searchModule) replaceAll(L *lua.LState) int {
	searchstr := L.CheckString(1)
	replacestr := L.CheckString(2)
	matchCase := m.state.MatchCase
	if L.GetTop() >= 3 {
		matchCase = L.CheckBool(3)
	}

	count := search.ReplaceAll(m.state.Buffer, m.bounds(), searchstr, replacestr, matchCase, m.state.Yield)
	if count > 0 {
		if m.state.Tracker != nil {
			m.state.Tracker.DocumentChanged(m.state.Buffer)
		}
		if m.state.Selection != nil {
			*m.state.Selection = m.state.Selection.Clamp(m.state.Buffer.Len())
		}
	}

	L.Push(lua.LNumber(count))
	return 1
}

// region() -> start, end
func (m *searchModule) region(L *lua.LState) int {
	b := m.bounds()
	L.Push(lua.LNumber(b.Start))
	L.Push(lua.LNumber(b.End))
	return 2
}

// set_region(start, end)
func (m *searchModule) setRegion(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	if m.state.Tracker == nil {
		return 0
	}
	m.state.Tracker.Set(m.state.Buffer, cursor.NewSelection(start, end))
	return 0
}

// entire() -> bool
func (m *searchModule) entire(L *lua.LState) int {
	entire := true
	if m.state.Tracker != nil {
		entire = m.state.Tracker.EntireDocument()
	}
	L.Push(lua.LBool(entire))
	return 1
}
