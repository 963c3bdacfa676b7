package scripting

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Scope is a cursor into the script environment's tables. Store, Get and
// Read act on the current table; BeginTable and the table entry helpers
// descend into a child, EndTable returns to the parent.
type Scope struct {
	e      *Engine
	frames []frame
}

type frame struct {
	name  string
	table *lua.LTable
}

func (e *Engine) scope(name string, t *lua.LTable) *Scope {
	return &Scope{e: e, frames: []frame{{name: name, table: t}}}
}

// Engine returns the engine the scope belongs to.
func (s *Scope) Engine() *Engine {
	return s.e
}

// Table returns the current table.
func (s *Scope) Table() *lua.LTable {
	return s.frames[len(s.frames)-1].table
}

// Depth returns the number of open child tables.
func (s *Scope) Depth() int {
	return len(s.frames) - 1
}

// Path names the current table as dot-separated keys from the scope root.
func (s *Scope) Path() string {
	names := make([]string, len(s.frames))
	for i, f := range s.frames {
		names[i] = f.name
	}
	return strings.Join(names, ".")
}

func (s *Scope) push(name string, t *lua.LTable) {
	s.frames = append(s.frames, frame{name: name, table: t})
}

// BeginTable opens a fresh table called name. It is bound into the parent
// by the matching EndTable.
func (s *Scope) BeginTable(name string) {
	s.push(name, s.e.vm.NewTable())
}

// EndTable closes the innermost open table and binds it into its parent.
// Closing with a different name than the one opened, or with nothing open,
// is a programming error and panics.
func (s *Scope) EndTable(name string) {
	if len(s.frames) < 2 {
		panic(fmt.Sprintf("scripting: EndTable(%q) without open table in %s", name, s.Path()))
	}
	top := s.frames[len(s.frames)-1]
	if top.name != name {
		panic(fmt.Sprintf("scripting: EndTable(%q) closes table %q in %s", name, top.name, s.Path()))
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.Table().RawSetString(name, top.table)
}

// CreateEmptyTable binds an empty table under name.
func (s *Scope) CreateEmptyTable(name string) {
	s.BeginTable(name)
	s.EndTable(name)
}

// GetTableEntry descends into the existing child table name. Close it with
// EndTable.
func (s *Scope) GetTableEntry(name string) error {
	v := s.Table().RawGetString(name)
	if v == lua.LNil {
		return &ScriptError{Context: s.Path(), Msg: fmt.Sprintf("couldn't get table entry '%s'", name), Err: ErrNotFound}
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return &ScriptError{Context: s.Path(), Msg: fmt.Sprintf("entry '%s' is a %s, not a table", name, v.Type()), Err: ErrTypeMismatch}
	}
	s.push(name, t)
	return nil
}

// GetOrCreateTableEntry descends into the child table name, creating it
// first if it does not exist. Close it with EndTable.
func (s *Scope) GetOrCreateTableEntry(name string) error {
	v := s.Table().RawGetString(name)
	if v == lua.LNil {
		t := s.e.vm.NewTable()
		s.Table().RawSetString(name, t)
		s.push(name, t)
		return nil
	}
	return s.GetTableEntry(name)
}

// DeleteTableEntry removes name from the current table. Absent names are
// ignored.
func (s *Scope) DeleteTableEntry(name string) {
	s.Table().RawSetString(name, lua.LNil)
}

// HasProperty reports whether name is bound in the current table.
func (s *Scope) HasProperty(name string) bool {
	return s.Table().RawGetString(name) != lua.LNil
}

// TableKeys lists the string keys of the current table in the VM's
// enumeration order, which for gopher-lua is insertion order.
func (s *Scope) TableKeys() []string {
	var keys []string
	t := s.Table()
	k, _ := t.Next(lua.LNil)
	for k != lua.LNil {
		if ks, ok := k.(lua.LString); ok {
			keys = append(keys, string(ks))
		}
		k, _ = t.Next(k)
	}
	return keys
}
