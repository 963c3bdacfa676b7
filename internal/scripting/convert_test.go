package scripting

import (
	"reflect"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func runChunk(t *testing.T, e *Engine, src string) {
	t.Helper()
	if err := e.CompileAndRun(strings.NewReader(src), "chunk.lua"); err != nil {
		t.Fatalf("CompileAndRun() failed: %v", err)
	}
}

func TestToGo(t *testing.T) {
	e := newTestEngine(t)
	runChunk(t, e, `state = { coins = 12, speed = 1.5, name = "tux", alive = true, levels = { "a", "b" }, empty = {} }`)

	got, err := ToGo(e.VM().GetGlobal("state"))
	if err != nil {
		t.Fatalf("ToGo() failed: %v", err)
	}
	want := map[string]any{
		"coins":  int64(12),
		"speed":  1.5,
		"name":   "tux",
		"alive":  true,
		"levels": []any{"a", "b"},
		"empty":  map[string]any{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGo() = %#v, expected %#v", got, want)
	}
}

func TestToGoRejectsFunctions(t *testing.T) {
	e := newTestEngine(t)
	runChunk(t, e, `state = { inner = { cb = function() end } }`)
	_, err := ToGo(e.VM().GetGlobal("state"))
	if err == nil || !strings.Contains(err.Error(), "inner.cb") {
		t.Errorf("ToGo() error = %v, expected failure naming inner.cb", err)
	}
}

func TestToGoRejectsCycles(t *testing.T) {
	e := newTestEngine(t)
	runChunk(t, e, `state = {}; state.self = state`)
	if _, err := ToGo(e.VM().GetGlobal("state")); err == nil {
		t.Error("ToGo() should fail on a cyclic table")
	}
}

func TestFromGoRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	in := map[string]any{
		"coins":  int64(3),
		"ratio":  0.25,
		"tags":   []any{"x", int64(2)},
		"nested": map[string]any{"ok": true},
	}
	lv, err := FromGo(e.VM(), in)
	if err != nil {
		t.Fatalf("FromGo() failed: %v", err)
	}
	out, err := ToGo(lv)
	if err != nil {
		t.Fatalf("ToGo() failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %#v, expected %#v", out, in)
	}
}

func TestFromGoSortedKeys(t *testing.T) {
	e := newTestEngine(t)
	lv, err := FromGo(e.VM(), map[string]any{"b": 1, "c": 2, "a": 3})
	if err != nil {
		t.Fatalf("FromGo() failed: %v", err)
	}
	keys := e.Scope("t", lv.(*lua.LTable)).TableKeys()
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("TableKeys() = %v, expected sorted", keys)
	}
}

func TestFromGoUnsupported(t *testing.T) {
	e := newTestEngine(t)
	if _, err := FromGo(e.VM(), struct{}{}); err == nil {
		t.Error("FromGo(struct{}) should fail")
	}
}

func TestDump(t *testing.T) {
	e := newTestEngine(t)
	runChunk(t, e, `t = { name = "tux", n = 2 }; t.me = t`)

	got := Dump(e.VM().GetGlobal("t"))
	want := "{\n  name = \"tux\",\n  n = 2,\n  me = <cycle>,\n}"
	if got != want {
		t.Errorf("Dump() = %q, expected %q", got, want)
	}
	if got := Dump(lua.LNumber(1.5)); got != "1.5" {
		t.Errorf("Dump(1.5) = %q", got)
	}
	if got := Dump(e.VM().GetGlobal("print")); got != "<native function>" {
		t.Errorf("Dump(print) = %q", got)
	}
}

func TestDumpStack(t *testing.T) {
	e := newTestEngine(t)
	L := e.VM()
	L.Push(lua.LString("a"))
	L.Push(lua.LBool(true))
	defer L.Pop(2)

	want := "1: \"a\"\n2: true\n"
	if got := DumpStack(L); got != want {
		t.Errorf("DumpStack() = %q, expected %q", got, want)
	}
}
