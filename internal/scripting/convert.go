package scripting

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ToGo converts plain script data (numbers, strings, booleans and tables of
// them) to Go values: integral numbers become int64, other numbers float64,
// tables with only string keys map[string]any and sequences []any.
// Functions, userdata and threads cannot be converted.
func ToGo(v lua.LValue) (any, error) {
	return toGo(v, "", map[*lua.LTable]bool{})
}

func toGo(v lua.LValue, path string, open map[*lua.LTable]bool) (any, error) {
	switch x := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(x), nil
	case lua.LNumber:
		if isIntegral(x, math.Inf(-1), math.Inf(1)) && math.Abs(float64(x)) < 1<<53 {
			return int64(x), nil
		}
		return float64(x), nil
	case lua.LString:
		return string(x), nil
	case *lua.LTable:
		if open[x] {
			return nil, fmt.Errorf("%s: table cycle", pathOrRoot(path))
		}
		open[x] = true
		defer delete(open, x)
		if n := x.Len(); n > 0 && isSequence(x, n) {
			out := make([]any, n)
			for i := 1; i <= n; i++ {
				item, err := toGo(x.RawGetInt(i), fmt.Sprintf("%s[%d]", path, i), open)
				if err != nil {
					return nil, err
				}
				out[i-1] = item
			}
			return out, nil
		}
		out := make(map[string]any)
		var err error
		k, val := x.Next(lua.LNil)
		for k != lua.LNil && err == nil {
			ks, ok := k.(lua.LString)
			if !ok {
				return nil, fmt.Errorf("%s: non-string key %s in mixed table", pathOrRoot(path), k)
			}
			out[string(ks)], err = toGo(val, joinPath(path, string(ks)), open)
			k, val = x.Next(k)
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: cannot convert %s", pathOrRoot(path), v.Type())
	}
}

// isSequence reports whether t holds exactly the keys 1..n.
func isSequence(t *lua.LTable, n int) bool {
	count := 0
	k, _ := t.Next(lua.LNil)
	for k != lua.LNil {
		count++
		k, _ = t.Next(k)
	}
	return count == n
}

// FromGo converts Go data produced by ToGo or a YAML/TOML decoder into a
// script value. Map keys are emitted in sorted order so the resulting table
// enumerates deterministically.
func FromGo(L *lua.LState, v any) (lua.LValue, error) {
	switch x := v.(type) {
	case nil:
		return lua.LNil, nil
	case bool:
		return lua.LBool(x), nil
	case int:
		return lua.LNumber(x), nil
	case int64:
		return lua.LNumber(x), nil
	case uint64:
		return lua.LNumber(x), nil
	case float32:
		return lua.LNumber(x), nil
	case float64:
		return lua.LNumber(x), nil
	case string:
		return lua.LString(x), nil
	case []any:
		t := L.CreateTable(len(x), 0)
		for _, item := range x {
			lv, err := FromGo(L, item)
			if err != nil {
				return nil, err
			}
			t.Append(lv)
		}
		return t, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.CreateTable(0, len(x))
		for _, k := range keys {
			lv, err := FromGo(L, x[k])
			if err != nil {
				return nil, err
			}
			t.RawSetString(k, lv)
		}
		return t, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			m[fmt.Sprint(k)] = item
		}
		return FromGo(L, m)
	default:
		return nil, fmt.Errorf("cannot convert %T to a script value", v)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
