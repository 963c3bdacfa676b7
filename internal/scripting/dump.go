package scripting

import (
	"fmt"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Dump renders a script value for debugging. Tables are expanded
// recursively in enumeration order; a table reached again while it is being
// printed is shown as <cycle>.
func Dump(v lua.LValue) string {
	var sb strings.Builder
	dumpValue(&sb, v, 0, map[*lua.LTable]bool{})
	return sb.String()
}

// DumpStack renders every value on L's stack, one per line, bottom first.
func DumpStack(L *lua.LState) string {
	var sb strings.Builder
	for i := 1; i <= L.GetTop(); i++ {
		fmt.Fprintf(&sb, "%d: %s\n", i, Dump(L.Get(i)))
	}
	return sb.String()
}

func dumpValue(sb *strings.Builder, v lua.LValue, indent int, open map[*lua.LTable]bool) {
	switch x := v.(type) {
	case lua.LString:
		sb.WriteString(strconv.Quote(string(x)))
	case *lua.LTable:
		dumpTable(sb, x, indent, open)
	case *lua.LUserData:
		fmt.Fprintf(sb, "<userdata %T>", x.Value)
	case *lua.LFunction:
		if x.IsG {
			sb.WriteString("<native function>")
		} else {
			sb.WriteString("<function>")
		}
	case *lua.LState:
		sb.WriteString("<thread>")
	default:
		sb.WriteString(v.String())
	}
}

func dumpTable(sb *strings.Builder, t *lua.LTable, indent int, open map[*lua.LTable]bool) {
	if open[t] {
		sb.WriteString("<cycle>")
		return
	}
	open[t] = true
	defer delete(open, t)

	k, v := t.Next(lua.LNil)
	if k == lua.LNil {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{\n")
	pad := strings.Repeat("  ", indent+1)
	for k != lua.LNil {
		sb.WriteString(pad)
		if ks, ok := k.(lua.LString); ok {
			sb.WriteString(string(ks))
		} else {
			sb.WriteString("[")
			dumpValue(sb, k, indent+1, open)
			sb.WriteString("]")
		}
		sb.WriteString(" = ")
		dumpValue(sb, v, indent+1, open)
		sb.WriteString(",\n")
		k, v = t.Next(k)
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString("}")
}
