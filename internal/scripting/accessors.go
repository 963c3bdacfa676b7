package scripting

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// Scalar is the set of Go types the accessor tiers convert.
type Scalar interface {
	float32 | float64 | int | int64 | string | bool
}

// Store binds v under name in the current table, replacing any previous
// value.
func Store[T Scalar](s *Scope, name string, v T) {
	s.Table().RawSetString(name, toLValue(v))
}

// StoreObject binds an arbitrary script value (table, thread, userdata)
// under name.
func StoreObject(s *Scope, name string, v lua.LValue) {
	s.Table().RawSetString(name, v)
}

// Get copies the value bound under name into out. It returns false and
// leaves out untouched when the name is absent or holds another type.
func Get[T Scalar](s *Scope, name string, out *T) bool {
	v, ok := fromLValue[T](s.Table().RawGetString(name))
	if !ok {
		return false
	}
	*out = v
	return true
}

// Read returns the value bound under name, or a *ScriptError when it is
// absent or holds another type.
func Read[T Scalar](s *Scope, name string) (T, error) {
	lv := s.Table().RawGetString(name)
	v, ok := fromLValue[T](lv)
	if ok {
		return v, nil
	}
	err := ErrTypeMismatch
	if lv == lua.LNil {
		err = ErrNotFound
	}
	return v, &ScriptError{
		Context: s.Path(),
		Msg:     fmt.Sprintf("couldn't get %s '%s'", scalarName[T](), name),
		Err:     err,
	}
}

func toLValue[T Scalar](v T) lua.LValue {
	switch x := any(v).(type) {
	case float32:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	}
	panic("unreachable")
}

// fromLValue converts lv to T. Integer targets accept only numbers without
// a fractional part that fit the target type.
func fromLValue[T Scalar](lv lua.LValue) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case float32:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return zero, false
		}
		out = float32(n)
	case float64:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return zero, false
		}
		out = float64(n)
	case int:
		n, ok := lv.(lua.LNumber)
		if !ok || !isIntegral(n, math.MinInt, math.MaxInt) {
			return zero, false
		}
		out = int(n)
	case int64:
		n, ok := lv.(lua.LNumber)
		if !ok || !isIntegral(n, math.MinInt64, math.MaxInt64) {
			return zero, false
		}
		out = int64(n)
	case string:
		str, ok := lv.(lua.LString)
		if !ok {
			return zero, false
		}
		out = string(str)
	case bool:
		b, ok := lv.(lua.LBool)
		if !ok {
			return zero, false
		}
		out = bool(b)
	}
	return out.(T), true
}

// isIntegral reports whether n is a whole number in [lo, hi). hi is
// exclusive because float64(MaxInt64) rounds up to 2^63.
func isIntegral(n lua.LNumber, lo, hi float64) bool {
	f := float64(n)
	return f == math.Trunc(f) && f >= lo && f < hi
}

func scalarName[T Scalar]() string {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return "float"
	case int, int64:
		return "int"
	case string:
		return "string"
	default:
		return "bool"
	}
}
