package scripting

import (
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// RegisterType makes values of type T exposable. Exposed values get a
// metatable named typeName whose __index holds methods; scripts call them
// with the colon syntax (obj:method()).
func RegisterType[T any](e *Engine, typeName string, methods map[string]lua.LGFunction) {
	mt := e.vm.NewTypeMetatable(typeName)
	e.vm.SetField(mt, "__index", e.vm.SetFuncs(e.vm.NewTable(), methods))
	e.types[reflect.TypeOf((*T)(nil)).Elem()] = mt
}

// ExposeObject hands obj over to the engine and binds it under name in the
// current table. From then on the engine owns obj: it is closed (if it is an
// io.Closer) by UnexposeObject or Engine.Close, never by the host.
func (s *Scope) ExposeObject(obj any, name string) error {
	t := s.Table()
	if t.RawGetString(name) != lua.LNil {
		return &BindingError{Op: "register", Name: name, Err: ErrNameTaken}
	}
	mt, ok := s.e.types[reflect.TypeOf(obj)]
	if !ok {
		return &BindingError{Op: "register", Name: name, Err: ErrNotRegistered}
	}

	ud := s.e.vm.NewUserData()
	ud.Value = obj
	s.e.vm.SetMetatable(ud, mt)
	t.RawSetString(name, ud)
	s.e.owned[ud] = struct{}{}
	return nil
}

// UnexposeObject removes the binding name and releases the object if the
// engine owns it.
func (s *Scope) UnexposeObject(name string) error {
	t := s.Table()
	v := t.RawGetString(name)
	if v == lua.LNil {
		return &BindingError{Op: "unregister", Name: name, Err: ErrNotFound}
	}
	t.RawSetString(name, lua.LNil)
	if ud, ok := v.(*lua.LUserData); ok {
		if _, owned := s.e.owned[ud]; owned {
			s.e.release(ud)
		}
	}
	return nil
}

// CheckObject returns argument n of a method call as T, raising a script
// argument error otherwise.
func CheckObject[T any](L *lua.LState, n int) T {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(T)
	if !ok {
		var zero T
		L.ArgError(n, "expected "+reflect.TypeOf(&zero).Elem().String())
		return zero
	}
	return v
}
