package scripting

import (
	"io"

	lua "github.com/yuin/gopher-lua"
)

// CompileScript parses source into a function without running it.
// sourceName labels the chunk in diagnostics.
func (e *Engine) CompileScript(r io.Reader, sourceName string) (*lua.LFunction, error) {
	fn, err := e.vm.Load(e.decode(r), sourceName)
	if err != nil {
		return nil, &ScriptError{Context: sourceName, Msg: "couldn't parse script", Err: err}
	}
	return fn, nil
}

// CompileAndRun compiles source and runs it to completion in the main
// thread. Runtime errors carry the script stack trace.
func (e *Engine) CompileAndRun(r io.Reader, sourceName string) error {
	fn, err := e.CompileScript(r, sourceName)
	if err != nil {
		return err
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}); err != nil {
		return &ScriptError{Context: sourceName, Msg: "couldn't start script", Err: err}
	}
	return nil
}
