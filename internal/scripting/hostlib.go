package scripting

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// openHostLib installs the globals every script can rely on:
//
//	log.debug/info/warn/error(...)  write to the host log
//	wait(seconds)                    suspend the current script thread
//	spawn(name, fn, ...)             run fn as a new script thread
func (e *Engine) openHostLib() {
	logTbl := e.vm.NewTable()
	e.vm.SetFuncs(logTbl, map[string]lua.LGFunction{
		"debug": e.luaLog(zap.DebugLevel),
		"info":  e.luaLog(zap.InfoLevel),
		"warn":  e.luaLog(zap.WarnLevel),
		"error": e.luaLog(zap.ErrorLevel),
	})
	e.vm.SetGlobal("log", logTbl)
	e.waitTag = e.vm.NewUserData()
	e.vm.SetGlobal("wait", e.vm.NewFunction(e.luaWait))
	e.vm.SetGlobal("spawn", e.vm.NewFunction(e.luaSpawn))
}

func (e *Engine) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		if ce := e.log.Check(level, strings.Join(parts, " ")); ce != nil {
			ce.Write(zap.String("where", strings.TrimSuffix(L.Where(1), ":")))
		}
		return 0
	}
}

// luaWait yields the engine's private tag ahead of the duration so the
// scheduler can tell it apart from a plain coroutine.yield(n).
func (e *Engine) luaWait(L *lua.LState) int {
	secs := L.CheckNumber(1)
	return L.Yield(e.waitTag, secs)
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	var args []lua.LValue
	for i := 3; i <= L.GetTop(); i++ {
		args = append(args, L.Get(i))
	}
	e.threads.Spawn(name, fn, args...)
	return 0
}
