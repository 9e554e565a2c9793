package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

func (r *Runner) register() {
	r.L.SetGlobal("alias", r.L.NewFunction(r.luaAlias))
	r.L.SetGlobal("history_size", r.L.NewFunction(r.luaHistorySize))
	r.L.SetGlobal("log", r.L.NewFunction(r.luaLog))
}

// alias(owner, source, target)
func (r *Runner) luaAlias(L *lua.LState) int {
	owner := L.CheckString(1)
	source := L.CheckString(2)
	target := L.OptString(3, "")
	if err := r.host.DefineAlias(owner, source, target); err != nil {
		L.RaiseError("alias %q: %v", source, err)
	}
	return 0
}

// history_size(n [, buffers])
func (r *Runner) luaHistorySize(L *lua.LState) int {
	n := L.CheckInt(1)
	buffers := L.OptInt(2, 0)
	if err := r.host.SetHistoryDefaults(n, buffers); err != nil {
		L.RaiseError("history_size: %v", err)
	}
	return 0
}

// log(...) joins its arguments with spaces, like print.
func (r *Runner) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	if r.logger != nil {
		r.logger.Info("%s", strings.Join(parts, " "))
	}
	return 0
}
