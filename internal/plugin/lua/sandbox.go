package lua

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// installSandbox opens the safe standard libraries and removes the functions
// that load code from disk or strings.
func installSandbox(L *lua.LState, out io.Writer) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		_, _ = io.WriteString(out, strings.Join(parts, "\t")+"\n")
		return 0
	}))
}
