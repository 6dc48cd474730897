package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/devutil"
)

// Editor is the editor surface exposed to scripts.
type Editor interface {
	Execute(name, value string) error
	State(name string) (any, error)
	Commands() *command.Registry
	ModelData(opts ...devutil.Option) string
	SetModelData(markup string, opts ...devutil.Option) error
}

// OpenEditor installs the global editor table backed by ed.
func OpenEditor(s *State, ed Editor) {
	s.RegisterModule("editor", map[string]lua.LGFunction{
		"execute": func(L *lua.LState) int {
			name := L.CheckString(1)
			var value string
			if v := ToGoValue(L.Get(2)); v != nil {
				value = fmt.Sprint(v)
			}
			if err := ed.Execute(name, value); err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		},
		"state": func(L *lua.LState) int {
			st, err := ed.State(L.CheckString(1))
			if err != nil {
				L.RaiseError("%s", err.Error())
			}
			L.Push(ToLuaValue(L, st))
			return 1
		},
		"data": func(L *lua.LState) int {
			L.Push(lua.LString(ed.ModelData()))
			return 1
		},
		"set_data": func(L *lua.LState) int {
			if err := ed.SetModelData(L.CheckString(1)); err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		},
		"commands": func(L *lua.LState) int {
			L.Push(ToLuaValue(L, ed.Commands().Names()))
			return 1
		},
	})
}
