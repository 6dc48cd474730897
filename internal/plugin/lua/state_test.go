package lua

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestState_DoString(t *testing.T) {
	var out bytes.Buffer
	s := NewState(WithOutput(&out))
	defer s.Close()

	require.NoError(t, s.DoString(context.Background(), `x = 1 + 2; print("x", x, string.upper("ok"))`))
	assert.Equal(t, "x\t3\tOK\n", out.String())
	assert.Equal(t, lua.LNumber(3), s.GetGlobal("x"))
}

func TestState_DoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(`answer = math.max(4, 42)`), 0o644))

	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoFile(context.Background(), path))
	assert.Equal(t, lua.LNumber(42), s.GetGlobal("answer"))
}

func TestState_Sandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "dofile", "loadfile", "load", "require"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, lua.LNil, s.GetGlobal(name))
		})
	}
	assert.Error(t, s.DoString(context.Background(), `os.exit(1)`))
}

func TestState_Timeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(context.Background(), `while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)
}

func TestState_Closed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}

func TestBridge(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	assert.Equal(t, lua.LNil, ToLuaValue(L, nil))
	assert.Equal(t, lua.LTrue, ToLuaValue(L, true))
	assert.Equal(t, lua.LString("a"), ToLuaValue(L, "a"))
	assert.Equal(t, lua.LNumber(7), ToLuaValue(L, 7))
	assert.Equal(t, lua.LString("d"), ToLuaValue(L, stringer("d")))

	tbl, ok := ToLuaValue(L, []string{"x", "y"}).(*lua.LTable)
	require.True(t, ok)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, lua.LString("y"), tbl.RawGetInt(2))

	assert.Equal(t, int64(3), ToGoValue(lua.LNumber(3)))
	assert.Equal(t, 1.5, ToGoValue(lua.LNumber(1.5)))
	assert.Equal(t, "s", ToGoValue(lua.LString("s")))
	assert.Nil(t, ToGoValue(lua.LNil))
}

type stringer string

func (s stringer) String() string { return string(s) }
