package session

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-tonegen/tone/modifier"
)

// LoadLua runs a session script and returns the timeline it builds. Scripts
// see these functions:
//
//	set(id, value)                       change a parameter now
//	wait(seconds)                        advance the script clock
//	enable(slot, on)                     switch a modifier slot by index or name
//	snap({hz, ...})                      replace the snap frequencies
//	ramp(id, from, to, seconds[, steps]) step a parameter and advance the clock
//	now()                                current script time in seconds
//
// Only the base, table, string and math libraries are available.
func LoadLua(src string) (*Timeline, error) {
	return loadLua(src, "session")
}

// LoadLuaFile is LoadLua for a script on disk.
func LoadLuaFile(path string) (*Timeline, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return loadLua(string(src), path)
}

func loadLua(src, name string) (*Timeline, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	b := newBuilder(L)
	if err := b.run(func() error { return L.DoString(src) }); err != nil {
		return nil, fmt.Errorf("session: %s: %w", name, err)
	}
	b.tl.SetLength(b.now)
	return b.tl, nil
}

// builder holds the script clock and the first Go-side error, so callers can
// match sentinel errors with errors.Is.
type builder struct {
	L   *lua.LState
	tl  *Timeline
	now time.Duration
	err error
}

func newBuilder(L *lua.LState) *builder {
	b := &builder{L: L, tl: NewTimeline()}
	b.openLibs()
	L.SetGlobal("set", L.NewFunction(b.luaSet))
	L.SetGlobal("wait", L.NewFunction(b.luaWait))
	L.SetGlobal("enable", L.NewFunction(b.luaEnable))
	L.SetGlobal("snap", L.NewFunction(b.luaSnap))
	L.SetGlobal("ramp", L.NewFunction(b.luaRamp))
	L.SetGlobal("now", L.NewFunction(b.luaNow))
	return b
}

func (b *builder) openLibs() {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		b.L.Push(b.L.NewFunction(lib.open))
		b.L.Push(lua.LString(lib.name))
		b.L.Call(1, 0)
	}
}

func (b *builder) run(exec func() error) error {
	err := exec()
	if b.err != nil {
		return b.err
	}
	return err
}

// fail records err and aborts the script.
func (b *builder) fail(err error) int {
	if b.err == nil {
		b.err = err
	}
	b.L.RaiseError("%s", err.Error())
	return 0
}

func (b *builder) luaSet(L *lua.LState) int {
	id := L.CheckString(1)
	v := float64(L.CheckNumber(2))
	if err := b.tl.Set(b.now, id, v); err != nil {
		return b.fail(err)
	}
	return 0
}

func (b *builder) luaWait(L *lua.LState) int {
	d, err := seconds(float64(L.CheckNumber(1)))
	if err != nil {
		return b.fail(err)
	}
	b.now += d
	return 0
}

func (b *builder) luaEnable(L *lua.LState) int {
	var slot int
	switch v := L.CheckAny(1).(type) {
	case lua.LNumber:
		slot = int(v)
	case lua.LString:
		s, err := modifier.ParseSlot(string(v))
		if err != nil {
			return b.fail(fmt.Errorf("%w: %q", ErrUnknownSlot, string(v)))
		}
		slot = s
	default:
		L.ArgError(1, "slot must be a number or a name")
		return 0
	}
	on := true
	if L.GetTop() >= 2 {
		on = L.ToBool(2)
	}
	if err := b.tl.Enable(b.now, slot, on); err != nil {
		return b.fail(err)
	}
	return 0
}

func (b *builder) luaSnap(L *lua.LState) int {
	tbl := L.CheckTable(1)
	freqs := make([]float64, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(1, "snap frequencies must be numbers")
			return 0
		}
		freqs = append(freqs, float64(n))
	}
	if err := b.tl.Snap(b.now, freqs); err != nil {
		return b.fail(err)
	}
	return 0
}

func (b *builder) luaRamp(L *lua.LState) int {
	id := L.CheckString(1)
	from := float64(L.CheckNumber(2))
	to := float64(L.CheckNumber(3))
	length, err := seconds(float64(L.CheckNumber(4)))
	if err != nil {
		return b.fail(err)
	}
	steps := L.OptInt(5, 32)
	if err := b.tl.Ramp(b.now, id, from, to, length, steps); err != nil {
		return b.fail(err)
	}
	b.now += length
	return 0
}

func (b *builder) luaNow(L *lua.LState) int {
	L.Push(lua.LNumber(b.now.Seconds()))
	return 1
}

func seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidValue, s)
	}
	if s < 0 {
		return 0, fmt.Errorf("%w: %v seconds", ErrNegativeTime, s)
	}
	return time.Duration(s * float64(time.Second)), nil
}

// IsScriptError reports whether err came from Lua itself (syntax or runtime)
// rather than from an invalid session request.
func IsScriptError(err error) bool {
	var apiErr *lua.ApiError
	return errors.As(err, &apiErr)
}
