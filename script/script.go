// Package script lets a Lua program drive a nes.Console. It's meant for
// automating test ROMs: set up memory, run until some condition, then
// check the results with Lua's assert.
//
// The following globals are installed:
//
//	step()            run one instruction, returns its cycles
//	run(n)            run n instructions, returns executed, skipped, cycles
//	peek(addr)        read a byte
//	poke(addr, val)   write a byte
//	reg(name)         read A, X, Y, S, P, PC or cycles
//	setreg(name, val) write A, X, Y, S, P or PC
//	disasm(addr)      disassemble at addr, returns the text and length
//	print(...)        like Lua's print but to the configured writer
//
// Any CPU error raised by step or run stops the script and is returned
// from Run.
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmchacon/rp2a03/cpu"
	"github.com/jmchacon/rp2a03/disassemble"
	"github.com/jmchacon/rp2a03/nes"
	lua "github.com/yuin/gopher-lua"
)

// Runner holds a Lua state bound to a console.
type Runner struct {
	c   *nes.Console
	out io.Writer
	L   *lua.LState
}

// New returns a Runner for c. print output goes to out.
func New(c *nes.Console, out io.Writer) *Runner {
	r := &Runner{
		c:   c,
		out: out,
		L:   lua.NewState(),
	}
	fns := map[string]lua.LGFunction{
		"step":   r.step,
		"run":    r.run,
		"peek":   r.peek,
		"poke":   r.poke,
		"reg":    r.reg,
		"setreg": r.setreg,
		"disasm": r.disasm,
		"print":  r.print,
	}
	for name, fn := range fns {
		r.L.SetGlobal(name, r.L.NewFunction(fn))
	}
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.L.Close()
}

// Run executes src. name is only used in error messages.
func (r *Runner) Run(name string, src string) error {
	fn, err := r.L.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("can't load script %s: %w", name, err)
	}
	r.L.Push(fn)
	if err := r.L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("script %s failed: %w", name, err)
	}
	return nil
}

func checkAddr(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFFFF {
		L.ArgError(n, fmt.Sprintf("address %d out of range", v))
	}
	return uint16(v)
}

func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFF {
		L.ArgError(n, fmt.Sprintf("value %d out of range", v))
	}
	return uint8(v)
}

func (r *Runner) step(L *lua.LState) int {
	cycles, err := r.c.Step()
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

func (r *Runner) run(L *lua.LState) int {
	s, err := r.c.Run(L.CheckInt(1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(s.Instructions))
	L.Push(lua.LNumber(s.Skipped))
	L.Push(lua.LNumber(s.Cycles))
	return 3
}

func (r *Runner) peek(L *lua.LState) int {
	L.Push(lua.LNumber(r.c.Ram.Read(checkAddr(L, 1))))
	return 1
}

func (r *Runner) poke(L *lua.LState) int {
	r.c.Ram.Write(checkAddr(L, 1), checkByte(L, 2))
	return 0
}

func (r *Runner) reg(L *lua.LState) int {
	p := r.c.CPU
	var v lua.LNumber
	switch name := strings.ToUpper(L.CheckString(1)); name {
	case "A":
		v = lua.LNumber(p.A)
	case "X":
		v = lua.LNumber(p.X)
	case "Y":
		v = lua.LNumber(p.Y)
	case "S":
		v = lua.LNumber(p.S)
	case "P":
		v = lua.LNumber(p.P)
	case "PC":
		v = lua.LNumber(p.PC)
	case "CYCLES":
		v = lua.LNumber(p.Cycles)
	default:
		L.ArgError(1, "unknown register "+name)
	}
	L.Push(v)
	return 1
}

func (r *Runner) setreg(L *lua.LState) int {
	p := r.c.CPU
	switch name := strings.ToUpper(L.CheckString(1)); name {
	case "A":
		p.A = checkByte(L, 2)
	case "X":
		p.X = checkByte(L, 2)
	case "Y":
		p.Y = checkByte(L, 2)
	case "S":
		p.S = checkByte(L, 2)
	case "P":
		p.P = checkByte(L, 2) | cpu.P_S1
	case "PC":
		p.PC = checkAddr(L, 2)
	default:
		L.ArgError(1, "unknown register "+name)
	}
	return 0
}

func (r *Runner) disasm(L *lua.LState) int {
	out, n := disassemble.Step(checkAddr(L, 1), r.c.Ram)
	L.Push(lua.LString(strings.TrimRight(out, " ")))
	L.Push(lua.LNumber(n))
	return 2
}

func (r *Runner) print(L *lua.LState) int {
	var parts []string
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
