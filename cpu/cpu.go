// Package cpu defines the RP2A03 (NES variant of the NMOS 6502) architecture
// and provides the methods needed to run the CPU and interface with it
// for emulation.
//
// Execution is modeled one instruction at a time. Each call to Step fetches,
// decodes and executes a single instruction atomically and reports the number
// of clock cycles real hardware spends on it (including page crossing and
// branch penalties). Decimal mode is tracked in P but, as on the Ricoh part,
// never affects arithmetic.
package cpu

import (
	"errors"
	"fmt"

	"github.com/jmchacon/rp2a03/memory"
)

const (
	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_S1        = uint8(0x20) // Always 1
	P_B         = uint8(0x10) // Only meaningful when P is pushed which isn't supported here.
	P_DECIMAL   = uint8(0x8)
	P_INTERRUPT = uint8(0x4)
	P_ZERO      = uint8(0x2)
	P_CARRY     = uint8(0x1)
)

// Registers is the complete programmer visible state of the CPU.
// P is the source of truth for all flags. The boolean accessors below
// are derived from it on every call.
type Registers struct {
	A  uint8  // Accumulator register
	X  uint8  // X register
	Y  uint8  // Y register
	S  uint8  // Stack pointer
	P  uint8  // Processor status register
	PC uint16 // Program counter
}

// Carry returns whether C is set.
func (r Registers) Carry() bool { return r.P&P_CARRY != 0 }

// Zero returns whether Z is set.
func (r Registers) Zero() bool { return r.P&P_ZERO != 0 }

// Interrupt returns whether I is set.
func (r Registers) Interrupt() bool { return r.P&P_INTERRUPT != 0 }

// Decimal returns whether D is set.
func (r Registers) Decimal() bool { return r.P&P_DECIMAL != 0 }

// Overflow returns whether V is set.
func (r Registers) Overflow() bool { return r.P&P_OVERFLOW != 0 }

// Negative returns whether N is set.
func (r Registers) Negative() bool { return r.P&P_NEGATIVE != 0 }

// String returns a trace friendly rendering of the registers.
func (r Registers) String() string {
	return fmt.Sprintf("A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X PC:%.4X", r.A, r.X, r.Y, r.P, r.S, r.PC)
}

type Processor struct {
	Registers
	Ram    memory.Ram
	Cycles uint64 // Total cycles consumed by all completed Step calls.
}

// A few custom error types to distinguish why the CPU stopped

// IllegalOpcode represents a byte which isn't assigned to any documented instruction.
type IllegalOpcode struct {
	Opcode uint8
}

// Error implements the interface for error types.
func (e IllegalOpcode) Error() string {
	return fmt.Sprintf("0x%.2X is an illegal opcode", e.Opcode)
}

// UnsupportedOpcode represents a documented instruction which uses the stack or
// interrupt vectors. These aren't emulated by this core.
type UnsupportedOpcode struct {
	Opcode   uint8
	Mnemonic string
}

// Error implements the interface for error types.
func (e UnsupportedOpcode) Error() string {
	return fmt.Sprintf("0x%.2X (%s) is an unsupported opcode", e.Opcode, e.Mnemonic)
}

// InvalidCPUState represents an invalid CPU state in the emulator.
type InvalidCPUState struct {
	Reason string
}

// Error implements the interface for error types.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Init will create a new CPU attached to the given memory and return it in powered on state.
// The memory passed in will also be powered on.
func Init(r memory.Ram) (*Processor, error) {
	if r == nil {
		return nil, InvalidCPUState{"no memory attached"}
	}
	p := &Processor{
		Ram: r,
	}
	p.Ram.PowerOn()
	p.PowerOn()
	return p, nil
}

// PowerOn resets the CPU to the power on state. All registers including PC are zero
// except P which only has the always set bit. The cycle count is cleared.
// Memory isn't touched so anything already loaded stays in place.
func (p *Processor) PowerOn() {
	p.Registers = Registers{
		// This bit is always set.
		P: P_S1,
	}
	p.Cycles = 0
}

// Step fetches the opcode at PC, resolves its operand, executes it and advances PC
// past it (unless the instruction itself moved PC). It returns the number of cycles
// the instruction took, which is also added to p.Cycles.
//
// An IllegalOpcode or UnsupportedOpcode error leaves registers, memory and the cycle
// count untouched so the caller can decide whether to halt or skip.
func (p *Processor) Step() (int, error) {
	if p.Ram == nil {
		return 0, InvalidCPUState{"no memory attached"}
	}
	op := p.Ram.Read(p.PC)
	o := &opcodes[op]
	if !o.Legal() {
		return 0, IllegalOpcode{op}
	}
	if !o.Supported() {
		return 0, UnsupportedOpcode{op, o.Mnemonic}
	}

	// Operand resolution has to happen against the PC of the opcode
	// so do it before advancing.
	arg := p.Resolve(o.Mode)
	p.PC += 1 + uint16(o.Mode.Operands())

	// Control flow instructions overwrite the advanced PC from here.
	cycles := int(o.Cycles) + o.exec(p, arg)
	if o.PageCross && arg.Crossed {
		cycles++
	}
	p.Cycles += uint64(cycles)
	return cycles, nil
}

// Halted reports whether err is one of the opcode errors Step can return.
// A host can use this to tell a stopped program from a broken setup.
func Halted(err error) bool {
	var ill IllegalOpcode
	var uns UnsupportedOpcode
	return errors.As(err, &ill) || errors.As(err, &uns)
}
