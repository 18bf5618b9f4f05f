package cpu

import "github.com/jmchacon/rp2a03/memory"

// Mode is an enumeration of the 6502 addressing modes.
type Mode uint8

const (
	Implied     Mode = iota // No operand.
	Accumulator             // Operates on A.
	Immediate               // #i
	ZeroPage                // d
	ZeroPageX               // d,x
	ZeroPageY               // d,y
	Absolute                // a
	AbsoluteX               // a,x
	AbsoluteY               // a,y
	Indirect                // (a) - JMP only
	IndirectX               // (d,x)
	IndirectY               // (d),y
	Relative                // *+r - branches only
)

var modeNames = [...]string{
	Implied:     "implied",
	Accumulator: "accumulator",
	Immediate:   "immediate",
	ZeroPage:    "zero page",
	ZeroPageX:   "zero page,X",
	ZeroPageY:   "zero page,Y",
	Absolute:    "absolute",
	AbsoluteX:   "absolute,X",
	AbsoluteY:   "absolute,Y",
	Indirect:    "indirect",
	IndirectX:   "(indirect,X)",
	IndirectY:   "(indirect),Y",
	Relative:    "relative",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Operands returns the number of bytes following the opcode for this mode.
func (m Mode) Operands() uint8 {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}

// Operand is the result of resolving an addressing mode.
type Operand struct {
	// Addr is the effective address. For immediate mode it's the address of the
	// immediate byte so every read mode is simply a memory read at Addr. For
	// relative mode it's the branch target.
	Addr uint16
	// Crossed is true if computing Addr moved to a different page. Only
	// AbsoluteX, AbsoluteY, IndirectY and Relative can set it.
	Crossed bool
}

// Resolve computes the operand for the instruction at the current PC using mode m.
// It only reads memory and never changes any state. Implied and Accumulator
// return the zero Operand.
func (p *Processor) Resolve(m Mode) Operand {
	pc := p.PC
	switch m {
	case Immediate:
		return Operand{Addr: pc + 1}
	case ZeroPage:
		return Operand{Addr: uint16(p.Ram.Read(pc + 1))}
	case ZeroPageX:
		// Done as a uint8 so it wraps within page zero.
		return Operand{Addr: uint16(p.Ram.Read(pc+1) + p.X)}
	case ZeroPageY:
		return Operand{Addr: uint16(p.Ram.Read(pc+1) + p.Y)}
	case Absolute:
		return Operand{Addr: memory.ReadAddr(p.Ram, pc+1)}
	case AbsoluteX:
		return indexed(memory.ReadAddr(p.Ram, pc+1), p.X)
	case AbsoluteY:
		return indexed(memory.ReadAddr(p.Ram, pc+1), p.Y)
	case Indirect:
		// NMOS bug: the high byte of the pointer never carries so ($10FF)
		// reads from $10FF and $1000.
		ptr := memory.ReadAddr(p.Ram, pc+1)
		lo := p.Ram.Read(ptr)
		hi := p.Ram.Read((ptr & 0xFF00) | uint16(uint8(ptr)+1))
		return Operand{Addr: (uint16(hi) << 8) | uint16(lo)}
	case IndirectX:
		return Operand{Addr: p.zpAddr(p.Ram.Read(pc+1) + p.X)}
	case IndirectY:
		return indexed(p.zpAddr(p.Ram.Read(pc+1)), p.Y)
	case Relative:
		// Offsets are relative to the instruction following the branch.
		next := pc + 2
		target := next + uint16(int16(int8(p.Ram.Read(pc+1))))
		return Operand{Addr: target, Crossed: !samePage(next, target)}
	}
	return Operand{}
}

// zpAddr reads a little endian pointer out of page zero. The high byte
// comes from ptr+1 which wraps from 0xFF to 0x00 rather than into page one.
func (p *Processor) zpAddr(ptr uint8) uint16 {
	return (uint16(p.Ram.Read(uint16(ptr+1))) << 8) | uint16(p.Ram.Read(uint16(ptr)))
}

// indexed adds idx to base the way the 6502 ALU does. The low byte is added
// first and any carry goes into the high byte. Crossed is set when that
// carry happened.
func indexed(base uint16, idx uint8) Operand {
	lo := (base & 0x00FF) + uint16(idx)
	return Operand{
		Addr:    (base & 0xFF00) + lo,
		Crossed: lo > 0x00FF,
	}
}

// samePage reports whether both addresses share the high byte.
func samePage(a uint16, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}
