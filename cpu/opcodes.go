package cpu

// Opcode describes one entry in the dispatch table.
type Opcode struct {
	Mnemonic  string // Empty for bytes with no documented instruction.
	Mode      Mode
	Cycles    uint8 // Base cycle cost.
	PageCross bool  // One more cycle when the indexed address crosses a page.

	exec func(*Processor, Operand) int
}

// Legal reports whether the byte maps to a documented instruction.
func (o Opcode) Legal() bool {
	return o.Mnemonic != ""
}

// Supported reports whether Step can execute the instruction.
// Documented stack and interrupt instructions are Legal but not Supported.
func (o Opcode) Supported() bool {
	return o.exec != nil
}

// Size is the total instruction length in bytes including the opcode.
func (o Opcode) Size() int {
	return 1 + int(o.Mode.Operands())
}

// Lookup returns the table entry for op. Every byte has an entry; check Legal and
// Supported to tell them apart.
func Lookup(op uint8) Opcode {
	return opcodes[op]
}

// unsupported entries carry enough for disassembly but have no exec.
func unsupported(mnemonic string, mode Mode, cycles uint8) Opcode {
	return Opcode{Mnemonic: mnemonic, Mode: mode, Cycles: cycles}
}

// Opcode matrix and timings taken from:
// http://obelisk.me.uk/6502/reference.html
// http://wiki.nesdev.com/w/index.php/CPU_unofficial_opcodes
//
// Anything not listed is the zero Opcode which Step reports as IllegalOpcode.
var opcodes = [256]Opcode{
	// ADC
	0x69: {"ADC", Immediate, 2, false, (*Processor).iADC},
	0x65: {"ADC", ZeroPage, 3, false, (*Processor).iADC},
	0x75: {"ADC", ZeroPageX, 4, false, (*Processor).iADC},
	0x6D: {"ADC", Absolute, 4, false, (*Processor).iADC},
	0x7D: {"ADC", AbsoluteX, 4, true, (*Processor).iADC},
	0x79: {"ADC", AbsoluteY, 4, true, (*Processor).iADC},
	0x61: {"ADC", IndirectX, 6, false, (*Processor).iADC},
	0x71: {"ADC", IndirectY, 5, true, (*Processor).iADC},

	// AND
	0x29: {"AND", Immediate, 2, false, (*Processor).iAND},
	0x25: {"AND", ZeroPage, 3, false, (*Processor).iAND},
	0x35: {"AND", ZeroPageX, 4, false, (*Processor).iAND},
	0x2D: {"AND", Absolute, 4, false, (*Processor).iAND},
	0x3D: {"AND", AbsoluteX, 4, true, (*Processor).iAND},
	0x39: {"AND", AbsoluteY, 4, true, (*Processor).iAND},
	0x21: {"AND", IndirectX, 6, false, (*Processor).iAND},
	0x31: {"AND", IndirectY, 5, true, (*Processor).iAND},

	// ASL
	0x0A: {"ASL", Accumulator, 2, false, (*Processor).iASLAcc},
	0x06: {"ASL", ZeroPage, 5, false, (*Processor).iASL},
	0x16: {"ASL", ZeroPageX, 6, false, (*Processor).iASL},
	0x0E: {"ASL", Absolute, 6, false, (*Processor).iASL},
	0x1E: {"ASL", AbsoluteX, 7, false, (*Processor).iASL},

	// Branches
	0x10: {"BPL", Relative, 2, false, (*Processor).iBPL},
	0x30: {"BMI", Relative, 2, false, (*Processor).iBMI},
	0x50: {"BVC", Relative, 2, false, (*Processor).iBVC},
	0x70: {"BVS", Relative, 2, false, (*Processor).iBVS},
	0x90: {"BCC", Relative, 2, false, (*Processor).iBCC},
	0xB0: {"BCS", Relative, 2, false, (*Processor).iBCS},
	0xD0: {"BNE", Relative, 2, false, (*Processor).iBNE},
	0xF0: {"BEQ", Relative, 2, false, (*Processor).iBEQ},

	// BIT
	0x24: {"BIT", ZeroPage, 3, false, (*Processor).iBIT},
	0x2C: {"BIT", Absolute, 4, false, (*Processor).iBIT},

	// Flags
	0x18: {"CLC", Implied, 2, false, flagOp(P_CARRY, false)},
	0x38: {"SEC", Implied, 2, false, flagOp(P_CARRY, true)},
	0x58: {"CLI", Implied, 2, false, flagOp(P_INTERRUPT, false)},
	0x78: {"SEI", Implied, 2, false, flagOp(P_INTERRUPT, true)},
	0xB8: {"CLV", Implied, 2, false, flagOp(P_OVERFLOW, false)},
	0xD8: {"CLD", Implied, 2, false, flagOp(P_DECIMAL, false)},
	0xF8: {"SED", Implied, 2, false, flagOp(P_DECIMAL, true)},

	// CMP
	0xC9: {"CMP", Immediate, 2, false, (*Processor).iCMP},
	0xC5: {"CMP", ZeroPage, 3, false, (*Processor).iCMP},
	0xD5: {"CMP", ZeroPageX, 4, false, (*Processor).iCMP},
	0xCD: {"CMP", Absolute, 4, false, (*Processor).iCMP},
	0xDD: {"CMP", AbsoluteX, 4, true, (*Processor).iCMP},
	0xD9: {"CMP", AbsoluteY, 4, true, (*Processor).iCMP},
	0xC1: {"CMP", IndirectX, 6, false, (*Processor).iCMP},
	0xD1: {"CMP", IndirectY, 5, true, (*Processor).iCMP},

	// CPX
	0xE0: {"CPX", Immediate, 2, false, (*Processor).iCPX},
	0xE4: {"CPX", ZeroPage, 3, false, (*Processor).iCPX},
	0xEC: {"CPX", Absolute, 4, false, (*Processor).iCPX},

	// CPY
	0xC0: {"CPY", Immediate, 2, false, (*Processor).iCPY},
	0xC4: {"CPY", ZeroPage, 3, false, (*Processor).iCPY},
	0xCC: {"CPY", Absolute, 4, false, (*Processor).iCPY},

	// DEC
	0xC6: {"DEC", ZeroPage, 5, false, (*Processor).iDEC},
	0xD6: {"DEC", ZeroPageX, 6, false, (*Processor).iDEC},
	0xCE: {"DEC", Absolute, 6, false, (*Processor).iDEC},
	0xDE: {"DEC", AbsoluteX, 7, false, (*Processor).iDEC},

	0xCA: {"DEX", Implied, 2, false, (*Processor).iDEX},
	0x88: {"DEY", Implied, 2, false, (*Processor).iDEY},

	// EOR
	0x49: {"EOR", Immediate, 2, false, (*Processor).iEOR},
	0x45: {"EOR", ZeroPage, 3, false, (*Processor).iEOR},
	0x55: {"EOR", ZeroPageX, 4, false, (*Processor).iEOR},
	0x4D: {"EOR", Absolute, 4, false, (*Processor).iEOR},
	0x5D: {"EOR", AbsoluteX, 4, true, (*Processor).iEOR},
	0x59: {"EOR", AbsoluteY, 4, true, (*Processor).iEOR},
	0x41: {"EOR", IndirectX, 6, false, (*Processor).iEOR},
	0x51: {"EOR", IndirectY, 5, true, (*Processor).iEOR},

	// INC
	0xE6: {"INC", ZeroPage, 5, false, (*Processor).iINC},
	0xF6: {"INC", ZeroPageX, 6, false, (*Processor).iINC},
	0xEE: {"INC", Absolute, 6, false, (*Processor).iINC},
	0xFE: {"INC", AbsoluteX, 7, false, (*Processor).iINC},

	0xE8: {"INX", Implied, 2, false, (*Processor).iINX},
	0xC8: {"INY", Implied, 2, false, (*Processor).iINY},

	// JMP
	0x4C: {"JMP", Absolute, 3, false, (*Processor).iJMP},
	0x6C: {"JMP", Indirect, 5, false, (*Processor).iJMP},

	// LDA
	0xA9: {"LDA", Immediate, 2, false, (*Processor).iLDA},
	0xA5: {"LDA", ZeroPage, 3, false, (*Processor).iLDA},
	0xB5: {"LDA", ZeroPageX, 4, false, (*Processor).iLDA},
	0xAD: {"LDA", Absolute, 4, false, (*Processor).iLDA},
	0xBD: {"LDA", AbsoluteX, 4, true, (*Processor).iLDA},
	0xB9: {"LDA", AbsoluteY, 4, true, (*Processor).iLDA},
	0xA1: {"LDA", IndirectX, 6, false, (*Processor).iLDA},
	0xB1: {"LDA", IndirectY, 5, true, (*Processor).iLDA},

	// LDX
	0xA2: {"LDX", Immediate, 2, false, (*Processor).iLDX},
	0xA6: {"LDX", ZeroPage, 3, false, (*Processor).iLDX},
	0xB6: {"LDX", ZeroPageY, 4, false, (*Processor).iLDX},
	0xAE: {"LDX", Absolute, 4, false, (*Processor).iLDX},
	0xBE: {"LDX", AbsoluteY, 4, true, (*Processor).iLDX},

	// LDY
	0xA0: {"LDY", Immediate, 2, false, (*Processor).iLDY},
	0xA4: {"LDY", ZeroPage, 3, false, (*Processor).iLDY},
	0xB4: {"LDY", ZeroPageX, 4, false, (*Processor).iLDY},
	0xAC: {"LDY", Absolute, 4, false, (*Processor).iLDY},
	0xBC: {"LDY", AbsoluteX, 4, true, (*Processor).iLDY},

	// LSR
	0x4A: {"LSR", Accumulator, 2, false, (*Processor).iLSRAcc},
	0x46: {"LSR", ZeroPage, 5, false, (*Processor).iLSR},
	0x56: {"LSR", ZeroPageX, 6, false, (*Processor).iLSR},
	0x4E: {"LSR", Absolute, 6, false, (*Processor).iLSR},
	0x5E: {"LSR", AbsoluteX, 7, false, (*Processor).iLSR},

	0xEA: {"NOP", Implied, 2, false, (*Processor).iNOP},

	// ORA
	0x09: {"ORA", Immediate, 2, false, (*Processor).iORA},
	0x05: {"ORA", ZeroPage, 3, false, (*Processor).iORA},
	0x15: {"ORA", ZeroPageX, 4, false, (*Processor).iORA},
	0x0D: {"ORA", Absolute, 4, false, (*Processor).iORA},
	0x1D: {"ORA", AbsoluteX, 4, true, (*Processor).iORA},
	0x19: {"ORA", AbsoluteY, 4, true, (*Processor).iORA},
	0x01: {"ORA", IndirectX, 6, false, (*Processor).iORA},
	0x11: {"ORA", IndirectY, 5, true, (*Processor).iORA},

	// ROL
	0x2A: {"ROL", Accumulator, 2, false, (*Processor).iROLAcc},
	0x26: {"ROL", ZeroPage, 5, false, (*Processor).iROL},
	0x36: {"ROL", ZeroPageX, 6, false, (*Processor).iROL},
	0x2E: {"ROL", Absolute, 6, false, (*Processor).iROL},
	0x3E: {"ROL", AbsoluteX, 7, false, (*Processor).iROL},

	// ROR
	0x6A: {"ROR", Accumulator, 2, false, (*Processor).iRORAcc},
	0x66: {"ROR", ZeroPage, 5, false, (*Processor).iROR},
	0x76: {"ROR", ZeroPageX, 6, false, (*Processor).iROR},
	0x6E: {"ROR", Absolute, 6, false, (*Processor).iROR},
	0x7E: {"ROR", AbsoluteX, 7, false, (*Processor).iROR},

	// SBC
	0xE9: {"SBC", Immediate, 2, false, (*Processor).iSBC},
	0xE5: {"SBC", ZeroPage, 3, false, (*Processor).iSBC},
	0xF5: {"SBC", ZeroPageX, 4, false, (*Processor).iSBC},
	0xED: {"SBC", Absolute, 4, false, (*Processor).iSBC},
	0xFD: {"SBC", AbsoluteX, 4, true, (*Processor).iSBC},
	0xF9: {"SBC", AbsoluteY, 4, true, (*Processor).iSBC},
	0xE1: {"SBC", IndirectX, 6, false, (*Processor).iSBC},
	0xF1: {"SBC", IndirectY, 5, true, (*Processor).iSBC},

	// STA. Stores always take the extra indexing cycle so PageCross is never set.
	0x85: {"STA", ZeroPage, 3, false, (*Processor).iSTA},
	0x95: {"STA", ZeroPageX, 4, false, (*Processor).iSTA},
	0x8D: {"STA", Absolute, 4, false, (*Processor).iSTA},
	0x9D: {"STA", AbsoluteX, 5, false, (*Processor).iSTA},
	0x99: {"STA", AbsoluteY, 5, false, (*Processor).iSTA},
	0x81: {"STA", IndirectX, 6, false, (*Processor).iSTA},
	0x91: {"STA", IndirectY, 6, false, (*Processor).iSTA},

	// STX
	0x86: {"STX", ZeroPage, 3, false, (*Processor).iSTX},
	0x96: {"STX", ZeroPageY, 4, false, (*Processor).iSTX},
	0x8E: {"STX", Absolute, 4, false, (*Processor).iSTX},

	// STY
	0x84: {"STY", ZeroPage, 3, false, (*Processor).iSTY},
	0x94: {"STY", ZeroPageX, 4, false, (*Processor).iSTY},
	0x8C: {"STY", Absolute, 4, false, (*Processor).iSTY},

	// Transfers
	0xAA: {"TAX", Implied, 2, false, (*Processor).iTAX},
	0xA8: {"TAY", Implied, 2, false, (*Processor).iTAY},
	0x8A: {"TXA", Implied, 2, false, (*Processor).iTXA},
	0x98: {"TYA", Implied, 2, false, (*Processor).iTYA},
	0xBA: {"TSX", Implied, 2, false, (*Processor).iTSX},
	0x9A: {"TXS", Implied, 2, false, (*Processor).iTXS},

	// Stack and interrupt instructions. These need a stack and vectors which
	// this core doesn't model.
	0x00: unsupported("BRK", Implied, 7),
	0x20: unsupported("JSR", Absolute, 6),
	0x40: unsupported("RTI", Implied, 6),
	0x60: unsupported("RTS", Implied, 6),
	0x08: unsupported("PHP", Implied, 3),
	0x28: unsupported("PLP", Implied, 4),
	0x48: unsupported("PHA", Implied, 3),
	0x68: unsupported("PLA", Implied, 4),
}
