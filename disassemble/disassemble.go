// Package disassemble implements a disassembler for RP2A03 opcodes
package disassemble

import (
	"fmt"

	"github.com/jmchacon/rp2a03/cpu"
	"github.com/jmchacon/rp2a03/memory"
)

// Illegal is printed in place of a mnemonic for bytes which aren't documented opcodes.
const Illegal = "???"

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
// Decoding comes from the same table the CPU executes from so the two can't disagree.
// Bytes which aren't documented opcodes disassemble as Illegal with a length of 1.
// This always reads two bytes past the current PC so make sure those addresses are valid.
func Step(pc uint16, r memory.Ram) (string, int) {
	o := r.Read(pc)
	// Preread both operand bytes since most modes need at least one.
	pc1 := r.Read(pc + 1)
	pc2 := r.Read(pc + 2)
	// Setup a 16 bit value so it can be added the the PC for branch offsets.
	// Sign extend it as needed.
	pc116 := uint16(int16(int8(pc1)))

	op := cpu.Lookup(o)
	out := fmt.Sprintf("%.4X %.2X ", pc, o)
	if !op.Legal() {
		return out + fmt.Sprintf("        %s           ", Illegal), 1
	}

	m := op.Mnemonic
	switch op.Mode {
	case cpu.Immediate:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", pc1, m, pc1)
	case cpu.ZeroPage:
		out += fmt.Sprintf("%.2X      %s %.2X        ", pc1, m, pc1)
	case cpu.ZeroPageX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", pc1, m, pc1)
	case cpu.ZeroPageY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", pc1, m, pc1)
	case cpu.IndirectX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", pc1, m, pc1)
	case cpu.IndirectY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", pc1, m, pc1)
	case cpu.Absolute:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", pc1, pc2, m, pc2, pc1)
	case cpu.AbsoluteX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", pc1, pc2, m, pc2, pc1)
	case cpu.AbsoluteY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", pc1, pc2, m, pc2, pc1)
	case cpu.Indirect:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", pc1, pc2, m, pc2, pc1)
	case cpu.Implied:
		out += fmt.Sprintf("        %s           ", m)
	case cpu.Accumulator:
		out += fmt.Sprintf("        %s A         ", m)
	case cpu.Relative:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", pc1, m, pc1, pc+pc116+2)
	default:
		panic(fmt.Sprintf("Invalid mode: %s", op.Mode))
	}
	return out, op.Size()
}
