// Package nes pulls together a cartridge image, flat memory and the CPU core
// into something that can be stepped. There's no PPU, APU or mapper logic,
// so it's only useful for running CPU-only programs and test ROMs.
package nes

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/jmchacon/rp2a03/cpu"
	"github.com/jmchacon/rp2a03/disassemble"
	"github.com/jmchacon/rp2a03/ines"
	"github.com/jmchacon/rp2a03/memory"
)

// ResetVector is where the start address is read from after loading.
const ResetVector = uint16(0xFFFC)

// Policy decides what happens when the CPU hits an opcode it can't run.
type Policy int

const (
	// HaltOnIllegal returns the CPU error from Step/Run.
	HaltOnIllegal Policy = iota
	// SkipIllegal logs a warning and moves PC past the instruction.
	SkipIllegal
)

func (p Policy) String() string {
	switch p {
	case HaltOnIllegal:
		return "halt"
	case SkipIllegal:
		return "skip"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Trace describes one instruction as seen by the console.
type Trace struct {
	PC          uint16        // Address of the opcode
	Disassembly string        // As produced by disassemble.Step
	Registers   cpu.Registers // State after the instruction
	Cycles      int
	Skipped     bool // True if Policy skipped it instead of running it
}

// Def defines the pieces needed to set up a console.
type Def struct {
	// StartPC overrides the reset vector if non-nil.
	StartPC *uint16
	Policy  Policy
	// Fill is the byte all memory holds before the cartridge is loaded.
	Fill uint8
	// Trace if non-nil is called after every instruction.
	Trace func(Trace)
}

// Stats counts what a Run did.
type Stats struct {
	Instructions int // Executed
	Skipped      int // Skipped under SkipIllegal
	Cycles       uint64
}

type Console struct {
	CPU *cpu.Processor
	Ram *memory.Flat
	ROM *ines.ROM
	def Def
}

// New returns a powered on console with rom loaded and PC set to the
// reset vector (or def.StartPC). A nil def uses the defaults.
func New(rom *ines.ROM, def *Def) (*Console, error) {
	if rom == nil {
		return nil, errors.New("no ROM given")
	}
	if def == nil {
		def = &Def{}
	}
	ram := memory.NewFlat(def.Fill)
	c, err := cpu.Init(ram)
	if err != nil {
		return nil, fmt.Errorf("can't initialize cpu: %w", err)
	}
	if err := ines.LoadNROM(rom, ram); err != nil {
		return nil, fmt.Errorf("can't load ROM: %w", err)
	}
	c.PC = memory.ReadAddr(ram, ResetVector)
	if def.StartPC != nil {
		c.PC = *def.StartPC
	}
	h := rom.Header
	glog.V(1).Infof("Loaded mapper %d: %d PRG bank(s), %d CHR bank(s), %s mirroring, %s. Start PC $%.4X",
		h.Mapper, h.PRGBanks, h.CHRBanks, h.Mirroring, h.TVSystem, c.PC)
	return &Console{
		CPU: c,
		Ram: ram,
		ROM: rom,
		def: *def,
	}, nil
}

// Step runs one instruction and returns the cycles it took. Under
// SkipIllegal an opcode the CPU rejects costs 0 cycles and PC moves past it.
func (c *Console) Step() (int, error) {
	cycles, _, err := c.step()
	return cycles, err
}

// step is Step but also reports whether the instruction was skipped.
func (c *Console) step() (int, bool, error) {
	pc := c.CPU.PC
	var dis string
	if c.def.Trace != nil || glog.V(2) {
		dis, _ = disassemble.Step(pc, c.Ram)
	}
	cycles, err := c.CPU.Step()
	if err != nil {
		if c.def.Policy != SkipIllegal || !cpu.Halted(err) {
			return 0, false, fmt.Errorf("halted at $%.4X: %w", pc, err)
		}
		// Unsupported opcodes skip their operands too, illegal ones are a single byte.
		n := 1
		if o := cpu.Lookup(c.Ram.Read(pc)); o.Legal() {
			n = o.Size()
		}
		c.CPU.PC += uint16(n)
		glog.Warningf("Skipping at $%.4X: %v", pc, err)
		c.trace(Trace{PC: pc, Disassembly: dis, Registers: c.CPU.Registers, Skipped: true})
		return 0, true, nil
	}
	c.trace(Trace{PC: pc, Disassembly: dis, Registers: c.CPU.Registers, Cycles: cycles})
	return cycles, false, nil
}

func (c *Console) trace(t Trace) {
	if glog.V(2) {
		glog.Infof("%s %s CYC:%d", t.Disassembly, t.Registers, c.CPU.Cycles)
	}
	if c.def.Trace != nil {
		c.def.Trace(t)
	}
}

// Run steps n instructions (skipped ones included) or until an error.
// n <= 0 runs until an error, which under SkipIllegal may be never.
// The returned Stats cover this call and are valid even with an error.
func (c *Console) Run(n int) (Stats, error) {
	var s Stats
	for i := 0; n <= 0 || i < n; i++ {
		cycles, skipped, err := c.step()
		if err != nil {
			return s, err
		}
		if skipped {
			s.Skipped++
			continue
		}
		s.Instructions++
		s.Cycles += uint64(cycles)
	}
	return s, nil
}
