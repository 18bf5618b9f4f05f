// nesstep loads a mapper 0 .nes file and runs the CPU for a number of
// instructions printing each one as it goes, then the final state.
// Stack and interrupt instructions aren't emulated so by default the
// run stops at the first one of those (or any illegal opcode).
//
// With -script a Lua file drives the console instead of -steps. See the
// script package for the functions it can call.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
	"github.com/jmchacon/rp2a03/ines"
	"github.com/jmchacon/rp2a03/nes"
	"github.com/jmchacon/rp2a03/script"
)

var (
	steps       = flag.Int("steps", 1000, "Number of instructions to run. 0 runs until the CPU halts.")
	startPC     = flag.Int("start_pc", -1, "PC value to start executing from. If negative the reset vector at $FFFC is used.")
	skipIllegal = flag.Bool("skip_illegal", false, "If true illegal and unsupported opcodes are skipped instead of halting.")
	fill        = flag.Int("fill", 0x00, "Value all memory holds before the cartridge is loaded.")
	quiet       = flag.Bool("quiet", false, "If true don't print each instruction.")
	luaScript   = flag.String("script", "", "Lua file to run against the console instead of running -steps instructions.")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 1 {
		glog.Exitf("Invalid command: %s [-steps N -start_pc <PC> -skip_illegal -fill <val>] <filename.nes>", os.Args[0])
	}
	fn := flag.Args()[0]
	f, err := os.Open(fn)
	if err != nil {
		glog.Exitf("Can't open %s - %v", fn, err)
	}
	rom, err := ines.Read(f)
	f.Close()
	if err != nil {
		glog.Exitf("Can't parse %s - %v", fn, err)
	}

	def := &nes.Def{
		Fill: uint8(*fill),
	}
	if *startPC >= 0 {
		pc := uint16(*startPC)
		def.StartPC = &pc
	}
	if *skipIllegal {
		def.Policy = nes.SkipIllegal
	}
	if !*quiet {
		def.Trace = func(t nes.Trace) {
			mark := ""
			if t.Skipped {
				mark = " (skipped)"
			}
			fmt.Printf("%s %s%s\n", t.Disassembly, t.Registers, mark)
		}
	}

	c, err := nes.New(rom, def)
	if err != nil {
		glog.Exitf("Can't setup console for %s - %v", fn, err)
	}
	if *luaScript != "" {
		src, err := ioutil.ReadFile(*luaScript)
		if err != nil {
			glog.Exitf("Can't read script %s - %v", *luaScript, err)
		}
		r := script.New(c, os.Stdout)
		err = r.Run(*luaScript, string(src))
		r.Close()
		fmt.Printf("Final: %s Cycles: %d\n", c.CPU.Registers, c.CPU.Cycles)
		if err != nil {
			glog.Exitf("%v", err)
		}
		return
	}

	s, err := c.Run(*steps)
	fmt.Printf("Final: %s\n", c.CPU.Registers)
	fmt.Printf("Instructions: %d Skipped: %d Cycles: %d\n", s.Instructions, s.Skipped, s.Cycles)
	if err != nil {
		glog.Exitf("%v", err)
	}
}
