// disassembler takes a filename and load's it and then
// disassembles it to stdout starting at the first instruction.
// If the filename ends in .nes (case insensitive) and -raw isn't set it's
// parsed as an iNES image and the PRG-ROM is disassembled from $8000,
// with the reset vector printed first. Otherwise the file is treated as a
// raw binary loaded at -offset.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/jmchacon/rp2a03/disassemble"
	"github.com/jmchacon/rp2a03/ines"
	"github.com/jmchacon/rp2a03/memory"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start disassembling. If negative starts at the beginning of the loaded data.")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored for .nes files.")
	raw     = flag.Bool("raw", false, "If true treat the file as a raw binary even if it ends in .nes")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 1 {
		glog.Exitf("Invalid command: %s [-start_pc <PC> -offset <offset> -raw] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		glog.Exitf("Can't open %s - %v", fn, err)
	}

	f := memory.NewFlat(0x00)
	pc := uint16(*offset)
	if !*raw && strings.ToLower(filepath.Ext(fn)) == ".nes" {
		rom, err := ines.Parse(b)
		if err != nil {
			glog.Exitf("Can't parse %s - %v", fn, err)
		}
		h := rom.Header
		fmt.Printf("iNES mapper %d PRG: %dx16k CHR: %dx8k %s mirroring %s\n", h.Mapper, h.PRGBanks, h.CHRBanks, h.Mirroring, h.TVSystem)
		if err := ines.LoadNROM(rom, f); err != nil {
			glog.Exitf("Can't load %s - %v", fn, err)
		}
		fmt.Printf("Reset vector: %.4X\n", memory.ReadAddr(f, 0xFFFC))
		pc = ines.PRGAddr
		b = rom.PRG
	} else {
		max := memory.Size - *offset
		if l := len(b); l > max {
			glog.Warningf("Length %d at offset %d too long, truncating to 64k", l, *offset)
			b = b[:max]
		}
		memory.Load(f, pc, b)
	}
	if *startPC >= 0 {
		pc = uint16(*startPC)
	}
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), pc)

	cnt := 0
	// Can't base it on PC since it may rollover so just disassemble until we run out of buffer.
	for cnt < len(b) {
		dis, off := disassemble.Step(pc, f)
		pc += uint16(off)
		cnt += off
		fmt.Printf("%s\n", dis)
	}
}
