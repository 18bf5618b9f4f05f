// mkines builds a mapper 0 .nes image from either a raw binary or a
// hand assembled listing of the form:
//
// XXXX OP A1 A2	comment
//
// Where XXXX is the address field and OP is the opcode
// A1,A2 are then optional params as needed. Anything after a tab or a
// (*) marker is ignored, as are lines not starting with an address.
// Addresses must be in $8000-$FFFF and a 16k image mirrors $8000 at $C000.
// A raw binary is placed at the start of PRG-ROM.
//
// The reset vector is set to -entry unless the input already wrote one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/jmchacon/rp2a03/ines"
)

var (
	listing  = flag.Bool("listing", false, "If true the input is a hand assembled listing instead of a raw binary.")
	mapper   = flag.Int("mapper", 0, "Mapper number to record in the header.")
	vertical = flag.Bool("vertical", false, "If true set vertical mirroring in the header.")
	entry    = flag.Int("entry", 0x8000, "Reset vector value if the input doesn't provide one.")
	prgBanks = flag.Int("prg_banks", 1, "Number of 16k PRG-ROM banks (1 or 2).")
	chrFile  = flag.String("chr", "", "Optional file holding CHR-ROM data. Padded to a multiple of 8k.")
)

// assemble parses a listing from r and writes the bytes into prg, which
// is mapped at $8000 and mirrored to fill $8000-$FFFF. It returns the
// set of PRG offsets written.
func assemble(r io.Reader, prg []byte) (map[int]bool, error) {
	written := make(map[int]bool)
	scanner := bufio.NewScanner(r)
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		if i := strings.Index(t, "\t"); i >= 0 {
			t = t[:i]
		}
		if i := strings.Index(t, "(*)"); i >= 0 {
			t = t[:i]
		}
		toks := strings.Fields(t)
		if len(toks) == 0 || len(toks[0]) != 4 {
			continue
		}
		addr, err := strconv.ParseUint(toks[0], 16, 16)
		if err != nil {
			// Not an address line.
			continue
		}
		// Should be 1-3 tokens after the address.
		toks = toks[1:]
		if len(toks) < 1 || len(toks) > 3 {
			return nil, fmt.Errorf("invalid line %d - %q", l, scanner.Text())
		}
		if addr < uint64(ines.PRGAddr) {
			return nil, fmt.Errorf("line %d: address %.4X is below $8000", l, addr)
		}
		for i, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("can't process input line %d %q - %v", l, scanner.Text(), err)
			}
			off := int(uint16(addr)+uint16(i)) % len(prg)
			prg[off] = byte(b)
			written[off] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return written, nil
}

// build assembles the final image. in is the raw binary or listing.
func build(in io.Reader, isListing bool, h ines.Header, entry uint16, chrData []byte) (*ines.ROM, error) {
	if h.PRGBanks != 1 && h.PRGBanks != 2 {
		return nil, fmt.Errorf("PRG banks must be 1 or 2, got %d", h.PRGBanks)
	}
	prg := make([]byte, int(h.PRGBanks)*ines.PRGBankSize)
	vecLo := (0xFFFC - int(ines.PRGAddr)) % len(prg)
	var written map[int]bool
	if isListing {
		var err error
		if written, err = assemble(in, prg); err != nil {
			return nil, err
		}
	} else {
		b, err := ioutil.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if len(b) > len(prg) {
			return nil, fmt.Errorf("binary is %d bytes, only %d fit", len(b), len(prg))
		}
		copy(prg, b)
		// Only a full size binary can carry its own vectors.
		written = map[int]bool{}
		if len(b) == len(prg) {
			written[vecLo] = true
		}
	}
	if !written[vecLo] {
		prg[vecLo] = uint8(entry)
		prg[vecLo+1] = uint8(entry >> 8)
	}

	rom := &ines.ROM{PRG: prg}
	if len(chrData) > 0 {
		n := (len(chrData) + ines.CHRBankSize - 1) / ines.CHRBankSize
		if n > 255 {
			return nil, fmt.Errorf("CHR data is %d bytes, too large", len(chrData))
		}
		h.CHRBanks = uint8(n)
		rom.CHR = make([]byte, n*ines.CHRBankSize)
		copy(rom.CHR, chrData)
	}
	rom.Header = h
	return rom, nil
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 2 {
		glog.Exitf("Invalid command: %s [-listing -mapper N -vertical -entry <PC> -prg_banks N -chr <file>] <input> <output.nes>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	h := ines.Header{
		PRGBanks: uint8(*prgBanks),
		Mapper:   uint8(*mapper),
	}
	if *vertical {
		h.Mirroring = ines.Vertical
	}
	var chrData []byte
	if *chrFile != "" {
		var err error
		if chrData, err = ioutil.ReadFile(*chrFile); err != nil {
			glog.Exitf("Can't read CHR data %q - %v", *chrFile, err)
		}
	}

	f, err := os.Open(fn)
	if err != nil {
		glog.Exitf("Can't open %q for input - %v", fn, err)
	}
	rom, err := build(f, *listing, h, uint16(*entry), chrData)
	f.Close()
	if err != nil {
		glog.Exitf("Can't build image from %q - %v", fn, err)
	}

	output := rom.Bytes()
	of, err := os.Create(out)
	if err != nil {
		glog.Exitf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		glog.Exitf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		glog.Exitf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		glog.Exitf("Error closing %q - %v", out, err)
	}
	glog.V(1).Infof("Wrote %d bytes to %s", len(output), out)
}
