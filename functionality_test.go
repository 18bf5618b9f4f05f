// Package functionality does basic end-end verification
// of building an image, parsing it, loading it and running it.
package functionality

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/rp2a03/cpu"
	"github.com/jmchacon/rp2a03/ines"
	"github.com/jmchacon/rp2a03/nes"
)

// image returns a serialized 32k NROM image with PRG filled with fill,
// prog at $8000 and the reset vector pointing at it.
func image(fill uint8, prog map[uint16][]uint8) []byte {
	prg := bytes.Repeat([]byte{fill}, 2*ines.PRGBankSize)
	for addr, b := range prog {
		copy(prg[addr-ines.PRGAddr:], b)
	}
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80
	rom := &ines.ROM{
		Header: ines.Header{PRGBanks: 2, Mirroring: ines.Vertical},
		PRG:    prg,
	}
	return rom.Bytes()
}

func load(t *testing.T, b []byte, def *nes.Def) *nes.Console {
	t.Helper()
	rom, err := ines.Read(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Can't parse image: %v", err)
	}
	c, err := nes.New(rom, def)
	if err != nil {
		t.Fatalf("Can't setup console: %v", err)
	}
	return c
}

func TestNOP(t *testing.T) {
	tests := []struct {
		name string
		halt uint8
		want interface{}
	}{
		{
			name: "Classic NOP - 0x02 halt",
			halt: 0x02,
			want: cpu.IllegalOpcode{},
		},
		{
			name: "Classic NOP - 0x12 halt",
			halt: 0x12,
			want: cpu.IllegalOpcode{},
		},
		{
			name: "Classic NOP - 0xFF halt",
			halt: 0xFF,
			want: cpu.IllegalOpcode{},
		},
		{
			name: "Classic NOP - BRK halt",
			halt: 0x00,
			want: cpu.UnsupportedOpcode{},
		},
		{
			name: "Classic NOP - RTS halt",
			halt: 0x60,
			want: cpu.UnsupportedOpcode{},
		},
	}
	for _, test := range tests {
		c := load(t, image(0xEA, map[uint16][]uint8{0x8100: {test.halt}}), nil)
		s, err := c.Run(0)
		if err == nil {
			t.Fatalf("%s: ran forever?", test.name)
		}
		switch test.want.(type) {
		case cpu.IllegalOpcode:
			var e cpu.IllegalOpcode
			if !errors.As(err, &e) {
				t.Errorf("%s: got %v want IllegalOpcode", test.name, err)
			}
		case cpu.UnsupportedOpcode:
			var e cpu.UnsupportedOpcode
			if !errors.As(err, &e) {
				t.Errorf("%s: got %v want UnsupportedOpcode", test.name, err)
			}
		}
		want := nes.Stats{
			Instructions: 0x100,
			Cycles:       0x200,
		}
		if diff := deep.Equal(s, want); diff != nil {
			t.Errorf("%s: %v", test.name, diff)
		}
		if got, want := c.CPU.PC, uint16(0x8100); got != want {
			t.Errorf("%s: halted at %.4X want %.4X", test.name, got, want)
		}
	}
}

func TestSumLoop(t *testing.T) {
	prog := map[uint16][]uint8{
		0x8000: {
			0xA0, 0x00, // LDY #00
			0xA9, 0x00, // LDA #00
			0x18,             // CLC
			0x79, 0xF8, 0x80, // ADC $80F8,Y
			0xC8,       // INY
			0xC0, 0x0A, // CPY #0A
			0xD0, 0xF7, // BNE $8004
			0x8D, 0x00, 0x02, // STA $0200
			0x02, // halt
		},
		// Crosses into $8100 for the last 2 entries.
		0x80F8: {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	var lines []string
	c := load(t, image(0x00, prog), &nes.Def{
		Trace: func(tr nes.Trace) {
			lines = append(lines, tr.Disassembly)
		},
	})
	s, err := c.Run(0)
	var e cpu.IllegalOpcode
	if !errors.As(err, &e) {
		t.Fatalf("Got %v want IllegalOpcode\nstate: %s", err, spew.Sdump(c.CPU.Registers))
	}
	if got, want := c.Ram.Read(0x0200), uint8(55); got != want {
		t.Errorf("Sum got %d want %d", got, want)
	}
	// Setup 4, 10 loops of 13 with 2 page crosses and the final branch
	// not taken, then STA.
	want := nes.Stats{
		Instructions: 2 + 10*5 + 1,
		Cycles:       4 + 10*13 + 2 - 1 + 4,
	}
	if diff := deep.Equal(s, want); diff != nil {
		t.Errorf("Stats: %v", diff)
	}
	if got, want := len(lines), want.Instructions; got != want {
		t.Errorf("Got %d trace lines want %d", got, want)
	}
	if got, want := lines[3], "8005 79 F8 80   ADC 80F8,Y    "; got != want {
		t.Errorf("Trace line got %q want %q", got, want)
	}
}

func TestSkipToEnd(t *testing.T) {
	// A JSR and a junk byte sit in the middle of straight line code.
	prog := map[uint16][]uint8{
		0x8000: {
			0xA2, 0x10, // LDX #10
			0x20, 0x00, 0x90, // JSR $9000
			0x02,       // junk
			0xE8,       // INX
			0x86, 0x40, // STX $40
			0x4C, 0x09, 0x80, // JMP $8009
		},
	}
	c := load(t, image(0x00, prog), &nes.Def{Policy: nes.SkipIllegal})
	s, err := c.Run(6)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := nes.Stats{
		Instructions: 4,
		Skipped:      2,
		Cycles:       2 + 2 + 3 + 3,
	}
	if diff := deep.Equal(s, want); diff != nil {
		t.Errorf("Stats: %v", diff)
	}
	if got, want := c.Ram.Read(0x0040), uint8(0x11); got != want {
		t.Errorf("$40 got %.2X want %.2X", got, want)
	}
	if got, want := c.CPU.PC, uint16(0x8009); got != want {
		t.Errorf("PC got %.4X want %.4X", got, want)
	}
}
