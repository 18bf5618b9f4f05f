package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/jmchacon/rp2a03/ines"
)

const testListing = `Test program
8000 A9 42	LDA #$42
8002 8D 00 02	STA $0200
8005 4C 05 80 (*)	JMP *
   not an address line
FFFC 00 80	reset vector
`

func TestAssemble(t *testing.T) {
	prg := make([]byte, ines.PRGBankSize)
	written, err := assemble(strings.NewReader(testListing), prg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	want := []byte{0xA9, 0x42, 0x8D, 0x00, 0x02, 0x4C, 0x05, 0x80}
	if !bytes.Equal(prg[:len(want)], want) {
		t.Errorf("got % X want % X", prg[:len(want)], want)
	}
	// $FFFC in a 16k image lives at offset 0x3FFC.
	if got, want := prg[0x3FFC:0x3FFE], []byte{0x00, 0x80}; !bytes.Equal(got, want) {
		t.Errorf("vector got % X want % X", got, want)
	}
	if got, want := len(written), 10; got != want {
		t.Errorf("wrote %d bytes want %d", got, want)
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "too many bytes",
			input: "8000 01 02 03 04\n",
		},
		{
			name:  "no bytes",
			input: "8000\n",
		},
		{
			name:  "bad byte",
			input: "8000 ZZ\n",
		},
		{
			name:  "below PRG",
			input: "0200 EA\n",
		},
	}
	for _, test := range tests {
		prg := make([]byte, ines.PRGBankSize)
		if _, err := assemble(strings.NewReader(test.input), prg); err == nil {
			t.Errorf("%s: no error", test.name)
		}
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		listing bool
		banks   uint8
		chr     []byte
		vector  [2]byte
		chrLen  int
	}{
		{
			name:    "listing with vector",
			in:      testListing,
			listing: true,
			banks:   1,
			vector:  [2]byte{0x00, 0x80},
		},
		{
			name:    "listing without vector uses entry",
			in:      "8000 EA\n",
			listing: true,
			banks:   2,
			vector:  [2]byte{0x34, 0x92},
		},
		{
			name:   "raw binary",
			in:     "\xEA\xEA",
			banks:  1,
			chr:    []byte{0x01},
			vector: [2]byte{0x34, 0x92},
			chrLen: ines.CHRBankSize,
		},
	}
	for _, test := range tests {
		h := ines.Header{PRGBanks: test.banks, Mirroring: ines.Vertical}
		rom, err := build(strings.NewReader(test.in), test.listing, h, 0x9234, test.chr)
		if err != nil {
			t.Fatalf("%s: build: %v", test.name, err)
		}
		// Round trip through the parser as a real file would.
		got, err := ines.Parse(rom.Bytes())
		if err != nil {
			t.Fatalf("%s: Parse: %v", test.name, err)
		}
		if diff := deep.Equal(got.Header, rom.Header); diff != nil {
			t.Errorf("%s: header: %v", test.name, diff)
		}
		n := len(got.PRG)
		if vec := [2]byte{got.PRG[n-4], got.PRG[n-3]}; vec != test.vector {
			t.Errorf("%s: vector got % X want % X", test.name, vec, test.vector)
		}
		if got, want := len(got.CHR), test.chrLen; got != want {
			t.Errorf("%s: CHR length got %d want %d", test.name, got, want)
		}
	}

	if _, err := build(strings.NewReader(""), false, ines.Header{PRGBanks: 3}, 0x8000, nil); err == nil {
		t.Error("3 PRG banks: no error")
	}
}
