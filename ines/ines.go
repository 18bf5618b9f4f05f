// Package ines parses and builds iNES cartridge images and loads
// mapper 0 (NROM) images into a flat memory for the cpu package.
//
// The container is a 16 byte header followed by an optional 512 byte
// trainer, the PRG-ROM banks, the optional CHR-ROM banks and an optional
// 8KB PlayChoice-10 instruction ROM. Parse never panics on bad input, all
// problems are reported as one of the error types below.
package ines

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jmchacon/rp2a03/memory"
)

const (
	HeaderSize  = 16
	TrainerSize = 512
	PRGBankSize = 16 * 1024
	CHRBankSize = 8 * 1024
	INSTROMSize = 8 * 1024

	// TrainerAddr is where a trainer block lives in CPU address space.
	TrainerAddr = uint16(0x7000)
	// PRGAddr is the start of cartridge PRG space.
	PRGAddr = uint16(0x8000)
)

// Magic is the 4 byte tag every image starts with.
var Magic = [4]byte{'N', 'E', 'S', 0x1A}

// Flag bits in header byte 6.
const (
	flag6Vertical   = uint8(0x01)
	flag6Battery    = uint8(0x02)
	flag6Trainer    = uint8(0x04)
	flag6FourScreen = uint8(0x08)
)

// Flag bits in header byte 7.
const (
	flag7VS         = uint8(0x01)
	flag7PlayChoice = uint8(0x02)
	flag7NES2Mask   = uint8(0x0C)
	flag7NES2       = uint8(0x08)
)

// Mirroring is the nametable arrangement hardwired on the cartridge.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
)

func (m Mirroring) String() string {
	if m == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// TVSystem is the video standard the image was made for.
type TVSystem uint8

const (
	NTSC TVSystem = iota
	PAL
)

func (t TVSystem) String() string {
	if t == PAL {
		return "PAL"
	}
	return "NTSC"
}

// Header is the decoded form of the 16 byte iNES header.
type Header struct {
	PRGBanks     uint8 // 16KB units
	CHRBanks     uint8 // 8KB units, 0 means the board uses CHR-RAM
	Mirroring    Mirroring
	Battery      bool // Battery backed PRG-RAM at $6000-$7FFF
	Trainer      bool // 512 byte trainer precedes PRG
	FourScreen   bool // Ignore mirroring control and provide 4 nametables
	VSUnisystem  bool
	PlayChoice10 bool
	NES2         bool // Bits 2-3 of byte 7 are 0b10
	Mapper       uint8
	PRGRAMSize   uint8 // 8KB units
	TVSystem     TVSystem
	Flags10      uint8 // Unofficial and not validated
}

// InvalidMagic is returned when an image doesn't start with Magic.
type InvalidMagic struct {
	Got [4]byte
}

// Error implements the interface for error types.
func (e InvalidMagic) Error() string {
	return fmt.Sprintf("invalid iNES magic % X", e.Got[:])
}

// ReservedBytes is returned when one of header bytes 11-15 isn't zero.
type ReservedBytes struct {
	Offset int
	Value  uint8
}

// Error implements the interface for error types.
func (e ReservedBytes) Error() string {
	return fmt.Sprintf("reserved header byte %d is 0x%.2X, must be zero", e.Offset, e.Value)
}

// Truncated is returned when the image ends before a section the header declares.
type Truncated struct {
	Section string
	Want    int
	Got     int
}

// Error implements the interface for error types.
func (e Truncated) Error() string {
	return fmt.Sprintf("image truncated in %s: want %d bytes, have %d", e.Section, e.Want, e.Got)
}

// UnsupportedMapper is returned by loaders when the image needs a mapper they don't implement.
type UnsupportedMapper struct {
	Mapper uint8
}

// Error implements the interface for error types.
func (e UnsupportedMapper) Error() string {
	return fmt.Sprintf("mapper %d is not supported", e.Mapper)
}

// ParseHeader decodes the first 16 bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < len(Magic) || !bytes.Equal(b[:len(Magic)], Magic[:]) {
		var got [4]byte
		copy(got[:], b)
		return Header{}, InvalidMagic{got}
	}
	if len(b) < HeaderSize {
		return Header{}, Truncated{"header", HeaderSize, len(b)}
	}
	for i := 11; i < HeaderSize; i++ {
		if b[i] != 0x00 {
			return Header{}, ReservedBytes{i, b[i]}
		}
	}
	f6, f7 := b[6], b[7]
	h := Header{
		PRGBanks:     b[4],
		CHRBanks:     b[5],
		Battery:      f6&flag6Battery != 0,
		Trainer:      f6&flag6Trainer != 0,
		FourScreen:   f6&flag6FourScreen != 0,
		VSUnisystem:  f7&flag7VS != 0,
		PlayChoice10: f7&flag7PlayChoice != 0,
		NES2:         f7&flag7NES2Mask == flag7NES2,
		Mapper:       (f7 & 0xF0) | (f6 >> 4),
		PRGRAMSize:   b[8],
		Flags10:      b[10],
	}
	if f6&flag6Vertical != 0 {
		h.Mirroring = Vertical
	}
	if b[9]&0x01 != 0 {
		h.TVSystem = PAL
	}
	return h, nil
}

// Encode returns the 16 byte header for h. Reserved bytes are always zero.
func (h Header) Encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	copy(b[:], Magic[:])
	b[4] = h.PRGBanks
	b[5] = h.CHRBanks

	f6 := h.Mapper << 4
	if h.Mirroring == Vertical {
		f6 |= flag6Vertical
	}
	if h.Battery {
		f6 |= flag6Battery
	}
	if h.Trainer {
		f6 |= flag6Trainer
	}
	if h.FourScreen {
		f6 |= flag6FourScreen
	}
	b[6] = f6

	f7 := h.Mapper & 0xF0
	if h.VSUnisystem {
		f7 |= flag7VS
	}
	if h.PlayChoice10 {
		f7 |= flag7PlayChoice
	}
	if h.NES2 {
		f7 |= flag7NES2
	}
	b[7] = f7

	b[8] = h.PRGRAMSize
	if h.TVSystem == PAL {
		b[9] = 0x01
	}
	b[10] = h.Flags10
	return b
}

// Size returns the total image length the header declares.
func (h Header) Size() int {
	n := HeaderSize + int(h.PRGBanks)*PRGBankSize + int(h.CHRBanks)*CHRBankSize
	if h.Trainer {
		n += TrainerSize
	}
	if h.PlayChoice10 {
		n += INSTROMSize
	}
	return n
}

// ROM is a parsed image. The byte slices alias the buffer passed to Parse.
type ROM struct {
	Header  Header
	Trainer []byte // nil unless Header.Trainer
	PRG     []byte
	CHR     []byte // nil when Header.CHRBanks is 0
	INST    []byte // PlayChoice-10 INST-ROM, nil unless Header.PlayChoice10
}

// Parse decodes a complete image. Any bytes past the declared sections
// (such as PlayChoice PROM data) are ignored.
func Parse(b []byte) (*ROM, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	rom := &ROM{Header: h}
	rest := b[HeaderSize:]

	take := func(section string, n int) ([]byte, error) {
		if len(rest) < n {
			return nil, Truncated{section, n, len(rest)}
		}
		out := rest[:n:n]
		rest = rest[n:]
		return out, nil
	}

	if h.Trainer {
		if rom.Trainer, err = take("trainer", TrainerSize); err != nil {
			return nil, err
		}
	}
	if rom.PRG, err = take("PRG-ROM", int(h.PRGBanks)*PRGBankSize); err != nil {
		return nil, err
	}
	if h.CHRBanks != 0 {
		if rom.CHR, err = take("CHR-ROM", int(h.CHRBanks)*CHRBankSize); err != nil {
			return nil, err
		}
	}
	if h.PlayChoice10 {
		if rom.INST, err = take("INST-ROM", INSTROMSize); err != nil {
			return nil, err
		}
	}
	return rom, nil
}

// Read reads an entire image from r and parses it.
func Read(r io.Reader) (*ROM, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("can't read iNES image: %w", err)
	}
	return Parse(b)
}

// Bytes serializes the ROM back into an image. The header comes from
// rom.Header so section lengths should agree with it.
func (rom *ROM) Bytes() []byte {
	h := rom.Header.Encode()
	out := make([]byte, 0, HeaderSize+len(rom.Trainer)+len(rom.PRG)+len(rom.CHR)+len(rom.INST))
	out = append(out, h[:]...)
	out = append(out, rom.Trainer...)
	out = append(out, rom.PRG...)
	out = append(out, rom.CHR...)
	out = append(out, rom.INST...)
	return out
}

// LoadNROM copies a mapper 0 image into ram. A 16KB PRG is placed at
// $8000 and mirrored at $C000, a 32KB PRG fills $8000-$FFFF. A trainer
// if present goes to $7000.
func LoadNROM(rom *ROM, ram memory.Ram) error {
	if rom.Header.Mapper != 0 {
		return UnsupportedMapper{rom.Header.Mapper}
	}
	switch len(rom.PRG) {
	case PRGBankSize:
		memory.Load(ram, PRGAddr, rom.PRG)
		memory.Load(ram, PRGAddr+PRGBankSize, rom.PRG)
	case 2 * PRGBankSize:
		memory.Load(ram, PRGAddr, rom.PRG)
	default:
		return fmt.Errorf("NROM needs 16KB or 32KB of PRG-ROM, have %d bytes", len(rom.PRG))
	}
	if rom.Trainer != nil {
		memory.Load(ram, TrainerAddr, rom.Trainer)
	}
	return nil
}
