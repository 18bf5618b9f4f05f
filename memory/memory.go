// Package memory defines the basic interfaces for working
// with a 6502 family memory map along with a flat 64k
// implementation suitable for the RP2A03 core.
package memory

type Ram interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// Size is the number of addressable bytes. It matches the range of a uint16
// exactly so no address computed by the CPU can fall outside of it.
const Size = 1 << 16

// Flat implements Ram as a single 64k array with no mirroring or mapped I/O.
type Flat struct {
	addr [Size]uint8
	fill uint8
}

// NewFlat returns a powered on Flat where every byte is set to fill.
func NewFlat(fill uint8) *Flat {
	f := &Flat{fill: fill}
	f.PowerOn()
	return f
}

// Read implements the interface for Ram.
func (f *Flat) Read(addr uint16) uint8 {
	return f.addr[addr]
}

// Write implements the interface for Ram.
func (f *Flat) Write(addr uint16, val uint8) {
	f.addr[addr] = val
}

// PowerOn implements the interface for Ram and resets all of memory
// to the fill value.
func (f *Flat) PowerOn() {
	for i := range f.addr {
		f.addr[i] = f.fill
	}
}

// Load copies b into memory starting at addr and returns the number of
// bytes copied. Anything that would run past 0xFFFF is dropped.
func Load(r Ram, addr uint16, b []byte) int {
	max := Size - int(addr)
	if len(b) > max {
		b = b[:max]
	}
	for i, v := range b {
		r.Write(addr+uint16(i), v)
	}
	return len(b)
}

// ReadAddr returns the little endian 16 bit value stored at addr and addr+1.
// The second read wraps at 0xFFFF back to 0x0000.
func ReadAddr(r Ram, addr uint16) uint16 {
	return (uint16(r.Read(addr+1)) << 8) + uint16(r.Read(addr))
}
