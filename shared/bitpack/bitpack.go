// Package bitpack reads and writes fixed-width integer fields inside a byte
// slice. Bits are numbered LSB-first within each byte and bytes are
// little-endian, so field offsets are absolute bit positions.
//
// A field's precision drops that many low-order bits on Set and restores
// them as zeros on Get, trading resolution for width.
package bitpack

// Pack wraps a caller-owned buffer. The zero value is unusable.
type Pack []byte

// Set stores value>>precision into length bits at offset. Bits beyond length
// are discarded.
func (p Pack) Set(offset, length, precision int, value int32) {
	v := uint32(value >> precision)
	for i := 0; i < length; i++ {
		bit := offset + i
		mask := byte(1) << (bit & 7)
		if v&(1<<i) != 0 {
			p[bit>>3] |= mask
		} else {
			p[bit>>3] &^= mask
		}
	}
}

// Get reads a signed field, sign-extending from its top bit.
func (p Pack) Get(offset, length, precision int) int32 {
	raw := p.raw(offset, length)
	if length < 32 && raw&(1<<(length-1)) != 0 {
		raw |= ^uint32(0) << length
	}
	return int32(raw) << precision
}

// GetUnsigned reads a field without sign extension.
func (p Pack) GetUnsigned(offset, length, precision int) uint32 {
	return p.raw(offset, length) << precision
}

func (p Pack) raw(offset, length int) uint32 {
	var v uint32
	for i := 0; i < length; i++ {
		bit := offset + i
		if p[bit>>3]&(1<<(bit&7)) != 0 {
			v |= 1 << i
		}
	}
	return v
}

// Bytes returns the number of bytes needed to hold bits bits.
func Bytes(bits int) int {
	return (bits + 7) / 8
}
