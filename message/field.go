// Package message provides endian-aware field accessors over fixed-
// layout byte records. ITCH 5.0 records are one-byte aligned with no
// padding, and every multi-byte field is big-endian, so the accessors
// here are thin wrappers over encoding/binary rather than a generic
// bit-cast-per-field abstraction — every binary-framing file in the
// pack that decodes a wire format reaches for encoding/binary directly,
// and this package follows that idiom.
package message

import "encoding/binary"

// Uint16 reads a big-endian uint16 at offset off.
func Uint16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

// Uint32 reads a big-endian uint32 at offset off.
func Uint32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// Uint64 reads a big-endian uint64 at offset off.
func Uint64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

// Uint48 reads a 48-bit big-endian unsigned integer at offset off, used
// by the ITCH common header's nanoseconds-since-midnight field.
func Uint48(b []byte, off int) uint64 {
	_ = b[off+5]
	return uint64(b[off])<<40 | uint64(b[off+1])<<32 | uint64(b[off+2])<<24 |
		uint64(b[off+3])<<16 | uint64(b[off+4])<<8 | uint64(b[off+5])
}

// PutUint16 writes v as big-endian at offset off.
func PutUint16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:off+2], v) }

// PutUint32 writes v as big-endian at offset off.
func PutUint32(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:off+4], v) }

// PutUint64 writes v as big-endian at offset off.
func PutUint64(b []byte, off int, v uint64) { binary.BigEndian.PutUint64(b[off:off+8], v) }

// PutUint48 writes the low 48 bits of v as big-endian at offset off.
func PutUint48(b []byte, off int, v uint64) {
	_ = b[off+5]
	b[off] = byte(v >> 40)
	b[off+1] = byte(v >> 32)
	b[off+2] = byte(v >> 24)
	b[off+3] = byte(v >> 16)
	b[off+4] = byte(v >> 8)
	b[off+5] = byte(v)
}

// Stock reads an 8-byte fixed stock-name field and strips trailing
// spaces, matching the feed's stockName() view.
func Stock(b []byte, off int) string {
	end := off + 8
	for end > off && b[end-1] == ' ' {
		end--
	}
	return string(b[off:end])
}

// AlphaField reads an n-byte fixed character field, right-trimmed of
// trailing spaces.
func AlphaField(b []byte, off, n int) string {
	end := off + n
	for end > off && b[end-1] == ' ' {
		end--
	}
	return string(b[off:end])
}
