// Package digest computes a running SHA-256 digest over a deterministic
// serialization of book updates, used by the golden-replay test to
// verify bit-for-bit reproducibility of a full-day replay.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// Running accumulates bytes into a SHA-256 state incrementally, so a
// caller can feed one serialized update at a time without buffering the
// whole replay.
type Running struct {
	h       hash.Hash
	count   uint64
	updates uint64
}

func New() *Running {
	return &Running{h: sha256.New()}
}

// Write feeds raw bytes into the digest.
func (r *Running) Write(p []byte) {
	r.h.Write(p)
	r.count++
}

// MarkUpdate records one logical update boundary — a single top-of-book
// change that may have been serialized across several Write calls (one
// per field). Count and Updates are tracked separately so a caller
// writing multiple fields per update doesn't inflate the update count.
func (r *Running) MarkUpdate() { r.updates++ }

// Updates returns the number of MarkUpdate calls so far.
func (r *Running) Updates() uint64 { return r.updates }

// WriteUint64 feeds a big-endian uint64, a convenience for serializing
// price/quantity/reference-number fields.
func (r *Running) WriteUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	r.Write(buf[:])
}

// WriteInt64 feeds a big-endian int64.
func (r *Running) WriteInt64(v int64) { r.WriteUint64(uint64(v)) }

// Count returns the number of Write calls so far.
func (r *Running) Count() uint64 { return r.count }

// Sum returns the current digest as a lowercase hex string.
func (r *Running) Sum() string {
	sum := r.h.Sum(nil)
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hexdigits[b>>4]
		out[i*2+1] = hexdigits[b&0xf]
	}
	return string(out)
}
