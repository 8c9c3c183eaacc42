package orderbook

import (
	"encoding/binary"
	"strings"
)

// Symbol is a fixed-width, right-padded (with spaces) 8-byte stock
// symbol, the width the NASDAQ feed uses. Equality is byte-wise.
type Symbol [8]byte

// InvalidSymbol is the sentinel value lookups return on miss,
// matching the original's invalid() marker.
var InvalidSymbol = NewSymbol("<INVALD>")

// NewSymbol right-pads s with spaces (or truncates) to 8 bytes.
func NewSymbol(s string) Symbol {
	var sym Symbol
	for i := range sym {
		sym[i] = ' '
	}
	copy(sym[:], s)
	return sym
}

// String strips trailing spaces, matching the feed's stockName() view.
func (s Symbol) String() string {
	return strings.TrimRight(string(s[:]), " ")
}

// Hash reinterprets the 8 bytes as a 64-bit integer, mirroring the
// original's bit-reinterpretation hash.
func (s Symbol) Hash() uint64 {
	return binary.LittleEndian.Uint64(s[:])
}

func (s Symbol) Invalid() bool { return s == InvalidSymbol }

// CID is a dense 32-bit signed index into per-symbol arrays, assigned
// contiguously starting at 0 in first-sight order.
type CID int32

// InvalidCID is returned on miss or on CID-space exhaustion.
const InvalidCID CID = -1

// maxCID bounds contiguous assignment; CIndex.FindOrInsert returns
// InvalidCID and leaves the table unchanged once this many symbols have
// been admitted.
const maxCID = 1<<31 - 1

// CIndex is a bidirectional Symbol<->CID table. CIDs are assigned
// contiguously on first sight; there are no deletions.
type CIndex struct {
	bySymbol map[Symbol]CID
	byCID    []Symbol
}

func NewCIndex() *CIndex {
	return &CIndex{bySymbol: make(map[Symbol]CID)}
}

// FindOrInsert returns the existing CID for sym, or assigns and returns
// the next contiguous CID. Returns InvalidCID without mutating the table
// if the CID space would overflow.
func (c *CIndex) FindOrInsert(sym Symbol) CID {
	if cid, ok := c.bySymbol[sym]; ok {
		return cid
	}
	if len(c.byCID) >= maxCID {
		return InvalidCID
	}
	cid := CID(len(c.byCID))
	c.byCID = append(c.byCID, sym)
	c.bySymbol[sym] = cid
	return cid
}

// LookupSymbol returns the CID assigned to sym, if any.
func (c *CIndex) LookupSymbol(sym Symbol) (CID, bool) {
	cid, ok := c.bySymbol[sym]
	return cid, ok
}

// LookupCID returns the symbol assigned to cid, if any.
func (c *CIndex) LookupCID(cid CID) (Symbol, bool) {
	if cid < 0 || int(cid) >= len(c.byCID) {
		return InvalidSymbol, false
	}
	return c.byCID[cid], true
}

// Reserve hints at the expected number of distinct symbols.
func (c *CIndex) Reserve(n int) {
	if c.bySymbol == nil {
		c.bySymbol = make(map[Symbol]CID, n)
	}
	if cap(c.byCID) < n {
		grown := make([]Symbol, len(c.byCID), n)
		copy(grown, c.byCID)
		c.byCID = grown
	}
}

// Len returns the number of symbols admitted so far.
func (c *CIndex) Len() int { return len(c.byCID) }
