package itch50

import (
	"itchbook/internal/digest"
	"itchbook/orderbook"
)

// GoldenListener feeds a deterministic serialization of top-of-book
// snapshots (up to depth levels per side) into a running digest, one
// update per book mutation, so a
// full-day replay can be reduced to a single comparable hash. Every
// BookListener callback narrows to the same shape: identify the
// mutated CID, re-snapshot its top levels on both sides, serialize.
// The mutation kind and order identity deliberately do not enter the
// digest — only the resulting top-of-book state does, so the digest
// is stable across any internally-equivalent replay path (e.g. a
// cancel-then-add that happens to land on the same book state as a
// replace would).
type GoldenListener struct {
	book  *orderbook.OrderBook
	d     *digest.Running
	depth int
}

// NewGoldenListener builds a listener that snapshots up to depth
// levels per side into d on every mutation.
func NewGoldenListener(book *orderbook.OrderBook, d *digest.Running, depth int) *GoldenListener {
	return &GoldenListener{book: book, d: d, depth: depth}
}

func (g *GoldenListener) snapshot(cid orderbook.CID) {
	for _, side := range [2]orderbook.Side{orderbook.Bid, orderbook.Ask} {
		for n := 0; n < g.depth; n++ {
			lvl := g.book.NthLevel(cid, side, n)
			if lvl == nil {
				break
			}
			g.d.WriteInt64(int64(cid))
			g.d.WriteInt64(int64(side))
			g.d.WriteInt64(int64(n))
			g.d.WriteInt64(int64(lvl.Price))
			g.d.WriteInt64(lvl.TotalShares)
			g.d.WriteInt64(int64(lvl.OrderCount()))
		}
	}
	g.d.MarkUpdate()
}

func (g *GoldenListener) OnNewOrder(cid orderbook.CID, o *orderbook.Order) { g.snapshot(cid) }

func (g *GoldenListener) OnDeleteOrder(cid orderbook.CID, o *orderbook.Order, oldQty int64) {
	g.snapshot(cid)
}

func (g *GoldenListener) OnReplaceOrder(cid orderbook.CID, old orderbook.OrderView, newOrder *orderbook.Order) {
	g.snapshot(cid)
}

func (g *GoldenListener) OnExecOrder(cid orderbook.CID, o *orderbook.Order, oldQty, fillQty int64, info orderbook.ExecInfo) {
	g.snapshot(cid)
}

func (g *GoldenListener) OnUpdateOrder(cid orderbook.CID, o *orderbook.Order, oldQty int64, oldPrice orderbook.Price) {
	g.snapshot(cid)
}

var _ orderbook.BookListener = (*GoldenListener)(nil)
