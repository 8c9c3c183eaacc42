package orderbook

import "fmt"

// Level holds every resting order at one (cid, side, price), FIFO
// ordered by arrival. A level is created lazily when the first order at
// its price arrives and destroyed the moment it becomes empty — it must
// never exist with an empty order list.
type Level struct {
	CID         CID
	Side        Side
	Price       Price
	TotalShares int64

	half       *Half
	head, tail *Order
	orderCount int
}

// OrderCount returns the number of orders resting at this level.
func (l *Level) OrderCount() int { return l.orderCount }

// pushTail appends o to the FIFO, giving it the lowest time priority at
// this level. Every insertion — including a replace that keeps the same
// price — goes through here, which is how replace loses time priority.
func (l *Level) pushTail(o *Order) {
	o.level = l
	o.prev = l.tail
	o.next = nil
	if l.tail != nil {
		l.tail.next = o
	} else {
		l.head = o
	}
	l.tail = o
	l.TotalShares += o.Quantity
	l.orderCount++
}

// unlink removes o from the FIFO. o.Quantity must already reflect the
// value to subtract from TotalShares (i.e. call this before zeroing
// quantity on a full removal, or after adjusting it on a partial one —
// callers control which by unlinking only on full removal).
func (l *Level) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	l.TotalShares -= o.Quantity
	l.orderCount--
	o.prev, o.next, o.level = nil, nil, nil
}

func (l *Level) String() string {
	return fmt.Sprintf("Level{%s cid=%d px=%s shares=%d orders=%d}",
		l.Side, l.CID, l.Price, l.TotalShares, l.orderCount)
}

// Half is one side (Bid or Ask) of one symbol's book. Levels are kept in
// priority order by a levelTree keyed so ascending tree order always
// matches this half's priority direction (see leveltree.go).
type Half struct {
	CID  CID
	Side Side
	tree *levelTree
}

func newHalf(cid CID, side Side) *Half {
	return &Half{CID: cid, Side: side, tree: newLevelTree()}
}

// key encodes price into the tree's priority-ascending key space: Ask
// ascends by price directly, Bid ascends by descending price.
func (h *Half) key(p Price) int64 {
	if h.Side == Bid {
		return -int64(p)
	}
	return int64(p)
}

// Top returns the best (highest-priority) level, or nil if the half is
// empty. O(1).
func (h *Half) Top() *Level { return h.tree.Top() }

// Nth returns the level at priority index n (0 == Top).
func (h *Half) Nth(n int) *Level { return h.tree.Nth(n) }

// findOrCreateLevel returns the existing level at price, or allocates
// one via alloc (pool-backed) and initializes it.
func (h *Half) findOrCreateLevel(price Price, alloc func() *Level) *Level {
	return h.tree.Upsert(h.key(price), func() *Level {
		lvl := alloc()
		lvl.CID, lvl.Side, lvl.Price, lvl.half = h.CID, h.Side, price, h
		return lvl
	})
}

// find returns the level at price, or nil.
func (h *Half) find(price Price) *Level {
	return h.tree.Find(h.key(price))
}

// destroyLevel removes an empty level from the priority index. The
// caller (OrderBook) is responsible for removing it from levelsByKey and
// returning it to the level pool.
func (h *Half) destroyLevel(price Price) {
	h.tree.Delete(h.key(price))
}

// LevelCount returns the number of live levels on this half.
func (h *Half) LevelCount() int { return h.tree.Size() }

// ForEachAscendingPriority visits levels in ascending priority order
// (best first).
func (h *Half) ForEachAscendingPriority(fn func(*Level) bool) {
	h.tree.ForEachAscending(fn)
}
