package orderbook

import (
	"time"

	"itchbook/internal/xlog"
)

// ExecInfo carries the execution-specific fields reported alongside an
// OnExecOrder callback.
type ExecInfo struct {
	MatchNum  uint64
	Printable bool
	HasPrice  bool
	Price     Price
}

// BookListener receives every mutation of an OrderBook it is registered
// on. Callbacks are synchronous and execute inline within the call that
// produced them; a listener must not add or remove listeners, and must
// not mutate the book, from within a callback. Borrowed *Order/*Level
// pointers are valid only for the duration of the call — the underlying
// storage may be recycled immediately after it returns.
type BookListener interface {
	OnNewOrder(cid CID, o *Order)
	OnDeleteOrder(cid CID, o *Order, oldQty int64)
	OnReplaceOrder(cid CID, old OrderView, newOrder *Order)
	OnExecOrder(cid CID, o *Order, oldQty, fillQty int64, info ExecInfo)
	OnUpdateOrder(cid CID, o *Order, oldQty int64, oldPrice Price)
}

type levelKey struct {
	CID   CID
	Side  Side
	Price Price
}

type perCIDBook struct {
	halves [2]*Half
}

// OrderBook is the aggregate: one book per CID, plus the cross-cutting
// indexes and pools every book shares.
type OrderBook struct {
	books       []*perCIDBook
	ordersByRef map[ReferenceNum]*Order
	levelsByKey map[levelKey]*Level
	listeners   []BookListener

	orderPool *Pool[Order]
	levelPool *Pool[Level]

	orderCount int
	maxOrders  int
	liveLevels int
	maxLevels  int
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		ordersByRef: make(map[ReferenceNum]*Order),
		levelsByKey: make(map[levelKey]*Level),
		orderPool:   NewPool[Order](),
		levelPool:   NewPool[Level](),
	}
}

// AddListener registers l to receive future mutations. Must not be
// called from within a listener callback.
func (b *OrderBook) AddListener(l BookListener) {
	b.listeners = append(b.listeners, l)
}

func (b *OrderBook) ensureCID(cid CID) *perCIDBook {
	for CID(len(b.books)) <= cid {
		b.books = append(b.books, nil)
	}
	if b.books[cid] == nil {
		b.books[cid] = &perCIDBook{
			halves: [2]*Half{Bid: newHalf(cid, Bid), Ask: newHalf(cid, Ask)},
		}
	}
	return b.books[cid]
}

func (b *OrderBook) halfOf(cid CID, side Side) *Half {
	if int(cid) >= len(b.books) || b.books[cid] == nil {
		return nil
	}
	return b.books[cid].halves[side]
}

// OrderCount returns the number of currently live orders across all
// symbols.
func (b *OrderBook) OrderCount() int { return b.orderCount }

// MaxOrders returns the largest OrderCount observed over the book's
// lifetime, for sizing.
func (b *OrderBook) MaxOrders() int { return b.maxOrders }

// MaxLevels returns the largest total live level count observed over
// the book's lifetime, for sizing.
func (b *OrderBook) MaxLevels() int { return b.maxLevels }

// FindOrder resolves a live order by reference number.
func (b *OrderBook) FindOrder(refNum ReferenceNum) *Order {
	return b.ordersByRef[refNum]
}

// TopLevel returns the best (highest-priority) level on cid/side, O(1).
func (b *OrderBook) TopLevel(cid CID, side Side) *Level {
	h := b.halfOf(cid, side)
	if h == nil {
		return nil
	}
	return h.Top()
}

// NthLevel returns the nth-best level (0 == top) on cid/side.
func (b *OrderBook) NthLevel(cid CID, side Side, n int) *Level {
	h := b.halfOf(cid, side)
	if h == nil {
		return nil
	}
	return h.Nth(n)
}

// GetLevel returns the level at an exact price, O(1) via the book-wide
// levelsByKey map.
func (b *OrderBook) GetLevel(cid CID, side Side, price Price) *Level {
	return b.levelsByKey[levelKey{CID: cid, Side: side, Price: price}]
}

// NewOrder inserts a new order at the tail of its level's FIFO. If
// refNum already names a live order, that order is deleted first
// (firing OnDeleteOrder) before the new one is created, tolerating a
// duplicate refNum from a malformed or reused-identifier feed.
func (b *OrderBook) NewOrder(refNum ReferenceNum, cid CID, side Side, qty int64, price Price, tm time.Time) *Order {
	if existing := b.ordersByRef[refNum]; existing != nil {
		xlog.Warnf("newOrder: refNum %d already exists, deleting prior holder", refNum)
		b.DeleteOrder(refNum, tm)
	}

	o := b.orderPool.Alloc()
	o.RefNum = refNum
	o.CID = cid
	o.Side = side
	o.Quantity = qty
	o.Price = price
	o.CreateTime = tm
	o.UpdateTime = tm

	b.linkOrder(cid, side, o)
	b.ordersByRef[refNum] = o
	b.orderCount++
	if b.orderCount > b.maxOrders {
		b.maxOrders = b.orderCount
	}

	for _, l := range b.listeners {
		l.OnNewOrder(cid, o)
	}
	return o
}

// linkOrder finds or creates the (cid, side, price) level and appends o
// to its FIFO tail, registering the level in levelsByKey if it is new.
func (b *OrderBook) linkOrder(cid CID, side Side, o *Order) {
	h := b.ensureCID(cid).halves[side]
	key := levelKey{CID: cid, Side: side, Price: o.Price}
	_, existed := b.levelsByKey[key]

	lvl := h.findOrCreateLevel(o.Price, b.levelPool.Alloc)
	if !existed {
		lvl.half = h
		b.levelsByKey[key] = lvl
		b.liveLevels++
		if b.liveLevels > b.maxLevels {
			b.maxLevels = b.liveLevels
		}
	}
	lvl.pushTail(o)
}

// unlinkOrder removes o from its level's FIFO and, if that empties the
// level, destroys the level too. o.Quantity is used to decrement the
// level's TotalShares, so callers must unlink before zeroing quantity.
func (b *OrderBook) unlinkOrder(o *Order) {
	lvl := o.level
	lvl.unlink(o)
	if lvl.OrderCount() == 0 {
		key := levelKey{CID: lvl.CID, Side: lvl.Side, Price: lvl.Price}
		delete(b.levelsByKey, key)
		h := b.halfOf(lvl.CID, lvl.Side)
		h.destroyLevel(lvl.Price)
		b.levelPool.Free(lvl)
		b.liveLevels--
	}
}

// destroyOrder removes o from ordersByRef and returns its storage to
// the order pool. Must only be called on an already-unlinked order.
func (b *OrderBook) destroyOrder(o *Order) {
	delete(b.ordersByRef, o.RefNum)
	b.orderCount--
	b.orderPool.Free(o)
}

// ReduceOrderBy decrements an order's quantity. If changeQty >= the
// current quantity the order is fully removed — unlinked and destroyed
// — but the listener still sees exactly one OnUpdateOrder reporting
// quantity 0. Unknown refNum warns and is a no-op.
func (b *OrderBook) ReduceOrderBy(refNum ReferenceNum, changeQty int64, tm time.Time) {
	o := b.ordersByRef[refNum]
	if o == nil {
		xlog.Warnf("reduceOrderBy: unknown refNum %d", refNum)
		return
	}
	if changeQty > o.Quantity {
		xlog.Warnf("reduceOrderBy: refNum %d changeQty %d exceeds quantity %d", refNum, changeQty, o.Quantity)
	}

	oldQty := o.Quantity
	cid := o.CID
	if changeQty >= o.Quantity {
		b.unlinkOrder(o)
		o.Quantity = 0
	} else {
		o.level.TotalShares -= changeQty
		o.Quantity -= changeQty
	}
	o.UpdateTime = tm

	for _, l := range b.listeners {
		l.OnUpdateOrder(cid, o, oldQty, o.Price)
	}
	if o.Quantity == 0 {
		b.destroyOrder(o)
	}
}

// ReduceOrderTo sets an order's quantity to an absolute value. newQty
// == 0 is equivalent to delete. Warns (but honors) newQty > current.
func (b *OrderBook) ReduceOrderTo(refNum ReferenceNum, newQty int64, tm time.Time) {
	o := b.ordersByRef[refNum]
	if o == nil {
		xlog.Warnf("reduceOrderTo: unknown refNum %d", refNum)
		return
	}
	if newQty > o.Quantity {
		xlog.Warnf("reduceOrderTo: refNum %d newQty %d exceeds quantity %d", refNum, newQty, o.Quantity)
	}
	b.ReduceOrderBy(refNum, o.Quantity-newQty, tm)
}

// DeleteOrder unlinks and destroys an order, firing OnDeleteOrder with
// the pre-call quantity. Unknown refNum warns and is a no-op.
func (b *OrderBook) DeleteOrder(refNum ReferenceNum, tm time.Time) {
	o := b.ordersByRef[refNum]
	if o == nil {
		xlog.Warnf("deleteOrder: unknown refNum %d", refNum)
		return
	}
	oldQty := o.Quantity
	cid := o.CID
	o.UpdateTime = tm
	b.unlinkOrder(o)

	for _, l := range b.listeners {
		l.OnDeleteOrder(cid, o, oldQty)
	}
	b.destroyOrder(o)
}

// ExecuteOrder applies the same quantity accounting as ReduceOrderBy but
// fires OnExecOrder instead of OnUpdateOrder. When the fill exhausts the
// order it is destroyed after the callback.
func (b *OrderBook) ExecuteOrder(refNum ReferenceNum, qty int64, info ExecInfo, tm time.Time) {
	o := b.ordersByRef[refNum]
	if o == nil {
		xlog.Warnf("executeOrder: unknown refNum %d", refNum)
		return
	}
	if qty > o.Quantity {
		xlog.Warnf("executeOrder: refNum %d fillQty %d exceeds quantity %d", refNum, qty, o.Quantity)
	}

	oldQty := o.Quantity
	cid := o.CID
	exhausted := qty >= o.Quantity
	if exhausted {
		b.unlinkOrder(o)
		o.Quantity = 0
	} else {
		o.level.TotalShares -= qty
		o.Quantity -= qty
	}
	o.UpdateTime = tm

	// fillQty is reported as the caller's requested quantity verbatim
	// (matching what the feed printed), not clamped to oldQty — the
	// oversized-reduce scenario is explicitly allowed to report a
	// fillQty exceeding the order's outstanding quantity.
	for _, l := range b.listeners {
		l.OnExecOrder(cid, o, oldQty, qty, info)
	}
	if exhausted {
		b.destroyOrder(o)
	}
}

// ReplaceOrder is a single atomic operation observable as exactly one
// OnReplaceOrder callback. Side and CID are inherited from the old
// order and cannot change. The old order always loses time priority —
// it is reinserted at the tail of the (possibly identical) new price
// level. If oldRefNum is unknown, warns and returns nil with no
// callbacks.
func (b *OrderBook) ReplaceOrder(oldRefNum ReferenceNum, newRefNum ReferenceNum, newQty int64, newPrice Price, tm time.Time) *Order {
	old := b.ordersByRef[oldRefNum]
	if old == nil {
		xlog.Warnf("replaceOrder: unknown old refNum %d", oldRefNum)
		return nil
	}

	oldView := viewOf(old)
	cid := old.CID
	side := old.Side
	b.unlinkOrder(old)
	delete(b.ordersByRef, oldRefNum)
	b.orderCount--

	var next *Order
	if newRefNum == oldRefNum {
		// Salvage the same storage slot rather than round-tripping
		// through the pool.
		next = old
		*next = Order{}
	} else {
		b.orderPool.Free(old)
		next = b.orderPool.Alloc()
	}
	next.RefNum = newRefNum
	next.CID = cid
	next.Side = side
	next.Quantity = newQty
	next.Price = newPrice
	next.CreateTime = oldView.CreateTime
	next.UpdateTime = tm

	b.linkOrder(cid, side, next)
	b.ordersByRef[newRefNum] = next
	b.orderCount++
	if b.orderCount > b.maxOrders {
		b.maxOrders = b.orderCount
	}

	for _, l := range b.listeners {
		l.OnReplaceOrder(cid, oldView, next)
	}
	return next
}

// ClearBook drops every order under cid, firing OnDeleteOrder for each.
// Deletion order within a half is unspecified.
func (b *OrderBook) ClearBook(cid CID) {
	if int(cid) >= len(b.books) || b.books[cid] == nil {
		return
	}
	for _, side := range [2]Side{Bid, Ask} {
		h := b.books[cid].halves[side]
		var refs []ReferenceNum
		h.ForEachAscendingPriority(func(lvl *Level) bool {
			for o := lvl.head; o != nil; o = o.next {
				refs = append(refs, o.RefNum)
			}
			return true
		})
		for _, ref := range refs {
			b.DeleteOrder(ref, time.Time{})
		}
	}
}

// Clear drops every order in every book.
func (b *OrderBook) Clear() {
	for cid := range b.books {
		b.ClearBook(CID(cid))
	}
}
