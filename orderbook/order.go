package orderbook

import "time"

// Side identifies one half of a symbol's book.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "Bid"
	}
	return "Ask"
}

// Order is always in exactly one of two states: linked (attached to a
// Level, counted in that level's total and the book's order count) or
// destroyed. There is no externally observable "unlinked but live"
// state — any transient unlinking during a mutation happens between
// listener callbacks, never within one.
//
// Orders are allocated from Pool[Order]; the pointer returned by the
// pool is stable for the order's lifetime and is recycled (never
// dereferenced again by the caller) once the book destroys it.
type Order struct {
	RefNum     ReferenceNum
	CID        CID
	Side       Side
	Quantity   int64
	Price      Price
	CreateTime time.Time
	UpdateTime time.Time

	level *Level
	prev  *Order
	next  *Order
}

// OrderView is a read-only value snapshot of an order's identity fields,
// used to report the "old" side of a replace: the old order's storage
// slot may be salvaged and overwritten in place for the new order
// (when the reference number is unchanged), so the old side can't
// safely be handed to a listener as a live *Order.
type OrderView struct {
	RefNum     ReferenceNum
	CID        CID
	Side       Side
	Quantity   int64
	Price      Price
	CreateTime time.Time
	UpdateTime time.Time
}

func viewOf(o *Order) OrderView {
	return OrderView{
		RefNum:     o.RefNum,
		CID:        o.CID,
		Side:       o.Side,
		Quantity:   o.Quantity,
		Price:      o.Price,
		CreateTime: o.CreateTime,
		UpdateTime: o.UpdateTime,
	}
}
