package orderbook

import "fmt"

// Validate performs a full O(orders + levels) consistency check: list
// ordering, per-level totals, pointer round-trips, and order-count
// agreement. It is intended for tests, not the hot path.
func (b *OrderBook) Validate() error {
	seenOrders := 0
	seenLevels := 0

	for cid := range b.books {
		pb := b.books[cid]
		if pb == nil {
			continue
		}
		for _, side := range [2]Side{Bid, Ask} {
			h := pb.halves[side]
			var prevPrice Price
			first := true

			var err error
			h.ForEachAscendingPriority(func(lvl *Level) bool {
				seenLevels++

				if lvl.OrderCount() == 0 {
					err = fmt.Errorf("cid=%d side=%s price=%s: empty level still present", cid, side, lvl.Price)
					return false
				}

				// Ascending-priority order must be strictly monotonic:
				// for Ask the encoded key ascends with price; for Bid
				// it ascends with descending price. Either way,
				// consecutive levels from this half's own iterator
				// must differ in the priority-correct direction.
				if !first {
					if side == Ask && lvl.Price <= prevPrice {
						err = fmt.Errorf("cid=%d ask levels not strictly increasing: %s after %s", cid, lvl.Price, prevPrice)
						return false
					}
					if side == Bid && lvl.Price >= prevPrice {
						err = fmt.Errorf("cid=%d bid levels not strictly decreasing: %s after %s", cid, lvl.Price, prevPrice)
						return false
					}
				}
				prevPrice = lvl.Price
				first = false

				sum := int64(0)
				count := 0
				var prevOrder *Order
				for o := lvl.head; o != nil; o = o.next {
					if o.prev != prevOrder {
						err = fmt.Errorf("cid=%d price=%s: order %d prev pointer mismatch", cid, lvl.Price, o.RefNum)
						return false
					}
					if o.level != lvl {
						err = fmt.Errorf("cid=%d price=%s: order %d level back-reference mismatch", cid, lvl.Price, o.RefNum)
						return false
					}
					if o.CID != lvl.CID || o.Side != lvl.Side || o.Price != lvl.Price {
						err = fmt.Errorf("order %d does not match its level's (cid,side,price)", o.RefNum)
						return false
					}
					if found := b.ordersByRef[o.RefNum]; found != o {
						err = fmt.Errorf("order %d not registered in ordersByRef with matching identity", o.RefNum)
						return false
					}
					sum += o.Quantity
					count++
					seenOrders++
					prevOrder = o
				}
				if lvl.tail != prevOrder {
					err = fmt.Errorf("cid=%d price=%s: tail pointer mismatch", cid, lvl.Price)
					return false
				}
				if sum != lvl.TotalShares {
					err = fmt.Errorf("cid=%d price=%s: totalShares %d != sum of order quantities %d", cid, lvl.Price, lvl.TotalShares, sum)
					return false
				}
				if count != lvl.OrderCount() {
					err = fmt.Errorf("cid=%d price=%s: orderCount %d != counted orders %d", cid, lvl.Price, lvl.OrderCount(), count)
					return false
				}
				return true
			})
			if err != nil {
				return err
			}
		}
	}

	if seenOrders != len(b.ordersByRef) {
		return fmt.Errorf("ordersByRef has %d entries but %d orders are reachable from levels", len(b.ordersByRef), seenOrders)
	}
	if seenOrders != b.orderCount {
		return fmt.Errorf("orderCount=%d does not match reachable order count %d", b.orderCount, seenOrders)
	}
	if seenLevels != len(b.levelsByKey) {
		return fmt.Errorf("levelsByKey has %d entries but %d levels are reachable from halves", len(b.levelsByKey), seenLevels)
	}
	return nil
}
