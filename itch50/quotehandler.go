package itch50

import (
	"time"

	"itchbook/internal/xlog"
	"itchbook/orderbook"
)

// timeOf converts a record's nanoseconds-since-midnight timestamp to an
// absolute time.Time. The quote handler itself is date-agnostic: the
// caller that knows the session date supplies the conversion (cmd/replay
// and the golden test anchor it to that day's midnight in
// America/New_York).
type timeOf func(nanosSinceMidnight uint64) time.Time

// QuoteHandler translates book-affecting ITCH 5.0 records into
// OrderBook operations, resolving each record's StockLocate to a CID
// via a shared StockLocateMap populated by a SymbolHandler running over
// the same stream.
type QuoteHandler struct {
	NopHandler
	book   *orderbook.OrderBook
	locate *orderbook.StockLocateMap
	toTime timeOf
}

// NewQuoteHandler builds a handler that applies mutations to book,
// resolving CIDs via locate and converting each record's wire
// timestamp to an absolute time.Time via toTime.
func NewQuoteHandler(book *orderbook.OrderBook, locate *orderbook.StockLocateMap, toTime timeOf) *QuoteHandler {
	return &QuoteHandler{book: book, locate: locate, toTime: toTime}
}

func sideOf(buySellIndicator byte) (orderbook.Side, bool) {
	switch buySellIndicator {
	case 'B':
		return orderbook.Bid, true
	case 'S':
		return orderbook.Ask, true
	default:
		return 0, false
	}
}

func (h *QuoteHandler) resolveCID(locate orderbook.StockLocate) (orderbook.CID, bool) {
	return h.locate.CID(locate)
}

func (h *QuoteHandler) OnAddOrder(r AddOrder) {
	cid, ok := h.resolveCID(r.StockLocate)
	if !ok {
		xlog.Warnf("addOrder: unknown stock locate %d for refNum %d", r.StockLocate, r.OrderReferenceNumber)
		return
	}
	side, ok := sideOf(r.BuySellIndicator)
	if !ok {
		xlog.Warnf("addOrder: unknown side %q for refNum %d", r.BuySellIndicator, r.OrderReferenceNumber)
		return
	}
	h.book.NewOrder(orderbook.ReferenceNum(r.OrderReferenceNumber), cid, side, int64(r.Shares), r.Price, h.toTime(r.Timestamp))
}

func (h *QuoteHandler) OnAddOrderMPID(r AddOrderMPID) {
	h.OnAddOrder(r.AddOrder)
}

func (h *QuoteHandler) OnOrderExecuted(r OrderExecuted) {
	info := orderbook.ExecInfo{MatchNum: r.MatchNumber, Printable: true}
	h.book.ExecuteOrder(orderbook.ReferenceNum(r.OrderReferenceNumber), int64(r.ExecutedShares), info, h.toTime(r.Timestamp))
}

func (h *QuoteHandler) OnOrderExecutedWithPrice(r OrderExecutedWithPrice) {
	info := orderbook.ExecInfo{
		MatchNum:  r.MatchNumber,
		Printable: r.Printable == 'Y',
		HasPrice:  true,
		Price:     r.ExecutionPrice,
	}
	h.book.ExecuteOrder(orderbook.ReferenceNum(r.OrderReferenceNumber), int64(r.ExecutedShares), info, h.toTime(r.Timestamp))
}

func (h *QuoteHandler) OnOrderCancel(r OrderCancel) {
	h.book.ReduceOrderBy(orderbook.ReferenceNum(r.OrderReferenceNumber), int64(r.CanceledShares), h.toTime(r.Timestamp))
}

func (h *QuoteHandler) OnOrderDelete(r OrderDelete) {
	h.book.DeleteOrder(orderbook.ReferenceNum(r.OrderReferenceNumber), h.toTime(r.Timestamp))
}

func (h *QuoteHandler) OnOrderReplace(r OrderReplace) {
	h.book.ReplaceOrder(
		orderbook.ReferenceNum(r.OriginalOrderReferenceNumber),
		orderbook.ReferenceNum(r.NewOrderReferenceNumber),
		int64(r.Shares),
		r.Price,
		h.toTime(r.Timestamp),
	)
}
