package itch50_test

import (
	"testing"
	"time"

	"itchbook/itch50"
	"itchbook/message"
	"itchbook/orderbook"
)

func putStock(b []byte, off int, sym string) {
	copy(b[off:off+8], "        ")
	copy(b[off:off+8], sym)
}

func buildHeader(b []byte, typ itch50.MsgType, locate uint16, tracking uint16, nanos uint64) {
	b[0] = byte(typ)
	message.PutUint16(b, 1, locate)
	message.PutUint16(b, 3, tracking)
	message.PutUint48(b, 5, nanos)
}

func buildStockDirectory(locate uint16, sym string) []byte {
	b := make([]byte, itch50.StaticSize[itch50.MsgStockDirectory])
	buildHeader(b, itch50.MsgStockDirectory, locate, 1, 0)
	putStock(b, 11, sym)
	return b
}

func buildAddOrder(locate uint16, refNum uint64, side byte, shares uint32, sym string, priceRaw4 uint32) []byte {
	b := make([]byte, itch50.StaticSize[itch50.MsgAddOrder])
	buildHeader(b, itch50.MsgAddOrder, locate, 1, 1000)
	message.PutUint64(b, 11, refNum)
	b[19] = side
	message.PutUint32(b, 20, shares)
	putStock(b, 24, sym)
	message.PutUint32(b, 32, priceRaw4)
	return b
}

func buildOrderDelete(refNum uint64) []byte {
	b := make([]byte, itch50.StaticSize[itch50.MsgOrderDelete])
	buildHeader(b, itch50.MsgOrderDelete, 1, 1, 2000)
	message.PutUint64(b, 11, refNum)
	return b
}

func TestParseMessageUnknownType(t *testing.T) {
	if got := itch50.ParseMessage([]byte{0xff}, itch50.NopHandler{}); got != itch50.BadMsgType {
		t.Errorf("ParseMessage(unknown type) = %v, want BadMsgType", got)
	}
}

func TestParseMessageShortFrame(t *testing.T) {
	b := buildAddOrder(1, 1, 'B', 100, "AAPL", 1000000000)
	if got := itch50.ParseMessage(b[:len(b)-1], itch50.NopHandler{}); got != itch50.BadSize {
		t.Errorf("ParseMessage(truncated) = %v, want BadSize", got)
	}
}

func TestParseMessageOversizeFrameStillSucceeds(t *testing.T) {
	b := buildAddOrder(1, 1, 'B', 100, "AAPL", 1000000000)
	b = append(b, 0xde, 0xad) // trailing padding a future ITCH version might append
	if got := itch50.ParseMessage(b, itch50.NopHandler{}); got != itch50.Success {
		t.Errorf("ParseMessage(oversize) = %v, want Success", got)
	}
}

func TestEndToEndAddThenDeleteUpdatesBook(t *testing.T) {
	cindex := orderbook.NewCIndex()
	locateMap := orderbook.NewStockLocateMap()
	book := orderbook.NewOrderBook()

	symbolHandler := itch50.NewSymbolHandler(cindex, locateMap, nil)
	quoteHandler := itch50.NewQuoteHandler(book, locateMap, func(nanos uint64) time.Time {
		return time.Unix(0, int64(nanos)).UTC()
	})

	dir := buildStockDirectory(7, "AAPL")
	if got := itch50.ParseMessage(dir, symbolHandler); got != itch50.Success {
		t.Fatalf("ParseMessage(StockDirectory) = %v, want Success", got)
	}

	cid, ok := cindex.LookupSymbol(orderbook.NewSymbol("AAPL"))
	if !ok {
		t.Fatalf("AAPL was not indexed after StockDirectory")
	}

	add := buildAddOrder(7, 1, 'B', 100, "AAPL", 1000000000) // 100000.00000000
	if got := itch50.ParseMessage(add, symbolHandler); got != itch50.Success {
		t.Fatalf("ParseMessage(AddOrder via symbolHandler) = %v, want Success", got)
	}
	if got := itch50.ParseMessage(add, quoteHandler); got != itch50.Success {
		t.Fatalf("ParseMessage(AddOrder via quoteHandler) = %v, want Success", got)
	}

	top := book.TopLevel(cid, orderbook.Bid)
	if top == nil {
		t.Fatalf("expected a top bid level after AddOrder")
	}
	if top.TotalShares != 100 {
		t.Errorf("top bid shares = %d, want 100", top.TotalShares)
	}

	del := buildOrderDelete(1)
	if got := itch50.ParseMessage(del, quoteHandler); got != itch50.Success {
		t.Fatalf("ParseMessage(OrderDelete) = %v, want Success", got)
	}
	if top := book.TopLevel(cid, orderbook.Bid); top != nil {
		t.Errorf("expected no top bid level after OrderDelete, got %v", top)
	}
}
