package itch50

import "itchbook/orderbook"

// SymbolHandler assigns a dense CID to every stock locate a feed
// introduces via StockDirectory ('R') records, either unconditionally
// or restricted to an allow-list of symbols a replay run cares about.
// It must run ahead of (or alongside) a QuoteHandler on the same
// stream, since quote records only ever carry a StockLocate and rely
// on this mapping having already been populated.
type SymbolHandler struct {
	NopHandler
	cindex *orderbook.CIndex
	locate *orderbook.StockLocateMap
	allow  map[orderbook.Symbol]bool // nil means accept every symbol
}

// NewSymbolHandler builds a handler that assigns a CID to every symbol
// it sees. Pass a non-empty allow list to restrict assignment to those
// symbols only, the Design Notes' "filtered subset" replay mode.
func NewSymbolHandler(cindex *orderbook.CIndex, locate *orderbook.StockLocateMap, allow []string) *SymbolHandler {
	h := &SymbolHandler{cindex: cindex, locate: locate}
	if len(allow) > 0 {
		h.allow = make(map[orderbook.Symbol]bool, len(allow))
		for _, s := range allow {
			h.allow[orderbook.NewSymbol(s)] = true
		}
	}
	return h
}

func (h *SymbolHandler) accepts(sym orderbook.Symbol) bool {
	return h.allow == nil || h.allow[sym]
}

func (h *SymbolHandler) OnStockDirectory(r StockDirectory) {
	if !h.accepts(r.Stock) {
		return
	}
	cid := h.cindex.FindOrInsert(r.Stock)
	h.locate.Insert(r.StockLocate, cid)
}
