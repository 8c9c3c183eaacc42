// Package ladder renders a depth-N view of a symbol's order book as
// aligned text rows, one per price level, bid and ask side by side.
package ladder

import (
	"fmt"
	"strconv"
	"strings"

	"itchbook/orderbook"
)

// Params controls column widths. Zero fields are inferred from the
// levels actually being printed, widened (never narrowed) to fit.
type Params struct {
	OrderWidth    int
	QuantityWidth int
	PriceWidth    int
	BidAskSpaces  int
}

func (p Params) withMinimums() Params {
	if p.BidAskSpaces == 0 {
		p.BidAskSpaces = 3
	}
	return p
}

// Infer widens params to fit the top depth levels of cid's two halves.
func Infer(book *orderbook.OrderBook, cid orderbook.CID, depth int, minParams Params) Params {
	params := minParams.withMinimums()
	for _, side := range [2]orderbook.Side{orderbook.Bid, orderbook.Ask} {
		for n := 0; n < depth; n++ {
			lvl := book.NthLevel(cid, side, n)
			if lvl == nil {
				break
			}
			params.OrderWidth = max(params.OrderWidth, len(strconv.Itoa(lvl.OrderCount())))
			params.QuantityWidth = max(params.QuantityWidth, len(strconv.FormatInt(lvl.TotalShares, 10)))
			params.PriceWidth = max(params.PriceWidth, len(lvl.Price.String()))
		}
	}
	return params
}

// PrintLevels renders up to depth rows for cid, each row formatted as:
//
//	(bid_orders) bid_quantity bid_price   ask_price ask_quantity (ask_orders)
//
// A row is omitted once both sides are exhausted.
func PrintLevels(book *orderbook.OrderBook, cid orderbook.CID, depth int) []string {
	return PrintLevelsWithParams(book, cid, depth, Infer(book, cid, depth, Params{}))
}

func PrintLevelsWithParams(book *orderbook.OrderBook, cid orderbook.CID, depth int, params Params) []string {
	params = params.withMinimums()
	lines := make([]string, 0, depth)

	for n := 0; n < depth; n++ {
		bid := book.NthLevel(cid, orderbook.Bid, n)
		ask := book.NthLevel(cid, orderbook.Ask, n)
		if bid == nil && ask == nil {
			break
		}

		var line strings.Builder
		if bid != nil {
			fmt.Fprintf(&line, "(%*d) %*d %*s", params.OrderWidth, bid.OrderCount(),
				params.QuantityWidth, bid.TotalShares, params.PriceWidth, bid.Price.String())
		} else {
			line.WriteString(strings.Repeat(" ", params.OrderWidth+params.QuantityWidth+params.PriceWidth+4))
		}
		if ask != nil {
			fmt.Fprintf(&line, "%*s%-*s %-*d (%-*d)", params.BidAskSpaces, "",
				params.PriceWidth, ask.Price.String(), params.QuantityWidth, ask.TotalShares,
				params.OrderWidth, ask.OrderCount())
		}
		lines = append(lines, line.String())
	}
	return lines
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
