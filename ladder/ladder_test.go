package ladder

import (
	"strings"
	"testing"
	"time"

	"itchbook/orderbook"
)

func TestPrintLevelsTwoSided(t *testing.T) {
	b := orderbook.NewOrderBook()
	b.NewOrder(1, 0, orderbook.Bid, 100, orderbook.Price(100*orderbook.PriceScale), time.Time{})
	b.NewOrder(2, 0, orderbook.Ask, 50, orderbook.Price(101*orderbook.PriceScale), time.Time{})

	lines := PrintLevels(b, 0, 5)
	if len(lines) != 1 {
		t.Fatalf("PrintLevels = %v, want exactly one row", lines)
	}
	if !strings.Contains(lines[0], "100.00000000") || !strings.Contains(lines[0], "101.00000000") {
		t.Fatalf("row %q missing expected prices", lines[0])
	}
}

func TestPrintLevelsBidOnly(t *testing.T) {
	b := orderbook.NewOrderBook()
	b.NewOrder(1, 0, orderbook.Bid, 100, orderbook.Price(100*orderbook.PriceScale), time.Time{})

	lines := PrintLevels(b, 0, 3)
	if len(lines) != 1 {
		t.Fatalf("PrintLevels = %v, want exactly one row", lines)
	}
	if strings.TrimRight(lines[0], " ") == "" {
		t.Fatal("row should not be blank when a bid level exists")
	}
}

func TestPrintLevelsEmptyBook(t *testing.T) {
	b := orderbook.NewOrderBook()
	if lines := PrintLevels(b, 0, 5); len(lines) != 0 {
		t.Fatalf("PrintLevels on empty book = %v, want none", lines)
	}
}
