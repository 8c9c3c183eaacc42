package orderbook

// StockLocate is the feed's per-day, per-symbol 16-bit code. Zero is
// reserved invalid. The feed's locate assignment is arbitrary per day,
// so the engine maintains its own dense CIDs alongside this map.
type StockLocate uint16

const InvalidStockLocate StockLocate = 0

// StockLocateMap is a bidirectional association between a day's
// StockLocate codes and the engine's dense CIDs. It is built
// incrementally from StockDirectory records (itch50.SymbolHandler
// inserts on each one; no other record type adds entries) and rebuilt
// fresh each trading day.
type StockLocateMap struct {
	toCID    map[StockLocate]CID
	toLocate map[CID]StockLocate
}

func NewStockLocateMap() *StockLocateMap {
	return &StockLocateMap{
		toCID:    make(map[StockLocate]CID),
		toLocate: make(map[CID]StockLocate),
	}
}

// Insert associates locate with cid. A later call with the same locate
// overwrites the association, matching a locate code being reused
// across trading days.
func (m *StockLocateMap) Insert(locate StockLocate, cid CID) {
	m.toCID[locate] = cid
	m.toLocate[cid] = locate
}

// CID returns the CID associated with locate, if any.
func (m *StockLocateMap) CID(locate StockLocate) (CID, bool) {
	cid, ok := m.toCID[locate]
	return cid, ok
}

// Locate returns the StockLocate associated with cid, if any.
func (m *StockLocateMap) Locate(cid CID) (StockLocate, bool) {
	locate, ok := m.toLocate[cid]
	return locate, ok
}

// Reset clears the map for a new trading day.
func (m *StockLocateMap) Reset() {
	m.toCID = make(map[StockLocate]CID)
	m.toLocate = make(map[CID]StockLocate)
}
