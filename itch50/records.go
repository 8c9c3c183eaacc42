// Package itch50 decodes NASDAQ ITCH 5.0 records and dispatches them to
// handlers that translate feed events into order book mutations.
//
// Every record begins with an 11-byte common header and is fixed-layout,
// one-byte aligned, with every multi-byte field big-endian — see
// records.go for the exact field offsets and StaticSize for the record
// sizes NASDAQ's ITCH 5.0 specification assigns each type. The sizes are
// not checked against the decoders' offsets at compile time or run time.
package itch50

import (
	"fmt"

	"itchbook/message"
	"itchbook/orderbook"
)

// MsgType is the one-byte tag identifying a record's shape.
type MsgType byte

const (
	MsgSystemEvent                            MsgType = 'S'
	MsgStockDirectory                         MsgType = 'R'
	MsgStockTradingAction                     MsgType = 'H'
	MsgRegSHORestriction                      MsgType = 'Y'
	MsgMarketParticipantPosition              MsgType = 'L'
	MsgMWCBDeclineLevel                       MsgType = 'V'
	MsgMWCBStatus                             MsgType = 'W'
	MsgQuotingPeriodUpdate                    MsgType = 'K'
	MsgLULDAuctionCollar                      MsgType = 'J'
	MsgOperationalHalt                        MsgType = 'h'
	MsgAddOrder                               MsgType = 'A'
	MsgAddOrderMPID                           MsgType = 'F'
	MsgOrderExecuted                          MsgType = 'E'
	MsgOrderExecutedWithPrice                 MsgType = 'C'
	MsgOrderCancel                            MsgType = 'X'
	MsgOrderDelete                            MsgType = 'D'
	MsgOrderReplace                           MsgType = 'U'
	MsgTrade                                  MsgType = 'P'
	MsgCrossTrade                             MsgType = 'Q'
	MsgBrokenTrade                            MsgType = 'B'
	MsgNOII                                   MsgType = 'I'
	MsgRPII                                   MsgType = 'N'
	MsgDirectListingWithCapitalRaisePriceDisc MsgType = 'O'
)

// StaticSize maps a known message type to its fixed record size in
// bytes, the size parse-and-dispatch compares the frame's payload
// length against.
var StaticSize = map[MsgType]int{
	MsgSystemEvent:                            12,
	MsgStockDirectory:                         39,
	MsgStockTradingAction:                     25,
	MsgRegSHORestriction:                      20,
	MsgMarketParticipantPosition:              26,
	MsgMWCBDeclineLevel:                       35,
	MsgMWCBStatus:                             12,
	MsgQuotingPeriodUpdate:                    28,
	MsgLULDAuctionCollar:                      35,
	MsgOperationalHalt:                        21,
	MsgAddOrder:                               36,
	MsgAddOrderMPID:                           40,
	MsgOrderExecuted:                          31,
	MsgOrderExecutedWithPrice:                 36,
	MsgOrderCancel:                            23,
	MsgOrderDelete:                            19,
	MsgOrderReplace:                           35,
	MsgTrade:                                  44,
	MsgCrossTrade:                             40,
	MsgBrokenTrade:                            19,
	MsgNOII:                                   50,
	MsgRPII:                                   20,
	MsgDirectListingWithCapitalRaisePriceDisc: 48,
}

const commonHeaderSize = 11

// Header is the 11-byte prefix common to every ITCH 5.0 record.
type Header struct {
	MessageType    MsgType
	StockLocate    orderbook.StockLocate
	TrackingNumber uint16
	Timestamp      uint64 // nanoseconds since midnight, 48-bit on the wire
}

func decodeHeader(b []byte) Header {
	return Header{
		MessageType:    MsgType(b[0]),
		StockLocate:    orderbook.StockLocate(message.Uint16(b, 1)),
		TrackingNumber: message.Uint16(b, 3),
		Timestamp:      message.Uint48(b, 5),
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%c loc=%d track=%d ts=%d", byte(h.MessageType), h.StockLocate, h.TrackingNumber, h.Timestamp)
}

type SystemEvent struct {
	Header
	EventCode byte
}

func decodeSystemEvent(b []byte) SystemEvent {
	return SystemEvent{Header: decodeHeader(b), EventCode: b[11]}
}
func (r SystemEvent) String() string { return fmt.Sprintf("SystemEvent{%s code=%c}", r.Header, r.EventCode) }

type StockDirectory struct {
	Header
	Stock                     orderbook.Symbol
	MarketCategory            byte
	FinancialStatusIndicator  byte
	RoundLotSize              uint32
	RoundLotsOnly             byte
	IssueClassification       byte
	IssueSubType              [2]byte
	Authenticity              byte
	ShortSaleThresholdIndicator byte
	IPOFlag                   byte
	LULDReferencePriceTier    byte
	ETPFlag                   byte
	ETPLeverageFactor         uint32
	InverseIndicator          byte
}

func decodeStockDirectory(b []byte) StockDirectory {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return StockDirectory{
		Header:                      decodeHeader(b),
		Stock:                       stock,
		MarketCategory:              b[19],
		FinancialStatusIndicator:    b[20],
		RoundLotSize:                message.Uint32(b, 21),
		RoundLotsOnly:               b[25],
		IssueClassification:         b[26],
		IssueSubType:                [2]byte{b[27], b[28]},
		Authenticity:                b[29],
		ShortSaleThresholdIndicator: b[30],
		IPOFlag:                     b[31],
		LULDReferencePriceTier:      b[32],
		ETPFlag:                     b[33],
		ETPLeverageFactor:           message.Uint32(b, 34),
		InverseIndicator:            b[38],
	}
}
func (r StockDirectory) String() string {
	return fmt.Sprintf("StockDirectory{%s stock=%s lot=%d}", r.Header, r.Stock, r.RoundLotSize)
}

type StockTradingAction struct {
	Header
	Stock        orderbook.Symbol
	TradingState byte
	Reserved     byte
	Reason       [4]byte
}

func decodeStockTradingAction(b []byte) StockTradingAction {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return StockTradingAction{
		Header:       decodeHeader(b),
		Stock:        stock,
		TradingState: b[19],
		Reserved:     b[20],
		Reason:       [4]byte{b[21], b[22], b[23], b[24]},
	}
}
func (r StockTradingAction) String() string {
	return fmt.Sprintf("StockTradingAction{%s stock=%s state=%c}", r.Header, r.Stock, r.TradingState)
}

type RegSHORestriction struct {
	Header
	Stock        orderbook.Symbol
	RegSHOAction byte
}

func decodeRegSHORestriction(b []byte) RegSHORestriction {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return RegSHORestriction{Header: decodeHeader(b), Stock: stock, RegSHOAction: b[19]}
}
func (r RegSHORestriction) String() string {
	return fmt.Sprintf("RegSHORestriction{%s stock=%s action=%c}", r.Header, r.Stock, r.RegSHOAction)
}

type MarketParticipantPosition struct {
	Header
	MPID                   [4]byte
	Stock                  orderbook.Symbol
	PrimaryMarketMaker     byte
	MarketMakerMode        byte
	MarketParticipantState byte
}

func decodeMarketParticipantPosition(b []byte) MarketParticipantPosition {
	var stock orderbook.Symbol
	copy(stock[:], b[15:23])
	return MarketParticipantPosition{
		Header:                 decodeHeader(b),
		MPID:                   [4]byte{b[11], b[12], b[13], b[14]},
		Stock:                  stock,
		PrimaryMarketMaker:     b[23],
		MarketMakerMode:        b[24],
		MarketParticipantState: b[25],
	}
}
func (r MarketParticipantPosition) String() string {
	return fmt.Sprintf("MarketParticipantPosition{%s stock=%s}", r.Header, r.Stock)
}

type MWCBDeclineLevel struct {
	Header
	Level1, Level2, Level3 orderbook.Price
}

func decodeMWCBDeclineLevel(b []byte) MWCBDeclineLevel {
	return MWCBDeclineLevel{
		Header: decodeHeader(b),
		Level1: orderbook.PriceFromRaw8(message.Uint64(b, 11)),
		Level2: orderbook.PriceFromRaw8(message.Uint64(b, 19)),
		Level3: orderbook.PriceFromRaw8(message.Uint64(b, 27)),
	}
}
func (r MWCBDeclineLevel) String() string {
	return fmt.Sprintf("MWCBDeclineLevel{%s l1=%s l2=%s l3=%s}", r.Header, r.Level1, r.Level2, r.Level3)
}

type MWCBStatus struct {
	Header
	BreachLevel byte
}

func decodeMWCBStatus(b []byte) MWCBStatus {
	return MWCBStatus{Header: decodeHeader(b), BreachLevel: b[11]}
}
func (r MWCBStatus) String() string { return fmt.Sprintf("MWCBStatus{%s level=%c}", r.Header, r.BreachLevel) }

type QuotingPeriodUpdate struct {
	Header
	Stock                        orderbook.Symbol
	IPOQuotationReleaseTime      uint32
	IPOQuotationReleaseQualifier byte
	IPOPrice                     orderbook.Price
}

func decodeQuotingPeriodUpdate(b []byte) QuotingPeriodUpdate {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return QuotingPeriodUpdate{
		Header:                       decodeHeader(b),
		Stock:                        stock,
		IPOQuotationReleaseTime:      message.Uint32(b, 19),
		IPOQuotationReleaseQualifier: b[23],
		IPOPrice:                     orderbook.PriceFromRaw4(message.Uint32(b, 24)),
	}
}
func (r QuotingPeriodUpdate) String() string {
	return fmt.Sprintf("QuotingPeriodUpdate{%s stock=%s price=%s}", r.Header, r.Stock, r.IPOPrice)
}

type LULDAuctionCollar struct {
	Header
	Stock                       orderbook.Symbol
	AuctionCollarReferencePrice orderbook.Price
	UpperAuctionCollarPrice     orderbook.Price
	LowerAuctionCollarPrice     orderbook.Price
	AuctionCollarExtension      uint32
}

func decodeLULDAuctionCollar(b []byte) LULDAuctionCollar {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return LULDAuctionCollar{
		Header:                      decodeHeader(b),
		Stock:                       stock,
		AuctionCollarReferencePrice: orderbook.PriceFromRaw4(message.Uint32(b, 19)),
		UpperAuctionCollarPrice:     orderbook.PriceFromRaw4(message.Uint32(b, 23)),
		LowerAuctionCollarPrice:     orderbook.PriceFromRaw4(message.Uint32(b, 27)),
		AuctionCollarExtension:      message.Uint32(b, 31),
	}
}
func (r LULDAuctionCollar) String() string {
	return fmt.Sprintf("LULDAuctionCollar{%s stock=%s ref=%s}", r.Header, r.Stock, r.AuctionCollarReferencePrice)
}

type OperationalHalt struct {
	Header
	Stock                  orderbook.Symbol
	MarketCode             byte
	OperationalHaltAction  byte
}

func decodeOperationalHalt(b []byte) OperationalHalt {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return OperationalHalt{
		Header:                decodeHeader(b),
		Stock:                 stock,
		MarketCode:            b[19],
		OperationalHaltAction: b[20],
	}
}
func (r OperationalHalt) String() string {
	return fmt.Sprintf("OperationalHalt{%s stock=%s action=%c}", r.Header, r.Stock, r.OperationalHaltAction)
}

// AddOrder is emitted for a new resting order with no associated MPID
// attribution.
type AddOrder struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                orderbook.Symbol
	Price                orderbook.Price
}

func decodeAddOrder(b []byte) AddOrder {
	var stock orderbook.Symbol
	copy(stock[:], b[24:32])
	return AddOrder{
		Header:               decodeHeader(b),
		OrderReferenceNumber: message.Uint64(b, 11),
		BuySellIndicator:     b[19],
		Shares:               message.Uint32(b, 20),
		Stock:                stock,
		Price:                orderbook.PriceFromRaw4(message.Uint32(b, 32)),
	}
}
func (r AddOrder) String() string {
	return fmt.Sprintf("AddOrder{%s ref=%d side=%c qty=%d stock=%s px=%s}",
		r.Header, r.OrderReferenceNumber, r.BuySellIndicator, r.Shares, r.Stock, r.Price)
}

type AddOrderMPID struct {
	AddOrder
	Attribution [4]byte
}

func decodeAddOrderMPID(b []byte) AddOrderMPID {
	return AddOrderMPID{
		AddOrder:    decodeAddOrder(b),
		Attribution: [4]byte{b[36], b[37], b[38], b[39]},
	}
}
func (r AddOrderMPID) String() string { return fmt.Sprintf("AddOrderMPID{%s}", r.AddOrder) }

type OrderExecuted struct {
	Header
	OrderReferenceNumber uint64
	ExecutedShares       uint32
	MatchNumber          uint64
}

func decodeOrderExecuted(b []byte) OrderExecuted {
	return OrderExecuted{
		Header:               decodeHeader(b),
		OrderReferenceNumber: message.Uint64(b, 11),
		ExecutedShares:       message.Uint32(b, 19),
		MatchNumber:          message.Uint64(b, 23),
	}
}
func (r OrderExecuted) String() string {
	return fmt.Sprintf("OrderExecuted{%s ref=%d shares=%d match=%d}", r.Header, r.OrderReferenceNumber, r.ExecutedShares, r.MatchNumber)
}

type OrderExecutedWithPrice struct {
	OrderExecuted
	Printable      byte
	ExecutionPrice orderbook.Price
}

func decodeOrderExecutedWithPrice(b []byte) OrderExecutedWithPrice {
	return OrderExecutedWithPrice{
		OrderExecuted:  decodeOrderExecuted(b),
		Printable:      b[31],
		ExecutionPrice: orderbook.PriceFromRaw4(message.Uint32(b, 32)),
	}
}
func (r OrderExecutedWithPrice) String() string {
	return fmt.Sprintf("OrderExecutedWithPrice{%s px=%s}", r.OrderExecuted, r.ExecutionPrice)
}

type OrderCancel struct {
	Header
	OrderReferenceNumber uint64
	CanceledShares       uint32
}

func decodeOrderCancel(b []byte) OrderCancel {
	return OrderCancel{
		Header:               decodeHeader(b),
		OrderReferenceNumber: message.Uint64(b, 11),
		CanceledShares:       message.Uint32(b, 19),
	}
}
func (r OrderCancel) String() string {
	return fmt.Sprintf("OrderCancel{%s ref=%d shares=%d}", r.Header, r.OrderReferenceNumber, r.CanceledShares)
}

type OrderDelete struct {
	Header
	OrderReferenceNumber uint64
}

func decodeOrderDelete(b []byte) OrderDelete {
	return OrderDelete{Header: decodeHeader(b), OrderReferenceNumber: message.Uint64(b, 11)}
}
func (r OrderDelete) String() string {
	return fmt.Sprintf("OrderDelete{%s ref=%d}", r.Header, r.OrderReferenceNumber)
}

type OrderReplace struct {
	Header
	OriginalOrderReferenceNumber uint64
	NewOrderReferenceNumber      uint64
	Shares                       uint32
	Price                        orderbook.Price
}

func decodeOrderReplace(b []byte) OrderReplace {
	return OrderReplace{
		Header:                       decodeHeader(b),
		OriginalOrderReferenceNumber: message.Uint64(b, 11),
		NewOrderReferenceNumber:      message.Uint64(b, 19),
		Shares:                       message.Uint32(b, 27),
		Price:                        orderbook.PriceFromRaw4(message.Uint32(b, 31)),
	}
}
func (r OrderReplace) String() string {
	return fmt.Sprintf("OrderReplace{%s old=%d new=%d shares=%d px=%s}",
		r.Header, r.OriginalOrderReferenceNumber, r.NewOrderReferenceNumber, r.Shares, r.Price)
}

type Trade struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                orderbook.Symbol
	Price                orderbook.Price
	MatchNumber          uint64
}

func decodeTrade(b []byte) Trade {
	var stock orderbook.Symbol
	copy(stock[:], b[24:32])
	return Trade{
		Header:               decodeHeader(b),
		OrderReferenceNumber: message.Uint64(b, 11),
		BuySellIndicator:     b[19],
		Shares:               message.Uint32(b, 20),
		Stock:                stock,
		Price:                orderbook.PriceFromRaw4(message.Uint32(b, 32)),
		MatchNumber:          message.Uint64(b, 36),
	}
}
func (r Trade) String() string {
	return fmt.Sprintf("Trade{%s ref=%d stock=%s qty=%d px=%s}", r.Header, r.OrderReferenceNumber, r.Stock, r.Shares, r.Price)
}

type CrossTrade struct {
	Header
	Shares      uint64
	Stock       orderbook.Symbol
	CrossPrice  orderbook.Price
	MatchNumber uint64
	CrossType   byte
}

func decodeCrossTrade(b []byte) CrossTrade {
	var stock orderbook.Symbol
	copy(stock[:], b[19:27])
	return CrossTrade{
		Header:      decodeHeader(b),
		Shares:      message.Uint64(b, 11),
		Stock:       stock,
		CrossPrice:  orderbook.PriceFromRaw4(message.Uint32(b, 27)),
		MatchNumber: message.Uint64(b, 31),
		CrossType:   b[39],
	}
}
func (r CrossTrade) String() string {
	return fmt.Sprintf("CrossTrade{%s stock=%s shares=%d px=%s}", r.Header, r.Stock, r.Shares, r.CrossPrice)
}

type BrokenTrade struct {
	Header
	MatchNumber uint64
}

func decodeBrokenTrade(b []byte) BrokenTrade {
	return BrokenTrade{Header: decodeHeader(b), MatchNumber: message.Uint64(b, 11)}
}
func (r BrokenTrade) String() string { return fmt.Sprintf("BrokenTrade{%s match=%d}", r.Header, r.MatchNumber) }

type NOII struct {
	Header
	PairedShares          uint64
	ImbalanceShares       uint64
	ImbalanceDirection    byte
	Stock                 orderbook.Symbol
	FarPrice              orderbook.Price
	NearPrice             orderbook.Price
	CurrentReferencePrice orderbook.Price
	CrossType             byte
	PriceVariationIndicator byte
}

func decodeNOII(b []byte) NOII {
	var stock orderbook.Symbol
	copy(stock[:], b[28:36])
	return NOII{
		Header:                  decodeHeader(b),
		PairedShares:            message.Uint64(b, 11),
		ImbalanceShares:         message.Uint64(b, 19),
		ImbalanceDirection:      b[27],
		Stock:                   stock,
		FarPrice:                orderbook.PriceFromRaw4(message.Uint32(b, 36)),
		NearPrice:               orderbook.PriceFromRaw4(message.Uint32(b, 40)),
		CurrentReferencePrice:   orderbook.PriceFromRaw4(message.Uint32(b, 44)),
		CrossType:               b[48],
		PriceVariationIndicator: b[49],
	}
}
func (r NOII) String() string { return fmt.Sprintf("NOII{%s stock=%s}", r.Header, r.Stock) }

type RPII struct {
	Header
	Stock        orderbook.Symbol
	InterestFlag byte
}

func decodeRPII(b []byte) RPII {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return RPII{Header: decodeHeader(b), Stock: stock, InterestFlag: b[19]}
}
func (r RPII) String() string { return fmt.Sprintf("RPII{%s stock=%s}", r.Header, r.Stock) }

type DirectListingWithCapitalRaisePriceDiscovery struct {
	Header
	Stock                  orderbook.Symbol
	OpenEligibilityStatus  byte
	MinimumAllowedPrice    orderbook.Price
	MaximumAllowedPrice    orderbook.Price
	NearExecutionPrice     orderbook.Price
	NearExecutionTime      uint64
	LowerPriceRangeCollar  orderbook.Price
	UpperPriceRangeCollar  orderbook.Price
}

func decodeDirectListingWithCapitalRaisePriceDiscovery(b []byte) DirectListingWithCapitalRaisePriceDiscovery {
	var stock orderbook.Symbol
	copy(stock[:], b[11:19])
	return DirectListingWithCapitalRaisePriceDiscovery{
		Header:                 decodeHeader(b),
		Stock:                  stock,
		OpenEligibilityStatus:  b[19],
		MinimumAllowedPrice:    orderbook.PriceFromRaw4(message.Uint32(b, 20)),
		MaximumAllowedPrice:    orderbook.PriceFromRaw4(message.Uint32(b, 24)),
		NearExecutionPrice:     orderbook.PriceFromRaw4(message.Uint32(b, 28)),
		NearExecutionTime:      message.Uint64(b, 32),
		LowerPriceRangeCollar:  orderbook.PriceFromRaw4(message.Uint32(b, 40)),
		UpperPriceRangeCollar:  orderbook.PriceFromRaw4(message.Uint32(b, 44)),
	}
}
func (r DirectListingWithCapitalRaisePriceDiscovery) String() string {
	return fmt.Sprintf("DirectListingWithCapitalRaisePriceDiscovery{%s stock=%s}", r.Header, r.Stock)
}
