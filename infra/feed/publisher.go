// Package feed publishes decoded order book mutations to Kafka as a
// BookListener, synchronously and inline with the replay loop that
// drives the book — there is no background goroutine or retry ticker
// here. A publish failure is not queued for a later retry pass and does
// not reach the caller either: BookListener callbacks have no error
// return, so publish drops the producer's error.
package feed

import (
	"encoding/json"

	"github.com/IBM/sarama"

	"itchbook/orderbook"
)

// Event is the wire shape published for every book mutation.
type Event struct {
	Type       string `json:"type"`
	CID        int32  `json:"cid"`
	RefNum     uint64 `json:"ref_num"`
	Side       string `json:"side,omitempty"`
	Quantity   int64  `json:"quantity,omitempty"`
	Price      string `json:"price,omitempty"`
	OldQty     int64  `json:"old_qty,omitempty"`
	FillQty    int64  `json:"fill_qty,omitempty"`
	NewRefNum  uint64 `json:"new_ref_num,omitempty"`
	MatchNum   uint64 `json:"match_num,omitempty"`
}

// Publisher adapts orderbook.BookListener to a Kafka sync producer.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher dials brokers and returns a Publisher sending to topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

func (p *Publisher) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _, _ = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	})
}

func (p *Publisher) OnNewOrder(cid orderbook.CID, o *orderbook.Order) {
	p.publish(Event{Type: "new", CID: int32(cid), RefNum: uint64(o.RefNum),
		Side: o.Side.String(), Quantity: o.Quantity, Price: o.Price.String()})
}

func (p *Publisher) OnDeleteOrder(cid orderbook.CID, o *orderbook.Order, oldQty int64) {
	p.publish(Event{Type: "delete", CID: int32(cid), RefNum: uint64(o.RefNum), OldQty: oldQty})
}

func (p *Publisher) OnReplaceOrder(cid orderbook.CID, old orderbook.OrderView, newOrder *orderbook.Order) {
	p.publish(Event{Type: "replace", CID: int32(cid), RefNum: uint64(old.RefNum),
		NewRefNum: uint64(newOrder.RefNum), Quantity: newOrder.Quantity, Price: newOrder.Price.String()})
}

func (p *Publisher) OnExecOrder(cid orderbook.CID, o *orderbook.Order, oldQty, fillQty int64, info orderbook.ExecInfo) {
	p.publish(Event{Type: "exec", CID: int32(cid), RefNum: uint64(o.RefNum),
		OldQty: oldQty, FillQty: fillQty, MatchNum: info.MatchNum})
}

func (p *Publisher) OnUpdateOrder(cid orderbook.CID, o *orderbook.Order, oldQty int64, oldPrice orderbook.Price) {
	p.publish(Event{Type: "update", CID: int32(cid), RefNum: uint64(o.RefNum),
		OldQty: oldQty, Quantity: o.Quantity, Price: o.Price.String()})
}

// Close flushes and closes the underlying producer.
func (p *Publisher) Close() error { return p.producer.Close() }

var _ orderbook.BookListener = (*Publisher)(nil)
