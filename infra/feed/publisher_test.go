package feed

import (
	"errors"
	"testing"

	"github.com/IBM/sarama/mocks"

	"itchbook/orderbook"
)

var errSendFailed = errors.New("send failed")

func newTestPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	mp := mocks.NewSyncProducer(t, nil)
	return &Publisher{producer: mp, topic: "itchbook.feed"}, mp
}

func TestOnNewOrderPublishesEvent(t *testing.T) {
	p, mp := newTestPublisher(t)
	mp.ExpectSendMessageAndSucceed()

	order := &orderbook.Order{RefNum: 7, Side: orderbook.Bid, Quantity: 100, Price: orderbook.PriceFromRaw4(1000000000)}
	p.OnNewOrder(3, order)

	if err := mp.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestOnDeleteOrderPublishesEvent(t *testing.T) {
	p, mp := newTestPublisher(t)
	mp.ExpectSendMessageAndSucceed()

	order := &orderbook.Order{RefNum: 9, Side: orderbook.Ask, Quantity: 0}
	p.OnDeleteOrder(1, order, 50)

	if err := mp.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestOnExecOrderPublishesEvent(t *testing.T) {
	p, mp := newTestPublisher(t)
	mp.ExpectSendMessageAndSucceed()

	order := &orderbook.Order{RefNum: 11, Side: orderbook.Bid, Quantity: 40}
	p.OnExecOrder(2, order, 100, 60, orderbook.ExecInfo{MatchNum: 555})

	if err := mp.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestPublishSwallowsSendErrors(t *testing.T) {
	p, mp := newTestPublisher(t)
	mp.ExpectSendMessageAndFail(errSendFailed)

	// publish must not panic or propagate the producer error; the
	// listener interface has no error return.
	p.publish(Event{Type: "new", CID: 1, RefNum: 1})

	if err := mp.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
