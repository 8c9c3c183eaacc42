// Package tee republishes raw ITCH 5.0 frames to Kafka unmodified,
// alongside whatever a replay run's decoded-mutation publisher sends —
// a side channel for downstream consumers that want the original wire
// bytes (e.g. an independent conformance replay) rather than this
// repo's decoded event shape.
package tee

import (
	"context"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

// Tee writes raw frames to a Kafka topic, one message per frame.
type Tee struct {
	writer *kafka.Writer
}

// New constructs a Tee publishing to topic on the given brokers.
func New(brokers []string, topic string) *Tee {
	return &Tee{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Write publishes one raw frame, keyed by stock locate so a downstream
// consumer can partition by symbol.
func (t *Tee) Write(ctx context.Context, stockLocate uint16, frame []byte) error {
	// frame is only valid for the duration of the call in the mmap data
	// source that produces it, so copy it before handing off to the
	// writer's internal batching buffer.
	value := make([]byte, len(frame))
	copy(value, frame)
	return t.writer.WriteMessages(ctx, kafka.Message{Key: keyFor(stockLocate), Value: value})
}

// keyFor builds the 2-byte big-endian partitioning key for stockLocate.
func keyFor(stockLocate uint16) []byte {
	return []byte{byte(stockLocate >> 8), byte(stockLocate)}
}

func (t *Tee) Close() error { return t.writer.Close() }
