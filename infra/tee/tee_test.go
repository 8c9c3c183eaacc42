package tee

import (
	"bytes"
	"testing"
)

func TestKeyForEncodesStockLocateBigEndian(t *testing.T) {
	cases := []struct {
		locate uint16
		want   []byte
	}{
		{0, []byte{0x00, 0x00}},
		{1, []byte{0x00, 0x01}},
		{0x1234, []byte{0x12, 0x34}},
		{0xffff, []byte{0xff, 0xff}},
	}
	for _, c := range cases {
		if got := keyFor(c.locate); !bytes.Equal(got, c.want) {
			t.Errorf("keyFor(%d) = %v, want %v", c.locate, got, c.want)
		}
	}
}

func TestNewConfiguresWriterForTopic(t *testing.T) {
	tee := New([]string{"localhost:9092"}, "itchbook.raw")
	if tee.writer.Topic != "itchbook.raw" {
		t.Errorf("writer.Topic = %q, want itchbook.raw", tee.writer.Topic)
	}
	if tee.writer.Async {
		t.Errorf("writer.Async = true, want false (synchronous writes)")
	}
}
