package datasource_test

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"itchbook/datasource"
)

// buildOrderDeleteFrame returns a 2-byte size prefix followed by a
// 19-byte OrderDelete record (type 'D'), a short fixed-layout
// record, handy for exercising the framing logic
// without pulling in the itch50 package's decoders.
func buildOrderDeleteFrame(nanos uint64, refNum uint64) []byte {
	const payloadSize = 19
	frame := make([]byte, 2+payloadSize)
	binary.BigEndian.PutUint16(frame[0:2], payloadSize)

	payload := frame[2:]
	payload[0] = 'D'
	binary.BigEndian.PutUint16(payload[1:3], 1) // stock locate
	binary.BigEndian.PutUint16(payload[3:5], 1) // tracking number
	// 48-bit nanoseconds-since-midnight timestamp
	payload[5] = byte(nanos >> 40)
	payload[6] = byte(nanos >> 32)
	payload[7] = byte(nanos >> 24)
	payload[8] = byte(nanos >> 16)
	payload[9] = byte(nanos >> 8)
	payload[10] = byte(nanos)
	binary.BigEndian.PutUint64(payload[11:19], refNum)
	return frame
}

func writeFixture(t *testing.T, dir string, date int, frames ...[]byte) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("nasdaq_itch.%d.dat", date))
	var buf []byte
	for _, f := range frames {
		buf = append(buf, f...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestItch50HistDataSourceReplaysFramesInOrder(t *testing.T) {
	dir := t.TempDir()
	f1 := buildOrderDeleteFrame(1000, 1)
	f2 := buildOrderDeleteFrame(2000, 2)
	writeFixture(t, dir, 20191230, f1, f2)

	datasource.RootPath = dir
	src, err := datasource.Create("nasdaq_itch50", 20191230)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer src.Close()

	if !src.HasMessage() {
		t.Fatal("HasMessage() = false after construction, want true")
	}
	first := src.NextMessage()
	if len(first) != 19 || first[0] != 'D' {
		t.Fatalf("NextMessage() = %v, want a 19-byte OrderDelete record", first)
	}

	src.Advance()
	if !src.HasMessage() {
		t.Fatal("HasMessage() = false after first Advance, want true")
	}
	second := src.NextMessage()
	if len(second) != 19 {
		t.Fatalf("NextMessage() after Advance = %v, want 19 bytes", second)
	}

	src.Advance()
	if src.HasMessage() {
		t.Fatal("HasMessage() = true after exhausting the fixture, want false")
	}
}

func TestItch50HistDataSourceSeek(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 20191230,
		buildOrderDeleteFrame(1_000_000_000, 1),
		buildOrderDeleteFrame(2_000_000_000, 2),
		buildOrderDeleteFrame(3_000_000_000, 3),
	)

	datasource.RootPath = dir
	src, err := datasource.Create("nasdaq_itch50", 20191230)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer src.Close()

	// Seek loops Advance until NextTime is no earlier than the target.
	second := src.Advance() // now positioned at frame 2
	got := src.Seek(second)
	if got.Before(second) {
		t.Errorf("Seek() landed before target: got %v, want >= %v", got, second)
	}
}
