package digest_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"itchbook/internal/digest"
)

func TestSumMatchesStdlibSHA256(t *testing.T) {
	d := digest.New()
	d.Write([]byte("hello"))
	d.Write([]byte(" world"))

	want := sha256.Sum256([]byte("hello world"))
	if got := d.Sum(); got != hex.EncodeToString(want[:]) {
		t.Errorf("Sum() = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestCountTracksWriteCallsIndependentlyFromUpdates(t *testing.T) {
	d := digest.New()
	d.WriteUint64(1)
	d.WriteInt64(-1)
	d.MarkUpdate()

	if d.Count() != 2 {
		t.Errorf("Count() = %d, want 2", d.Count())
	}
	if d.Updates() != 1 {
		t.Errorf("Updates() = %d, want 1", d.Updates())
	}
}

func TestIncrementalFeedingAcrossManyUpdates(t *testing.T) {
	d := digest.New()
	for i := uint64(0); i < 1000; i++ {
		d.WriteUint64(i)
		d.MarkUpdate()
	}
	if d.Updates() != 1000 {
		t.Errorf("Updates() = %d, want 1000", d.Updates())
	}
	if len(d.Sum()) != 64 {
		t.Errorf("Sum() length = %d, want 64 hex chars", len(d.Sum()))
	}
}
