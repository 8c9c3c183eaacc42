package checkpoint_test

import (
	"testing"

	"itchbook/infra/checkpoint"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := checkpoint.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	want := checkpoint.Record{Offset: 1024, Sequence: 42, LastNanosUTC: 123456789}
	if err := store.Save("nasdaq_itch50/20191230", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, found, err := store.Load("nasdaq_itch50/20191230")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatalf("Load() found = false, want true")
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissingStreamNotFound(t *testing.T) {
	store, err := checkpoint.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	_, found, err := store.Load("never-saved")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Errorf("Load() found = true for a stream never saved")
	}
}

func TestForEachVisitsAllStreamsInKeyOrder(t *testing.T) {
	store, err := checkpoint.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	_ = store.Save("b", checkpoint.Record{Sequence: 2})
	_ = store.Save("a", checkpoint.Record{Sequence: 1})

	var seen []string
	if err := store.ForEach(func(streamID string, rec checkpoint.Record) error {
		seen = append(seen, streamID)
		return nil
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("ForEach() visited %v, want [a b]", seen)
	}
}

func TestDeleteRemovesCheckpoint(t *testing.T) {
	store, err := checkpoint.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	_ = store.Save("stream", checkpoint.Record{Sequence: 7})
	if err := store.Delete("stream"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, found, err := store.Load("stream")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Errorf("Load() found = true after Delete")
	}
}

func TestSequencerNextIncrementsFromStart(t *testing.T) {
	seq := checkpoint.NewSequencer(10)
	if seq.Current() != 10 {
		t.Fatalf("Current() = %d, want 10", seq.Current())
	}
	if got := seq.Next(); got != 11 {
		t.Errorf("Next() = %d, want 11", got)
	}
	if seq.Current() != 11 {
		t.Errorf("Current() = %d, want 11", seq.Current())
	}
}
