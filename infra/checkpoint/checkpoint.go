// Package checkpoint persists per-stream replay progress (a file
// offset, a dispatched-record sequence and a timestamp) in a pebble
// key-value store for durable, crash-safe writes — the same storage engine the teacher used
// for its exit outbox, repurposed here to track file offsets instead of
// per-order delivery state.
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Record is one source's last-known replay position: how far into the
// file advancement has gone, and how many records have been dispatched
// as of that offset (the Sequencer's Current(), handy for correlating a
// checkpoint against a digest run).
type Record struct {
	Offset      uint64
	Sequence    uint64
	LastNanosUTC int64
}

func encodeRecord(r Record) []byte {
	buf := make([]byte, 8+8+8)
	binary.BigEndian.PutUint64(buf[0:8], r.Offset)
	binary.BigEndian.PutUint64(buf[8:16], r.Sequence)
	binary.BigEndian.PutUint64(buf[16:24], uint64(r.LastNanosUTC))
	return buf
}

func decodeRecord(b []byte) (Record, error) {
	if len(b) != 24 {
		return Record{}, fmt.Errorf("checkpoint: invalid record length %d", len(b))
	}
	return Record{
		Offset:       binary.BigEndian.Uint64(b[0:8]),
		Sequence:     binary.BigEndian.Uint64(b[8:16]),
		LastNanosUTC: int64(binary.BigEndian.Uint64(b[16:24])),
	}, nil
}

// Store is a durable map from a replay stream's name (a source name
// plus a date, e.g. "nasdaq_itch50/20191230") to its last Record.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) a checkpoint store rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{DisableWAL: false})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save durably records streamID's progress. Safe to call frequently;
// each call fsyncs via pebble.Sync.
func (s *Store) Save(streamID string, r Record) error {
	return s.db.Set(keyFor(streamID), encodeRecord(r), pebble.Sync)
}

// Load returns streamID's last saved Record, or found=false if the
// stream has never been checkpointed.
func (s *Store) Load(streamID string) (rec Record, found bool, err error) {
	val, closer, err := s.db.Get(keyFor(streamID))
	if err == pebble.ErrNotFound {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	defer closer.Close()
	rec, err = decodeRecord(val)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Delete removes a stream's checkpoint, forcing the next replay of that
// stream to start from the beginning.
func (s *Store) Delete(streamID string) error {
	return s.db.Delete(keyFor(streamID), pebble.Sync)
}

// ForEach visits every checkpointed stream, in key order.
func (s *Store) ForEach(fn func(streamID string, rec Record) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("stream/"),
		UpperBound: []byte("stream/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		id := string(bytes.TrimPrefix(iter.Key(), []byte("stream/")))
		if err := fn(id, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

func keyFor(streamID string) []byte {
	return []byte("stream/" + streamID)
}
